package conda

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/runner"
)

const configJSON = `{
	"channels": ["conda-forge", "defaults", "/srv/local-channel", "https://repo.example.com/private"],
	"channel_alias": {"scheme": "https", "location": "conda.anaconda.org", "name": null},
	"custom_multichannels": {
		"defaults": [
			{"scheme": "https", "location": "repo.anaconda.com", "name": "pkgs/main"},
			{"scheme": "https", "location": "repo.anaconda.com", "name": "pkgs/r"}
		],
		"local": [
			{"scheme": "file", "location": "/opt/conda/conda-bld", "name": null}
		]
	}
}`

func TestResolveChannelsBase(t *testing.T) {
	m, fake := newTestManager(t, reply(configJSON))

	got, err := m.ResolveChannels(context.Background(), "base")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"conda-forge": {"https://conda.anaconda.org/conda-forge"},
		"defaults": {
			"https://repo.anaconda.com/pkgs/main",
			"https://repo.anaconda.com/pkgs/r",
		},
		"/srv/local-channel":               {"file:///srv/local-channel"},
		"https://repo.example.com/private": {"https://repo.example.com/private"},
	}, got)

	calls := fake.commands()
	require.Len(t, calls, 1)
	assert.Equal(t, "config --show --json", calls[0].Base)
	assert.Empty(t, calls[0].Env)
}

func TestResolveChannelsNamedEnvironment(t *testing.T) {
	const key = PrefixVariable
	before, had := os.LookupEnv(key)

	m, fake := newTestManager(t, func(c runner.Command) (*runner.Result, error) {
		if strings.HasPrefix(c.Base, "info") {
			return ok(infoJSON)
		}
		return ok(configJSON)
	})

	got, err := m.ResolveChannels(context.Background(), "y")
	require.NoError(t, err)
	assert.Contains(t, got, "conda-forge")

	calls := fake.commands()
	require.Len(t, calls, 2)
	assert.Equal(t, "info --json", calls[0].Base)
	assert.Equal(t, "config --show --json", calls[1].Base)
	assert.Equal(t, map[string]string{key: "/a/envs/y"}, calls[1].Env)

	after, hasAfter := os.LookupEnv(key)
	assert.Equal(t, had, hasAfter)
	assert.Equal(t, before, after)
}

func TestResolveChannelsSubQueryFailureLeavesEnvironment(t *testing.T) {
	const key = PrefixVariable
	t.Setenv(key, "/a")

	m, _ := newTestManager(t, func(c runner.Command) (*runner.Result, error) {
		if strings.HasPrefix(c.Base, "info") {
			return ok(infoJSON)
		}
		return failed(1, `{"error": "CondaKeyError"}`)
	})

	_, err := m.ResolveChannels(context.Background(), "x")
	requireFailure(t, err, KindTool)
	assert.Equal(t, "/a", os.Getenv(key))
}

func TestResolveChannelsUnknownEnvironment(t *testing.T) {
	m, fake := newTestManager(t, reply(infoJSON))

	_, err := m.ResolveChannels(context.Background(), "z")
	requireFailure(t, err, KindInput)
	assert.ErrorIs(t, err, core.ErrEnvironmentNotFound)

	// only the listing ran
	assert.Len(t, fake.commands(), 1)
}

func TestResolveChannelsMatchesRequestedName(t *testing.T) {
	// "x" is listed before "y"; the lookup must not settle on the first entry
	m, fake := newTestManager(t, func(c runner.Command) (*runner.Result, error) {
		if strings.HasPrefix(c.Base, "info") {
			return ok(infoJSON)
		}
		return ok(`{"channels": [], "custom_multichannels": {}, "channel_alias": {}}`)
	})

	got, err := m.ResolveChannels(context.Background(), "y")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "/a/envs/y", fake.commands()[1].Env[PrefixVariable])
}

func TestChannelSpecURI(t *testing.T) {
	tests := []struct {
		spec channelSpec
		want string
	}{
		{channelSpec{Scheme: "https", Location: "conda.anaconda.org", Name: "conda-forge"}, "https://conda.anaconda.org/conda-forge"},
		{channelSpec{Scheme: "https", Location: "/conda.anaconda.org/", Name: "bioconda"}, "https://conda.anaconda.org/bioconda"},
		{channelSpec{Scheme: "http", Location: "mirror.local:8080/conda", Name: "main"}, "http://mirror.local:8080/conda/main"},
		{channelSpec{Scheme: "file", Location: "/opt/conda/conda-bld"}, "file:///opt/conda/conda-bld"},
		{channelSpec{Location: "/srv/chan", Name: "sub"}, "file:///srv/chan/sub"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.spec.uri())
	}
}
