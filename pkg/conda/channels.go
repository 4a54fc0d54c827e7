package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/condenv/pkg/core"
	"github.com/arc-language/condenv/pkg/runner"
)

// ResolveChannels maps each channel configured for name to its URIs.
//
// For an environment other than the root, the tool is pointed at the
// environment through the child's CONDA_PREFIX; this process's own
// environment is never touched.
func (m *Manager) ResolveChannels(ctx context.Context, name string) (map[string][]string, error) {
	if err := checkName(OpChannels, name); err != nil {
		return nil, err
	}

	c := runner.Command{Base: cmdConfigShow}
	if name != core.RootEnvironmentName {
		envs, err := m.ListEnvironments(ctx)
		if err != nil {
			return nil, err
		}
		env, ok := envs.Find(name)
		if !ok {
			return nil, inputFailure(OpChannels, name, fmt.Errorf("%q: %w", name, core.ErrEnvironmentNotFound))
		}
		c.Env = map[string]string{PrefixVariable: env.Dir}
	}

	res, err := m.call(ctx, OpChannels, name, c)
	if err != nil {
		return nil, err
	}
	if err := resultFailure(OpChannels, name, res); err != nil {
		return nil, err
	}

	var cfg channelConfig
	if err := json.Unmarshal(res.Payload, &cfg); err != nil {
		return nil, malformed(OpChannels, name, fmt.Errorf("decoding config: %w", err))
	}

	channels := cfg.resolve()
	m.logger.Debug("Resolved channels", "env", name, "channels", channels)
	return channels, nil
}

// resolve expands every configured channel.
// Multichannels expand to their members, URLs are kept, bare names go
// through the channel alias and anything else is a local path.
func (c channelConfig) resolve() map[string][]string {
	out := make(map[string][]string, len(c.Channels))

	for _, channel := range c.Channels {
		switch members, ok := c.CustomMultichannels[channel]; {
		case ok:
			uris := make([]string, 0, len(members))
			for _, member := range members {
				uris = append(uris, member.uri())
			}
			out[channel] = uris
		case strings.Contains(channel, "://"):
			out[channel] = []string{channel}
		case !isPath(channel):
			alias := c.ChannelAlias
			alias.Name = channel
			out[channel] = []string{alias.uri()}
		default:
			out[channel] = []string{fileURI(channel)}
		}
	}

	return out
}

// uri renders scheme://location/name
func (s channelSpec) uri() string {
	location := strings.Trim(s.Location, "/")
	if s.Name != "" {
		location = strings.TrimPrefix(location+"/"+strings.Trim(s.Name, "/"), "/")
	}
	if s.Scheme == "" || s.Scheme == "file" {
		return "file:///" + location
	}
	return s.Scheme + "://" + location
}

func isPath(channel string) bool {
	return strings.ContainsRune(channel, '/') || strings.ContainsRune(channel, os.PathSeparator)
}

func fileURI(path string) string {
	return "file:///" + strings.TrimPrefix(filepath.ToSlash(path), "/")
}
