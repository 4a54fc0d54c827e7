package sanitize

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantFailed    bool
		wantRecovered bool
		wantPayload   string
	}{
		{
			name:        "strict object",
			text:        `{"success": true, "prefix": "/opt/conda/envs/x"}`,
			wantPayload: `{"success": true, "prefix": "/opt/conda/envs/x"}`,
		},
		{
			name:        "strict list with trailing newline",
			text:        "[1, 2, 3]\n",
			wantPayload: `[1, 2, 3]`,
		},
		{
			name: "progress lines around pretty printed object",
			text: "Collecting package metadata (current_repodata.json): done\n" +
				"Solving environment: done\n" +
				"{\n" +
				"  \"name\": \"numpy\",\n" +
				"  \"version\": \"1.26.4\"\n" +
				"}\n",
			wantRecovered: true,
			wantPayload:   `{"name": "numpy", "version": "1.26.4"}`,
		},
		{
			name: "windows line endings",
			text: "Retrieving notices: ...working... done\r\n" +
				"[\r\n" +
				"  \"a\",\r\n" +
				"  \"b\"\r\n" +
				"]\r\n",
			wantRecovered: true,
			wantPayload:   `["a", "b"]`,
		},
		{
			name:       "no json at all",
			text:       "CondaError: something went badly wrong\nplease retry later",
			wantFailed: true,
		},
		{
			name: "stray line ending in a digit is retained",
			text: "Downloading 100\n" +
				"{\n" +
				"  \"a\": 1\n" +
				"}\n",
			wantFailed: true,
		},
		{
			name:       "empty output",
			text:       "",
			wantFailed: true,
		},
		{
			name:       "truncated document",
			text:       "{\n  \"a\": [1, 2,\n",
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.text)

			assert.Equal(t, tt.wantFailed, res.Failed)
			assert.Equal(t, tt.wantRecovered, res.Recovered)
			if tt.wantFailed {
				assert.True(t, res.HasError())
				assert.Equal(t, tt.text, res.Raw)
				assert.Nil(t, res.Payload)
				return
			}
			assert.JSONEq(t, tt.wantPayload, string(res.Payload))
		})
	}
}

func TestParseStrictSkipsRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	res := New(logger).Parse(`{"a": 1}`)

	require.False(t, res.Failed)
	assert.False(t, res.Recovered)
	assert.Empty(t, buf.String(), "a strict success must not log or filter")
}

func TestParseLogsSeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	res := New(logger).Parse("garbage")

	require.True(t, res.Failed)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "ERRO")
}

func TestHasError(t *testing.T) {
	body := Parse(`{"error": "EnvironmentLocationNotFound: Not a conda environment", "exception_name": "EnvironmentLocationNotFound"}`)
	assert.False(t, body.Failed)
	assert.True(t, body.HasError())
	assert.Equal(t, "EnvironmentLocationNotFound: Not a conda environment", body.Message())

	list := Parse(`[{"error": "inside an element does not count"}]`)
	assert.False(t, list.HasError())

	ok := Parse(`{"success": true}`)
	assert.False(t, ok.HasError())
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Failure("garbage"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": true}`, string(out))

	out, err = json.Marshal(Parse(`{"success": true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true}`, string(out))
}

func TestFilterLines(t *testing.T) {
	text := "noise\n{\n  \"k\": \"v\"\n}\nmore noise"
	assert.Equal(t, "{\n  \"k\": \"v\"\n}", FilterLines(text))
}
