package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/condenv/pkg/core"
)

func writePreset(t *testing.T, dir, kind, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, kind), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, kind, "index.toml"), []byte(body), 0644))
}

func TestResolveBuiltins(t *testing.T) {
	r := New("")

	tests := []struct {
		kind string
		want []string
	}{
		{"python2", []string{"python=2", "ipykernel"}},
		{"python3", []string{"python=3", "ipykernel"}},
		{"r", []string{"r-base", "r-essentials"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := r.Resolve(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := New(t.TempDir()).Resolve("julia")
	assert.ErrorIs(t, err, core.ErrUnknownPreset)
}

func TestResolveRejectsPaths(t *testing.T) {
	r := New(t.TempDir())
	for _, kind := range []string{"", "..", "../etc", `a\b`} {
		_, err := r.Resolve(kind)
		assert.ErrorIs(t, err, core.ErrInvalidArgument, kind)
	}
}

func TestPresetFileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "python3", `
name = "python3"
description = "Pinned kernel"
packages = ["python=3.12", "ipykernel", "numpy"]
`)
	writePreset(t, dir, "julia", `packages = ["julia"]`)

	r := New(dir)

	got, err := r.Resolve("python3")
	require.NoError(t, err)
	assert.Equal(t, []string{"python=3.12", "ipykernel", "numpy"}, got)

	entry, err := r.Load("julia")
	require.NoError(t, err)
	assert.Equal(t, "julia", entry.Name)
}

func TestResolveEmptyPreset(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "empty", `name = "empty"`)

	_, err := New(dir).Resolve("empty")
	assert.ErrorIs(t, err, core.ErrUnknownPreset)
}

func TestLoadBrokenPreset(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "broken", `packages = [`)

	_, err := New(dir).Load("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrUnknownPreset)
}

func TestBuiltinsNotAliased(t *testing.T) {
	r := New("")
	entry, err := r.Load("r")
	require.NoError(t, err)
	entry.Packages[0] = "changed"

	got, err := r.Resolve("r")
	require.NoError(t, err)
	assert.Equal(t, "r-base", got[0])
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "julia", `packages = ["julia"]`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "no-index"), 0755))

	entries, err := New(dir).List()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"julia", "python2", "python3", "r"}, names)
}
