package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `# This file may be used to create an environment using:
# $ conda create --name <env> --file <this file>
# platform: linux-64
@EXPLICIT
https://conda.anaconda.org/conda-forge/linux-64/python-3.12.3-hab00c5b_0_cpython.conda
https://conda.anaconda.org/conda-forge/noarch/pip-24.0-pyhd8ed1ab_0.conda
`

func TestCompressionFor(t *testing.T) {
	tests := map[string]Compression{
		"env.txt":      None,
		"env":          None,
		"env.txt.xz":   XZ,
		"ENV.XZ":       XZ,
		"env.txt.zst":  Zstd,
		"env.txt.zstd": Zstd,
	}
	for path, want := range tests {
		assert.Equal(t, want, CompressionFor(path), path)
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"plain.txt", "packed.txt.xz", "packed.txt.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, Write(path, listing))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, listing, got)
		})
	}
}

func TestCompressedFilesDifferFromPlain(t *testing.T) {
	for _, c := range []Compression{XZ, Zstd} {
		data, err := Encode(listing, c)
		require.NoError(t, err)
		assert.NotEqual(t, listing, string(data), string(c))
	}
}

func TestReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xz")
	require.NoError(t, os.WriteFile(path, []byte("not xz data"), 0644))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
