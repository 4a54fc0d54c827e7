// Package envfile reads and writes explicit environment listings.
//
// Files ending in .xz or .zst are compressed transparently, everything else
// is plain text.
package envfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a listing is stored on disk
type Compression string

const (
	None Compression = ""
	XZ   Compression = "xz"
	Zstd Compression = "zst"
)

// CompressionFor picks the compression from the file extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return XZ
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

// Read returns the listing stored at path
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := Decode(data, CompressionFor(path))
	if err != nil {
		return "", fmt.Errorf("decompressing %s: %w", path, err)
	}
	return text, nil
}

// Write stores contents at path, compressing by extension
func Write(path, contents string) error {
	data, err := Encode(contents, CompressionFor(path))
	if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Decode decompresses data
func Decode(data []byte, c Compression) (string, error) {
	switch c {
	case XZ:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		out, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case Zstd:
		decoder, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		defer decoder.Close()

		out, err := io.ReadAll(decoder)
		if err != nil {
			return "", err
		}
		return string(out), nil

	default:
		return string(data), nil
	}
}

// Encode compresses contents
func Encode(contents string, c Compression) ([]byte, error) {
	var buf bytes.Buffer

	switch c {
	case XZ:
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, contents); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

	case Zstd:
		encoder, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(encoder, contents); err != nil {
			encoder.Close()
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}

	default:
		buf.WriteString(contents)
	}

	return buf.Bytes(), nil
}
