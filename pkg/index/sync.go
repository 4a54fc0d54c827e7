package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arc-language/condenv/pkg/core"
)

// PresetsFolder is the repository folder holding one directory per preset
const PresetsFolder = "presets"

// SyncOptions describes where presets come from and where they go
type SyncOptions struct {
	URL        string
	Branch     string
	Depth      int
	PresetsDir string
	// Progress receives git clone progress, nil for none
	Progress io.Writer
	Logger   *log.Logger
}

// Sync clones the preset repository and copies its presets folder into
// PresetsDir, replacing presets with the same name.
func Sync(ctx context.Context, opts SyncOptions) error {
	if opts.URL == "" {
		opts.URL = core.DefaultPresetsRepo
	}
	if opts.PresetsDir == "" {
		return fmt.Errorf("presets directory not set: %w", core.ErrInvalidArgument)
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.DiscardLogger()
	}

	tempDir, err := os.MkdirTemp("", "condenv-clone-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Info("Updating presets", "url", opts.URL, "branch", opts.Branch)

	clone := &git.CloneOptions{
		URL:      opts.URL,
		Depth:    opts.Depth,
		Progress: opts.Progress,
	}
	if opts.Branch != "" {
		clone.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		clone.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, tempDir, false, clone); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	src := filepath.Join(tempDir, PresetsFolder)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("repository has no %s folder: %w", PresetsFolder, err)
	}

	if err := copyDir(src, opts.PresetsDir); err != nil {
		return fmt.Errorf("copying presets: %w", err)
	}

	logger.Info("Presets updated", "dir", opts.PresetsDir)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}
