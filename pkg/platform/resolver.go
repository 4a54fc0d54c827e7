// pkg/platform/resolver.go
package platform

import (
	"fmt"
	"os"

	"github.com/arc-language/condenv/pkg/core"
)

// ResolveExecutable picks the tool executable to run.
//
// Priority:
// 1. configured, when set
// 2. CONDA_EXE from the environment
// 3. first of Tools found on PATH
// 4. "conda", left for the spawn to fail loudly
func ResolveExecutable(configured string) string {
	if configured != "" {
		return configured
	}
	if exe := os.Getenv("CONDA_EXE"); exe != "" {
		return exe
	}
	for _, tool := range Tools {
		if path, ok := commandPath(tool); ok {
			return path
		}
	}
	return Tools[0]
}

// RequireTool checks that executable can be found
func RequireTool(executable string) (string, error) {
	path, ok := commandPath(executable)
	if !ok {
		return "", fmt.Errorf("%s: %w", executable, core.ErrToolNotFound)
	}
	return path, nil
}
