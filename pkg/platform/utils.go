// pkg/platform/utils.go
package platform

import (
	"os/exec"
)

// lookPath is replaced in tests
var lookPath = exec.LookPath

// commandPath returns the resolved path of cmd when it is on PATH
func commandPath(cmd string) (string, bool) {
	path, err := lookPath(cmd)
	if err != nil {
		return "", false
	}
	return path, true
}
