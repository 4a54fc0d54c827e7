// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Tools lists the supported package tools in order of preference
var Tools = []string{"conda", "mamba", "micromamba"}

// Platform represents the detected system platform
type Platform struct {
	OS        string            `json:"os" yaml:"os"`               // linux, darwin, windows
	Arch      string            `json:"arch" yaml:"arch"`           // amd64, arm64, 386, arm
	Available []string          `json:"available" yaml:"available"` // package tools found on PATH
	Paths     map[string]string `json:"paths" yaml:"paths"`         // tool -> resolved path
	Preferred string            `json:"preferred" yaml:"preferred"`
}

// Detect detects the current platform and available package tools
func Detect() (*Platform, error) {
	p := &Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Available: []string{},
		Paths:     map[string]string{},
	}

	switch p.OS {
	case "linux", "darwin", "windows":
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", p.OS)
	}

	for _, tool := range Tools {
		if path, ok := commandPath(tool); ok {
			p.Available = append(p.Available, tool)
			p.Paths[tool] = path
		}
	}

	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p, nil
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v, preferred: %s)",
		p.OS, p.Arch, p.Available, p.Preferred)
}
