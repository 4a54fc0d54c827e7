// errors.go
package condenv

import (
	"fmt"

	"github.com/arc-language/condenv/pkg/core"
)

var (
	// ErrUnknownPreset indicates the environment template kind is not registered
	ErrUnknownPreset = core.ErrUnknownPreset

	// ErrEnvironmentNotFound indicates no environment carries the requested name
	ErrEnvironmentNotFound = core.ErrEnvironmentNotFound

	// ErrInvalidArgument indicates a caller supplied an unusable argument
	ErrInvalidArgument = core.ErrInvalidArgument

	// ErrToolNotFound indicates no package tool executable could be located
	ErrToolNotFound = core.ErrToolNotFound
)

// Error wraps an error with additional context
type Error struct {
	Op  string // Operation that failed
	Env string // Environment name if applicable
	Err error  // Underlying error
}

func (e *Error) Error() string {
	if e.Env != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Env, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
