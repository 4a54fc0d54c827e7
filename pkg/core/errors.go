package core

import "errors"

var (
	// ErrUnknownPreset indicates the environment template kind is not registered
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrEnvironmentNotFound indicates no environment carries the requested name
	ErrEnvironmentNotFound = errors.New("environment not found")

	// ErrInvalidArgument indicates a caller supplied an unusable argument
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrToolNotFound indicates no package tool executable could be located
	ErrToolNotFound = errors.New("package tool not found")
)
