package runner

import (
	"strings"

	"github.com/arc-language/condenv/pkg/core"
)

// BuildArgv assembles the tool arguments: the base words, then the flags of
// the requested options, then the positional args in order.
func BuildArgv(base string, args []string, requested []core.Option, opts core.Options) []string {
	argv := strings.Fields(base)
	argv = append(argv, opts.Flags(requested)...)
	return append(argv, args...)
}
