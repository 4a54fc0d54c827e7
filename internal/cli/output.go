package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/condenv/pkg/conda"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// out is where command results are written
var out io.Writer = os.Stdout

// structured writes v in the selected machine format.
// It reports false in text mode so the caller renders its own view.
func structured(v any) (bool, error) {
	switch outputFormat {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("encoding json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return true, nil

	case formatYAML:
		// round-trip through JSON so raw tool payloads keep their shape
		data, err := json.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("encoding json: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, fmt.Errorf("decoding json: %w", err)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return true, fmt.Errorf("encoding yaml: %w", err)
		}
		return true, enc.Close()

	case formatText, "":
		return false, nil

	default:
		return true, fmt.Errorf("unknown output format %q", outputFormat)
	}
}

// renderTable prints rows under headers with the column borders hidden
func renderTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("(none)"))
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingRight(1)
		})

	fmt.Fprintln(out, t.Render())
}

// reportFailure prints the failure value in machine formats so callers
// parsing stdout still see {"error": true}
func reportFailure(err error) error {
	if f, ok := conda.AsFailure(err); ok && outputFormat != formatText && outputFormat != "" {
		if _, encErr := structured(f); encErr != nil {
			return encErr
		}
	}
	return err
}

// done prints the outcome of a mutating operation
func done(payload json.RawMessage, format string, args ...any) error {
	if ok, err := structured(payload); ok {
		return err
	}
	fmt.Fprintf(out, format+"\n", args...)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) string {
	if i == nil {
		return ""
	}
	return fmt.Sprint(*i)
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
