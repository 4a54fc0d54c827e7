// Package sanitize recovers structured JSON from package tool output.
//
// The tool occasionally interleaves progress lines with its JSON payload on
// the same stream. Parse first tries the whole text, then a degraded pass
// that keeps only lines that look like JSON structure, and finally reports a
// failure marker. The degraded pass is a salvage heuristic, not a parser: it
// may keep a stray line or drop a real one, in which case the result is a
// failure rather than corrupted data.
package sanitize

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// jsonishRE matches lines that start or end like a JSON fragment
var jsonishRE = regexp.MustCompile(`(^\s*["{}\[\],\d])|(["}\[\],\d]\s*$)`)

// Result is the outcome of sanitizing one tool invocation
type Result struct {
	// Payload is the structured body when a parse succeeded
	Payload json.RawMessage
	// Failed is the error discriminant: no usable data was recovered
	Failed bool
	// Recovered marks a payload obtained from the degraded line filter
	Recovered bool
	// Raw is the original text, kept only when Failed is set
	Raw string
}

// Success wraps an already valid payload
func Success(payload json.RawMessage) Result {
	return Result{Payload: payload}
}

// Failure returns the bare failure marker for raw
func Failure(raw string) Result {
	return Result{Failed: true, Raw: raw}
}

// HasError reports whether the result carries no usable data, either because
// parsing failed or because the tool answered with an error body.
func (r Result) HasError() bool {
	if r.Failed {
		return true
	}
	return gjson.GetBytes(r.Payload, "error").Exists()
}

// Message extracts a human readable message from a tool error body
func (r Result) Message() string {
	if r.Failed {
		return "malformed tool output"
	}
	for _, key := range []string{"message", "error"} {
		if v := gjson.GetBytes(r.Payload, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// MarshalJSON emits the payload, or {"error": true} for a failed result
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed {
		return []byte(`{"error":true}`), nil
	}
	if len(r.Payload) == 0 {
		return []byte("null"), nil
	}
	return r.Payload, nil
}

// FailureError carries an unusable result through error returns unchanged
type FailureError struct {
	Result Result
}

func (e *FailureError) Error() string {
	if msg := e.Result.Message(); msg != "" {
		return fmt.Sprintf("tool reported failure: %s", msg)
	}
	return "tool reported failure"
}

// Sanitizer parses tool output and logs parse failures
type Sanitizer struct {
	logger *log.Logger
}

// New creates a Sanitizer. A nil logger discards records.
func New(logger *log.Logger) *Sanitizer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sanitizer{logger: logger}
}

// Parse returns the structured payload contained in text
func (s *Sanitizer) Parse(text string) Result {
	if payload, ok := strict(text); ok {
		return Success(payload)
	}
	s.logger.Warn("JSON parse failed, filtering output", "bytes", len(text))

	if payload, ok := strict(FilterLines(text)); ok {
		return Result{Payload: payload, Recovered: true}
	}
	s.logger.Error("JSON clean/parse failed", "bytes", len(text))

	return Failure(text)
}

// Parse sanitizes text without logging
func Parse(text string) Result {
	return New(nil).Parse(text)
}

// FilterLines keeps only the lines that look like part of a JSON document
func FilterLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	kept := lines[:0]
	for _, line := range lines {
		if jsonishRE.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func strict(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}
