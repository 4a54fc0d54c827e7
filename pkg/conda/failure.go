package conda

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind classifies a Failure
type Kind string

const (
	// KindSpawn means the tool could not be started
	KindSpawn Kind = "spawn"
	// KindTool means the tool answered with a structured error body
	KindTool Kind = "tool"
	// KindMalformed means no usable JSON could be recovered from the output
	KindMalformed Kind = "malformed"
	// KindInput means the caller supplied an unusable argument; nothing was spawned
	KindInput Kind = "input"
	// KindIO means a local file needed by the operation could not be prepared
	KindIO Kind = "io"
)

// Failure is the discriminated failure value returned by every operation
type Failure struct {
	Op   string          // Operation that failed
	Env  string          // Environment name if applicable
	Kind Kind            // Failure class
	Body json.RawMessage // Tool error body, KindTool only
	Raw  string          // Unparseable output, KindMalformed only
	Err  error           // Underlying error
}

func (f *Failure) Error() string {
	if f.Env != "" {
		return fmt.Sprintf("%s %s: %s", f.Op, f.Env, f.message())
	}
	return fmt.Sprintf("%s: %s", f.Op, f.message())
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) message() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	for _, key := range []string{"message", "error"} {
		if v := gjson.GetBytes(f.Body, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	if f.Kind == KindMalformed {
		return "malformed tool output"
	}
	return "tool reported failure"
}

// MarshalJSON renders the failure as {"error": true, ...}
func (f *Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error   bool            `json:"error"`
		Kind    Kind            `json:"kind"`
		Message string          `json:"message,omitempty"`
		Body    json.RawMessage `json:"body,omitempty"`
		Raw     string          `json:"raw,omitempty"`
	}{
		Error:   true,
		Kind:    f.Kind,
		Message: f.message(),
		Body:    f.Body,
		Raw:     f.Raw,
	})
}

// AsFailure returns the Failure carried by err, if any
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
