package onboarding

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrUnknownValue = errors.New("value not in vocabulary")
	ErrNotReady     = errors.New("form is not on the review step")
	ErrSubmitFailed = errors.New("submission failed")
)

// FieldError is an inline message for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError blocks a step transition. Warning, when set, is the single
// consolidated message shown instead of the per-field ones.
type ValidationError struct {
	Step    Step         `json:"step"`
	Fields  []FieldError `json:"fields"`
	Warning string       `json:"warning,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message())
}

// Message returns the text to surface to the visitor.
func (e *ValidationError) Message() string {
	if e.Warning != "" {
		return e.Warning
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for field, or "".
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}
