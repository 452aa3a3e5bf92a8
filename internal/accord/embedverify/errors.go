package embedverify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConflictingOptions = errors.New("conflicting options")
	ErrInvalidPattern     = errors.New("invalid pattern")
	ErrNoEmbed            = errors.New("no embed")
	ErrMismatch           = errors.New("embed does not match")
)

// MismatchError reports a single embed attribute that did not match its pattern.
type MismatchError struct {
	Field   string
	Pattern string
	Actual  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("Expected field '%s' to match pattern '%s', but found '%s' instead.",
		e.Field, e.Pattern, e.Actual)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// FieldMismatchError reports an expected embed field that no remaining actual field satisfied.
// Skipped names the fields that matched but had already been consumed by an earlier pattern.
type FieldMismatchError struct {
	Pattern    string
	Candidates int
	Skipped    []string
}

func (e *FieldMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Expected a field matching %s among %s, but found none.",
		e.Pattern, plural(e.Candidates, "field", "fields"))
	if len(e.Skipped) > 0 {
		quoted := make([]string, len(e.Skipped))
		for i, name := range e.Skipped {
			quoted[i] = "'" + name + "'"
		}
		fmt.Fprintf(&b, " Skipped %s already matched by an earlier pattern: %s.",
			plural(len(e.Skipped), "field", "fields"), strings.Join(quoted, ", "))
	}
	return b.String()
}

func (e *FieldMismatchError) Is(target error) bool {
	return target == ErrMismatch
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
