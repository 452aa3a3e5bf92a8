package embedverify

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/samber/mo"
)

const (
	matchAll = ".*"

	absentDisplay  = "<absent>"
	presentDisplay = "<present>"
)

// text is a compiled expectation on an optional string. A None pattern requires the value to be
// absent.
type text struct {
	pattern mo.Option[string]
	re      *regexp.Regexp
}

var (
	anyText    = &text{pattern: mo.Some(matchAll), re: regexp.MustCompile(`^(?:` + matchAll + `)`)}
	absentText = &text{pattern: mo.None[string]()}
)

// compileText anchors p at the start of the value only, so "abc" matches "abcdef".
func compileText(pattern mo.Option[string]) (*text, error) {
	p, ok := pattern.Get()
	if !ok {
		return absentText, nil
	}
	re, err := regexp.Compile(`^(?:` + p + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
	}
	return &text{pattern: pattern, re: re}, nil
}

// orDefault returns t, or the fallback used for unconfigured attributes.
func (t *text) orDefault(fully bool) *text {
	if t != nil {
		return t
	}
	if fully {
		return absentText
	}
	return anyText
}

func (t *text) match(actual mo.Option[string]) bool {
	p, ok := t.pattern.Get()
	if !ok {
		return actual.IsAbsent()
	}
	v, present := actual.Get()
	if !present {
		return p == matchAll
	}
	return t.re.MatchString(v)
}

func (t *text) String() string {
	return display(t.pattern)
}

// optional treats the empty string as absent, the way the wire format omits empty attributes.
func optional(s string) mo.Option[string] {
	if s == "" {
		return mo.None[string]()
	}
	return mo.Some(s)
}

func display(v mo.Option[string]) string {
	return v.OrElse(absentDisplay)
}

// check matches actual against t and names field on failure.
func check(field string, t *text, actual mo.Option[string]) error {
	if t.match(actual) {
		return nil
	}
	return &MismatchError{Field: field, Pattern: t.String(), Actual: display(actual)}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
