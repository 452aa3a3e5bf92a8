package accord

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand       = errors.New("unknown command")
	ErrUnknownGuild         = errors.New("unknown guild")
	ErrUnknownUser          = errors.New("unknown user")
	ErrUnknownChannel       = errors.New("unknown text channel")
	ErrChannelGuildMismatch = errors.New("text channel is not from guild")
	ErrNoDefaultChannel     = errors.New("no default text channel")
	ErrTooManyArguments     = errors.New("too many positional arguments")
	ErrUnknownOption        = errors.New("unknown option")
	ErrDuplicateOption      = errors.New("duplicate option")
	ErrUnsupportedArgument  = errors.New("unsupported argument type")
	ErrNoResponse           = errors.New("no response")
)

// Error is a user-facing failure whose message is stable and meant to be asserted on verbatim.
// errors.Is matches it against its kind.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the sentinel error describing the failure.
func (e *Error) Kind() error {
	return e.kind
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
