package bot

import "errors"

var (
	// ErrInteractionResponded is returned when a second primary response is sent for one interaction.
	ErrInteractionResponded = errors.New("interaction has already been responded to")

	// ErrViewNotFound is returned when no stored view owns a component custom id.
	ErrViewNotFound = errors.New("view not found")

	// ErrViewExpired is returned when the view owning a component has stopped or timed out.
	ErrViewExpired = errors.New("view expired")

	// ErrModalNotFound is returned when no stored modal matches a submission.
	ErrModalNotFound = errors.New("modal not found")

	// ErrHandlerPanic wraps a panic recovered from a handler.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrUnsupportedEventHandler is returned for event handlers with an unknown signature.
	ErrUnsupportedEventHandler = errors.New("unsupported event handler")
)
