package application

import "github.com/sglre6355/accord/internal/modules/test/domain"

// DefaultRepeatCount is used when the repeat command is given no count.
const DefaultRepeatCount = 2

// TextInteractor handles the text transformation use cases.
type TextInteractor struct{}

// NewTextInteractor creates a new TextInteractor.
func NewTextInteractor() *TextInteractor {
	return &TextInteractor{}
}

// Repeat repeats text times times. A zero count falls back to DefaultRepeatCount.
func (t *TextInteractor) Repeat(text string, times int) (string, error) {
	if times == 0 {
		times = DefaultRepeatCount
	}
	return domain.Repeat(text, times)
}

// Reverse reverses text.
func (t *TextInteractor) Reverse(text string) string {
	return domain.Reverse(text)
}
