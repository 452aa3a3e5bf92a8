package application

import "github.com/sglre6355/accord/internal/modules/test/domain"

// DefaultButtonCount is used when the buttons command is given no count.
const DefaultButtonCount = 2

// ComponentInteractor handles the interactive component use cases.
type ComponentInteractor struct{}

// NewComponentInteractor creates a new ComponentInteractor.
func NewComponentInteractor() *ComponentInteractor {
	return &ComponentInteractor{}
}

// Greeting returns the greet button's reply.
func (c *ComponentInteractor) Greeting() string {
	return domain.Greeting
}

// ButtonLabels returns count button labels. A zero count falls back to DefaultButtonCount.
func (c *ComponentInteractor) ButtonLabels(count int) ([]string, error) {
	if count == 0 {
		count = DefaultButtonCount
	}
	return domain.ButtonLabels(count)
}

// Clicked returns the reply to a click on label.
func (c *ComponentInteractor) Clicked(label string) string {
	return domain.Clicked(label)
}
