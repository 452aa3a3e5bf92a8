package domain

import (
	"errors"
	"fmt"
)

// Greeting is the reply to the greet button.
const Greeting = "Hello there!"

// MaxButtons is the most buttons one message can carry.
const MaxButtons = 25

// ErrInvalidButtonCount is returned for button counts outside 1..MaxButtons.
var ErrInvalidButtonCount = errors.New("invalid button count")

// ButtonLabels returns the labels "Button 1" through "Button {count}".
func ButtonLabels(count int) ([]string, error) {
	if count < 1 || count > MaxButtons {
		return nil, fmt.Errorf("%w: %d", ErrInvalidButtonCount, count)
	}

	labels := make([]string, count)
	for i := range labels {
		labels[i] = fmt.Sprintf("Button %d", i+1)
	}
	return labels, nil
}

// Clicked is the reply to a click on the button labelled label.
func Clicked(label string) string {
	return label + " clicked"
}
