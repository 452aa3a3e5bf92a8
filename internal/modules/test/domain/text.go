package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxRepeat is the largest repeat count accepted.
const MaxRepeat = 10

// ErrInvalidRepeatCount is returned for repeat counts outside 1..MaxRepeat.
var ErrInvalidRepeatCount = errors.New("invalid repeat count")

// Repeat joins times copies of text with spaces.
func Repeat(text string, times int) (string, error) {
	if times < 1 || times > MaxRepeat {
		return "", fmt.Errorf("%w: %d", ErrInvalidRepeatCount, times)
	}

	parts := make([]string, times)
	for i := range parts {
		parts[i] = text
	}
	return strings.Join(parts, " "), nil
}

// Reverse reverses text rune by rune.
func Reverse(text string) string {
	runes := []rune(text)
	slices.Reverse(runes)
	return string(runes)
}
