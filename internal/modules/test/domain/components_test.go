package domain

import (
	"errors"
	"testing"
)

func TestButtonLabels(t *testing.T) {
	labels, err := ButtonLabels(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"Button 1", "Button 2", "Button 3"}
	if len(labels) != len(expected) {
		t.Fatalf("expected %d labels, got %d", len(expected), len(labels))
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("expected label %q, got %q", expected[i], labels[i])
		}
	}
}

func TestButtonLabels_InvalidCount(t *testing.T) {
	for _, count := range []int{0, MaxButtons + 1} {
		if _, err := ButtonLabels(count); !errors.Is(err, ErrInvalidButtonCount) {
			t.Errorf("expected ErrInvalidButtonCount for %d, got %v", count, err)
		}
	}
}

func TestClicked(t *testing.T) {
	if got := Clicked("Button 2"); got != "Button 2 clicked" {
		t.Errorf("expected %q, got %q", "Button 2 clicked", got)
	}
}
