package application

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/modules/test/domain"
)

func TestTextInteractor_Repeat_DefaultCount(t *testing.T) {
	interactor := NewTextInteractor()

	got, err := interactor.Repeat("hey", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "hey hey" {
		t.Errorf("expected %q, got %q", "hey hey", got)
	}
}

func TestTextInteractor_Repeat_InvalidCount(t *testing.T) {
	interactor := NewTextInteractor()

	_, err := interactor.Repeat("hey", -3)
	if !errors.Is(err, domain.ErrInvalidRepeatCount) {
		t.Errorf("expected ErrInvalidRepeatCount, got %v", err)
	}
}

func TestTextInteractor_Reverse(t *testing.T) {
	interactor := NewTextInteractor()

	if got := interactor.Reverse("abc"); got != "cba" {
		t.Errorf("expected %q, got %q", "cba", got)
	}
}

type stubState struct {
	guilds   map[string]*discordgo.Guild
	channels map[string]*discordgo.Channel
}

func (s *stubState) Guild(id string) (*discordgo.Guild, error) {
	if g, ok := s.guilds[id]; ok {
		return g, nil
	}
	return nil, discordgo.ErrStateNotFound
}

func (s *stubState) Channel(id string) (*discordgo.Channel, error) {
	if c, ok := s.channels[id]; ok {
		return c, nil
	}
	return nil, discordgo.ErrStateNotFound
}

func TestDescribeInteractor(t *testing.T) {
	state := &stubState{
		guilds:   map[string]*discordgo.Guild{"1": {ID: "1", Name: "Home"}},
		channels: map[string]*discordgo.Channel{"2": {ID: "2", Name: "general"}},
	}
	interactor := NewDescribeInteractor(state)

	guild, err := interactor.Guild("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guild != "Guild name: Home" {
		t.Errorf("unexpected guild line %q", guild)
	}

	channel, err := interactor.Channel("2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channel != "Channel name: general" {
		t.Errorf("unexpected channel line %q", channel)
	}

	user := interactor.User(&discordgo.User{Username: "bob", Avatar: "av", Discriminator: "7"})
	if user != "User name: bob\nAvatar: av\nDiscriminator: 7" {
		t.Errorf("unexpected user lines %q", user)
	}
}

func TestDescribeInteractor_NotCached(t *testing.T) {
	interactor := NewDescribeInteractor(&stubState{})

	if _, err := interactor.Guild("1"); !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
	if _, err := interactor.Channel("2"); !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
}

func TestReadyInteractor_Execute(t *testing.T) {
	readiness := &domain.Readiness{}
	interactor := NewReadyInteractor(readiness)

	interactor.Execute("99")

	if !readiness.IsReady() || readiness.UserID() != "99" {
		t.Error("expected readiness to be recorded")
	}
}
