package presentation

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/bot"
	"github.com/sglre6355/accord/internal/modules/test/domain"
)

func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "1",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "10",
		ChannelID: "20",
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
		Member: &discordgo.Member{User: &discordgo.User{
			ID:            "30",
			Username:      "alice",
			Avatar:        "avatar-key",
			Discriminator: "0001",
		}},
	}}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value,
	}
}

func integerOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value),
	}
}

func newStateSession(t *testing.T) *discordgo.Session {
	t.Helper()

	s, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	guild := &discordgo.Guild{
		ID:       "10",
		Name:     "Home",
		Channels: []*discordgo.Channel{{ID: "20", GuildID: "10", Name: "general"}},
	}
	if err := s.State.GuildAdd(guild); err != nil {
		t.Fatalf("failed to add guild: %v", err)
	}
	return s
}

func TestPingHandler_ReturnsMessage(t *testing.T) {
	handler := NewPingHandler()
	responder := &bot.MockResponder{}

	err := handler.Handle(nil, nil, responder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if responder.LastResponse == nil {
		t.Fatal("expected response, got nil")
	}

	if responder.LastResponse.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("expected response type %d, got %d",
			discordgo.InteractionResponseChannelMessageWithSource,
			responder.LastResponse.Type)
	}

	data := responder.LastResponse.Data
	if data == nil {
		t.Fatal("expected response data, got nil")
	}

	if data.Content != "pong" {
		t.Errorf("expected content %q, got %q", "pong", data.Content)
	}
}

func TestPingHandler_ResponderError(t *testing.T) {
	handler := NewPingHandler()
	expectedErr := errors.New("responder failed")
	responder := &bot.MockResponder{Err: expectedErr}

	err := handler.Handle(nil, nil, responder)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestHandleEphemeral(t *testing.T) {
	responder := &bot.MockResponder{}

	if err := HandleEphemeral(nil, nil, responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply := responder.LastReply()
	if reply == nil || reply.Content != "ephemeral" || !reply.Ephemeral {
		t.Errorf("expected ephemeral reply, got %+v", reply)
	}
}

func TestTextHandler_HandleRepeat(t *testing.T) {
	handler := NewTextHandler()
	responder := &bot.MockResponder{}

	i := commandInteraction("repeat", stringOption("to_repeat", "hi"), integerOption("times", 3))
	if err := handler.HandleRepeat(nil, i, responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := responder.LastReply().Content; got != "hi hi hi" {
		t.Errorf("expected %q, got %q", "hi hi hi", got)
	}
}

func TestTextHandler_HandleRepeat_DefaultTimes(t *testing.T) {
	handler := NewTextHandler()
	responder := &bot.MockResponder{}

	i := commandInteraction("repeat", stringOption("to_repeat", "hi"))
	if err := handler.HandleRepeat(nil, i, responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := responder.LastReply().Content; got != "hi hi" {
		t.Errorf("expected %q, got %q", "hi hi", got)
	}
}

func TestTextHandler_HandleRepeat_InvalidTimes(t *testing.T) {
	handler := NewTextHandler()
	responder := &bot.MockResponder{}

	i := commandInteraction("repeat", stringOption("to_repeat", "hi"), integerOption("times", 99))
	err := handler.HandleRepeat(nil, i, responder)

	if !errors.Is(err, domain.ErrInvalidRepeatCount) {
		t.Errorf("expected ErrInvalidRepeatCount, got %v", err)
	}
	if responder.LastReply() != nil {
		t.Error("expected no reply")
	}
}

func TestTextHandler_HandleReverse(t *testing.T) {
	handler := NewTextHandler()
	responder := &bot.MockResponder{}

	if err := handler.HandleReverse(nil, commandInteraction("reverse", stringOption("text", "abc")), responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := responder.LastReply().Content; got != "cba" {
		t.Errorf("expected %q, got %q", "cba", got)
	}
}

func TestHandleGuildAndChannel(t *testing.T) {
	s := newStateSession(t)

	guildResponder := &bot.MockResponder{}
	if err := HandleGuild(s, commandInteraction("guild"), guildResponder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := guildResponder.LastReply().Content; got != "Guild name: Home" {
		t.Errorf("unexpected guild reply %q", got)
	}

	channelResponder := &bot.MockResponder{}
	if err := HandleChannel(s, commandInteraction("channel"), channelResponder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := channelResponder.LastReply().Content; got != "Channel name: general" {
		t.Errorf("unexpected channel reply %q", got)
	}
}

func TestHandleUser(t *testing.T) {
	responder := &bot.MockResponder{}

	if err := HandleUser(nil, commandInteraction("user"), responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "User name: alice\nAvatar: avatar-key\nDiscriminator: 0001"
	if got := responder.LastReply().Content; got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestHandleSilent(t *testing.T) {
	responder := &bot.MockResponder{}

	if err := HandleSilent(nil, nil, responder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if responder.LastResponse != nil {
		t.Error("expected no response")
	}
}

func TestReadyHandler_HandleReady(t *testing.T) {
	readiness := &domain.Readiness{}
	handler := NewReadyHandler(readiness)

	handler.HandleReady(nil, &discordgo.Ready{User: &discordgo.User{ID: "5"}})

	if !readiness.IsReady() || readiness.UserID() != "5" {
		t.Error("expected readiness to be recorded")
	}
}
