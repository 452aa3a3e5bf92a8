package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestReply_InteractionResponse(t *testing.T) {
	embed := &discordgo.MessageEmbed{Title: "t"}
	view := NewView(&Button{Label: "Go"})

	resp := Reply{Content: "hi", Ephemeral: true, Embed: embed, View: view}.InteractionResponse()

	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("expected message response type, got %d", resp.Type)
	}
	if resp.Data.Content != "hi" {
		t.Errorf("expected content %q, got %q", "hi", resp.Data.Content)
	}
	if resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("expected ephemeral flag")
	}
	if len(resp.Data.Embeds) != 1 || resp.Data.Embeds[0] != embed {
		t.Error("expected embed to be attached")
	}
	if len(resp.Data.Components) != 1 {
		t.Errorf("expected 1 component row, got %d", len(resp.Data.Components))
	}
}

func TestReply_InteractionResponse_Plain(t *testing.T) {
	resp := Reply{Content: "pong"}.InteractionResponse()

	if resp.Data.Flags != 0 || resp.Data.Embeds != nil || resp.Data.Components != nil {
		t.Errorf("expected a plain reply, got %+v", resp.Data)
	}
}

func TestMockResponder_Records(t *testing.T) {
	r := &MockResponder{}

	if r.LastReply() != nil {
		t.Error("expected no reply yet")
	}

	if err := r.SendReply(Reply{Content: "one"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modal := NewModal("m")
	if err := r.SendModal(modal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.LastReply().Content != "one" {
		t.Errorf("expected last reply %q, got %q", "one", r.LastReply().Content)
	}
	if len(r.Modals) != 1 || r.Modals[0] != modal {
		t.Error("expected modal to be recorded")
	}
	if r.LastResponse.Type != discordgo.InteractionResponseModal {
		t.Errorf("expected last response to be the modal, got type %d", r.LastResponse.Type)
	}
}

func TestMockResponder_ReturnsErr(t *testing.T) {
	expectedErr := errors.New("send failed")
	r := &MockResponder{Err: expectedErr}

	if err := r.SendReply(Reply{}); !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestDispatcher_RunsInOrder(t *testing.T) {
	d := NewDispatcher()

	var got []int
	for i := range 10 {
		d.Enqueue(func() { got = append(got, i) })
	}
	d.Stop()

	for i, v := range got {
		if v != i {
			t.Fatalf("expected tasks in submission order, got %v", got)
		}
	}
	if len(got) != 10 {
		t.Errorf("expected 10 tasks to run, got %d", len(got))
	}
}

func TestSafeCall_RecoversPanic(t *testing.T) {
	err := safeCall(func() error { panic("boom") })

	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected ErrHandlerPanic, got %v", err)
	}
}
