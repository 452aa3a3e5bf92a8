package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Reply is a message reply to an interaction.
type Reply struct {
	Content   string
	Ephemeral bool
	Embed     *discordgo.MessageEmbed
	View      *View
}

// InteractionResponse projects the reply into its wire representation.
func (r Reply) InteractionResponse() *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: r.Content}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if r.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{r.Embed}
	}
	if r.View != nil {
		data.Components = r.View.Components()
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
//
// An interaction accepts one primary response. Implementations return ErrInteractionResponded
// for any further attempt.
type Responder interface {
	// Respond sends a raw response to an interaction.
	Respond(response *discordgo.InteractionResponse) error

	// SendReply sends a message reply, tracking its view for later activations.
	SendReply(reply Reply) error

	// SendModal opens a modal, tracking it for the later submission.
	SendModal(modal *Modal) error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	views       *ViewStore

	mu        sync.Mutex
	responded bool
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction, views *ViewStore) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
		views:       views,
	}
}

func (r *DiscordResponder) respond(response *discordgo.InteractionResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.responded {
		return ErrInteractionResponded
	}
	if err := r.session.InteractionRespond(r.interaction, response); err != nil {
		return err
	}
	r.responded = true
	return nil
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.respond(response)
}

// SendReply sends reply and stores its view under the interaction id.
func (r *DiscordResponder) SendReply(reply Reply) error {
	if err := r.respond(reply.InteractionResponse()); err != nil {
		return err
	}
	if reply.View != nil && !reply.View.IsFinished() {
		if reply.Ephemeral && !reply.View.HasTimeout() {
			reply.View.SetTimeout(DefaultEphemeralViewTimeout)
		}
		r.views.AddView(reply.View, r.interaction.ID)
	}
	return nil
}

// SendModal opens modal and stores it for the invoking user.
func (r *DiscordResponder) SendModal(modal *Modal) error {
	if err := r.respond(modal.InteractionResponse()); err != nil {
		return err
	}
	r.views.AddModal(modal, interactionUserID(&discordgo.InteractionCreate{Interaction: r.interaction}))
	return nil
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Replies      []Reply
	Modals       []*Modal
	Err          error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

// SendReply records the reply and its wire form.
func (m *MockResponder) SendReply(reply Reply) error {
	m.Replies = append(m.Replies, reply)
	m.LastResponse = reply.InteractionResponse()
	return m.Err
}

// SendModal records the modal and its wire form.
func (m *MockResponder) SendModal(modal *Modal) error {
	m.Modals = append(m.Modals, modal)
	m.LastResponse = modal.InteractionResponse()
	return m.Err
}

// LastReply returns the most recent reply, or nil.
func (m *MockResponder) LastReply() *Reply {
	if len(m.Replies) == 0 {
		return nil
	}
	return &m.Replies[len(m.Replies)-1]
}
