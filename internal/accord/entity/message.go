package entity

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// Message is a message posted in a TextChannel by a Member, typically as an interaction reply.
type Message struct {
	ID      snowflake.ID
	Channel *TextChannel
	Author  *Member

	mu          sync.RWMutex
	interaction *discordgo.Interaction
}

// NewMessage creates a Message without an interaction back-reference.
func NewMessage(id snowflake.ID, channel *TextChannel, author *Member) *Message {
	return &Message{ID: id, Channel: channel, Author: author}
}

// EntityID returns the message id.
func (m *Message) EntityID() snowflake.ID {
	return m.ID
}

// Interaction returns the interaction that produced the message, or nil.
func (m *Message) Interaction() *discordgo.Interaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interaction
}

// SetInteraction records the interaction that produced the message.
// The reference is set once; it reports false and leaves the message unchanged if already set.
func (m *Message) SetInteraction(i *discordgo.Interaction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interaction != nil {
		return false
	}
	m.interaction = i
	return true
}

// Discord projects the message into its wire representation.
func (m *Message) Discord() *discordgo.Message {
	author := m.Author.User.Discord()
	msg := &discordgo.Message{
		ID:        m.ID.String(),
		ChannelID: m.Channel.ID.String(),
		GuildID:   m.Channel.Guild().ID.String(),
		Author:    author,
		Member:    m.Author.Discord(),
	}

	if i := m.Interaction(); i != nil {
		msg.Interaction = &discordgo.MessageInteraction{
			ID:   i.ID,
			Type: i.Type,
			User: author,
		}
		if data, ok := i.Data.(discordgo.ApplicationCommandInteractionData); ok {
			msg.Interaction.Name = data.Name
		}
	}
	return msg
}
