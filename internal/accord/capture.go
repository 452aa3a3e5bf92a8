package accord

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/accord/entity"
	"github.com/sglre6355/accord/internal/bot"
)

type interactionState int

const (
	statePending interactionState = iota
	stateResponded
)

// capture stands in for the outbound reply path of one interaction. Whatever the handler sends
// is recorded as a Response on the engine instead of being transmitted.
type capture struct {
	engine      *Engine
	interaction *discordgo.InteractionCreate
	channel     *entity.TextChannel
	issuer      *entity.Member

	mu    sync.Mutex
	state interactionState
}

var _ bot.Responder = (*capture)(nil)

func (e *Engine) newCapture(i *discordgo.InteractionCreate, channel *entity.TextChannel, issuer *entity.Member) *capture {
	return &capture{
		engine:      e,
		interaction: i,
		channel:     channel,
		issuer:      issuer,
	}
}

// respond moves the interaction from pending to responded.
func (c *capture) respond() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateResponded {
		return bot.ErrInteractionResponded
	}
	c.state = stateResponded
	return nil
}

// message creates the reply message the bot would post, tied back to the interaction.
func (c *capture) message() *entity.Message {
	w := c.engine.world
	author := w.Member(w.ClientUser(), c.channel.Guild())
	msg := w.NewMessage(c.channel, author)
	msg.SetInteraction(c.interaction.Interaction)
	return msg
}

func (c *capture) newResponse() *Response {
	return &Response{
		Message: c.message(),
		engine:  c.engine,
		issuer:  c.issuer,
	}
}

// viewEntityID is the id views are stored under. Only replies to application commands are
// keyed; follow-up interactions reuse their message's interaction id, so their views are
// stored unkeyed.
func (c *capture) viewEntityID() string {
	if c.interaction.Type == discordgo.InteractionApplicationCommand {
		return c.interaction.ID
	}
	return ""
}

func (c *capture) SendReply(reply bot.Reply) error {
	if err := c.respond(); err != nil {
		return err
	}

	resp := c.newResponse()
	resp.Content = reply.Content
	resp.Ephemeral = reply.Ephemeral
	resp.Embed = reply.Embed
	resp.View = reply.View

	if v := reply.View; v != nil && !v.IsFinished() {
		if reply.Ephemeral && !v.HasTimeout() {
			v.SetTimeout(c.engine.config.EphemeralViewTimeout)
		}
		c.engine.transport.StoreView(v, c.viewEntityID())
	}

	c.engine.appendResponse(resp)
	return nil
}

func (c *capture) SendModal(modal *bot.Modal) error {
	if err := c.respond(); err != nil {
		return err
	}

	resp := c.newResponse()
	resp.Modal = modal

	c.engine.transport.StoreModal(modal, c.issuer.User.ID.String())
	c.engine.appendResponse(resp)
	return nil
}

// Respond records a raw response. Message responses and modals become Responses; deferrals
// and other acknowledgements only consume the interaction.
func (c *capture) Respond(raw *discordgo.InteractionResponse) error {
	switch raw.Type {
	case discordgo.InteractionResponseChannelMessageWithSource, discordgo.InteractionResponseUpdateMessage:
		reply := bot.Reply{}
		if raw.Data != nil {
			reply.Content = raw.Data.Content
			reply.Ephemeral = raw.Data.Flags&discordgo.MessageFlagsEphemeral != 0
			if len(raw.Data.Embeds) > 0 {
				reply.Embed = raw.Data.Embeds[0]
			}
		}
		return c.SendReply(reply)

	case discordgo.InteractionResponseModal:
		if raw.Data == nil {
			return c.SendModal(bot.NewModal(""))
		}
		return c.SendModal(bot.ModalFromResponse(raw.Data))

	default:
		return c.respond()
	}
}
