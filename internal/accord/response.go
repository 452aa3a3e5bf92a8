package accord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"github.com/sglre6355/accord/internal/accord/entity"
	"github.com/sglre6355/accord/internal/bot"
)

// Response is one captured reply.
type Response struct {
	Content   string
	Ephemeral bool
	View      *bot.View
	Modal     *bot.Modal
	Embed     *discordgo.MessageEmbed

	// Message is the reply message, tied back to the interaction that produced it.
	Message *entity.Message

	engine *Engine
	issuer *entity.Member
}

// Issuer returns the member whose interaction produced the response.
func (r *Response) Issuer() *entity.Member {
	return r.issuer
}

// ButtonSelector picks a button out of a view. index counts buttons only.
type ButtonSelector func(index int, b *bot.Button) bool

// ByLabel selects the first button whose label is exactly label.
func ByLabel(label string) ButtonSelector {
	return func(_ int, b *bot.Button) bool {
		return b.Label == label
	}
}

// ByIndex selects the n-th button of the view.
func ByIndex(n int) ButtonSelector {
	return func(index int, _ *bot.Button) bool {
		return index == n
	}
}

// GetButton returns the button matching sel, the first button when sel is omitted.
func (r *Response) GetButton(sel ...ButtonSelector) mo.Option[*bot.Button] {
	if r.View == nil {
		return mo.None[*bot.Button]()
	}

	match := ByIndex(0)
	if len(sel) > 0 {
		match = sel[0]
	}

	index := 0
	for _, item := range r.View.Items() {
		b, ok := item.(*bot.Button)
		if !ok {
			continue
		}
		if match(index, b) {
			return mo.Some(b)
		}
		index++
	}
	return mo.None[*bot.Button]()
}

// ActivateButton clicks the button matching sel and waits for the bot to handle it. It does
// nothing when no button matches.
func (r *Response) ActivateButton(ctx context.Context, sel ...ButtonSelector) error {
	b, ok := r.GetButton(sel...).Get()
	if !ok {
		return nil
	}

	i := r.engine.componentInteraction(r.Message, r.issuer, b.ComponentType(), b.CustomID)
	c := r.engine.newCapture(i, r.Message.Channel, r.issuer)

	return r.engine.dispatch(ctx, "component", func(ctx context.Context) error {
		return r.engine.transport.DispatchView(ctx, b.ComponentType(), b.CustomID, i, c)
	})
}

// ModalInput fills the modal field called name. It keeps the declared field and its live child
// component in step, since submission reads the children. Unknown fields are ignored.
func (r *Response) ModalInput(name, value string) *Response {
	if r.Modal == nil {
		return r
	}
	field, ok := r.Modal.Field(name)
	if !ok {
		return r
	}

	field.SetValue(value)
	if child, ok := r.Modal.Child(field.CustomID); ok {
		child.Value = value
	}
	return r
}

// SubmitModal submits the captured modal and waits for the bot to handle it. It does nothing
// when the response carries no modal.
func (r *Response) SubmitModal(ctx context.Context) error {
	if r.Modal == nil {
		return nil
	}

	inputs := make([]discordgo.MessageComponent, 0)
	for _, child := range r.Modal.Children() {
		inputs = append(inputs, &discordgo.TextInput{
			CustomID: child.CustomID,
			Value:    child.Value,
		})
	}
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: inputs},
	}

	customID := r.Modal.CustomID
	i := r.engine.modalSubmitInteraction(r.Message, r.issuer, customID, components)
	c := r.engine.newCapture(i, r.Message.Channel, r.issuer)

	return r.engine.dispatch(ctx, "modal", func(ctx context.Context) error {
		return r.engine.transport.DispatchModal(ctx, customID, i, c, components)
	})
}
