package presentation

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/bot"
	"github.com/sglre6355/accord/internal/modules/test/application"
)

// ModalFieldName is the name and custom id of the example modal's only field.
const ModalFieldName = "response"

// ComponentHandler handles the commands replying with interactive components.
type ComponentHandler struct {
	interactor *application.ComponentInteractor
}

// NewComponentHandler creates a new ComponentHandler.
func NewComponentHandler() *ComponentHandler {
	return &ComponentHandler{
		interactor: application.NewComponentInteractor(),
	}
}

func (h *ComponentHandler) replyOnClick(label string, ephemeral bool) bot.InteractionHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
		return r.SendReply(bot.Reply{Content: h.interactor.Clicked(label), Ephemeral: ephemeral})
	}
}

// HandleButton replies with a single greet button.
func (h *ComponentHandler) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	greet := &bot.Button{
		Label: "Greet",
		Style: discordgo.PrimaryButton,
		OnClick: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
			return r.SendReply(bot.Reply{Content: h.interactor.Greeting(), Ephemeral: true})
		},
	}
	return r.SendReply(bot.Reply{Content: "Test button:", View: bot.NewView(greet)})
}

// HandleButtons replies with count numbered buttons.
func (h *ComponentHandler) HandleButtons(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	var count int
	if o, ok := optionsByName(i)["count"]; ok {
		count = int(o.IntValue())
	}

	labels, err := h.interactor.ButtonLabels(count)
	if err != nil {
		return err
	}

	view := bot.NewView()
	for _, label := range labels {
		view.Add(&bot.Button{Label: label, OnClick: h.replyOnClick(label, false)})
	}
	return r.SendReply(bot.Reply{Content: "Pick a button:", View: view})
}

// HandleMenu replies with a select menu followed by two buttons.
func (h *ComponentHandler) HandleMenu(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	menu := &bot.SelectMenu{
		Placeholder: "Pick a letter",
		Options: []discordgo.SelectMenuOption{
			{Label: "A", Value: "a"},
			{Label: "B", Value: "b"},
		},
		OnSelect: func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
			values := i.MessageComponentData().Values
			return r.SendReply(bot.Reply{Content: "Selected " + strings.Join(values, ", ")})
		},
	}
	view := bot.NewView(
		menu,
		&bot.Button{Label: "A", OnClick: h.replyOnClick("A", false)},
		&bot.Button{Label: "B", OnClick: h.replyOnClick("B", false)},
	)
	return r.SendReply(bot.Reply{Content: "Pick one:", View: view})
}

// HandleModal opens the example modal. With raw_response set, the modal is sent as a raw
// response and has no submit handler.
func (h *ComponentHandler) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	modal := bot.NewModal("Example modal", &bot.TextInput{
		Name:        ModalFieldName,
		CustomID:    ModalFieldName,
		Label:       "Say something",
		Placeholder: "text",
		Style:       discordgo.TextInputShort,
	})

	if o, ok := optionsByName(i)["raw_response"]; ok && o.BoolValue() {
		return r.Respond(modal.InteractionResponse())
	}

	modal.OnSubmit = func(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder, m *bot.Modal) error {
		field, ok := m.Field(ModalFieldName)
		if !ok {
			return nil
		}
		return r.SendReply(bot.Reply{Content: field.Value()})
	}
	return r.SendModal(modal)
}

// HandleEmbed replies with an example embed.
func (h *ComponentHandler) HandleEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	embed := &discordgo.MessageEmbed{
		Title:       "Test embed",
		Description: "An embed for testing",
		URL:         "https://example.com/embed",
		Color:       0x5865F2,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Embed author",
			URL:     "https://example.com/author",
			IconURL: "https://example.com/author.png",
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Embed footer",
			IconURL: "https://example.com/footer.png",
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Field 1", Value: "Value 1", Inline: true},
			{Name: "Field 2", Value: "Value 2", Inline: false},
		},
	}
	return r.SendReply(bot.Reply{Content: "Here's your embed:", Embed: embed})
}
