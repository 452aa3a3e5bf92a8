package presentation

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/bot"
	"github.com/sglre6355/accord/internal/modules/test/application"
	"github.com/sglre6355/accord/internal/modules/test/domain"
)

// optionsByName indexes a command interaction's options.
func optionsByName(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, o := range i.ApplicationCommandData().Options {
		opts[o.Name] = o
	}
	return opts
}

func invokingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// PingHandler handles the /ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler() *PingHandler {
	return &PingHandler{
		interactor: application.NewPingInteractor(),
	}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.interactor.Execute()

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Message,
		},
	})
}

// HandleEphemeral replies with a message only the caller can see.
func HandleEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	return r.SendReply(bot.Reply{Content: "ephemeral", Ephemeral: true})
}

// TextHandler handles the /repeat and /reverse commands.
type TextHandler struct {
	interactor *application.TextInteractor
}

// NewTextHandler creates a new TextHandler.
func NewTextHandler() *TextHandler {
	return &TextHandler{
		interactor: application.NewTextInteractor(),
	}
}

// HandleRepeat repeats the to_repeat option.
func (h *TextHandler) HandleRepeat(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	opts := optionsByName(i)

	var times int
	if o, ok := opts["times"]; ok {
		times = int(o.IntValue())
	}

	var text string
	if o, ok := opts["to_repeat"]; ok {
		text = o.StringValue()
	}

	content, err := h.interactor.Repeat(text, times)
	if err != nil {
		return err
	}
	return r.SendReply(bot.Reply{Content: content})
}

// HandleReverse reverses the text option.
func (h *TextHandler) HandleReverse(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	var text string
	if o, ok := optionsByName(i)["text"]; ok {
		text = o.StringValue()
	}
	return r.SendReply(bot.Reply{Content: h.interactor.Reverse(text)})
}

// HandleGuild reports the guild the command was run in.
func HandleGuild(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	content, err := application.NewDescribeInteractor(s.State).Guild(i.GuildID)
	if err != nil {
		return err
	}
	return r.SendReply(bot.Reply{Content: content})
}

// HandleChannel reports the channel the command was run in.
func HandleChannel(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	content, err := application.NewDescribeInteractor(s.State).Channel(i.ChannelID)
	if err != nil {
		return err
	}
	return r.SendReply(bot.Reply{Content: content})
}

// HandleUser reports the caller's profile.
func HandleUser(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	content := application.NewDescribeInteractor(nil).User(invokingUser(i))
	return r.SendReply(bot.Reply{Content: content})
}

// HandleDouble tries to reply twice. The second reply is rejected.
func HandleDouble(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	if err := r.SendReply(bot.Reply{Content: "first"}); err != nil {
		return err
	}
	return r.SendReply(bot.Reply{Content: "second"})
}

// HandleSilent never replies.
func HandleSilent(s *discordgo.Session, i *discordgo.InteractionCreate, r bot.Responder) error {
	return nil
}

// ReadyHandler records the session becoming ready.
type ReadyHandler struct {
	interactor *application.ReadyInteractor
}

// NewReadyHandler creates a new ReadyHandler.
func NewReadyHandler(readiness *domain.Readiness) *ReadyHandler {
	return &ReadyHandler{
		interactor: application.NewReadyInteractor(readiness),
	}
}

// HandleReady is the discordgo event handler for Ready events.
func (h *ReadyHandler) HandleReady(s *discordgo.Session, e *discordgo.Ready) {
	if e.User == nil {
		return
	}
	h.interactor.Execute(e.User.ID)
	slog.Info("bot is ready", "user_id", e.User.ID, "guilds", len(e.Guilds))
}
