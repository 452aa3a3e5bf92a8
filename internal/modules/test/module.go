package test

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/bot"
	"github.com/sglre6355/accord/internal/modules/test/domain"
	"github.com/sglre6355/accord/internal/modules/test/presentation"
)

func init() {
	bot.Register(func() bot.Module { return New() })
}

// TestModule provides the commands the harness exercises, like /ping.
type TestModule struct {
	pingHandler      *presentation.PingHandler
	textHandler      *presentation.TextHandler
	componentHandler *presentation.ComponentHandler
	readyHandler     *presentation.ReadyHandler

	readiness *domain.Readiness
	setupDone bool
}

// New creates a TestModule.
func New() *TestModule {
	return &TestModule{readiness: &domain.Readiness{}}
}

// Name returns the module name.
func (m *TestModule) Name() string {
	return "test"
}

// Commands returns the slash commands for this module.
func (m *TestModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "ping", Description: "Replies with pong"},
		{Name: "ephemeral", Description: "Replies with a message only you can see"},
		{Name: "guild", Description: "Shows the name of this guild"},
		{Name: "channel", Description: "Shows the name of this channel"},
		{Name: "user", Description: "Shows your profile"},
		{
			Name:        "repeat",
			Description: "Repeats a message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "to_repeat",
					Description: "Text to repeat",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "times",
					Description: "How many times to repeat it",
				},
			},
		},
		{
			Name:        "reverse",
			Description: "Reverses a message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Text to reverse",
					Required:    true,
				},
			},
		},
		{Name: "button", Description: "Replies with a button"},
		{
			Name:        "buttons",
			Description: "Replies with numbered buttons",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many buttons to show",
				},
			},
		},
		{Name: "menu", Description: "Replies with a select menu and buttons"},
		{
			Name:        "modal",
			Description: "Opens a modal",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "raw_response",
					Description: "Send the modal as a raw response",
				},
			},
		},
		{Name: "embed", Description: "Replies with an embed"},
		{Name: "double", Description: "Tries to reply twice"},
		{Name: "silent", Description: "Never replies"},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *TestModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping":      m.pingHandler.Handle,
		"ephemeral": presentation.HandleEphemeral,
		"guild":     presentation.HandleGuild,
		"channel":   presentation.HandleChannel,
		"user":      presentation.HandleUser,
		"repeat":    m.textHandler.HandleRepeat,
		"reverse":   m.textHandler.HandleReverse,
		"button":    m.componentHandler.HandleButton,
		"buttons":   m.componentHandler.HandleButtons,
		"menu":      m.componentHandler.HandleMenu,
		"modal":     m.componentHandler.HandleModal,
		"embed":     m.componentHandler.HandleEmbed,
		"double":    presentation.HandleDouble,
		"silent":    presentation.HandleSilent,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *TestModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.readyHandler.HandleReady,
	}
}

// Init initializes the module.
func (m *TestModule) Init(deps bot.ModuleDependencies) error {
	m.pingHandler = presentation.NewPingHandler()
	m.textHandler = presentation.NewTextHandler()
	m.componentHandler = presentation.NewComponentHandler()
	m.readyHandler = presentation.NewReadyHandler(m.readiness)
	return nil
}

// Setup runs once the bot is initialized.
func (m *TestModule) Setup(ctx context.Context, s *discordgo.Session) error {
	m.setupDone = true
	slog.Debug("set up test module")
	return nil
}

// Shutdown cleans up module resources.
func (m *TestModule) Shutdown() error {
	return nil
}

// IsReady reports whether the module has seen a ready event.
func (m *TestModule) IsReady() bool {
	return m.readiness.IsReady()
}

// ReadyUserID returns the user id announced by the ready event.
func (m *TestModule) ReadyUserID() string {
	return m.readiness.UserID()
}

// SetupDone reports whether Setup ran.
func (m *TestModule) SetupDone() bool {
	return m.setupDone
}
