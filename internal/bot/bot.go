package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/bwmarrin/discordgo"
)

// SetupHook runs once the bot is initialized, before commands are synced.
type SetupHook func(ctx context.Context, s *discordgo.Session) error

// CommandSyncer publishes the bot's commands.
type CommandSyncer interface {
	SyncCommands(ctx context.Context, s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error
}

// Option configures a Bot.
type Option func(*Bot)

// WithModules sets the bot's modules instead of loading them from the global registry.
func WithModules(modules ...Module) Option {
	return func(b *Bot) {
		b.modules = modules
	}
}

// WithIntents sets the gateway intents the bot identifies with.
func WithIntents(intents discordgo.Intent) Option {
	return func(b *Bot) {
		b.intents = intents
	}
}

// WithCommandSyncer replaces the syncer that registers commands with Discord.
func WithCommandSyncer(syncer CommandSyncer) Option {
	return func(b *Bot) {
		b.syncer = syncer
	}
}

// WithSetupHook adds a hook run during Setup.
func WithSetupHook(hook SetupHook) Option {
	return func(b *Bot) {
		b.setupHooks = append(b.setupHooks, hook)
	}
}

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config        *Config
	session       *discordgo.Session
	modules       []Module
	handlers      map[string]InteractionHandler
	commands      map[string]*discordgo.ApplicationCommand
	eventHandlers []EventHandler
	views         *ViewStore
	dispatcher    *Dispatcher
	intents       discordgo.Intent
	syncer        CommandSyncer
	setupHooks    []SetupHook
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config, opts ...Option) *Bot {
	b := &Bot{
		config:     cfg,
		modules:    make([]Module, 0),
		handlers:   make(map[string]InteractionHandler),
		commands:   make(map[string]*discordgo.ApplicationCommand),
		views:      NewViewStore(),
		dispatcher: NewDispatcher(),
		intents:    discordgo.IntentsAllWithoutPrivileged,
		syncer:     sessionSyncer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Session returns the session the bot was initialized with.
func (b *Bot) Session() *discordgo.Session { return b.session }

// Views returns the bot's view store.
func (b *Bot) Views() *ViewStore { return b.views }

// Intents returns the gateway intents the bot identifies with.
func (b *Bot) Intents() discordgo.Intent { return b.intents }

// Module returns the loaded module with the given name.
func (b *Bot) Module(name string) (Module, bool) {
	for _, mod := range b.modules {
		if mod.Name() == name {
			return mod, true
		}
	}
	return nil, false
}

// Command returns the declared command with the given name.
func (b *Bot) Command(name string) (*discordgo.ApplicationCommand, bool) {
	cmd, ok := b.commands[name]
	return cmd, ok
}

// Commands returns every declared command in module order.
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	return b.collectCommands()
}

// Enqueue schedules task on the bot's dispatcher.
func (b *Bot) Enqueue(task func()) bool {
	return b.dispatcher.Enqueue(task)
}

// Start initializes the bot, connects to Discord, and registers commands.
func (b *Bot) Start(ctx context.Context) error {
	// Create Discord session
	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	if err := b.Init(session); err != nil {
		return err
	}

	// Route gateway events through the dispatcher
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(b.onEvent)

	// Open connection
	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.Setup(ctx); err != nil {
		return err
	}

	slog.Info("started bot",
		"user_id", session.State.User.ID,
		"username", session.State.User.Username,
	)

	return nil
}

// Init performs the bot's internal setup against session: module initialization and the
// command, handler and event handler tables. It does not touch the network.
func (b *Bot) Init(session *discordgo.Session) error {
	b.session = session
	session.Identify.Intents = b.intents

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	b.buildHandlerMap()
	b.buildCommandMap()

	if err := b.collectEventHandlers(); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	return nil
}

// Setup runs the setup hooks and module setup, then syncs commands.
func (b *Bot) Setup(ctx context.Context) error {
	for _, hook := range b.setupHooks {
		if err := hook(ctx, b.session); err != nil {
			return fmt.Errorf("failed to run setup hook: %w", err)
		}
	}

	for _, mod := range b.modules {
		sm, ok := mod.(SetupModule)
		if !ok {
			continue
		}
		if err := sm.Setup(ctx, b.session); err != nil {
			return fmt.Errorf("failed to set up %s module: %w", mod.Name(), err)
		}
	}

	if err := b.syncer.SyncCommands(ctx, b.session, b.config.GuildID, b.collectCommands()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	// Shutdown modules
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	b.dispatcher.Stop()

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session: b.session,
		Config:  b.config,
	}

	for _, mod := range b.modules {
		if cm, ok := mod.(ConfigurableModule); ok {
			if err := cm.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
			}
		}
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildHandlerMap builds the command name to handler mapping.
func (b *Bot) buildHandlerMap() {
	for _, mod := range b.modules {
		maps.Copy(b.handlers, mod.CommandHandlers())
	}
}

// buildCommandMap indexes declared commands by name.
func (b *Bot) buildCommandMap() {
	for _, cmd := range b.collectCommands() {
		b.commands[cmd.Name] = cmd
	}
}

// collectEventHandlers gathers module event handlers, rejecting unknown signatures.
func (b *Bot) collectEventHandlers() error {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			if !supportedEventHandler(handler) {
				return fmt.Errorf("%w: %T in %s module", ErrUnsupportedEventHandler, handler, mod.Name())
			}
			b.eventHandlers = append(b.eventHandlers, handler)
		}
	}
	return nil
}

// collectCommands gathers all commands from loaded modules.
func (b *Bot) collectCommands() []*discordgo.ApplicationCommand {
	var commands []*discordgo.ApplicationCommand
	for _, mod := range b.modules {
		commands = append(commands, mod.Commands()...)
	}
	return commands
}

// sessionSyncer registers commands through the Discord API.
type sessionSyncer struct{}

func (sessionSyncer) SyncCommands(
	ctx context.Context,
	s *discordgo.Session,
	guildID string,
	commands []*discordgo.ApplicationCommand,
) error {
	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(
			s.State.User.ID,
			guildID, // Empty string registers commands globally
			cmd,
			discordgo.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		slog.Debug("registered command", "command", cmd.Name, "guild_id", guildID)
	}

	return nil
}

// Embed colors for responses.
const (
	colorYellow = 0xFFFF00
	colorRed    = 0xFF0000
)

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Enqueue(func() {
		// Failures are logged by HandleInteraction.
		_ = b.HandleInteraction(s, i, NewDiscordResponder(s, i.Interaction, b.views))
	})
}

func (b *Bot) onEvent(s *discordgo.Session, event any) {
	if _, ok := event.(*discordgo.InteractionCreate); ok {
		return
	}
	b.Enqueue(func() {
		b.DispatchEvent(s, event)
	})
}

// HandleInteraction routes an interaction to its command, component or modal handler.
// Handler errors are logged, answered with an error embed where possible, and returned.
func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return b.handleCommand(s, i, r)

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if err := b.DispatchView(s, data.ComponentType, data.CustomID, i, r); err != nil {
			slog.Error("failed to handle component", "custom_id", data.CustomID, "error", err)
			return fmt.Errorf("failed to handle component %s: %w", data.CustomID, err)
		}

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		if err := b.DispatchModal(s, data.CustomID, i, r, data.Components); err != nil {
			slog.Error("failed to handle modal", "custom_id", data.CustomID, "error", err)
			return fmt.Errorf("failed to handle modal %s: %w", data.CustomID, err)
		}
	}

	return nil
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error {
	cmdName := i.ApplicationCommandData().Name
	handler, ok := b.handlers[cmdName]
	if !ok {
		slog.Warn("found no handler for command", "command", cmdName)
		b.respondWithEmbed(r, "Unknown Command", "This command is not recognized.", colorYellow)
		return nil
	}

	err := safeCall(func() error { return handler(s, i, r) })
	if err == nil {
		return nil
	}

	slog.Error("failed to handle command", "command", cmdName, "error", err)
	if !errors.Is(err, ErrInteractionResponded) {
		b.respondWithEmbed(r, "Error", "An error occurred while processing your command.", colorRed)
	}
	return fmt.Errorf("failed to handle command %s: %w", cmdName, err)
}

// DispatchView runs the stored component callback keyed by componentType and customID.
func (b *Bot) DispatchView(
	s *discordgo.Session,
	componentType discordgo.ComponentType,
	customID string,
	i *discordgo.InteractionCreate,
	r Responder,
) error {
	return b.views.DispatchView(s, componentType, customID, i, r)
}

// DispatchModal runs the stored modal submit handler keyed by customID.
func (b *Bot) DispatchModal(
	s *discordgo.Session,
	customID string,
	i *discordgo.InteractionCreate,
	r Responder,
	components []discordgo.MessageComponent,
) error {
	return b.views.DispatchModal(s, customID, i, r, components)
}

// DispatchEvent runs every module event handler accepting event.
func (b *Bot) DispatchEvent(s *discordgo.Session, event any) {
	for _, handler := range b.eventHandlers {
		err := safeCall(func() error {
			invokeEventHandler(handler, s, event)
			return nil
		})
		if err != nil {
			slog.Error("failed to handle event", "event", fmt.Sprintf("%T", event), "error", err)
		}
	}
}

func supportedEventHandler(h EventHandler) bool {
	switch h.(type) {
	case func(*discordgo.Session, *discordgo.Ready),
		func(*discordgo.Session, *discordgo.MessageCreate),
		func(*discordgo.Session, *discordgo.GuildCreate),
		func(*discordgo.Session, any):
		return true
	}
	return false
}

func invokeEventHandler(h EventHandler, s *discordgo.Session, event any) {
	switch fn := h.(type) {
	case func(*discordgo.Session, *discordgo.Ready):
		if e, ok := event.(*discordgo.Ready); ok {
			fn(s, e)
		}
	case func(*discordgo.Session, *discordgo.MessageCreate):
		if e, ok := event.(*discordgo.MessageCreate); ok {
			fn(s, e)
		}
	case func(*discordgo.Session, *discordgo.GuildCreate):
		if e, ok := event.(*discordgo.GuildCreate); ok {
			fn(s, e)
		}
	case func(*discordgo.Session, any):
		fn(s, event)
	}
}

// respondWithEmbed sends an embed response to an interaction.
func (b *Bot) respondWithEmbed(r Responder, title, description string, color int) {
	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       title,
					Description: description,
					Color:       color,
				},
			},
		},
	})
	if err != nil {
		slog.Error("failed to send embed response", "error", err)
	}
}
