// Package accord drives a bot through simulated slash command interactions and captures what it
// replies.
//
// An Engine owns a World of guilds, users and channels. AppCommand fabricates an interaction for
// a declared command, hands it to the bot through a Transport and records every reply the
// handler sends. Recorded responses can be followed up by clicking their buttons or filling and
// submitting their modals, which loops back through the same path.
package accord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/accord/entity"
	"github.com/sglre6355/accord/internal/accord/world"
)

// Engine is a simulated bot session.
type Engine struct {
	transport Transport
	world     *world.World
	config    Config
	logger    *slog.Logger

	mu        sync.Mutex
	responses []*Response
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorld runs the engine against w instead of a fresh World.
func WithWorld(w *world.World) EngineOption {
	return func(e *Engine) {
		e.world = w
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) EngineOption {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New starts a simulated session: it runs the bot's internal setup and setup hook, loads the
// ready payload into its state and fires the ready event.
func New(ctx context.Context, transport Transport, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		transport: transport,
		config:    DefaultConfig(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.world == nil {
		e.world = world.New()
	}

	if err := transport.Setup(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up bot: %w", err)
	}
	if err := transport.RunSetupHook(ctx); err != nil {
		return nil, fmt.Errorf("failed to run setup hook: %w", err)
	}

	ready := e.world.ReadyPayload(e.guildIntents())
	if err := transport.Connect(ready); err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	err := e.dispatch(ctx, "ready", func(ctx context.Context) error {
		return transport.DispatchReady(ctx, ready)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch ready: %w", err)
	}

	e.logger.Debug("started engine",
		"client_user_id", e.world.ClientUser().ID,
		"guilds", len(ready.Guilds),
	)

	return e, nil
}

// World returns the engine's entity registries.
func (e *Engine) World() *world.World {
	return e.world
}

// Close shuts the bot down.
func (e *Engine) Close() error {
	return e.transport.Close()
}

func (e *Engine) guildIntents() bool {
	return e.transport.Intents()&discordgo.IntentsGuilds != 0
}

type commandOptions struct {
	positional []any
	named      []namedArgument
	guild      entity.Identifiable
	issuer     entity.Identifiable
	channel    entity.Identifiable
}

// CommandOption configures AppCommand.
type CommandOption func(*commandOptions)

// Args passes positional option values, filling declared options in order.
func Args(values ...any) CommandOption {
	return func(o *commandOptions) {
		o.positional = append(o.positional, values...)
	}
}

// Named passes an option value by option name.
func Named(name string, value any) CommandOption {
	return func(o *commandOptions) {
		o.named = append(o.named, namedArgument{name: name, value: value})
	}
}

// InGuild runs the command in a guild, given as *entity.Guild or an id.
func InGuild(ref entity.Identifiable) CommandOption {
	return func(o *commandOptions) {
		o.guild = ref
	}
}

// IssuedBy runs the command as a user, given as *entity.User, *entity.Member or an id.
func IssuedBy(ref entity.Identifiable) CommandOption {
	return func(o *commandOptions) {
		o.issuer = ref
	}
}

// InChannel runs the command in a text channel, given as *entity.TextChannel or an id.
func InChannel(ref entity.Identifiable) CommandOption {
	return func(o *commandOptions) {
		o.channel = ref
	}
}

// AppCommand invokes the slash command called name and waits for the bot to handle it.
//
// The guild defaults to the World's default guild, the issuer to the default user and the
// channel to the guild's default channel. An explicit channel must belong to the guild.
// Errors returned by the handler, including a second reply attempt, are returned.
func (e *Engine) AppCommand(ctx context.Context, name string, opts ...CommandOption) error {
	var o commandOptions
	for _, opt := range opts {
		opt(&o)
	}

	guild, err := e.resolveGuild(o.guild)
	if err != nil {
		return err
	}
	issuer, err := e.resolveIssuer(o.issuer, guild)
	if err != nil {
		return err
	}
	channel, err := e.resolveChannel(o.channel, guild)
	if err != nil {
		return err
	}

	cmd, ok := e.transport.Command(name)
	if !ok {
		return newError(ErrUnknownCommand, "Could not find command '%s'", name)
	}
	options, err := buildOptions(cmd, o.positional, o.named)
	if err != nil {
		return err
	}

	if e.guildIntents() {
		if err := e.transport.AddGuild(e.world.GuildPayload(guild)); err != nil {
			return fmt.Errorf("failed to add guild %s: %w", guild.ID, err)
		}
	}

	i := e.commandInteraction(cmd, options, channel, issuer)
	c := e.newCapture(i, channel, issuer)

	e.logger.Debug("dispatching command",
		"command", name,
		"interaction_id", i.ID,
		"guild_id", i.GuildID,
		"channel_id", i.ChannelID,
	)

	return e.dispatch(ctx, "command", func(ctx context.Context) error {
		return e.transport.SubmitInteraction(ctx, i, c)
	})
}

// dispatch runs one hand-off to the bot, bounded by the dispatch timeout.
func (e *Engine) dispatch(ctx context.Context, kind string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, e.config.DispatchTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		e.logger.Debug("dispatch failed", "kind", kind, "error", err)
		return err
	}
	return nil
}

func (e *Engine) resolveGuild(ref entity.Identifiable) (*entity.Guild, error) {
	switch v := ref.(type) {
	case nil:
		return e.world.DefaultGuild(), nil
	case *entity.Guild:
		return v, nil
	}
	g, ok := e.world.Guild(ref.EntityID())
	if !ok {
		return nil, newError(ErrUnknownGuild, "Could not find guild with id %d", ref.EntityID())
	}
	return g, nil
}

func (e *Engine) resolveIssuer(ref entity.Identifiable, guild *entity.Guild) (*entity.Member, error) {
	var user *entity.User
	switch v := ref.(type) {
	case nil:
		user = e.world.DefaultUser()
	case *entity.Member:
		user = v.User
	case *entity.User:
		user = v
	default:
		u, ok := e.world.User(ref.EntityID())
		if !ok {
			return nil, newError(ErrUnknownUser, "Could not find user with id %d", ref.EntityID())
		}
		user = u
	}
	return e.world.Member(user, guild), nil
}

func (e *Engine) resolveChannel(ref entity.Identifiable, guild *entity.Guild) (*entity.TextChannel, error) {
	if ref == nil {
		c, ok := e.world.DefaultTextChannel(guild.ID)
		if !ok {
			return nil, newError(ErrNoDefaultChannel,
				"Could not find a default text channel for guild '%s'", guild.Name)
		}
		return c, nil
	}

	c, ok := ref.(*entity.TextChannel)
	if !ok {
		if c, ok = e.world.TextChannel(ref.EntityID()); !ok {
			return nil, newError(ErrUnknownChannel, "Could not find text channel with id %d", ref.EntityID())
		}
	}
	if c.Guild().ID != guild.ID {
		return nil, newError(ErrChannelGuildMismatch,
			"Text channel %s is not from guild %s", c.Name, guild.Name)
	}
	return c, nil
}

func (e *Engine) appendResponse(r *Response) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = append(e.responses, r)
}

// Response returns the most recent response.
func (e *Engine) Response() (*Response, error) {
	return e.GetResponse(-1)
}

// GetResponse returns the response at index. Negative indices count from the end.
func (e *Engine) GetResponse(index int) (*Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := index
	if i < 0 {
		i += len(e.responses)
	}
	if i < 0 || i >= len(e.responses) {
		return nil, newError(ErrNoResponse, "No response at index %d", index)
	}
	return e.responses[i], nil
}

// Responses returns a snapshot of the response log, oldest first.
func (e *Engine) Responses() []*Response {
	e.mu.Lock()
	defer e.mu.Unlock()

	responses := make([]*Response, len(e.responses))
	copy(responses, e.responses)
	return responses
}

// ClearResponses empties the response log. Entities are left untouched.
func (e *Engine) ClearResponses() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = nil
}
