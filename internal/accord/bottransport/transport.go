// Package bottransport runs a bot.Bot behind the accord Transport interface over an offline
// discordgo session.
package bottransport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/accord"
	"github.com/sglre6355/accord/internal/bot"
)

// ErrClosed is returned when dispatching on a closed transport.
var ErrClosed = errors.New("transport closed")

// RecordingSyncer stands in for command registration and remembers what was synced.
type RecordingSyncer struct {
	mu       sync.Mutex
	guildID  string
	commands []*discordgo.ApplicationCommand
}

// SyncCommands implements bot.CommandSyncer.
func (r *RecordingSyncer) SyncCommands(
	_ context.Context,
	_ *discordgo.Session,
	guildID string,
	commands []*discordgo.ApplicationCommand,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guildID = guildID
	r.commands = commands
	return nil
}

// Synced returns the guild id and commands of the last sync.
func (r *RecordingSyncer) Synced() (string, []*discordgo.ApplicationCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guildID, r.commands
}

// Transport adapts a bot.Bot to accord.Transport.
type Transport struct {
	bot     *bot.Bot
	session *discordgo.Session
	syncer  *RecordingSyncer
}

var _ accord.Transport = (*Transport)(nil)

// New builds a bot with opts and wraps it. The bot's session is never opened.
func New(opts ...bot.Option) (*Transport, error) {
	session, err := discordgo.New("Bot simulated")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.StateEnabled = true

	syncer := &RecordingSyncer{}
	opts = append(opts, bot.WithCommandSyncer(syncer))

	return &Transport{
		bot:     bot.NewBot(&bot.Config{}, opts...),
		session: session,
		syncer:  syncer,
	}, nil
}

// Bot returns the wrapped bot.
func (t *Transport) Bot() *bot.Bot { return t.bot }

// Session returns the offline session handed to handlers.
func (t *Transport) Session() *discordgo.Session { return t.session }

// Synced returns the guild id and commands of the last command sync.
func (t *Transport) Synced() (string, []*discordgo.ApplicationCommand) {
	return t.syncer.Synced()
}

func (t *Transport) Intents() discordgo.Intent {
	return t.bot.Intents()
}

func (t *Transport) Command(name string) (*discordgo.ApplicationCommand, bool) {
	return t.bot.Command(name)
}

func (t *Transport) Setup(context.Context) error {
	return t.bot.Init(t.session)
}

func (t *Transport) RunSetupHook(ctx context.Context) error {
	return t.bot.Setup(ctx)
}

// Connect loads the ready payload into the session state the way the gateway handshake would.
func (t *Transport) Connect(ready *discordgo.Ready) error {
	state := t.session.State

	state.Lock()
	state.Ready = *ready
	state.Guilds = nil
	state.Unlock()

	for _, g := range ready.Guilds {
		if err := t.AddGuild(g); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transport) AddGuild(guild *discordgo.Guild) error {
	if err := t.session.State.GuildAdd(guild); err != nil {
		return fmt.Errorf("failed to add guild to state: %w", err)
	}
	return nil
}

func (t *Transport) DispatchReady(ctx context.Context, ready *discordgo.Ready) error {
	return t.run(ctx, func() error {
		t.bot.DispatchEvent(t.session, ready)
		return nil
	})
}

func (t *Transport) SubmitInteraction(ctx context.Context, i *discordgo.InteractionCreate, r bot.Responder) error {
	return t.run(ctx, func() error {
		return t.bot.HandleInteraction(t.session, i, r)
	})
}

func (t *Transport) DispatchView(
	ctx context.Context,
	componentType discordgo.ComponentType,
	customID string,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return t.run(ctx, func() error {
		return t.bot.DispatchView(t.session, componentType, customID, i, r)
	})
}

func (t *Transport) DispatchModal(
	ctx context.Context,
	customID string,
	i *discordgo.InteractionCreate,
	r bot.Responder,
	components []discordgo.MessageComponent,
) error {
	return t.run(ctx, func() error {
		return t.bot.DispatchModal(t.session, customID, i, r, components)
	})
}

func (t *Transport) StoreView(view *bot.View, entityID string) {
	t.bot.Views().AddView(view, entityID)
}

func (t *Transport) StoreModal(modal *bot.Modal, userID string) {
	t.bot.Views().AddModal(modal, userID)
}

// Close stops the bot, draining queued work.
func (t *Transport) Close() error {
	return t.bot.Stop()
}

// run executes fn on the bot's dispatcher and waits for it to finish or for ctx to end.
func (t *Transport) run(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	ok := t.bot.Enqueue(func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("%w: %v", bot.ErrHandlerPanic, p)
			}
		}()
		done <- fn()
	})
	if !ok {
		return ErrClosed
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("failed to wait for dispatch: %w", ctx.Err())
	}
}
