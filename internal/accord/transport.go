package accord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/bot"
)

// Transport is the engine's view of the bot under test. Implementations feed synthetic events
// into the bot's real dispatch path without any network I/O.
//
// Dispatch methods return once the bot has finished handling the event or ctx is done.
type Transport interface {
	// Intents returns the gateway intents the bot declares.
	Intents() discordgo.Intent

	// Command returns the declared command with the given name.
	Command(name string) (*discordgo.ApplicationCommand, bool)

	// Setup performs the bot's internal setup.
	Setup(ctx context.Context) error

	// RunSetupHook runs the bot's user-defined setup.
	RunSetupHook(ctx context.Context) error

	// Connect loads the ready payload into the bot's state as if the gateway sent it.
	Connect(ready *discordgo.Ready) error

	// AddGuild loads a guild into the bot's state.
	AddGuild(guild *discordgo.Guild) error

	// DispatchReady fires the bot's ready event.
	DispatchReady(ctx context.Context, ready *discordgo.Ready) error

	// SubmitInteraction hands a freshly arrived interaction to the bot.
	SubmitInteraction(ctx context.Context, i *discordgo.InteractionCreate, r bot.Responder) error

	// DispatchView routes a component activation to the stored view item.
	DispatchView(
		ctx context.Context,
		componentType discordgo.ComponentType,
		customID string,
		i *discordgo.InteractionCreate,
		r bot.Responder,
	) error

	// DispatchModal routes a modal submission to the stored modal.
	DispatchModal(
		ctx context.Context,
		customID string,
		i *discordgo.InteractionCreate,
		r bot.Responder,
		components []discordgo.MessageComponent,
	) error

	// StoreView registers a view for later activations. An empty entityID matches any message.
	StoreView(view *bot.View, entityID string)

	// StoreModal registers a modal for a later submission by userID.
	StoreModal(modal *bot.Modal, userID string)

	// Close releases the bot.
	Close() error
}
