package accord

import (
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/oklog/ulid/v2"

	"github.com/sglre6355/accord/internal/accord/entity"
)

const interactionVersion = 1

type namedArgument struct {
	name  string
	value any
}

// buildOptions maps positional and named values onto the command's declared options. Positional
// values fill declared options in order; named values are matched by option name.
func buildOptions(
	cmd *discordgo.ApplicationCommand,
	positional []any,
	named []namedArgument,
) ([]*discordgo.ApplicationCommandInteractionDataOption, error) {
	if len(positional) > len(cmd.Options) {
		verb := "were"
		if len(positional) == 1 {
			verb = "was"
		}
		return nil, newError(ErrTooManyArguments,
			"Command '%s' takes %s but %s %s given",
			cmd.Name,
			plural(len(cmd.Options), "option", "options"),
			plural(len(positional), "positional argument", "positional arguments"),
			verb,
		)
	}

	options := make([]*discordgo.ApplicationCommandInteractionDataOption, 0, len(positional)+len(named))
	seen := make(map[string]bool)

	add := func(name string, value any) error {
		if seen[name] {
			return newError(ErrDuplicateOption, "Option '%s' was given more than once", name)
		}
		seen[name] = true

		arg, ok := Infer(value)
		if !ok {
			return newError(ErrUnsupportedArgument, "Unsupported argument type %T for option '%s'", value, name)
		}
		options = append(options, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  name,
			Type:  arg.OptionType(),
			Value: arg.WireValue(),
		})
		return nil
	}

	for idx, value := range positional {
		if err := add(cmd.Options[idx].Name, value); err != nil {
			return nil, err
		}
	}

	for _, n := range named {
		declared := slices.ContainsFunc(cmd.Options, func(o *discordgo.ApplicationCommandOption) bool {
			return o.Name == n.name
		})
		if !declared {
			return nil, newError(ErrUnknownOption, "Command '%s' has no option '%s'", cmd.Name, n.name)
		}
		if err := add(n.name, n.value); err != nil {
			return nil, err
		}
	}

	return options, nil
}

// commandInteraction builds a fresh application command interaction.
func (e *Engine) commandInteraction(
	cmd *discordgo.ApplicationCommand,
	options []*discordgo.ApplicationCommandInteractionDataOption,
	channel *entity.TextChannel,
	issuer *entity.Member,
) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:    e.world.NextID().String(),
		AppID: e.world.ClientUser().ID.String(),
		Type:  discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			ID:          cmd.ID,
			Name:        cmd.Name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     options,
		},
		GuildID:   channel.Guild().ID.String(),
		ChannelID: channel.ID.String(),
		Member:    issuer.Discord(),
		Token:     ulid.Make().String(),
		Version:   interactionVersion,
	}}
}

// followUpInteraction builds an interaction on a previously sent message. It reuses the id of the
// interaction that produced the message, which is what stored views and modals are keyed by.
func (e *Engine) followUpInteraction(
	msg *entity.Message,
	issuer *entity.Member,
	typ discordgo.InteractionType,
	data discordgo.InteractionData,
) *discordgo.InteractionCreate {
	var id string
	if origin := msg.Interaction(); origin != nil {
		id = origin.ID
	} else {
		id = e.world.NextID().String()
	}

	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        id,
		AppID:     e.world.ClientUser().ID.String(),
		Type:      typ,
		Data:      data,
		GuildID:   msg.Channel.Guild().ID.String(),
		ChannelID: msg.Channel.ID.String(),
		Message:   msg.Discord(),
		Member:    issuer.Discord(),
		Token:     ulid.Make().String(),
		Version:   interactionVersion,
	}}
}

// componentInteraction builds a component activation on msg.
func (e *Engine) componentInteraction(
	msg *entity.Message,
	issuer *entity.Member,
	componentType discordgo.ComponentType,
	customID string,
) *discordgo.InteractionCreate {
	return e.followUpInteraction(msg, issuer, discordgo.InteractionMessageComponent,
		discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: componentType,
		})
}

// modalSubmitInteraction builds a modal submission on msg.
func (e *Engine) modalSubmitInteraction(
	msg *entity.Message,
	issuer *entity.Member,
	customID string,
	components []discordgo.MessageComponent,
) *discordgo.InteractionCreate {
	return e.followUpInteraction(msg, issuer, discordgo.InteractionModalSubmit,
		discordgo.ModalSubmitInteractionData{
			CustomID:   customID,
			Components: components,
		})
}
