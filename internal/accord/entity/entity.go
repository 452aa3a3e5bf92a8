// Package entity models the platform objects a simulated interaction refers to.
//
// Entities are plain data holders. Their ids are assigned once at construction and each entity
// projects itself into the discordgo structs the framework would decode from a gateway payload.
package entity

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

const cdnBase = "https://cdn.discordapp.com"

// Identifiable is anything that resolves to an entity id.
type Identifiable interface {
	EntityID() snowflake.ID
}

// ID references an entity by its raw id.
type ID snowflake.ID

// EntityID returns the id itself.
func (id ID) EntityID() snowflake.ID {
	return snowflake.ID(id)
}

// Guild is a simulated guild (server).
type Guild struct {
	ID   snowflake.ID
	Name string
}

// NewGuild creates a Guild. An empty name defaults to "Guild {id}".
func NewGuild(id snowflake.ID, name string) *Guild {
	if name == "" {
		name = fmt.Sprintf("Guild %d", id)
	}
	return &Guild{ID: id, Name: name}
}

// EntityID returns the guild id.
func (g *Guild) EntityID() snowflake.ID {
	return g.ID
}

// Discord projects the guild into its wire representation.
func (g *Guild) Discord() *discordgo.Guild {
	return &discordgo.Guild{
		ID:   g.ID.String(),
		Name: g.Name,
	}
}

// Avatar is a user's avatar reference.
type Avatar struct {
	URL string
	Key string
}

// User is a simulated user account.
type User struct {
	ID            snowflake.ID
	Name          string
	Avatar        Avatar
	Discriminator string
	Bot           bool
}

// NewUser creates a User. Empty values fall back to "User {id}", a CDN url derived from the id,
// and the stringified id as discriminator.
func NewUser(id snowflake.ID, name, avatarURL, discriminator string) *User {
	if name == "" {
		name = fmt.Sprintf("User %d", id)
	}
	if avatarURL == "" {
		avatarURL = fmt.Sprintf("%s/user_%d_avatar.png", cdnBase, id)
	}
	if discriminator == "" {
		discriminator = id.String()
	}
	return &User{
		ID:            id,
		Name:          name,
		Avatar:        Avatar{URL: avatarURL, Key: id.String()},
		Discriminator: discriminator,
	}
}

// EntityID returns the user id.
func (u *User) EntityID() snowflake.ID {
	return u.ID
}

// Discord projects the user into its wire representation.
func (u *User) Discord() *discordgo.User {
	return &discordgo.User{
		ID:            u.ID.String(),
		Username:      u.Name,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar.Key,
		Bot:           u.Bot,
	}
}

// Member binds one User to one Guild.
type Member struct {
	ID    snowflake.ID
	Guild *Guild
	User  *User
}

// NewMember creates a Member.
func NewMember(id snowflake.ID, guild *Guild, user *User) *Member {
	return &Member{ID: id, Guild: guild, User: user}
}

// EntityID returns the member's own id.
func (m *Member) EntityID() snowflake.ID {
	return m.ID
}

// Discord projects the member into its wire representation.
func (m *Member) Discord() *discordgo.Member {
	return &discordgo.Member{
		GuildID: m.Guild.ID.String(),
		User:    m.User.Discord(),
	}
}

// TextChannel is a guild text channel. Its guild is fixed at construction.
type TextChannel struct {
	ID    snowflake.ID
	Name  string
	guild *Guild
}

// NewTextChannel creates a TextChannel. An empty name defaults to "Text channel {id}".
func NewTextChannel(id snowflake.ID, guild *Guild, name string) *TextChannel {
	if name == "" {
		name = fmt.Sprintf("Text channel %d", id)
	}
	return &TextChannel{ID: id, Name: name, guild: guild}
}

// EntityID returns the channel id.
func (c *TextChannel) EntityID() snowflake.ID {
	return c.ID
}

// Guild returns the guild the channel belongs to.
func (c *TextChannel) Guild() *Guild {
	return c.guild
}

// Discord projects the channel into its wire representation.
func (c *TextChannel) Discord() *discordgo.Channel {
	return &discordgo.Channel{
		ID:      c.ID.String(),
		GuildID: c.guild.ID.String(),
		Name:    c.Name,
		Type:    discordgo.ChannelTypeGuildText,
	}
}
