// Package world holds the entity registries a simulated bot session runs against.
//
// A World starts with one default guild, one default user, a distinct client user standing in for
// the bot under test, the member binding the default user to the default guild, and one default
// text channel. Entities are added by the Create* factories and never removed.
package world

import (
	"cmp"
	"slices"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/sglre6355/accord/internal/accord/entity"
	"github.com/sglre6355/accord/internal/accord/identity"
)

// ClientUserName is the display name of the user representing the bot under test.
const ClientUserName = "Test client"

type memberKey struct {
	user  snowflake.ID
	guild snowflake.ID
}

// World is a set of entity registries. It is safe for concurrent use.
type World struct {
	mu  sync.RWMutex
	ids *identity.Generator

	guilds          map[snowflake.ID]*entity.Guild
	users           map[snowflake.ID]*entity.User
	members         map[memberKey]*entity.Member
	channels        map[snowflake.ID]*entity.TextChannel
	defaultChannels map[snowflake.ID]snowflake.ID

	defaultGuild   *entity.Guild
	defaultUser    *entity.User
	clientUser     *entity.User
	defaultMember  *entity.Member
	defaultChannel *entity.TextChannel
}

// Option configures a World.
type Option func(*World)

// WithIDGenerator makes the World draw ids from g instead of the process-wide generator.
func WithIDGenerator(g *identity.Generator) Option {
	return func(w *World) {
		w.ids = g
	}
}

// New creates a World pre-populated with its default entities.
func New(opts ...Option) *World {
	w := &World{
		ids:             identity.Default(),
		guilds:          make(map[snowflake.ID]*entity.Guild),
		users:           make(map[snowflake.ID]*entity.User),
		members:         make(map[memberKey]*entity.Member),
		channels:        make(map[snowflake.ID]*entity.TextChannel),
		defaultChannels: make(map[snowflake.ID]snowflake.ID),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.defaultGuild = w.CreateGuild(WithoutDefaultChannel())
	w.defaultUser = w.CreateUser()
	w.clientUser = w.CreateUser(WithUserName(ClientUserName))
	w.clientUser.Bot = true
	w.defaultMember = w.Member(w.defaultUser, w.defaultGuild)
	w.defaultChannel = w.CreateTextChannel(w.defaultGuild)

	return w
}

// NextID draws a fresh id from the World's generator.
func (w *World) NextID() snowflake.ID {
	return w.ids.Next()
}

// DefaultGuild returns the guild used when no guild is specified.
func (w *World) DefaultGuild() *entity.Guild { return w.defaultGuild }

// DefaultUser returns the user used when no issuer is specified.
func (w *World) DefaultUser() *entity.User { return w.defaultUser }

// ClientUser returns the user representing the bot under test.
func (w *World) ClientUser() *entity.User { return w.clientUser }

// DefaultMember returns the member binding the default user to the default guild.
func (w *World) DefaultMember() *entity.Member { return w.defaultMember }

// DefaultChannel returns the default guild's default text channel.
func (w *World) DefaultChannel() *entity.TextChannel { return w.defaultChannel }

type guildOptions struct {
	name           string
	defaultChannel bool
}

// GuildOption configures CreateGuild.
type GuildOption func(*guildOptions)

// WithGuildName sets the guild's display name.
func WithGuildName(name string) GuildOption {
	return func(o *guildOptions) { o.name = name }
}

// WithoutDefaultChannel skips creating the guild's default text channel.
func WithoutDefaultChannel() GuildOption {
	return func(o *guildOptions) { o.defaultChannel = false }
}

// CreateGuild registers a new guild and, unless disabled, a default text channel for it.
func (w *World) CreateGuild(opts ...GuildOption) *entity.Guild {
	o := guildOptions{defaultChannel: true}
	for _, opt := range opts {
		opt(&o)
	}

	g := entity.NewGuild(w.NextID(), o.name)

	w.mu.Lock()
	w.guilds[g.ID] = g
	w.mu.Unlock()

	if o.defaultChannel {
		w.CreateTextChannel(g)
	}
	return g
}

type userOptions struct {
	name          string
	avatarURL     string
	discriminator string
}

// UserOption configures CreateUser.
type UserOption func(*userOptions)

// WithUserName sets the user's display name.
func WithUserName(name string) UserOption {
	return func(o *userOptions) { o.name = name }
}

// WithAvatarURL sets the user's avatar url.
func WithAvatarURL(url string) UserOption {
	return func(o *userOptions) { o.avatarURL = url }
}

// WithDiscriminator sets the user's discriminator.
func WithDiscriminator(discriminator string) UserOption {
	return func(o *userOptions) { o.discriminator = discriminator }
}

// CreateUser registers a new user.
func (w *World) CreateUser(opts ...UserOption) *entity.User {
	var o userOptions
	for _, opt := range opts {
		opt(&o)
	}

	u := entity.NewUser(w.NextID(), o.name, o.avatarURL, o.discriminator)

	w.mu.Lock()
	w.users[u.ID] = u
	w.mu.Unlock()

	return u
}

type channelOptions struct {
	name string
}

// ChannelOption configures CreateTextChannel.
type ChannelOption func(*channelOptions)

// WithChannelName sets the channel's display name.
func WithChannelName(name string) ChannelOption {
	return func(o *channelOptions) { o.name = name }
}

// CreateTextChannel registers a new text channel in guild, or in the default guild when guild is
// nil. The first channel created for a guild becomes its default channel.
func (w *World) CreateTextChannel(guild *entity.Guild, opts ...ChannelOption) *entity.TextChannel {
	var o channelOptions
	for _, opt := range opts {
		opt(&o)
	}
	if guild == nil {
		guild = w.defaultGuild
	}

	c := entity.NewTextChannel(w.NextID(), guild, o.name)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.channels[c.ID] = c
	if _, ok := w.defaultChannels[guild.ID]; !ok {
		w.defaultChannels[guild.ID] = c.ID
	}
	return c
}

// Guild looks up a guild by id.
func (w *World) Guild(id snowflake.ID) (*entity.Guild, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	g, ok := w.guilds[id]
	return g, ok
}

// User looks up a user by id.
func (w *World) User(id snowflake.ID) (*entity.User, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.users[id]
	return u, ok
}

// TextChannel looks up a text channel by id.
func (w *World) TextChannel(id snowflake.ID) (*entity.TextChannel, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.channels[id]
	return c, ok
}

// DefaultTextChannel returns the default text channel registered for a guild.
func (w *World) DefaultTextChannel(guildID snowflake.ID) (*entity.TextChannel, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.defaultChannels[guildID]
	if !ok {
		return nil, false
	}
	return w.channels[id], true
}

// Member returns the member binding user to guild, creating it on first use.
// Every later call for the same pair returns the same Member.
func (w *World) Member(user *entity.User, guild *entity.Guild) *entity.Member {
	key := memberKey{user: user.ID, guild: guild.ID}

	w.mu.RLock()
	m, ok := w.members[key]
	w.mu.RUnlock()
	if ok {
		return m
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Another caller may have created it between the two locks.
	if m, ok := w.members[key]; ok {
		return m
	}
	m = entity.NewMember(w.ids.Next(), guild, user)
	w.members[key] = m
	return m
}

// NewMessage creates a message authored by author in channel. Messages are not registered.
func (w *World) NewMessage(channel *entity.TextChannel, author *entity.Member) *entity.Message {
	return entity.NewMessage(w.NextID(), channel, author)
}

// Guilds returns every registered guild ordered by id.
func (w *World) Guilds() []*entity.Guild {
	w.mu.RLock()
	defer w.mu.RUnlock()

	guilds := make([]*entity.Guild, 0, len(w.guilds))
	for _, g := range w.guilds {
		guilds = append(guilds, g)
	}
	slices.SortFunc(guilds, func(a, b *entity.Guild) int { return cmp.Compare(a.ID, b.ID) })
	return guilds
}

// GuildPayload projects a guild together with its text channels and materialized members, the
// shape a guild create event carries.
func (w *World) GuildPayload(guild *entity.Guild) *discordgo.Guild {
	w.mu.RLock()
	defer w.mu.RUnlock()

	payload := guild.Discord()

	channels := make([]*entity.TextChannel, 0)
	for _, c := range w.channels {
		if c.Guild().ID == guild.ID {
			channels = append(channels, c)
		}
	}
	slices.SortFunc(channels, func(a, b *entity.TextChannel) int { return cmp.Compare(a.ID, b.ID) })
	for _, c := range channels {
		payload.Channels = append(payload.Channels, c.Discord())
	}

	members := make([]*entity.Member, 0)
	for key, m := range w.members {
		if key.guild == guild.ID {
			members = append(members, m)
		}
	}
	slices.SortFunc(members, func(a, b *entity.Member) int { return cmp.Compare(a.ID, b.ID) })
	for _, m := range members {
		payload.Members = append(payload.Members, m.Discord())
	}
	payload.MemberCount = len(payload.Members)

	return payload
}

// ReadyPayload builds the ready event announcing the client user. Guilds are included only when
// includeGuilds is set, matching a gateway session without the guilds intent.
func (w *World) ReadyPayload(includeGuilds bool) *discordgo.Ready {
	ready := &discordgo.Ready{
		Version:   10,
		SessionID: w.clientUser.ID.String(),
		User:      w.clientUser.Discord(),
		Guilds:    make([]*discordgo.Guild, 0),
	}
	if includeGuilds {
		for _, g := range w.Guilds() {
			ready.Guilds = append(ready.Guilds, w.GuildPayload(g))
		}
	}
	return ready
}
