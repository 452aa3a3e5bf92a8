package application

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/accord/internal/modules/test/domain"
)

// ErrNotCached is returned when the session state does not hold the requested entity.
var ErrNotCached = errors.New("not cached")

// StateReader is the part of the session state the describe use cases read.
// *discordgo.State satisfies it.
type StateReader interface {
	Guild(guildID string) (*discordgo.Guild, error)
	Channel(channelID string) (*discordgo.Channel, error)
}

// DescribeInteractor reports on the guild, channel and user an interaction comes from.
type DescribeInteractor struct {
	state StateReader
}

// NewDescribeInteractor creates a new DescribeInteractor.
func NewDescribeInteractor(state StateReader) *DescribeInteractor {
	return &DescribeInteractor{state: state}
}

// Guild describes the guild with the given id.
func (d *DescribeInteractor) Guild(guildID string) (string, error) {
	g, err := d.state.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("%w: guild %s: %v", ErrNotCached, guildID, err)
	}
	return domain.GuildLine(g.Name), nil
}

// Channel describes the channel with the given id.
func (d *DescribeInteractor) Channel(channelID string) (string, error) {
	c, err := d.state.Channel(channelID)
	if err != nil {
		return "", fmt.Errorf("%w: channel %s: %v", ErrNotCached, channelID, err)
	}
	return domain.ChannelLine(c.Name), nil
}

// User describes a user.
func (d *DescribeInteractor) User(u *discordgo.User) string {
	return domain.UserProfile{
		Name:          u.Username,
		AvatarKey:     u.Avatar,
		Discriminator: u.Discriminator,
	}.String()
}
