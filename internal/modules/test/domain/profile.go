package domain

import "fmt"

// UserProfile is what the user command reports about its caller.
type UserProfile struct {
	Name          string
	AvatarKey     string
	Discriminator string
}

// String renders the profile one attribute per line.
func (p UserProfile) String() string {
	return fmt.Sprintf("User name: %s\nAvatar: %s\nDiscriminator: %s", p.Name, p.AvatarKey, p.Discriminator)
}

// GuildLine renders a guild name.
func GuildLine(name string) string {
	return "Guild name: " + name
}

// ChannelLine renders a channel name.
func ChannelLine(name string) string {
	return "Channel name: " + name
}
