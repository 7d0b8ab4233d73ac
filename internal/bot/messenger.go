package bot

import "github.com/bwmarrin/discordgo"

// Messenger provides an abstraction over the gateway's message primitives.
// This interface enables testing handlers without a live Discord connection.
type Messenger interface {
	// Send sends a plain text message to a channel.
	Send(channelID, content string) error

	// SendEmbed sends a rich embed to a channel.
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error

	// Delete removes a message from a channel.
	Delete(channelID, messageID string) error
}

// DiscordMessenger implements Messenger using a live Discord session.
type DiscordMessenger struct {
	session *discordgo.Session
}

// NewDiscordMessenger creates a new DiscordMessenger.
func NewDiscordMessenger(s *discordgo.Session) *DiscordMessenger {
	return &DiscordMessenger{session: s}
}

// Send sends a plain text message via the Discord API.
func (d *DiscordMessenger) Send(channelID, content string) error {
	_, err := d.session.ChannelMessageSend(channelID, content)
	return err
}

// SendEmbed sends an embed via the Discord API.
func (d *DiscordMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := d.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// Delete removes a message via the Discord API.
func (d *DiscordMessenger) Delete(channelID, messageID string) error {
	return d.session.ChannelMessageDelete(channelID, messageID)
}

// SentMessage records a message captured by MockMessenger.
type SentMessage struct {
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// MockMessenger is a test double for Messenger.
type MockMessenger struct {
	Sent    []SentMessage
	Deleted []string
	Err     error
}

// Send records the message for testing.
func (m *MockMessenger) Send(channelID, content string) error {
	m.Sent = append(m.Sent, SentMessage{ChannelID: channelID, Content: content})
	return m.Err
}

// SendEmbed records the embed for testing.
func (m *MockMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	m.Sent = append(m.Sent, SentMessage{ChannelID: channelID, Embed: embed})
	return m.Err
}

// Delete records the deleted message ID for testing.
func (m *MockMessenger) Delete(channelID, messageID string) error {
	m.Deleted = append(m.Deleted, messageID)
	return m.Err
}
