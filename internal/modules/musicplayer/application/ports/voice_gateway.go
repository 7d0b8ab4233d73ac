package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceGateway defines the interface for voice channel transport operations.
type VoiceGateway interface {
	// JoinChannel connects the bot to the specified voice channel with the
	// given self-mute and self-deafen flags, waiting for the voice handshake
	// to complete.
	JoinChannel(ctx context.Context, guildID, channelID snowflake.ID, mute, deaf bool) error

	// LeaveChannel disconnects the bot from the voice channel.
	LeaveChannel(ctx context.Context, guildID snowflake.ID) error

	// UpdateVoiceFlags re-issues the voice state update for the connected
	// channel with the desired self-mute and self-deafen flags.
	UpdateVoiceFlags(ctx context.Context, guildID, channelID snowflake.ID, mute, deaf bool) error
}
