package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider defines the interface for getting Discord voice state information.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel ID the user is currently
	// in, or 0 if the user is not in any voice channel of the guild.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}
