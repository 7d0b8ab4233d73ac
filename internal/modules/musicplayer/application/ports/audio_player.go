package ports

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// AudioPlayer defines the interface for audio playback operations.
type AudioPlayer interface {
	// Play starts playback of the given track.
	Play(ctx context.Context, guildID snowflake.ID, track *domain.Track) error

	// Stop halts the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Position returns the elapsed playback time of the current track.
	Position(guildID snowflake.ID) time.Duration
}
