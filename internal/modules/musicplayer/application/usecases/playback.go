package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/ports"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID snowflake.ID
	Track   *domain.Track
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	// Started is true when the track began playing immediately; false when it
	// was appended to the queue because something was already playing.
	Started bool

	// QueuePosition is the 1-based queue position when Started is false.
	QueuePosition int

	// Current is the track that was playing at the moment of the call,
	// set only when Started is false.
	Current *domain.Track

	// Elapsed is the playback position of Current, set only when Started is false.
	Elapsed time.Duration
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID snowflake.ID
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	Skipped *domain.Track
	Next    *domain.Track // nil when the queue was empty and playback stopped
}

// StopInput contains the input for the Stop use case.
type StopInput struct {
	GuildID snowflake.ID
}

// PlaybackService handles playback operations against a guild's session.
type PlaybackService struct {
	repo   domain.SessionRepository
	player ports.AudioPlayer
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(repo domain.SessionRepository, player ports.AudioPlayer) *PlaybackService {
	return &PlaybackService{
		repo:   repo,
		player: player,
	}
}

// Play starts the track immediately when nothing is playing, or appends it to
// the queue otherwise. The branch is decided purely by whether a current
// track is populated at the moment of the call. A player failure leaves the
// session exactly as if the call never happened.
func (p *PlaybackService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	session := p.repo.Get(input.GuildID)
	if session == nil {
		return nil, ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if session.Current() == nil {
		if err := p.player.Play(ctx, input.GuildID, input.Track); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
		}
		session.SetCurrent(input.Track)
		return &PlayOutput{Started: true}, nil
	}

	position := session.Enqueue(input.Track)
	return &PlayOutput{
		Started:       false,
		QueuePosition: position,
		Current:       session.Current(),
		Elapsed:       p.player.Position(input.GuildID),
	}, nil
}

// Skip advances to the next queued track, or stops playback when the queue is
// empty. Skipping always moves forward, even for loop-marked tracks.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	session := p.repo.Get(input.GuildID)
	if session == nil {
		return nil, ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	skipped := session.Current()
	if skipped == nil && session.QueueLen() == 0 {
		return nil, ErrNothingPlaying
	}

	if session.QueueLen() == 0 {
		if err := p.player.Stop(ctx, input.GuildID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
		}
		session.ClearCurrent()
		return &SkipOutput{Skipped: skipped}, nil
	}

	next := session.Queued()[0]
	if err := p.player.Play(ctx, input.GuildID, next); err != nil {
		// Queue left intact; the previous track keeps playing.
		return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}
	session.Dequeue()
	session.SetCurrent(next)

	return &SkipOutput{Skipped: skipped, Next: next}, nil
}

// Stop halts playback and clears the current track and the pending queue
// unconditionally.
func (p *PlaybackService) Stop(ctx context.Context, input StopInput) error {
	session := p.repo.Get(input.GuildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if err := p.player.Stop(ctx, input.GuildID); err != nil {
		return fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}

	session.ClearCurrent()
	session.ClearQueue()
	return nil
}

// HandleTrackEnd reacts to a track-end notification from the transport.
// Loop-marked tracks replay on natural completion; otherwise the queue
// advances in insertion order. Deliberate stops and replacements are ignored,
// since the initiating operation already updated the session.
func (p *PlaybackService) HandleTrackEnd(guildID snowflake.ID, reason domain.TrackEndReason) {
	session := p.repo.Get(guildID)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	ctx := context.Background()

	current := session.Current()
	if current != nil && current.Loop && reason.ShouldReplay() {
		if err := p.player.Play(ctx, guildID, current); err != nil {
			slog.Error("failed to replay looped track",
				"guild_id", guildID, "track", current.Title, "error", err)
			session.ClearCurrent()
		}
		return
	}

	if !reason.ShouldAdvanceQueue() {
		return
	}

	next := session.Dequeue()
	if next == nil {
		session.ClearCurrent()
		return
	}

	if err := p.player.Play(ctx, guildID, next); err != nil {
		slog.Error("failed to play next queued track",
			"guild_id", guildID, "track", next.Title, "error", err)
		session.ClearCurrent()
		return
	}
	session.SetCurrent(next)
}
