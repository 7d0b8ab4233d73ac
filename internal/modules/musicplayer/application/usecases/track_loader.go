package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/ports"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// LoadInput contains the input for the Load use case.
type LoadInput struct {
	// Query is a direct URL or free-text search terms.
	Query string

	// Loop marks the resolved track to auto-replay on completion.
	Loop bool

	// RequesterName is captured on the track for display purposes.
	RequesterName string
}

// LoadOutput contains the result of the Load use case.
type LoadOutput struct {
	Track *domain.Track
}

// TrackLoaderService resolves user input into playable tracks via the
// external audio resolver.
type TrackLoaderService struct {
	resolver ports.TrackResolver
}

// NewTrackLoaderService creates a new TrackLoaderService.
func NewTrackLoaderService(resolver ports.TrackResolver) *TrackLoaderService {
	return &TrackLoaderService{
		resolver: resolver,
	}
}

// Load resolves the query to a single track. Resolution failures are wrapped
// as ErrSourceResolution; empty results become ErrNoResults. The caller's
// session state is never touched here, so a failed resolution has no side
// effects.
func (s *TrackLoaderService) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	query := domain.NewSearchQuery(input.Query)
	if !query.IsValid() {
		return nil, ErrNoResults
	}

	result, err := s.resolver.LoadTracks(ctx, query.LavalinkQuery())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceResolution, err)
	}

	if result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError ||
		len(result.Tracks) == 0 {
		return nil, ErrNoResults
	}

	info := result.Tracks[0]
	track := &domain.Track{
		Encoded:       info.Encoded,
		Title:         info.Title,
		Artist:        info.Artist,
		Duration:      info.Duration,
		URI:           info.URI,
		ArtworkURL:    info.ArtworkURL,
		SourceName:    info.SourceName,
		IsStream:      info.IsStream,
		Loop:          input.Loop,
		RequesterName: input.RequesterName,
		EnqueuedAt:    time.Now().UTC(),
	}

	return &LoadOutput{Track: track}, nil
}
