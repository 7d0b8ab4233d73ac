package ports

import (
	"context"
)

// TrackResolver defines the interface for loading/searching tracks.
type TrackResolver interface {
	// LoadTracks resolves a URL or search query into playable tracks.
	LoadTracks(ctx context.Context, query string) (*LoadResult, error)
}
