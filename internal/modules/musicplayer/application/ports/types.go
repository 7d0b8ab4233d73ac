package ports

import (
	"time"
)

// LoadResult represents the result of loading tracks.
type LoadResult struct {
	Type   LoadType
	Tracks []*TrackInfo
}

// LoadType represents the type of load result.
type LoadType string

const (
	LoadTypeTrack  LoadType = "track"
	LoadTypeSearch LoadType = "search"
	LoadTypeEmpty  LoadType = "empty"
	LoadTypeError  LoadType = "error"
)

// TrackInfo contains information about a loaded track.
type TrackInfo struct {
	Encoded    string
	Title      string
	Artist     string
	Duration   time.Duration
	URI        string
	ArtworkURL string
	SourceName string // e.g., "youtube", "soundcloud"
	IsStream   bool
}
