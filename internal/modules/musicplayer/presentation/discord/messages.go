package discord

import (
	"errors"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/usecases"
)

// ErrMissingURL is returned when the play command is invoked without a URL.
var ErrMissingURL = errors.New("play requires a URL argument")

// ErrMissingQuery is returned when a search command is invoked without terms.
var ErrMissingQuery = errors.New("search requires query terms")

// messageFor maps every internal error kind to exactly one user-facing
// message. Keeping the mapping in a single pure function guarantees no kind
// is missed and no kind has two renderings.
func messageFor(err error) string {
	switch {
	case errors.Is(err, usecases.ErrNotConnected):
		return "I'm not connected to a voice channel. Use `join` first."
	case errors.Is(err, usecases.ErrNotInVoiceChannel):
		return "You need to be in a voice channel for that."
	case errors.Is(err, usecases.ErrAlreadyMuted):
		return "Already muted."
	case errors.Is(err, usecases.ErrAlreadyUnmuted):
		return "Already unmuted."
	case errors.Is(err, usecases.ErrAlreadyDeafened):
		return "Already deafened."
	case errors.Is(err, usecases.ErrAlreadyUndeafened):
		return "Already undeafened."
	case errors.Is(err, usecases.ErrNothingPlaying):
		return "Nothing is playing and the queue is empty."
	case errors.Is(err, usecases.ErrNoResults):
		return "No results found for that. Try different terms or a direct link."
	case errors.Is(err, usecases.ErrSourceResolution):
		return "Couldn't fetch audio from that source. The link may be broken or unsupported."
	case errors.Is(err, usecases.ErrTransportCommand):
		return "The voice transport rejected that command. Try again."
	case errors.Is(err, ErrMissingURL):
		return "Give me a URL to play, e.g. `play https://youtu.be/...`, or use `search_and_play` with search terms."
	case errors.Is(err, ErrMissingQuery):
		return "Give me something to search for, e.g. `search_and_play imagine dragons believer`."
	default:
		return "Something went wrong while handling that command."
	}
}
