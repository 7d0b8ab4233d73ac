package usecases

import "errors"

// Domain errors for the music player module. Presentation maps each of these
// to exactly one user-facing message.
var (
	// ErrNotConnected is returned when an operation requires an active voice session.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrNotInVoiceChannel is returned when the requesting user is not in a
	// voice channel of the guild.
	ErrNotInVoiceChannel = errors.New("user is not in a voice channel")

	// ErrAlreadyMuted is returned when a mute request matches the current state.
	ErrAlreadyMuted = errors.New("already muted")

	// ErrAlreadyUnmuted is returned when an unmute request matches the current state.
	ErrAlreadyUnmuted = errors.New("already unmuted")

	// ErrAlreadyDeafened is returned when a deafen request matches the current state.
	ErrAlreadyDeafened = errors.New("already deafened")

	// ErrAlreadyUndeafened is returned when an undeafen request matches the current state.
	ErrAlreadyUndeafened = errors.New("already undeafened")

	// ErrNothingPlaying is returned when skip finds no active or pending track.
	ErrNothingPlaying = errors.New("nothing is currently playing")

	// ErrNoResults is returned when resolution yields no playable tracks.
	ErrNoResults = errors.New("no results found")

	// ErrSourceResolution wraps failures from the audio resolution collaborator.
	ErrSourceResolution = errors.New("failed to resolve audio source")

	// ErrTransportCommand wraps join/leave/mute/deafen rejections from the transport.
	ErrTransportCommand = errors.New("voice transport command failed")
)
