package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Session is the voice connection and playback state for one guild.
//
// Callers must hold the session lock (Lock/Unlock) across any
// read-modify-write sequence. Handlers acquire exactly one session lock per
// invocation, so distinct guilds never contend and no ordering cycle exists.
type Session struct {
	mu sync.Mutex

	guildID        snowflake.ID
	voiceChannelID snowflake.ID
	muted          bool
	deafened       bool

	current *Track
	queue   []*Track
}

// NewSession creates a Session connected to the given voice channel.
func NewSession(guildID, voiceChannelID snowflake.ID) *Session {
	return &Session{
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
	}
}

// Lock acquires the session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// GuildID returns the guild ID. Immutable after creation, safe without the lock.
func (s *Session) GuildID() snowflake.ID { return s.guildID }

// VoiceChannelID returns the connected voice channel.
func (s *Session) VoiceChannelID() snowflake.ID { return s.voiceChannelID }

// SetVoiceChannel records the connected voice channel. Joining while already
// connected replaces the target channel, matching the transport's semantics.
func (s *Session) SetVoiceChannel(channelID snowflake.ID) { s.voiceChannelID = channelID }

// Muted returns the self-mute flag.
func (s *Session) Muted() bool { return s.muted }

// SetMuted records the self-mute flag.
func (s *Session) SetMuted(muted bool) { s.muted = muted }

// Deafened returns the self-deafen flag.
func (s *Session) Deafened() bool { return s.deafened }

// SetDeafened records the self-deafen flag.
func (s *Session) SetDeafened(deafened bool) { s.deafened = deafened }

// Current returns the actively playing track, or nil when idle.
func (s *Session) Current() *Track { return s.current }

// SetCurrent records the actively playing track.
func (s *Session) SetCurrent(t *Track) { s.current = t }

// ClearCurrent drops the actively playing track.
func (s *Session) ClearCurrent() { s.current = nil }

// Enqueue appends a track to the pending queue and returns its 1-based
// position. Insertion order is play order.
func (s *Session) Enqueue(t *Track) int {
	s.queue = append(s.queue, t)
	return len(s.queue)
}

// Dequeue removes and returns the next pending track, or nil when empty.
func (s *Session) Dequeue() *Track {
	if len(s.queue) == 0 {
		return nil
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	return next
}

// QueueLen returns the number of pending tracks.
func (s *Session) QueueLen() int { return len(s.queue) }

// Queued returns a copy of the pending tracks in play order.
func (s *Session) Queued() []*Track {
	result := make([]*Track, len(s.queue))
	copy(result, s.queue)
	return result
}

// ClearQueue drops all pending tracks.
func (s *Session) ClearQueue() { s.queue = nil }
