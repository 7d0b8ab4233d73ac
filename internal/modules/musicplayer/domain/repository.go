package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// SessionRepository defines the interface for storing and retrieving voice
// sessions. At most one session exists per guild at any time; sessions are
// only ever created by the join operation.
type SessionRepository interface {
	// Get returns the Session for the given guild, or nil if not exists.
	Get(guildID snowflake.ID) *Session

	// Save stores the Session.
	Save(session *Session)

	// Delete removes the Session for the given guild.
	Delete(guildID snowflake.ID)
}
