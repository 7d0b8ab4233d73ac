package bot

import (
	"log/slog"
	"sync"
)

// DefaultActivity is the activity text shown while the bot is idle.
const DefaultActivity = "Pondering Scryfall.."

// Presence holds the process-wide activity text. Handlers overwrite it on
// certain transitions (stop, leave) and it is set once at startup; keeping it
// behind a single setter avoids ad hoc global mutation across handlers.
type Presence struct {
	mu      sync.Mutex
	current string
	setter  func(text string) error
}

// NewPresence creates a Presence that applies updates through setter.
func NewPresence(setter func(text string) error) *Presence {
	return &Presence{setter: setter}
}

// Set updates the displayed activity text. Failures are logged only; a
// presence update is cosmetic and never worth surfacing to users.
func (p *Presence) Set(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.setter != nil {
		if err := p.setter(text); err != nil {
			slog.Warn("failed to update presence", "activity", text, "error", err)
			return
		}
	}
	p.current = text
}

// Reset restores the default activity text.
func (p *Presence) Reset() {
	p.Set(DefaultActivity)
}

// Current returns the last successfully applied activity text.
func (p *Presence) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
