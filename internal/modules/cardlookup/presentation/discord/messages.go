package discord

import (
	"errors"

	"github.com/arvoh/manabot/internal/modules/cardlookup/application/usecases"
)

// messageFor maps every lookup error kind to exactly one user-facing message.
func messageFor(err error) string {
	switch {
	case errors.Is(err, usecases.ErrEmptyQuery):
		return "Give me a card name to look up, e.g. `card Lightning Bolt`."
	case errors.Is(err, usecases.ErrCardNotFound):
		return "Couldn't find a card matching that name. Check the spelling and try again."
	case errors.Is(err, usecases.ErrCardAPIUnavailable):
		return "The card database isn't responding right now. Try again in a moment."
	default:
		return "Something went wrong while looking that up."
	}
}
