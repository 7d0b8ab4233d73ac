package ports

import (
	"context"
	"errors"

	"github.com/arvoh/manabot/internal/modules/cardlookup/domain"
)

// ErrNotFound is returned by CardClient implementations when no card matches
// the query.
var ErrNotFound = errors.New("card not found")

// CardClient fetches card data from an external card database.
type CardClient interface {
	// NamedFuzzy resolves a card by approximate name.
	NamedFuzzy(ctx context.Context, name string) (*domain.Card, error)

	// Random returns a random card.
	Random(ctx context.Context) (*domain.Card, error)
}
