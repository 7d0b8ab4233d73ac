package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arvoh/manabot/internal/modules/cardlookup/application/ports"
	"github.com/arvoh/manabot/internal/modules/cardlookup/domain"
)

// LookupOutput contains the fetched card and how long the fetch took.
type LookupOutput struct {
	Card    *domain.Card
	Elapsed time.Duration
}

// LookupService fetches card data through the card client and measures fetch
// latency for display.
type LookupService struct {
	client ports.CardClient
}

// NewLookupService creates a new LookupService.
func NewLookupService(client ports.CardClient) *LookupService {
	return &LookupService{
		client: client,
	}
}

// NamedFuzzy resolves a card by approximate name.
func (s *LookupService) NamedFuzzy(ctx context.Context, name string) (*LookupOutput, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	card, err := s.client.NamedFuzzy(ctx, name)
	if err != nil {
		return nil, mapClientError(err)
	}

	return &LookupOutput{Card: card, Elapsed: time.Since(start)}, nil
}

// Random fetches a random card.
func (s *LookupService) Random(ctx context.Context) (*LookupOutput, error) {
	start := time.Now()
	card, err := s.client.Random(ctx)
	if err != nil {
		return nil, mapClientError(err)
	}

	return &LookupOutput{Card: card, Elapsed: time.Since(start)}, nil
}

func mapClientError(err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return ErrCardNotFound
	}
	return fmt.Errorf("%w: %w", ErrCardAPIUnavailable, err)
}
