package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/arvoh/manabot/internal/modules/cardlookup/application/ports"
	"github.com/arvoh/manabot/internal/modules/cardlookup/domain"
)

// DefaultBaseURL is the public Scryfall API endpoint.
const DefaultBaseURL = "https://api.scryfall.com"

const requestTimeout = 10 * time.Second

// userAgent identifies the bot to the Scryfall API, which rejects anonymous
// clients.
const userAgent = "manabot/1.0"

// ScryfallClient fetches card data from the Scryfall REST API.
type ScryfallClient struct {
	baseURL string
	http    *http.Client
}

// NewScryfallClient creates a ScryfallClient against the given base URL. An
// empty base URL selects the public API.
func NewScryfallClient(baseURL string) *ScryfallClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ScryfallClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// cardPayload is the subset of the Scryfall card object the bot uses.
type cardPayload struct {
	Name        string `json:"name"`
	SetName     string `json:"set_name"`
	ScryfallURI string `json:"scryfall_uri"`

	Prices struct {
		USD *string `json:"usd"`
	} `json:"prices"`

	ImageURIs *struct {
		PNG string `json:"png"`
	} `json:"image_uris"`

	CardFaces []struct {
		Name      string `json:"name"`
		ImageURIs *struct {
			PNG string `json:"png"`
		} `json:"image_uris"`
	} `json:"card_faces"`

	Legalities struct {
		Modern    string `json:"modern"`
		Pauper    string `json:"pauper"`
		Commander string `json:"commander"`
	} `json:"legalities"`
}

// NamedFuzzy resolves a card by approximate name via /cards/named?fuzzy=.
func (c *ScryfallClient) NamedFuzzy(ctx context.Context, name string) (*domain.Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?fuzzy=%s", c.baseURL, url.QueryEscape(name))
	return c.fetchCard(ctx, endpoint)
}

// Random returns a random card via /cards/random.
func (c *ScryfallClient) Random(ctx context.Context) (*domain.Card, error) {
	return c.fetchCard(ctx, c.baseURL+"/cards/random")
}

func (c *ScryfallClient) fetchCard(ctx context.Context, endpoint string) (*domain.Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ports.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d from card API", resp.StatusCode)
	}

	var payload cardPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode card payload: %w", err)
	}

	return convertCard(&payload), nil
}

func convertCard(payload *cardPayload) *domain.Card {
	card := &domain.Card{
		Name:        payload.Name,
		SetName:     payload.SetName,
		ScryfallURL: payload.ScryfallURI,
		Legalities: domain.Legalities{
			Modern:    domain.ParseLegality(payload.Legalities.Modern),
			Pauper:    domain.ParseLegality(payload.Legalities.Pauper),
			Commander: domain.ParseLegality(payload.Legalities.Commander),
		},
	}

	if payload.Prices.USD != nil {
		card.PriceUSD = *payload.Prices.USD
	}
	if payload.ImageURIs != nil {
		card.ImageURL = payload.ImageURIs.PNG
	}
	for _, face := range payload.CardFaces {
		f := domain.CardFace{Name: face.Name}
		if face.ImageURIs != nil {
			f.ImageURL = face.ImageURIs.PNG
		}
		card.Faces = append(card.Faces, f)
	}

	return card
}

// Ensure ScryfallClient implements CardClient.
var _ ports.CardClient = (*ScryfallClient)(nil)
