package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arvoh/manabot/internal/modules/cardlookup/application/ports"
	"github.com/arvoh/manabot/internal/modules/cardlookup/domain"
)

const singleFacedCard = `{
	"name": "Lightning Bolt",
	"set_name": "Magic 2011",
	"scryfall_uri": "https://scryfall.com/card/m11/149/lightning-bolt",
	"prices": {"usd": "1.23"},
	"image_uris": {"png": "https://cards.scryfall.io/png/bolt.png"},
	"legalities": {"modern": "legal", "pauper": "legal", "commander": "legal"}
}`

const doubleFacedCard = `{
	"name": "Delver of Secrets // Insectile Aberration",
	"set_name": "Innistrad",
	"scryfall_uri": "https://scryfall.com/card/isd/51/delver-of-secrets",
	"prices": {"usd": null},
	"card_faces": [
		{"name": "Delver of Secrets", "image_uris": {"png": "https://cards.scryfall.io/png/delver-front.png"}},
		{"name": "Insectile Aberration", "image_uris": {"png": "https://cards.scryfall.io/png/delver-back.png"}}
	],
	"legalities": {"modern": "legal", "pauper": "not_legal", "commander": "banned"}
}`

func TestNamedFuzzy(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("fuzzy")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(singleFacedCard))
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	card, err := client.NamedFuzzy(context.Background(), "lightning bolt")
	if err != nil {
		t.Fatalf("NamedFuzzy() error = %v", err)
	}

	if gotPath != "/cards/named" {
		t.Errorf("request path = %q, want /cards/named", gotPath)
	}
	if gotQuery != "lightning bolt" {
		t.Errorf("fuzzy query = %q, want %q", gotQuery, "lightning bolt")
	}

	if card.Name != "Lightning Bolt" {
		t.Errorf("Name = %q", card.Name)
	}
	if card.SetName != "Magic 2011" {
		t.Errorf("SetName = %q", card.SetName)
	}
	if card.PriceUSD != "1.23" {
		t.Errorf("PriceUSD = %q, want 1.23", card.PriceUSD)
	}
	if !card.HasImage() {
		t.Error("HasImage() = false, want true")
	}
	if card.HasFaces() {
		t.Error("HasFaces() = true for a single-faced card")
	}
	if card.Legalities.Modern != domain.LegalityLegal {
		t.Errorf("Modern legality = %q, want legal", card.Legalities.Modern)
	}
}

func TestNamedFuzzyDoubleFaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doubleFacedCard))
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	card, err := client.NamedFuzzy(context.Background(), "delver of secrets")
	if err != nil {
		t.Fatalf("NamedFuzzy() error = %v", err)
	}

	if card.HasImage() {
		t.Error("HasImage() = true for a double-faced card without a combined image")
	}
	if !card.HasFaces() {
		t.Fatal("HasFaces() = false, want true")
	}
	if card.Faces[0].Name != "Delver of Secrets" || card.Faces[1].Name != "Insectile Aberration" {
		t.Errorf("face names = %q, %q", card.Faces[0].Name, card.Faces[1].Name)
	}
	if card.Faces[1].ImageURL != "https://cards.scryfall.io/png/delver-back.png" {
		t.Errorf("back face image = %q", card.Faces[1].ImageURL)
	}
	if card.HasPrice() {
		t.Error("HasPrice() = true for a null price")
	}
	if card.Legalities.Commander != domain.LegalityBanned {
		t.Errorf("Commander legality = %q, want banned", card.Legalities.Commander)
	}
}

func TestNamedFuzzyNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	_, err := client.NamedFuzzy(context.Background(), "xyzzy")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("NamedFuzzy() error = %v, want ErrNotFound", err)
	}
}

func TestFetchCardServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	_, err := client.NamedFuzzy(context.Background(), "bolt")
	if err == nil {
		t.Fatal("NamedFuzzy() expected error for 500 response")
	}
	if errors.Is(err, ports.ErrNotFound) {
		t.Error("a server error must not be reported as not-found")
	}
}

func TestRandom(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(singleFacedCard))
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	card, err := client.Random(context.Background())
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	if gotPath != "/cards/random" {
		t.Errorf("request path = %q, want /cards/random", gotPath)
	}
	if card.Name != "Lightning Bolt" {
		t.Errorf("Name = %q", card.Name)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(singleFacedCard))
	}))
	defer server.Close()

	client := NewScryfallClient(server.URL)
	if _, err := client.Random(context.Background()); err != nil {
		t.Fatalf("Random() error = %v", err)
	}

	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
}
