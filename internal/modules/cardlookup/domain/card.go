package domain

// Legality is a card's play status in a single format.
type Legality string

// Known legality values.
const (
	LegalityLegal      Legality = "legal"
	LegalityNotLegal   Legality = "not_legal"
	LegalityBanned     Legality = "banned"
	LegalityRestricted Legality = "restricted"
	LegalityUnknown    Legality = "unknown"
)

// ParseLegality maps an API legality string to a Legality, defaulting to
// LegalityUnknown for anything unrecognized.
func ParseLegality(s string) Legality {
	switch s {
	case "legal":
		return LegalityLegal
	case "not_legal":
		return LegalityNotLegal
	case "banned":
		return LegalityBanned
	case "restricted":
		return LegalityRestricted
	default:
		return LegalityUnknown
	}
}

// Display returns the human-readable form of the legality.
func (l Legality) Display() string {
	switch l {
	case LegalityLegal:
		return "Legal"
	case LegalityNotLegal:
		return "Not Legal"
	case LegalityBanned:
		return "Banned"
	case LegalityRestricted:
		return "Restricted"
	default:
		return "Unknown"
	}
}

// Legalities holds the card's status in the formats the bot reports on.
type Legalities struct {
	Modern    Legality
	Pauper    Legality
	Commander Legality
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name     string
	ImageURL string
}

// Card is the subset of card data the bot renders.
type Card struct {
	Name        string
	SetName     string
	ScryfallURL string

	// PriceUSD is empty when no USD price is listed.
	PriceUSD string

	// ImageURL is empty for cards without a combined image, typically
	// multi-faced cards.
	ImageURL string

	// Faces is populated for multi-faced cards.
	Faces []CardFace

	Legalities Legalities
}

// HasImage reports whether the card has a combined front image.
func (c *Card) HasImage() bool {
	return c.ImageURL != ""
}

// HasFaces reports whether the card has individual face images.
func (c *Card) HasFaces() bool {
	return len(c.Faces) >= 2
}

// HasPrice reports whether a USD price is listed.
func (c *Card) HasPrice() bool {
	return c.PriceUSD != ""
}
