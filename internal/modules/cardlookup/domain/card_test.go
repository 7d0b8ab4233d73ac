package domain

import "testing"

func TestParseLegality(t *testing.T) {
	tests := []struct {
		input string
		want  Legality
	}{
		{"legal", LegalityLegal},
		{"not_legal", LegalityNotLegal},
		{"banned", LegalityBanned},
		{"restricted", LegalityRestricted},
		{"", LegalityUnknown},
		{"garbage", LegalityUnknown},
	}

	for _, tt := range tests {
		if got := ParseLegality(tt.input); got != tt.want {
			t.Errorf("ParseLegality(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLegalityDisplay(t *testing.T) {
	tests := []struct {
		legality Legality
		want     string
	}{
		{LegalityLegal, "Legal"},
		{LegalityNotLegal, "Not Legal"},
		{LegalityBanned, "Banned"},
		{LegalityRestricted, "Restricted"},
		{LegalityUnknown, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.legality.Display(); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.legality, got, tt.want)
		}
	}
}

func TestCardPredicates(t *testing.T) {
	single := &Card{ImageURL: "https://example.com/card.png", PriceUSD: "1.00"}
	if !single.HasImage() || single.HasFaces() || !single.HasPrice() {
		t.Error("single-faced card predicates wrong")
	}

	double := &Card{Faces: []CardFace{{Name: "Front"}, {Name: "Back"}}}
	if double.HasImage() || !double.HasFaces() || double.HasPrice() {
		t.Error("double-faced card predicates wrong")
	}
}
