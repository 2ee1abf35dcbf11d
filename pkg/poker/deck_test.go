package poker

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if d.Size() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Size())
	}

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card, err := d.Draw()
		if err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
		if seen[card] {
			t.Fatalf("duplicate card %s", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(seen))
	}
}

func TestDeckDrawEmpty(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	for i := 0; i < 52; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d failed: %v", i, err)
		}
	}
	if _, err := d.Draw(); err != ErrEmptyDeck {
		t.Fatalf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestDeckResetRestoresAll(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		d.Draw()
	}
	d.Reset()
	if d.Size() != 52 {
		t.Fatalf("expected 52 cards after reset, got %d", d.Size())
	}
}

func TestDeckDeterministicUnderSeed(t *testing.T) {
	d1 := NewDeck(rand.New(rand.NewSource(42)))
	d2 := NewDeck(rand.New(rand.NewSource(42)))
	for i := 0; i < 52; i++ {
		c1, _ := d1.Draw()
		c2, _ := d2.Draw()
		if c1 != c2 {
			t.Fatalf("draw %d diverged: %s vs %s", i, c1, c2)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "10♥"},
		{NewCard(Clubs, Two), "2♣"},
	}
	for _, tc := range tests {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	orig := NewCard(Diamonds, Queen)
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != orig {
		t.Fatalf("round trip changed card: %s -> %s", orig, back)
	}
}

func TestCardJSONAcceptsLetterForms(t *testing.T) {
	var c Card
	if err := json.Unmarshal([]byte(`{"suit":"s","value":"T"}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.GetSuit() != Spades || c.GetValue() != Ten {
		t.Fatalf("expected T♠, got %s", c)
	}

	if err := json.Unmarshal([]byte(`{"suit":"x","value":"A"}`), &c); err == nil {
		t.Fatal("expected error for invalid suit")
	}
	if err := json.Unmarshal([]byte(`{"suit":"h","value":"1"}`), &c); err == nil {
		t.Fatal("expected error for invalid value")
	}
}

func TestRankValue(t *testing.T) {
	if got := NewCard(Spades, Two).RankValue(); got != 2 {
		t.Errorf("deuce rank = %d, want 2", got)
	}
	if got := NewCard(Spades, Ace).RankValue(); got != 14 {
		t.Errorf("ace rank = %d, want 14", got)
	}
	prev := 0
	for _, v := range allValues {
		rv := rankValue(v)
		if rv <= prev {
			t.Fatalf("rank order broken at %s: %d <= %d", v, rv, prev)
		}
		prev = rv
	}
}
