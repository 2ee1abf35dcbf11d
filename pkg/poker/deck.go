package poker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
)

// Suit represents a card suit.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Value represents a card value.
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

var allSuits = []Suit{Spades, Hearts, Diamonds, Clubs}

var allValues = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// ErrEmptyDeck is returned by Draw when no cards remain. Under normal play
// it is unreachable (at most 2x9+5 = 23 draws per hand) and indicates a
// dealing-logic bug.
var ErrEmptyDeck = errors.New("poker: deck is empty")

// Card is an immutable playing card. Two cards are equal iff rank and
// suit match.
type Card struct {
	suit  Suit
	value Value
}

// NewCard creates a card with the given suit and value.
func NewCard(suit Suit, value Value) Card {
	return Card{suit: suit, value: value}
}

// GetSuit returns the card's suit.
func (c Card) GetSuit() Suit {
	return c.suit
}

// GetValue returns the card's value.
func (c Card) GetValue() Value {
	return c.value
}

// RankValue returns the rank as an integer, 2 (deuce) through 14 (ace).
// Rank has a total order used throughout hand comparisons.
func (c Card) RankValue() int {
	return rankValue(c.value)
}

func rankValue(v Value) int {
	switch v {
	case Ace:
		return 14
	case King:
		return 13
	case Queen:
		return 12
	case Jack:
		return 11
	case Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	default:
		return 0
	}
}

// String returns a short representation such as "A♠" or "10♥".
func (c Card) String() string {
	return string(c.value) + string(c.suit)
}

// cardJSON is the wire shape of a card.
type cardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: string(c.suit), Value: string(c.value)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	switch cj.Suit {
	case "♠", "s", "S":
		c.suit = Spades
	case "♥", "h", "H":
		c.suit = Hearts
	case "♦", "d", "D":
		c.suit = Diamonds
	case "♣", "c", "C":
		c.suit = Clubs
	default:
		return fmt.Errorf("invalid suit: %q", cj.Suit)
	}

	switch cj.Value {
	case "A", "K", "Q", "J", "10", "9", "8", "7", "6", "5", "4", "3", "2":
		c.value = Value(cj.Value)
	case "T":
		c.value = Ten
	default:
		return fmt.Errorf("invalid value: %q", cj.Value)
	}

	return nil
}

// Deck is an ordered sequence of the 52 distinct cards, owned exclusively
// by the table for the duration of one hand.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a freshly shuffled deck using the given random number
// generator. Injecting the generator keeps deals deterministic under a
// fixed seed.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset repopulates all 52 cards and shuffles them into a uniform random
// permutation.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for _, suit := range allSuits {
		for _, value := range allValues {
			d.cards = append(d.cards, Card{suit: suit, value: value})
		}
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}
