package poker

import (
	"math/rand"
	"reflect"
	"testing"

	oracle "github.com/chehsunliu/poker"
)

// cards builds a hand from compact "As", "Td", "9c" notation.
func cards(specs ...string) []Card {
	out := make([]Card, len(specs))
	for i, s := range specs {
		var v Value
		switch s[0] {
		case 'A':
			v = Ace
		case 'K':
			v = King
		case 'Q':
			v = Queen
		case 'J':
			v = Jack
		case 'T':
			v = Ten
		default:
			v = Value(s[:1])
		}
		var suit Suit
		switch s[1] {
		case 's':
			suit = Spades
		case 'h':
			suit = Hearts
		case 'd':
			suit = Diamonds
		case 'c':
			suit = Clubs
		}
		out[i] = NewCard(suit, v)
	}
	return out
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name      string
		hand      []Card
		wantRank  HandRank
		wantBreak []int
	}{
		{"royal flush", cards("As", "Ks", "Qs", "Js", "Ts"), RoyalFlush, []int{14}},
		{"straight flush", cards("9h", "8h", "7h", "6h", "5h"), StraightFlush, []int{9}},
		{"steel wheel", cards("Ad", "5d", "4d", "3d", "2d"), StraightFlush, []int{5}},
		{"four of a kind", cards("Qs", "Qh", "Qd", "Qc", "7s"), FourOfAKind, []int{12, 7}},
		{"full house", cards("8s", "8h", "8d", "Kc", "Ks"), FullHouse, []int{8, 13}},
		{"full house high pair", cards("7c", "7d", "7h", "2s", "2c"), FullHouse, []int{7, 2}},
		{"full house low trips", cards("2c", "2d", "2h", "9s", "9d"), FullHouse, []int{2, 9}},
		{"flush", cards("Ac", "Jc", "8c", "5c", "2c"), Flush, []int{14, 11, 8, 5, 2}},
		{"straight", cards("Ts", "9h", "8d", "7c", "6s"), Straight, []int{10}},
		{"wheel", cards("As", "5h", "4d", "3c", "2s"), Straight, []int{5}},
		{"three of a kind", cards("7s", "7h", "7d", "Ac", "2s"), ThreeOfAKind, []int{7, 14, 2}},
		{"two pair", cards("Js", "Jh", "4d", "4c", "9s"), TwoPair, []int{11, 4, 9}},
		{"pair", cards("Ts", "Th", "Ad", "6c", "3s"), Pair, []int{10, 14, 6, 3}},
		{"high card", cards("Ks", "Jh", "8d", "5c", "2s"), HighCard, []int{13, 11, 8, 5, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hv := Evaluate(tc.hand)
			if hv.Rank != tc.wantRank {
				t.Fatalf("rank = %s, want %s", hv.Rank, tc.wantRank)
			}
			if !reflect.DeepEqual(hv.TieBreaks, tc.wantBreak) {
				t.Fatalf("tie breaks = %v, want %v", hv.TieBreaks, tc.wantBreak)
			}
			if len(hv.BestHand) != 5 {
				t.Fatalf("best hand has %d cards", len(hv.BestHand))
			}
		})
	}
}

func TestEvaluateSevenPicksBestFive(t *testing.T) {
	// Board pairs the ace and carries four spades; the spade in hand
	// completes a flush, which beats aces up.
	hv := EvaluateHand(
		cards("As", "Ad"),
		cards("Ks", "Qs", "7s", "7h", "2d"),
	)
	if hv.Rank != Flush {
		t.Fatalf("rank = %s, want %s", hv.Rank, Flush)
	}

	// The full house hides inside seven cards.
	hv = EvaluateHand(
		cards("9s", "9h"),
		cards("9d", "4c", "4s", "Kh", "Ad"),
	)
	if hv.Rank != FullHouse {
		t.Fatalf("rank = %s, want %s", hv.Rank, FullHouse)
	}
	if hv.TieBreaks[0] != 9 || hv.TieBreaks[1] != 4 {
		t.Fatalf("tie breaks = %v, want [9 4]", hv.TieBreaks)
	}
}

func TestCompareHands(t *testing.T) {
	tests := []struct {
		name string
		a, b []Card
		want int
	}{
		{
			"category beats kickers",
			cards("2s", "2h", "2d", "3c", "4s"),
			cards("As", "Kh", "Qd", "Jc", "9s"),
			1,
		},
		{
			"kicker decides equal pairs",
			cards("Ts", "Th", "Ad", "6c", "3s"),
			cards("Td", "Tc", "Kd", "6h", "3d"),
			1,
		},
		{
			"higher pair of two pair decides first",
			cards("As", "Ah", "2d", "2c", "3s"),
			cards("Ks", "Kh", "Qd", "Qc", "Ad"),
			1,
		},
		{
			"wheel loses to six high straight",
			cards("As", "5h", "4d", "3c", "2s"),
			cards("6s", "5d", "4c", "3h", "2d"),
			-1,
		},
		{
			"identical boards tie",
			cards("As", "Kh", "Qd", "Jc", "9s"),
			cards("Ad", "Ks", "Qh", "Jd", "9c"),
			0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := Evaluate(tc.a), Evaluate(tc.b)
			if got := CompareHands(a, b); got != tc.want {
				t.Fatalf("CompareHands = %d, want %d", got, tc.want)
			}
			if got := CompareHands(b, a); got != -tc.want {
				t.Fatalf("CompareHands reversed = %d, want %d", got, -tc.want)
			}
		})
	}
}

// oracleCard converts to the chehsunliu/poker card notation.
func oracleCard(c Card) oracle.Card {
	var rank byte
	switch c.GetValue() {
	case Ace:
		rank = 'A'
	case King:
		rank = 'K'
	case Queen:
		rank = 'Q'
	case Jack:
		rank = 'J'
	case Ten:
		rank = 'T'
	default:
		rank = c.GetValue()[0]
	}
	var suit byte
	switch c.GetSuit() {
	case Spades:
		suit = 's'
	case Hearts:
		suit = 'h'
	case Diamonds:
		suit = 'd'
	case Clubs:
		suit = 'c'
	}
	return oracle.NewCard(string([]byte{rank, suit}))
}

// TestEvaluateAgainstOracle cross-checks showdown ordering against an
// independent evaluator over random deals.
func TestEvaluateAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	deck := NewDeck(rng)

	for i := 0; i < 2000; i++ {
		deck.Reset()
		draw := func(n int) []Card {
			out := make([]Card, n)
			for j := range out {
				out[j], _ = deck.Draw()
			}
			return out
		}
		h1, h2, board := draw(2), draw(2), draw(5)

		mine := CompareHands(EvaluateHand(h1, board), EvaluateHand(h2, board))

		toOracle := func(hole []Card) []oracle.Card {
			var out []oracle.Card
			for _, c := range append(append([]Card{}, hole...), board...) {
				out = append(out, oracleCard(c))
			}
			return out
		}
		// Lower oracle scores are stronger hands.
		s1, s2 := oracle.Evaluate(toOracle(h1)), oracle.Evaluate(toOracle(h2))
		want := 0
		if s1 < s2 {
			want = 1
		} else if s1 > s2 {
			want = -1
		}

		if mine != want {
			t.Fatalf("deal %d: hole %v vs %v on %v: got %d, oracle says %d",
				i, h1, h2, board, mine, want)
		}
	}
}
