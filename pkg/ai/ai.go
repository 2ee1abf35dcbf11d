// Package ai implements the heuristic decision engine for automated
// seats. Decisions are a pure function of a table snapshot plus the
// engine's own RNG; the engine holds no game state between calls.
package ai

import (
	"math/rand"
	"time"

	"github.com/decred/slog"

	"holdemtable/pkg/poker"
)

// Engine makes betting decisions for automated seats.
type Engine struct {
	rng *rand.Rand
	log slog.Logger
}

// New creates an engine. A zero seed seeds from the clock.
func New(log slog.Logger, seed int64) *Engine {
	if log == nil {
		log = slog.Disabled
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		rng: rand.New(rand.NewSource(seed)),
		log: log,
	}
}

// Decide returns an action for the given seat. It satisfies
// poker.AutoplayFunc. The returned amount is the raise-to total and is
// meaningful only for raises.
func (e *Engine) Decide(st poker.TableState, seat int) (poker.ActionKind, int64) {
	if seat < 0 || seat >= len(st.Players) || len(st.Legal) == 0 {
		return poker.ActionCheck, 0
	}
	p := st.Players[seat]

	strength := e.strength(st, seat)
	toCall := st.CallAmount

	e.log.Debugf("Seat %d (%s) on %s: strength %.2f, to call %d, pot %d",
		seat, p.Name, st.Phase, strength, toCall, st.Pot)

	// No bet to face: value-bet strong hands, occasionally bluff,
	// otherwise take the free card.
	if st.CanCheck {
		if strength > 0.65 {
			return poker.ActionRaise, e.makeRaise(st, seat, strength, false)
		}
		if e.rng.Float64() < 0.05 {
			return poker.ActionRaise, e.makeRaise(st, seat, strength, true)
		}
		return poker.ActionCheck, 0
	}

	potOdds := float64(toCall) / float64(st.Pot+toCall)

	// Very strong hands raise for value.
	if strength > 0.85 {
		return poker.ActionRaise, e.makeRaise(st, seat, strength, false)
	}

	// Call when strength clears the pot odds by a margin or is simply
	// good, with a chance of turning it into a raise.
	if strength > potOdds+0.15 || strength > 0.6 {
		if strength > 0.75 && e.rng.Float64() < 0.3 {
			return poker.ActionRaise, e.makeRaise(st, seat, strength, false)
		}
		return poker.ActionCall, 0
	}

	// Cheap bets are occasionally bluff-raised.
	if toCall*4 <= st.Pot && e.rng.Float64() < 0.03 {
		return poker.ActionRaise, e.makeRaise(st, seat, strength, true)
	}

	// Peel marginal hands when the price is a few big blinds.
	if toCall <= 3*st.BigBlind && strength > 0.3 {
		return poker.ActionCall, 0
	}

	return poker.ActionFold, 0
}

// strength estimates hand strength in [0,1] for the seat, including a
// small random perturbation and a positional bonus.
func (e *Engine) strength(st poker.TableState, seat int) float64 {
	p := st.Players[seat]

	var s float64
	if len(st.Community) == 0 {
		s = preflopStrength(p.Hand)
	} else {
		s = postflopStrength(p.Hand, st.Community)
	}

	// Symmetric perturbation keeps play from being exploitable by rote.
	s += e.rng.Float64()*0.15 - 0.075

	// Later position is worth a little extra.
	n := len(st.Players)
	if n > 1 {
		dist := ((seat - st.Dealer) + n) % n
		s += 0.05 * float64(dist) / float64(n-1)
	}

	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s
}

// preflopStrength is a closed-form heuristic over the two hole cards.
func preflopStrength(hole []poker.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	hi, lo := hole[0].RankValue(), hole[1].RankValue()
	if lo > hi {
		hi, lo = lo, hi
	}

	// Pairs scale from 0.5 (deuces) to 1.0 (aces).
	if hi == lo {
		return 0.5 + float64(hi-2)/12*0.5
	}

	s := float64(hi+lo) / 56
	if hole[0].GetSuit() == hole[1].GetSuit() {
		s += 0.08
	}
	switch hi - lo {
	case 1:
		s += 0.05
	case 2:
		s += 0.02
	}

	// Premium groupings keep a floor regardless of the formula.
	if hi == 14 && lo >= 10 {
		if s < 0.6 {
			s = 0.6
		}
	}
	return s
}

// categoryBase maps the evaluated hand category to a base strength.
var categoryBase = map[poker.HandRank]float64{
	poker.HighCard:      0.15,
	poker.Pair:          0.30,
	poker.TwoPair:       0.50,
	poker.ThreeOfAKind:  0.65,
	poker.Straight:      0.75,
	poker.Flush:         0.80,
	poker.FullHouse:     0.90,
	poker.FourOfAKind:   0.95,
	poker.StraightFlush: 1.0,
	poker.RoyalFlush:    1.0,
}

func postflopStrength(hole, community []poker.Card) float64 {
	hv := poker.EvaluateHand(hole, community)
	s := categoryBase[hv.Rank]

	if hv.Rank == poker.Pair && len(hv.TieBreaks) > 0 {
		pairRank := hv.TieBreaks[0]

		// A pair sitting entirely on the board is everyone's pair.
		boardCount := 0
		topBoard := 0
		for _, c := range community {
			if c.RankValue() == pairRank {
				boardCount++
			}
			if c.RankValue() > topBoard {
				topBoard = c.RankValue()
			}
		}
		if boardCount >= 2 {
			s -= 0.12
		} else if pairRank == topBoard && holdsRank(hole, pairRank) {
			// Top pair with a hole card is real strength.
			s += 0.08
		}
	}

	// Draw equity only matters before the river.
	if len(community) < 5 {
		if hasFourFlush(hole, community) {
			s += 0.10
		}
		if hasFourStraight(hole, community) {
			s += 0.08
		}
	}

	return s
}

func holdsRank(hole []poker.Card, rank int) bool {
	for _, c := range hole {
		if c.RankValue() == rank {
			return true
		}
	}
	return false
}

// hasFourFlush reports four cards of one suit including a hole card.
func hasFourFlush(hole, community []poker.Card) bool {
	counts := make(map[poker.Suit]int)
	for _, c := range hole {
		counts[c.GetSuit()]++
	}
	for _, c := range community {
		counts[c.GetSuit()]++
	}
	for _, c := range hole {
		if counts[c.GetSuit()] == 4 {
			return true
		}
	}
	return false
}

// hasFourStraight reports four consecutive distinct ranks among the
// visible cards, the ace counting both high and low.
func hasFourStraight(hole, community []poker.Card) bool {
	present := make(map[int]bool)
	for _, c := range hole {
		present[c.RankValue()] = true
	}
	for _, c := range community {
		present[c.RankValue()] = true
	}
	if present[14] {
		present[1] = true
	}

	run := 0
	for r := 1; r <= 14; r++ {
		if present[r] {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// makeRaise sizes a raise as a raise-to total: all-in for monsters and
// the occasional bluff, pot for strong hands, half pot for medium ones,
// otherwise the minimum. Always clamped into the legal window.
func (e *Engine) makeRaise(st poker.TableState, seat int, strength float64, bluff bool) int64 {
	p := st.Players[seat]
	allIn := p.Chips + p.Bet
	minTotal := st.MinRaiseTo

	var total int64
	switch {
	case strength > 0.95:
		total = allIn
	case bluff && e.rng.Float64() < 0.25:
		total = allIn
	case strength > 0.8:
		total = st.CurrentBet + st.Pot
	case strength > 0.65:
		total = st.CurrentBet + st.Pot/2
	default:
		total = minTotal
	}

	if total < minTotal {
		total = minTotal
	}
	if total > allIn {
		total = allIn
	}
	return total
}
