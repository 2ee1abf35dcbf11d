package poker

import (
	"holdemtable/pkg/statemachine"
)

// PlayerStateFn is a player lifecycle state.
type PlayerStateFn = statemachine.StateFn[Player]

// Player is one seat at the table. Identity and the seat index are stable
// for the session; the per-hand and per-round fields are reset by the
// table.
type Player struct {
	Seat    int
	Name    string
	IsHuman bool

	Chips int64
	Hand  []Card
	Bet   int64

	// hasActed is scoped to the current betting round.
	hasActed bool

	// HandResult is populated only at showdown.
	HandResult *HandValue

	sm *statemachine.Machine[Player]
}

// NewPlayer creates a player with the given seat, name and starting chips.
func NewPlayer(seat int, name string, isHuman bool, chips int64) *Player {
	p := &Player{
		Seat:    seat,
		Name:    name,
		IsHuman: isHuman,
		Chips:   chips,
		Hand:    make([]Card, 0, 2),
	}
	p.sm = statemachine.New(p, playerStateActive)
	return p
}

// playerStateActive is a player still able to act this hand. A committed
// bet that empties the stack moves the player all-in.
func playerStateActive(p *Player) PlayerStateFn {
	if p.Chips == 0 && p.Bet > 0 {
		return playerStateAllIn
	}
	return playerStateActive
}

// playerStateFolded is terminal for the hand; only a reset leaves it.
func playerStateFolded(p *Player) PlayerStateFn {
	return playerStateFolded
}

// playerStateAllIn holds until the player wins chips or a new hand starts.
func playerStateAllIn(p *Player) PlayerStateFn {
	if p.Chips > 0 {
		return playerStateActive
	}
	return playerStateAllIn
}

func playerStateSittingOut(p *Player) PlayerStateFn {
	return playerStateSittingOut
}

// HasFolded reports whether the player folded this hand.
func (p *Player) HasFolded() bool {
	return p.sm.Is(playerStateFolded)
}

// IsAllIn reports whether the player has committed their whole stack.
func (p *Player) IsAllIn() bool {
	return p.sm.Is(playerStateAllIn)
}

// SittingOut reports whether the player is sitting out of hands.
func (p *Player) SittingOut() bool {
	return p.sm.Is(playerStateSittingOut)
}

// CanAct reports whether the player may still take actions this hand.
func (p *Player) CanAct() bool {
	return p.sm.Is(playerStateActive)
}

func (p *Player) fold() {
	p.sm.Set(playerStateFolded)
}

func (p *Player) setSittingOut(out bool) {
	if out {
		p.sm.Set(playerStateSittingOut)
	} else {
		p.sm.Set(playerStateActive)
	}
}

// refreshState re-runs the lifecycle state so chip movements are
// reflected, e.g. a bet that empties the stack transitions to all-in.
func (p *Player) refreshState() {
	p.sm.Step()
}

// resetForHand clears per-hand state and restores the stack to the fixed
// buy-in. Sitting-out players keep their status.
func (p *Player) resetForHand(chips int64) {
	p.Hand = make([]Card, 0, 2)
	p.Chips = chips
	p.Bet = 0
	p.hasActed = false
	p.HandResult = nil
	if !p.SittingOut() {
		p.sm.Set(playerStateActive)
	}
}

// resetForRound clears the per-round bet and acted flag.
func (p *Player) resetForRound() {
	p.Bet = 0
	p.hasActed = false
}
