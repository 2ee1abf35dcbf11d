package poker

// PlayerState is a read-only copy of one seat.
type PlayerState struct {
	Seat       int
	Name       string
	IsHuman    bool
	Chips      int64
	Bet        int64
	Hand       []Card
	Folded     bool
	AllIn      bool
	SittingOut bool
	HasResult  bool
	Result     HandValue
}

// TableState is a point-in-time snapshot of the table for collaborators.
// Collaborators receive copies only and must not expect them to track
// later mutations.
type TableState struct {
	HandNumber int
	HandActive bool
	Phase      GamePhase
	Pot        int64
	Community  []Card
	Players    []PlayerState
	Dealer     int
	Current    int

	SmallBlind int64
	BigBlind   int64

	// Betting context for the acting seat.
	CurrentBet int64
	CallAmount int64
	MinRaiseTo int64
	CanCheck   bool
	Legal      []ActionKind
}

// GetState returns a snapshot of the table.
func (t *Table) GetState() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Table) stateLocked() TableState {
	st := TableState{
		HandNumber: t.handNumber,
		HandActive: t.handActive,
		Phase:      t.phase,
		Pot:        t.pot,
		Community:  append([]Card(nil), t.community...),
		Dealer:     t.dealer,
		Current:    t.current,
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
		CurrentBet: t.currentMaxBetLocked(),
	}

	st.Players = make([]PlayerState, len(t.players))
	for i, p := range t.players {
		ps := PlayerState{
			Seat:       p.Seat,
			Name:       p.Name,
			IsHuman:    p.IsHuman,
			Chips:      p.Chips,
			Bet:        p.Bet,
			Hand:       append([]Card(nil), p.Hand...),
			Folded:     p.HasFolded(),
			AllIn:      p.IsAllIn(),
			SittingOut: p.SittingOut(),
		}
		if p.HandResult != nil {
			ps.HasResult = true
			ps.Result = *p.HandResult
		}
		st.Players[i] = ps
	}

	if t.handActive && t.current >= 0 && t.current < len(t.players) {
		p := t.players[t.current]
		call := st.CurrentBet - p.Bet
		if call > p.Chips {
			call = p.Chips
		}
		st.CallAmount = call
		st.CanCheck = p.Bet == st.CurrentBet

		st.MinRaiseTo = st.CurrentBet + t.minRaise
		if max := p.Chips + p.Bet; st.MinRaiseTo > max {
			st.MinRaiseTo = max
		}

		st.Legal = append(st.Legal, ActionFold)
		if st.CanCheck {
			st.Legal = append(st.Legal, ActionCheck)
		} else {
			st.Legal = append(st.Legal, ActionCall)
		}
		if p.Chips+p.Bet > st.CurrentBet {
			st.Legal = append(st.Legal, ActionRaise)
		}
	}

	return st
}
