package poker

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/decred/slog"

	"holdemtable/pkg/storage"
)

var (
	// ErrPlayerCount is returned by InitPlayers for a count outside 2..9.
	ErrPlayerCount = errors.New("poker: player count must be between 2 and 9")

	// ErrHandActive is returned when seating would disrupt a live hand.
	ErrHandActive = errors.New("poker: hand in progress")
)

// AutoplayFunc decides an action for an automated seat from a snapshot
// of the table. It runs inside the engine and must not call back into
// the table; it returns the action and, for raises, the raise-to total.
type AutoplayFunc func(state TableState, seat int) (ActionKind, int64)

// aiNames seeds the automated opponents in seat order.
var aiNames = []string{"Daisy", "Mort", "Lena", "Gus", "Priya", "Walt", "Sana", "Elmer"}

// TableConfig holds the immutable parameters of a table.
type TableConfig struct {
	SmallBlind int64
	BigBlind   int64
	BuyIn      int64

	// AIDelay paces automated actions and the all-in fast-forward.
	AIDelay time.Duration

	// Seed fixes the RNG for reproducible play; 0 seeds from the clock.
	Seed int64

	Log   slog.Logger
	Store storage.Store
}

// note is a pending notification queued under the lock and delivered
// after it is released.
type note struct {
	stateChange  bool
	handComplete *HandResult
}

// Table is a single-table no-limit hold'em engine. All mutators run
// under one mutex; notifications are queued under it and delivered
// after it is released, so presentation callbacks may call back into
// the table freely.
type Table struct {
	mu  sync.Mutex
	cfg TableConfig
	log slog.Logger

	rng     *rand.Rand
	deck    *Deck
	players []*Player

	community []Card
	pot       int64
	phase     GamePhase
	dealer    int
	current   int

	// minRaise is the minimum increment for the next raise this round.
	minRaise int64

	handNumber int
	handActive bool

	stats storage.Stats
	store storage.Store

	sched    *scheduler
	autoplay AutoplayFunc

	onStateChange  func()
	onHandComplete func(HandResult)

	pendingNotes []note
	pendingTasks []continuation
	closed       bool
}

// NewTable creates a table with no seated players. Call InitPlayers
// before StartHand.
func NewTable(cfg TableConfig) *Table {
	if cfg.Log == nil {
		cfg.Log = slog.Disabled
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemStore()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	t := &Table{
		cfg:     cfg,
		log:     cfg.Log,
		rng:     rng,
		deck:    NewDeck(rng),
		phase:   PhaseWaiting,
		current: -1,
		store:   cfg.Store,
		sched:   newScheduler(),
	}

	stats, err := t.store.LoadStats()
	if err != nil {
		t.log.Warnf("Failed to load stats, starting from zero: %v", err)
		stats = storage.Stats{}
	}
	t.stats = stats
	return t
}

// SetAutoplay installs the decision function for automated seats. Set it
// before the first hand.
func (t *Table) SetAutoplay(fn AutoplayFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoplay = fn
}

// SetNotifiers installs the presentation callbacks. They are invoked
// outside the table lock, so they may call GetState or PerformAction.
func (t *Table) SetNotifiers(onStateChange func(), onHandComplete func(HandResult)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStateChange = onStateChange
	t.onHandComplete = onHandComplete
}

// Close cancels pending timers. The table cannot be used afterwards.
func (t *Table) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.sched.close()
}

// GetStats returns the current session statistics.
func (t *Table) GetStats() storage.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// InitPlayers seats count players: the human at seat 0 plus count-1
// automated opponents.
func (t *Table) InitPlayers(count int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if count < 2 || count > 9 {
		return ErrPlayerCount
	}
	if t.handActive {
		return ErrHandActive
	}

	t.players = make([]*Player, count)
	t.players[0] = NewPlayer(0, "You", true, t.cfg.BuyIn)
	for i := 1; i < count; i++ {
		t.players[i] = NewPlayer(i, aiNames[(i-1)%len(aiNames)], false, t.cfg.BuyIn)
	}
	// The first StartHand advances this to seat 0.
	t.dealer = count - 1
	return nil
}

// SitOut marks a seat as sitting out (or back in) starting from the next
// hand. It is ignored while a hand is in progress.
func (t *Table) SitOut(seat int, out bool) ActionResult {
	var res ActionResult
	t.runLocked(func() {
		if t.handActive {
			res = ignored(ReasonHandInProgress)
			return
		}
		if seat < 0 || seat >= len(t.players) {
			res = ignored(ReasonInvalidActor)
			return
		}
		t.players[seat].setSittingOut(out)
		t.queueStateChange()
		res = applied()
	})
	return res
}

// StartHand begins a new hand: advances the button, resets stacks to the
// buy-in, posts blinds and deals hole cards. It is ignored while a hand
// is in progress or with fewer than two seated players.
func (t *Table) StartHand() ActionResult {
	var res ActionResult
	t.runLocked(func() {
		res = t.startHandLocked()
	})
	return res
}

func (t *Table) startHandLocked() ActionResult {
	if t.handActive {
		return ignored(ReasonHandInProgress)
	}
	seated := 0
	for _, p := range t.players {
		if !p.SittingOut() {
			seated++
		}
	}
	if seated < 2 {
		return ignored(ReasonNotEnough)
	}

	t.handNumber++
	t.deck.Reset()
	t.community = nil
	t.pot = 0
	t.minRaise = t.cfg.BigBlind
	for _, p := range t.players {
		p.resetForHand(t.cfg.BuyIn)
	}

	t.dealer = t.nextSeated(t.dealer)

	// Heads-up the dealer posts the small blind and acts first preflop.
	sb := t.nextSeated(t.dealer)
	if seated == 2 {
		sb = t.dealer
	}
	bb := t.nextSeated(sb)

	t.commit(t.players[sb], minInt64(t.cfg.SmallBlind, t.players[sb].Chips))
	t.commit(t.players[bb], minInt64(t.cfg.BigBlind, t.players[bb].Chips))

	for _, p := range t.players {
		if p.SittingOut() {
			continue
		}
		for i := 0; i < 2; i++ {
			card, err := t.deck.Draw()
			if err != nil {
				t.log.Errorf("Deck exhausted dealing hole cards: %v", err)
				return ignored(ReasonDeckExhausted)
			}
			p.Hand = append(p.Hand, card)
		}
	}

	t.phase = PhasePreflop
	t.handActive = true
	// Posting the big blind does not consume the option to raise.
	t.players[bb].hasActed = false

	t.log.Debugf("Hand %d: dealer seat %d, blinds %d/%d",
		t.handNumber, t.dealer, t.cfg.SmallBlind, t.cfg.BigBlind)

	t.current = t.nextEligible(bb)
	t.queueStateChange()

	if t.current == -1 || t.roundCompleteLocked() {
		t.advancePhaseLocked()
	} else {
		t.maybeScheduleAILocked()
	}
	return applied()
}

// PerformAction applies a betting action for the given seat. Illegal or
// out-of-turn actions are reported as ignored with a reason and leave
// the table untouched.
func (t *Table) PerformAction(seat int, kind ActionKind, amount int64) ActionResult {
	var res ActionResult
	t.runLocked(func() {
		res = t.performActionLocked(seat, kind, amount)
	})
	return res
}

func (t *Table) performActionLocked(seat int, kind ActionKind, amount int64) ActionResult {
	if !t.handActive || t.phase == PhaseShowdown {
		return ignored(ReasonNoHand)
	}
	if seat != t.current || seat < 0 || seat >= len(t.players) {
		return ignored(ReasonInvalidActor)
	}
	p := t.players[seat]
	switch {
	case p.HasFolded():
		return ignored(ReasonActorFolded)
	case p.IsAllIn():
		return ignored(ReasonActorAllIn)
	case p.SittingOut():
		return ignored(ReasonActorOut)
	}

	maxBet := t.currentMaxBetLocked()

	switch kind {
	case ActionFold:
		p.fold()

	case ActionCheck:
		if p.Bet != maxBet {
			return ignored(ReasonCheckFacingBet)
		}

	case ActionCall:
		t.commit(p, minInt64(maxBet-p.Bet, p.Chips))

	case ActionRaise:
		// amount is the raise-to total, clamped into [current max bet,
		// stack] rather than rejected. A clamped raise that no longer
		// exceeds the max bet degrades to a call and does not reopen
		// the action.
		newTotal := amount
		if newTotal < maxBet {
			newTotal = maxBet
		}
		if allIn := p.Chips + p.Bet; newTotal > allIn {
			newTotal = allIn
		}
		t.commit(p, newTotal-p.Bet)
		if newTotal > maxBet {
			t.minRaise = newTotal - maxBet
			for _, other := range t.players {
				if other != p && other.CanAct() {
					other.hasActed = false
				}
			}
		}

	default:
		return ignored(ReasonUnknownAction)
	}

	p.hasActed = true
	t.log.Debugf("Hand %d %s: seat %d %s (bet %d, pot %d)",
		t.handNumber, t.phase, seat, kind, p.Bet, t.pot)

	if t.contendersLocked() == 1 {
		t.finishFoldWinLocked()
		return applied()
	}

	if t.roundCompleteLocked() {
		t.advancePhaseLocked()
	} else {
		t.current = t.nextEligible(t.current)
		t.queueStateChange()
		t.maybeScheduleAILocked()
	}
	return applied()
}

// advancePhaseLocked moves the hand to the next street, dealing the
// appropriate community cards, or to showdown after the river. When
// fewer than two players can still act, remaining streets are dealt on a
// timer so the presentation can keep up.
func (t *Table) advancePhaseLocked() {
	for _, p := range t.players {
		p.resetForRound()
	}
	t.minRaise = t.cfg.BigBlind

	switch t.phase {
	case PhasePreflop:
		t.dealCommunityLocked(3)
		t.phase = PhaseFlop
	case PhaseFlop:
		t.dealCommunityLocked(1)
		t.phase = PhaseTurn
	case PhaseTurn:
		t.dealCommunityLocked(1)
		t.phase = PhaseRiver
	case PhaseRiver:
		t.resolveShowdownLocked()
		return
	default:
		return
	}

	t.log.Debugf("Hand %d: %s %v", t.handNumber, t.phase, t.community)

	if t.actionableLocked() < 2 {
		// All-in runout: pace the remaining streets.
		t.current = -1
		t.queueStateChange()
		hand, phase := t.handNumber, t.phase
		t.schedule(t.cfg.AIDelay, func() bool {
			return t.handActive && t.handNumber == hand && t.phase == phase
		}, func() {
			t.advancePhaseLocked()
		})
		return
	}

	t.current = t.nextEligible(t.dealer)
	t.queueStateChange()
	t.maybeScheduleAILocked()
}

func (t *Table) dealCommunityLocked(n int) {
	for i := 0; i < n; i++ {
		card, err := t.deck.Draw()
		if err != nil {
			t.log.Errorf("Deck exhausted dealing community cards: %v", err)
			return
		}
		t.community = append(t.community, card)
	}
}

// resolveShowdownLocked evaluates every remaining contender, splits the
// pot among the best hands and finishes the hand.
func (t *Table) resolveShowdownLocked() {
	t.phase = PhaseShowdown
	t.current = -1

	var ranked []SeatResult
	for _, p := range t.players {
		if p.HasFolded() || p.SittingOut() {
			continue
		}
		hv := EvaluateHand(p.Hand, t.community)
		p.HandResult = &hv
		ranked = append(ranked, SeatResult{Seat: p.Seat, Name: p.Name, Hand: hv})
	}

	// Best hand first; seat order breaks exact ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && CompareHands(ranked[j].Hand, ranked[j-1].Hand) > 0; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	var winners []int
	for _, r := range ranked {
		if CompareHands(r.Hand, ranked[0].Hand) == 0 {
			winners = append(winners, r.Seat)
		}
	}

	potAmount := t.pot
	share := potAmount / int64(len(winners))
	remainder := potAmount % int64(len(winners))
	for i, seat := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		t.players[seat].Chips += amount
		t.players[seat].refreshState()
	}
	t.pot = 0

	t.log.Debugf("Hand %d showdown: winners %v take %d", t.handNumber, winners, potAmount)
	t.finishHandLocked(winners, ranked, potAmount)
}

// finishFoldWinLocked awards the pot to the sole remaining contender
// without a showdown.
func (t *Table) finishFoldWinLocked() {
	var winner *Player
	for _, p := range t.players {
		if !p.HasFolded() && !p.SittingOut() {
			winner = p
			break
		}
	}
	if winner == nil {
		return
	}

	amount := t.pot
	winner.Chips += amount
	winner.refreshState()
	t.pot = 0
	t.phase = PhaseShowdown
	t.current = -1

	t.log.Debugf("Hand %d: everyone folded, seat %d takes %d",
		t.handNumber, winner.Seat, amount)
	t.finishHandLocked([]int{winner.Seat}, nil, amount)
}

func (t *Table) finishHandLocked(winners []int, ranked []SeatResult, pot int64) {
	t.handActive = false

	human := t.players[0]
	profit := human.Chips - t.cfg.BuyIn
	humanWon := false
	for _, seat := range winners {
		if seat == 0 {
			humanWon = true
		}
	}

	t.stats.HandsPlayed++
	if humanWon {
		t.stats.HandsWon++
	}
	t.stats.TotalProfit += profit
	t.persistLocked(profit)

	t.queueStateChange()
	t.queueHandComplete(HandResult{
		HandNumber: t.handNumber,
		Winners:    winners,
		Ranked:     ranked,
		Pot:        pot,
		Profit:     profit,
		HumanWon:   humanWon,
	})
}

// persistLocked writes stats and a leaderboard entry for the finished
// hand. Storage failures are logged and do not interrupt play.
func (t *Table) persistLocked(profit int64) {
	if err := t.store.SaveStats(t.stats); err != nil {
		t.log.Warnf("Failed to save stats: %v", err)
	}

	entries, err := t.store.LoadLeaderboard()
	if err != nil {
		t.log.Warnf("Failed to load leaderboard: %v", err)
		entries = nil
	}
	entries = append(entries, storage.LeaderboardEntry{
		Date:   time.Now().Format("2006-01-02"),
		Profit: profit,
	})
	if err := t.store.SaveLeaderboard(storage.SortAndTrim(entries)); err != nil {
		t.log.Warnf("Failed to save leaderboard: %v", err)
	}
}

// maybeScheduleAILocked arranges for the acting seat's automated
// decision after the configured delay. The guard drops the continuation
// if the table has moved on by the time the timer fires.
func (t *Table) maybeScheduleAILocked() {
	if t.autoplay == nil || !t.handActive || t.current < 0 {
		return
	}
	seat := t.current
	if t.players[seat].IsHuman {
		return
	}

	hand, phase := t.handNumber, t.phase
	t.schedule(t.cfg.AIDelay, func() bool {
		return t.handActive && t.handNumber == hand &&
			t.phase == phase && t.current == seat
	}, func() {
		st := t.stateLocked()
		// The decision runs under the lock; autoplay functions must not
		// call back into the table.
		kind, amount := t.autoplay(st, seat)
		t.performActionLocked(seat, kind, amount)
	})
}

// runLocked runs fn under the table lock, then delivers queued
// notifications and runs queued zero-delay continuations with the lock
// released.
func (t *Table) runLocked(fn func()) {
	t.mu.Lock()
	fn()
	notes := t.pendingNotes
	tasks := t.pendingTasks
	t.pendingNotes = nil
	t.pendingTasks = nil
	onStateChange := t.onStateChange
	onHandComplete := t.onHandComplete
	t.mu.Unlock()

	for _, n := range notes {
		if n.stateChange && onStateChange != nil {
			onStateChange()
		}
		if n.handComplete != nil && onHandComplete != nil {
			onHandComplete(*n.handComplete)
		}
	}
	for _, c := range tasks {
		t.runTask(c)
	}
}

func (t *Table) runTask(c continuation) {
	t.runLocked(func() {
		if t.closed || !c.guard() {
			return
		}
		c.fn()
	})
}

// schedule queues deferred engine work. A zero delay runs it as soon as
// the current lock is released; otherwise it goes through a timer.
func (t *Table) schedule(delay time.Duration, guard func() bool, fn func()) {
	c := continuation{guard: guard, fn: fn}
	if delay <= 0 {
		t.pendingTasks = append(t.pendingTasks, c)
		return
	}
	t.sched.after(delay, func() {
		t.runTask(c)
	})
}

func (t *Table) queueStateChange() {
	t.pendingNotes = append(t.pendingNotes, note{stateChange: true})
}

func (t *Table) queueHandComplete(res HandResult) {
	t.pendingNotes = append(t.pendingNotes, note{handComplete: &res})
}

// commit moves delta chips from the player's stack into the pot.
func (t *Table) commit(p *Player, delta int64) {
	if delta <= 0 {
		return
	}
	p.Chips -= delta
	p.Bet += delta
	t.pot += delta
	p.refreshState()
}

func (t *Table) currentMaxBetLocked() int64 {
	var max int64
	for _, p := range t.players {
		if p.Bet > max {
			max = p.Bet
		}
	}
	return max
}

// nextSeated returns the next seat after from that is not sitting out.
func (t *Table) nextSeated(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if !t.players[seat].SittingOut() {
			return seat
		}
	}
	return from
}

// nextEligible returns the next seat after from that can still act this
// round, or -1 when nobody can.
func (t *Table) nextEligible(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if t.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// contendersLocked counts players still contesting the pot.
func (t *Table) contendersLocked() int {
	count := 0
	for _, p := range t.players {
		if !p.HasFolded() && !p.SittingOut() {
			count++
		}
	}
	return count
}

// actionableLocked counts players who can still make betting decisions.
func (t *Table) actionableLocked() int {
	count := 0
	for _, p := range t.players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// roundCompleteLocked reports whether the betting round is settled:
// every player who can act has acted and matched the highest bet.
func (t *Table) roundCompleteLocked() bool {
	maxBet := t.currentMaxBetLocked()
	for _, p := range t.players {
		if !p.CanAct() {
			continue
		}
		if !p.hasActed || p.Bet != maxBet {
			return false
		}
	}
	return true
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
