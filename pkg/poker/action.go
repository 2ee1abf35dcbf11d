package poker

// GamePhase is the current stage of a hand.
type GamePhase int

const (
	PhaseWaiting GamePhase = iota
	PhasePreflop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
)

// String returns a human-readable phase name.
func (p GamePhase) String() string {
	switch p {
	case PhaseWaiting:
		return "WAITING"
	case PhasePreflop:
		return "PRE_FLOP"
	case PhaseFlop:
		return "FLOP"
	case PhaseTurn:
		return "TURN"
	case PhaseRiver:
		return "RIVER"
	case PhaseShowdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}

// ActionKind is one of the four betting actions.
type ActionKind int

const (
	ActionFold ActionKind = iota
	ActionCheck
	ActionCall
	ActionRaise
)

// String returns the action name.
func (a ActionKind) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// Ignore reasons reported by ActionResult. Illegal or late calls never
// error and never corrupt state; they are reported as ignored so callers
// and tests can tell a legitimate no-op from a bug.
const (
	ReasonHandInProgress = "hand already in progress"
	ReasonNoHand         = "no hand in progress"
	ReasonNotEnough      = "not enough players"
	ReasonInvalidActor   = "not this seat's turn"
	ReasonActorFolded    = "player has folded"
	ReasonActorAllIn     = "player is all-in"
	ReasonActorOut       = "player is sitting out"
	ReasonCheckFacingBet = "cannot check facing a bet"
	ReasonUnknownAction  = "unknown action"
	ReasonDeckExhausted  = "deck exhausted"
)

// ActionResult is the outcome of an engine mutator: either applied, or
// ignored with a reason.
type ActionResult struct {
	Applied bool
	Reason  string
}

func applied() ActionResult {
	return ActionResult{Applied: true}
}

func ignored(reason string) ActionResult {
	return ActionResult{Reason: reason}
}

// SeatResult is one contender's showdown evaluation.
type SeatResult struct {
	Seat int
	Name string
	Hand HandValue
}

// HandResult summarizes a finished hand for the presentation collaborator.
// Ranked is ordered best hand first and is empty when the hand ended on a
// fold with no showdown.
type HandResult struct {
	HandNumber int
	Winners    []int
	Ranked     []SeatResult
	Pot        int64
	Profit     int64
	HumanWon   bool
}
