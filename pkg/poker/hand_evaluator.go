package poker

import "sort"

// HandRank is the category of a poker hand, ordered weakest to strongest.
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable name for the hand rank.
func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the complete evaluation of a hand: its category, the
// tie-break rank sequence (most significant first) and the winning
// 5-card subset. It is computed fresh at showdown and never persisted
// beyond the hand.
type HandValue struct {
	Rank      HandRank
	TieBreaks []int
	BestHand  []Card
}

// EvaluateHand evaluates a player's best 5-card hand from their hole
// cards and the community cards.
func EvaluateHand(holeCards, communityCards []Card) HandValue {
	cards := make([]Card, 0, len(holeCards)+len(communityCards))
	cards = append(cards, holeCards...)
	cards = append(cards, communityCards...)
	return Evaluate(cards)
}

// Evaluate returns the single best HandValue achievable by any 5-card
// subset of the given 5 to 7 cards.
func Evaluate(cards []Card) HandValue {
	if len(cards) < 5 {
		return HandValue{}
	}
	if len(cards) == 5 {
		return evaluateFive(cards)
	}

	var best HandValue
	first := true
	for _, combo := range combinations(cards, 5) {
		hv := evaluateFive(combo)
		if first || CompareHands(hv, best) > 0 {
			best = hv
			first = false
		}
	}
	return best
}

// evaluateFive scores exactly five cards.
func evaluateFive(cards []Card) HandValue {
	sorted := make([]Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RankValue() > sorted[j].RankValue()
	})

	flush := true
	for i := 1; i < 5; i++ {
		if sorted[i].GetSuit() != sorted[0].GetSuit() {
			flush = false
			break
		}
	}

	straightHigh := straightHighCard(sorted)

	// Rank multiplicity groups sorted by (count desc, rank desc) resolve
	// both the category and the kicker order.
	groups := rankGroups(sorted)

	hv := HandValue{BestHand: sorted}

	switch {
	case flush && straightHigh == 14:
		hv.Rank = RoyalFlush
		hv.TieBreaks = []int{straightHigh}
	case flush && straightHigh > 0:
		hv.Rank = StraightFlush
		hv.TieBreaks = []int{straightHigh}
	case groups[0].count == 4:
		hv.Rank = FourOfAKind
		hv.TieBreaks = []int{groups[0].rank, groups[1].rank}
	case groups[0].count == 3 && groups[1].count == 2:
		hv.Rank = FullHouse
		hv.TieBreaks = []int{groups[0].rank, groups[1].rank}
	case flush:
		hv.Rank = Flush
		hv.TieBreaks = groupRanks(groups)
	case straightHigh > 0:
		hv.Rank = Straight
		hv.TieBreaks = []int{straightHigh}
	case groups[0].count == 3:
		hv.Rank = ThreeOfAKind
		hv.TieBreaks = groupRanks(groups)
	case groups[0].count == 2 && groups[1].count == 2:
		hv.Rank = TwoPair
		hv.TieBreaks = groupRanks(groups)
	case groups[0].count == 2:
		hv.Rank = Pair
		hv.TieBreaks = groupRanks(groups)
	default:
		hv.Rank = HighCard
		hv.TieBreaks = groupRanks(groups)
	}

	return hv
}

// straightHighCard returns the high-card rank of a straight formed by the
// five cards (sorted descending by rank), or 0 when they do not form one.
// The wheel (A-5-4-3-2) ranks as a 5-high straight, not ace-high.
func straightHighCard(sorted []Card) int {
	ranks := make([]int, 5)
	for i, c := range sorted {
		ranks[i] = c.RankValue()
	}

	for i := 1; i < 5; i++ {
		if ranks[i] == ranks[i-1] {
			return 0
		}
	}

	consecutive := true
	for i := 1; i < 5; i++ {
		if ranks[i-1]-ranks[i] != 1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return ranks[0]
	}

	// Wheel: A,5,4,3,2.
	if ranks[0] == 14 && ranks[1] == 5 && ranks[2] == 4 && ranks[3] == 3 && ranks[4] == 2 {
		return 5
	}

	return 0
}

type rankGroup struct {
	rank  int
	count int
}

// rankGroups returns the rank multiplicity groups of five cards sorted by
// (count desc, rank desc).
func rankGroups(cards []Card) []rankGroup {
	counts := make(map[int]int, 5)
	for _, c := range cards {
		counts[c.RankValue()]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func groupRanks(groups []rankGroup) []int {
	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 on an exact
// tie (possible when an identical five-card board plays for both). It is
// a total order consistent with poker rules: category first, then
// lexicographic comparison of the tie-break sequences.
func CompareHands(a, b HandValue) int {
	if a.Rank != b.Rank {
		if a.Rank > b.Rank {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.TieBreaks) && i < len(b.TieBreaks); i++ {
		if a.TieBreaks[i] != b.TieBreaks[i] {
			if a.TieBreaks[i] > b.TieBreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// combinations generates all k-card subsets of cards.
func combinations(cards []Card, k int) [][]Card {
	var result [][]Card
	if k > len(cards) || k <= 0 {
		return result
	}

	var generate func(start int, current []Card)
	generate = func(start int, current []Card) {
		if len(current) == k {
			combo := make([]Card, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}
		for i := start; i <= len(cards)-(k-len(current)); i++ {
			generate(i+1, append(current, cards[i]))
		}
	}
	generate(0, make([]Card, 0, k))
	return result
}
