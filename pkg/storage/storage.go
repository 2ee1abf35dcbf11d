// Package storage defines the persistence port the betting engine writes
// session statistics and leaderboard records through, plus the concrete
// SQLite adapter. The engine never touches ambient process state; a Store
// is injected at construction.
package storage

import "sort"

// MaxLeaderboardEntries caps the leaderboard at the best results.
const MaxLeaderboardEntries = 20

// Stats are the cumulative session statistics for the human seat.
type Stats struct {
	HandsPlayed int64 `json:"handsPlayed"`
	HandsWon    int64 `json:"handsWon"`
	TotalProfit int64 `json:"totalProfit"`
}

// LeaderboardEntry is one leaderboard record.
type LeaderboardEntry struct {
	Date   string `json:"date"`
	Profit int64  `json:"profit"`
}

// Store is the persistence contract. Implementations must tolerate
// concurrent use from a single engine goroutine plus readers.
type Store interface {
	LoadStats() (Stats, error)
	SaveStats(Stats) error
	LoadLeaderboard() ([]LeaderboardEntry, error)
	SaveLeaderboard([]LeaderboardEntry) error
}

// SortAndTrim orders entries by profit descending and truncates them to
// MaxLeaderboardEntries. The input slice is not modified.
func SortAndTrim(entries []LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profit > out[j].Profit
	})
	if len(out) > MaxLeaderboardEntries {
		out = out[:MaxLeaderboardEntries]
	}
	return out
}
