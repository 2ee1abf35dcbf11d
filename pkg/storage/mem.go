package storage

import "sync"

// MemStore is an in-memory Store used by tests and as a fallback when no
// database is available.
type MemStore struct {
	mu          sync.Mutex
	stats       Stats
	leaderboard []LeaderboardEntry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// LoadStats returns the stored stats.
func (m *MemStore) LoadStats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

// SaveStats replaces the stored stats.
func (m *MemStore) SaveStats(s Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = s
	return nil
}

// LoadLeaderboard returns a copy of the stored leaderboard.
func (m *MemStore) LoadLeaderboard() ([]LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LeaderboardEntry, len(m.leaderboard))
	copy(out, m.leaderboard)
	return out, nil
}

// SaveLeaderboard replaces the stored leaderboard.
func (m *MemStore) SaveLeaderboard(entries []LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboard = make([]LeaderboardEntry, len(entries))
	copy(m.leaderboard, entries)
	return nil
}
