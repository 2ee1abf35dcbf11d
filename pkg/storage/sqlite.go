package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists stats and the leaderboard in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	// Stats live in a single fixed row.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			hands_played INTEGER NOT NULL DEFAULT 0,
			hands_won INTEGER NOT NULL DEFAULT 0,
			total_profit INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			profit INTEGER NOT NULL
		)
	`)
	return err
}

// LoadStats returns the stored stats, or a zeroed record when none have
// been saved yet.
func (s *SQLiteStore) LoadStats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT hands_played, hands_won, total_profit FROM stats WHERE id = 1",
	).Scan(&st.HandsPlayed, &st.HandsWon, &st.TotalProfit)
	if err == sql.ErrNoRows {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return st, nil
}

// SaveStats writes the stats row.
func (s *SQLiteStore) SaveStats(st Stats) error {
	_, err := s.db.Exec(`
		INSERT INTO stats (id, hands_played, hands_won, total_profit)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hands_played = excluded.hands_played,
			hands_won = excluded.hands_won,
			total_profit = excluded.total_profit
	`, st.HandsPlayed, st.HandsWon, st.TotalProfit)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// LoadLeaderboard returns the stored entries ordered by profit descending.
func (s *SQLiteStore) LoadLeaderboard() ([]LeaderboardEntry, error) {
	rows, err := s.db.Query("SELECT date, profit FROM leaderboard ORDER BY profit DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Date, &e.Profit); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveLeaderboard replaces the stored leaderboard with the given entries,
// sorted by profit descending and truncated to MaxLeaderboardEntries.
func (s *SQLiteStore) SaveLeaderboard(entries []LeaderboardEntry) error {
	entries = SortAndTrim(entries)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM leaderboard"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.Exec(
			"INSERT INTO leaderboard (date, profit) VALUES (?, ?)",
			e.Date, e.Profit,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
