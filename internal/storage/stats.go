package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-hamster/internal/stats"
)

// Ensure Store implements stats.Backend
var _ stats.Backend = (*Store)(nil)

// LoadStats implements stats.Backend. A user with no row has zero stats.
func (s *Store) LoadStats(user string) (stats.Snapshot, error) {
	var snap stats.Snapshot

	err := s.db.QueryRow(
		`SELECT games_played, total_runs, total_loops FROM user_stats WHERE user = ?`,
		user,
	).Scan(&snap.GamesPlayed, &snap.TotalRuns, &snap.TotalLoops)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("storage: cannot load stats: %w", err)
	}

	snap.Achievements, err = s.Achievements(user)
	if err != nil {
		return snap, err
	}
	return snap, nil
}

// Achievements returns the API names of the user's unlocked achievements.
func (s *Store) Achievements(user string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT api_name FROM user_achievements WHERE user = ? ORDER BY api_name`,
		user,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// SaveStats implements stats.Backend. Achievements are only ever added.
func (s *Store) SaveStats(user string, values map[string]int, achievements []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(
		`INSERT INTO user_stats (user, games_played, total_runs, total_loops, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user) DO UPDATE SET
			games_played = excluded.games_played,
			total_runs = excluded.total_runs,
			total_loops = excluded.total_loops,
			updated_at = excluded.updated_at`,
		user,
		values[stats.StatGamesPlayed],
		values[stats.StatTotalRuns],
		values[stats.StatTotalLoops],
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}

	sorted := append([]string(nil), achievements...)
	sort.Strings(sorted)
	for _, name := range sorted {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO user_achievements (user, api_name) VALUES (?, ?)`,
			user, name,
		); err != nil {
			return fmt.Errorf("storage: cannot save achievement %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// ResetStats implements stats.Backend. Leaderboard entries and race
// history are kept.
func (s *Store) ResetStats(user string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM user_stats WHERE user = ?", user); err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM user_achievements WHERE user = ?", user); err != nil {
		return fmt.Errorf("storage: cannot reset achievements: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}
