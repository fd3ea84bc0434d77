package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hamster/internal/stats"
)

// rankedEntries orders a board by score, earliest submission first on ties.
const rankedEntries = `
	SELECT ROW_NUMBER() OVER (ORDER BY score DESC, updated_at ASC, user ASC) AS pos,
	       user, score
	FROM leaderboard_entries
	WHERE board_id = ?`

// FindLeaderboard implements stats.Backend. Boards are created on first use.
func (s *Store) FindLeaderboard(name string) (stats.BoardHandle, error) {
	if name == "" {
		return 0, fmt.Errorf("storage: leaderboard name is empty")
	}
	if _, err := s.db.Exec("INSERT OR IGNORE INTO leaderboards (name) VALUES (?)", name); err != nil {
		return 0, fmt.Errorf("storage: cannot create leaderboard: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM leaderboards WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot find leaderboard: %w", err)
	}
	return stats.BoardHandle(id), nil
}

// LeaderboardEntries implements stats.Backend. For ScopeGlobal start and end
// are inclusive 1-based ranks. For ScopeAroundUser they are offsets from the
// user's rank, and a user without an entry gets no rows.
func (s *Store) LeaderboardEntries(board stats.BoardHandle, user string, scope stats.Scope, start, end int) ([]stats.Entry, error) {
	lo, hi := start, end
	if scope == stats.ScopeAroundUser {
		rank, err := s.userRank(board, user)
		if err != nil {
			return nil, err
		}
		if rank == 0 {
			return nil, nil
		}
		lo, hi = rank+start, rank+end
	}
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT pos, user, score FROM (`+rankedEntries+`) WHERE pos BETWEEN ? AND ? ORDER BY pos`,
		int64(board), lo, hi,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []stats.Entry
	for rows.Next() {
		var e stats.Entry
		if err := rows.Scan(&e.Rank, &e.User, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// userRank returns the user's 1-based rank, 0 when they have no entry.
func (s *Store) userRank(board stats.BoardHandle, user string) (int, error) {
	var rank int
	err := s.db.QueryRow(
		`SELECT pos FROM (`+rankedEntries+`) WHERE user = ?`,
		int64(board), user,
	).Scan(&rank)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return rank, nil
}

// UploadLeaderboardScore implements stats.Backend. With keepBest an existing
// higher or equal score is left in place.
func (s *Store) UploadLeaderboardScore(board stats.BoardHandle, user string, score int, keepBest bool) (bool, int, error) {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM leaderboards WHERE id = ?", int64(board)).Scan(&exists); err != nil {
		return false, 0, fmt.Errorf("storage: cannot check leaderboard: %w", err)
	}
	if exists == 0 {
		return false, 0, fmt.Errorf("storage: unknown leaderboard %d", board)
	}

	var prev sql.NullInt64
	err := s.db.QueryRow(
		"SELECT score FROM leaderboard_entries WHERE board_id = ? AND user = ?",
		int64(board), user,
	).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, 0, fmt.Errorf("storage: cannot query score: %w", err)
	}

	changed := false
	if !prev.Valid || !keepBest || int64(score) > prev.Int64 {
		_, err := s.db.Exec(
			`INSERT INTO leaderboard_entries (board_id, user, score, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(board_id, user) DO UPDATE SET
				score = excluded.score,
				updated_at = excluded.updated_at`,
			int64(board), user, score,
		)
		if err != nil {
			return false, 0, fmt.Errorf("storage: cannot save score: %w", err)
		}
		changed = true
	}

	rank, err := s.userRank(board, user)
	if err != nil {
		return changed, 0, err
	}
	return changed, rank, nil
}

// LeaderboardNames returns all known boards.
func (s *Store) LeaderboardNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM leaderboards ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboards: %w", err)
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
	return names, rows.Err()
}
