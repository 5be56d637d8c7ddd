package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-lines/internal/records"
)

// timeLayout is how SQLite's CURRENT_TIMESTAMP formats datetimes (UTC).
const timeLayout = "2006-01-02 15:04:05"

const entryColumns = "id, game_id, round_id, score, final_score, moves, reason, created_at"

// ScoreEntry is one stored round. Score is the peak the round reached.
type ScoreEntry struct {
	ID        int64
	GameID    string
	RoundID   string
	Score     int
	Final     int
	Moves     int
	Reason    string
	CreatedAt time.Time
}

var _ records.Saver = (*Store)(nil)

// SaveRecord implements records.Saver. A zero EndedAt is stamped by the
// database.
func (s *Store) SaveRecord(e records.Entry) error {
	_, err := s.insert(ScoreEntry{
		GameID:    e.GameID,
		RoundID:   e.RoundID,
		Score:     e.Score,
		Final:     e.Final,
		Moves:     e.Moves,
		Reason:    e.Reason,
		CreatedAt: e.EndedAt,
	})
	return err
}

// SaveScore stores a bare score and returns the new row id.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return s.insert(ScoreEntry{GameID: gameID, Score: score, Final: score})
}

func (s *Store) insert(e ScoreEntry) (int64, error) {
	var createdAt any // NULL falls back to CURRENT_TIMESTAMP via COALESCE
	if !e.CreatedAt.IsZero() {
		createdAt = e.CreatedAt.UTC().Format(timeLayout)
	}
	res, err := s.db.Exec(
		`INSERT INTO scores (game_id, round_id, score, final_score, moves, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		e.GameID, e.RoundID, e.Score, e.Final, e.Moves, e.Reason, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit rounds, highest peak first; equal peaks
// keep the order they were set in. limit <= 0 means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.entries("WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?", gameID, limit)
}

// AllScores returns every round of a game in TopScores order.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.entries("WHERE game_id = ? ORDER BY score DESC, id ASC", gameID)
}

// RecentRounds returns up to limit rounds, newest first. limit <= 0 means 20.
func (s *Store) RecentRounds(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.entries("WHERE game_id = ? ORDER BY id DESC LIMIT ?", gameID, limit)
}

func (s *Store) entries(clause string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query("SELECT "+entryColumns+" FROM scores "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var created any
		if err := rows.Scan(&e.ID, &e.GameID, &e.RoundID, &e.Score, &e.Final, &e.Moves, &e.Reason, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime accepts the time.Time or string forms the driver may return.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339, time.RFC3339Nano} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// HighScore returns the best peak stored for a game, or 0.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every round of a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
