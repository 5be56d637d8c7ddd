package storage

import (
	"fmt"
	"time"
)

// GameStats aggregates the stored rounds of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalMoves int64
	LastPlayed time.Time
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(moves), 0), MAX(created_at)`

// GetGameStats aggregates one game. A game without rounds yields zero
// stats, not an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	var last any
	err := s.db.QueryRow("SELECT "+statsColumns+" FROM scores WHERE game_id = ?", gameID).
		Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalMoves, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// GetAllGamesStats aggregates every game that has rounds, keyed by game id.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query("SELECT game_id, " + statsColumns + " FROM scores GROUP BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*GameStats)
	for rows.Next() {
		st := &GameStats{}
		var last any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalMoves, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(last)
		out[st.GameID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
