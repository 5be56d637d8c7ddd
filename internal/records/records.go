// Package records keeps the best-score bookkeeping for Lines rounds.
//
// A Tracker listens to an engine, follows the highest score reached in
// the current round and hands one Entry to a Saver when the round ends.
// Rounds whose peak never rose above zero are not recorded.
package records

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/logging"
)

// Entry is the record of one finished round.
type Entry struct {
	RoundID string
	GameID  string
	Score   int // Peak score reached during the round
	Final   int // Score when the round ended
	Moves   int
	Reason  string
	EndedAt time.Time
}

// Saver persists finished rounds.
type Saver interface {
	SaveRecord(e Entry) error
}

// Tracker follows one engine at a time.
type Tracker struct {
	gameID string
	saver  Saver
	logger *log.Logger

	engine  *lines.Engine
	unsub   func()
	roundID string
	score   int
	peak    int
	best    int
	saved   bool
	last    *Entry
}

// NewTracker creates a tracker for gameID. saver may be nil, in which case
// only the in-memory best is kept. best seeds the all-time best score.
func NewTracker(gameID string, saver Saver, best int, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{
		gameID: gameID,
		saver:  saver,
		logger: logger,
		best:   best,
	}
}

// Attach starts following e, detaching from any previous engine.
func (t *Tracker) Attach(e *lines.Engine) {
	t.Detach()
	t.engine = e
	t.score = e.Score()
	t.peak = max(t.score, 0)
	t.unsub = e.Subscribe(t.handle)
}

// Detach stops following the current engine.
func (t *Tracker) Detach() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
	t.engine = nil
}

// Peak returns the highest score reached in the current round.
func (t *Tracker) Peak() int { return t.peak }

// Best returns the all-time best, including the round in progress.
func (t *Tracker) Best() int { return max(t.best, t.peak) }

// RoundID returns the identifier of the current round.
func (t *Tracker) RoundID() string { return t.roundID }

// Last returns the most recently recorded entry, if any.
func (t *Tracker) Last() (Entry, bool) {
	if t.last == nil {
		return Entry{}, false
	}
	return *t.last, true
}

func (t *Tracker) handle(ev lines.Event) {
	switch ev := ev.(type) {
	case lines.ScoreUpdated:
		t.score = ev.Score
		if ev.Score > t.peak {
			t.peak = ev.Score
		}
	case lines.GameReset:
		t.roundID = uuid.NewString()
		t.peak = max(t.score, 0)
		t.saved = false
		t.logger.Debug("round started", "game", t.gameID, "round", t.roundID, "score", t.score)
	case lines.GameOver:
		t.finish(ev.Reason)
	}
}

func (t *Tracker) finish(reason lines.GameOverReason) {
	if t.saved {
		return
	}
	t.saved = true

	if t.peak <= 0 {
		t.logger.Info("round ended without a record", "game", t.gameID, "reason", reason.String())
		return
	}

	entry := Entry{
		RoundID: t.roundID,
		GameID:  t.gameID,
		Score:   t.peak,
		Final:   t.score,
		Reason:  reason.String(),
		EndedAt: time.Now(),
	}
	if t.engine != nil {
		entry.Moves = t.engine.Moves()
	}
	if entry.RoundID == "" {
		entry.RoundID = uuid.NewString()
	}
	t.last = &entry
	if t.peak > t.best {
		t.best = t.peak
	}

	t.logger.Info("round ended", "game", t.gameID, "peak", entry.Score, "final", entry.Final, "moves", entry.Moves, "reason", entry.Reason)

	if t.saver == nil {
		return
	}
	if err := t.saver.SaveRecord(entry); err != nil {
		t.logger.Error("failed to save record", "game", t.gameID, "err", err)
	}
}
