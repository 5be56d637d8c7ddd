package lines

// Event is a state-change notification delivered synchronously to subscribers.
type Event interface {
	linesEvent()
}

// CellUpdated is sent whenever a cell's kind changes, including clears.
type CellUpdated struct {
	X, Y int
	Kind Kind
}

func (CellUpdated) linesEvent() {}

// ScoreUpdated is sent whenever the score is set.
type ScoreUpdated struct {
	Score int
}

func (ScoreUpdated) linesEvent() {}

// GameReset is sent once per Start or Restore, after the board and score are set.
type GameReset struct{}

func (GameReset) linesEvent() {}

// GameOver is sent exactly once per round.
type GameOver struct {
	Reason GameOverReason
}

func (GameOver) linesEvent() {}

// SelectionChanged is sent when a selection is made or dropped.
type SelectionChanged struct {
	Pos    Pos
	Active bool
}

func (SelectionChanged) linesEvent() {}

// LinesCut is sent after the cells of the removed runs were cleared.
type LinesCut struct {
	Runs    []Run
	Removed int
}

func (LinesCut) linesEvent() {}

// Configured is sent when the board dimensions change.
type Configured struct {
	Columns, Rows, Kinds int
}

func (Configured) linesEvent() {}

// GameOverReason describes why a round ended.
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonBoardFull
	ReasonNegativeScore
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonBoardFull:
		return "board full"
	case ReasonNegativeScore:
		return "score below zero"
	default:
		return "none"
	}
}

type subscriber struct {
	id int
	fn func(Event)
}
