package lines

import "fmt"

// Rules holds the scoring and spawn constants of a round.
type Rules struct {
	BaseSpawn          int  // Balls placed at start and after the first non-clearing move
	SpawnGrowth        int  // Extra balls per completed non-clearing move
	InitialScore       int  // Score at the start of a round
	MovePenalty        int  // Points lost per non-clearing move
	MinRun             int  // Shortest line that gets removed
	EndOnNegativeScore bool // A negative score ends the round
}

// DefaultRules returns the classic rule set.
func DefaultRules() Rules {
	return Rules{
		BaseSpawn:          3,
		SpawnGrowth:        0,
		InitialScore:       10,
		MovePenalty:        1,
		MinRun:             3,
		EndOnNegativeScore: true,
	}
}

// BatchSize returns the number of balls spawned after the given count of
// completed non-clearing moves.
func (r Rules) BatchSize(moves int) int {
	return r.BaseSpawn + r.SpawnGrowth*moves
}

// Validate checks the rule constants.
func (r Rules) Validate() error {
	switch {
	case r.BaseSpawn < 0:
		return fmt.Errorf("%w: base spawn must not be negative, got %d", ErrInvalidConfiguration, r.BaseSpawn)
	case r.SpawnGrowth < 0:
		return fmt.Errorf("%w: spawn growth must not be negative, got %d", ErrInvalidConfiguration, r.SpawnGrowth)
	case r.MovePenalty < 0:
		return fmt.Errorf("%w: move penalty must not be negative, got %d", ErrInvalidConfiguration, r.MovePenalty)
	case r.MinRun < 2:
		return fmt.Errorf("%w: minimum run must be at least 2, got %d", ErrInvalidConfiguration, r.MinRun)
	}
	return nil
}

// Config describes a board and its rules.
type Config struct {
	Columns int
	Rows    int
	Kinds   int // Number of kinds including Empty
	Rules   Rules
	Seed    int64
}

// DefaultConfig returns a 9x9 board with six ball colours.
func DefaultConfig() Config {
	return Config{
		Columns: 9,
		Rows:    9,
		Kinds:   7,
		Rules:   DefaultRules(),
	}
}

// Validate checks dimensions, kind count and rules.
func (c Config) Validate() error {
	if err := validateShape(c.Columns, c.Rows, c.Kinds); err != nil {
		return err
	}
	return c.Rules.Validate()
}

func validateShape(columns, rows, kinds int) error {
	switch {
	case columns <= 0:
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidConfiguration, columns)
	case rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfiguration, rows)
	case kinds < 2:
		return fmt.Errorf("%w: need at least 2 kinds (one empty, one colour), got %d", ErrInvalidConfiguration, kinds)
	}
	return nil
}
