package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start a round on the specified board (default: lines).

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a ball, then its target cell
  Mouse click  - Select or move at the clicked cell
  Esc          - Drop the selection
  ?            - Show the rules
  P            - Pause
  R            - Start a new round
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Two new balls per miss, no penalty
  normal - Three new balls per miss, one point penalty
  hard   - Growing batches, two point penalty
  fixed  - Config rules without batch growth

Examples:
  lines play
  lines play lines_mini
  lines play --difficulty hard
  lines play --config ./my-lines.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg.WithDefaults()
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "lines"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lines list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	store := openStore(logger)

	runErr := tui.Run(game, store, logger, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
