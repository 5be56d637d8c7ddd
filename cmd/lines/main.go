// lines is a terminal version of the Lines ball puzzle.
//
// Usage:
//
//	lines list              - List available boards
//	lines play [board]      - Play a board (default: lines)
//	lines menu              - Start menu to pick boards interactively
//	lines serve             - Start SSH server for remote play
//	lines scores [board]    - Show records for a board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.arcade/lines.db)
//	--config <path>       - Custom lines.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/games/colorlines"
	"github.com/vovakirdan/tui-lines/internal/logging"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lines - line up coloured balls in your terminal",
	Long: `Lines is a terminal ball puzzle. Move one ball per turn onto any empty
cell; lining up three or more of one colour in a row or column removes
them and scores a point per ball. A move that removes nothing costs a
point and drops new balls on the board.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server for remote play
  scores   - View records

Examples:
  lines play
  lines play lines_mini --difficulty hard
  lines menu
  lines serve --ssh :2222
  lines scores lines --clear`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if flagConfig != "" {
			cfg, err := config.LoadLines(flagConfig)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", flagConfig, err)
			}
		}
		colorlines.SetConfigPath(flagConfig)
		colorlines.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom lines.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", logging.DefaultLogFile, "Log file for interactive sessions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openLogger returns the file logger used while the alt-screen is active.
// Falls back to a silent logger if the file cannot be opened.
func openLogger() (*log.Logger, func()) {
	f, err := logging.OpenFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logging.New(f, "lines", flagLogLevel), func() { f.Close() }
}

// openStore opens the records database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		logger.Warn("running without records", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}
