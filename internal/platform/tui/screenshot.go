package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-lines/internal/core"
)

// screenshotDir is the default location for ctrl+s captures.
func screenshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return filepath.Join(home, ".arcade", "screenshots"), nil
}

// saveScreenshot writes the screen as plain text into dir and returns the
// file path. Files are named <game>_<timestamp>.txt.
func saveScreenshot(dir, gameID string, s *core.Screen, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", gameID, at.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}
