package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func menuStep(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = mm
	}
	return m
}

func TestMenuItemsCarryRecords(t *testing.T) {
	m := NewMenuModel(seededStore(t), testConfig())

	items := m.Items()
	if len(items) < 2 {
		t.Fatalf("expected both boards, got %d", len(items))
	}
	byID := map[string]MenuItem{}
	for _, it := range items {
		byID[it.GameID] = it
	}
	if it := byID["lines"]; it.Best != 12 || it.Rounds != 3 || it.Summary == "" {
		t.Errorf("lines item = %+v", it)
	}
	if it := byID["lines_mini"]; it.Best != 4 || it.Rounds != 1 {
		t.Errorf("lines_mini item = %+v", it)
	}
	if !strings.Contains(m.View(), "best 12 over 3 rounds") {
		t.Error("menu view should show the stored best")
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want MenuResult
	}{
		{"pick second", []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}}, MenuResult{GameID: "lines_mini"}},
		{"cursor stops at top", []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter}}, MenuResult{GameID: "lines"}},
		{"records", []tea.Msg{tea.KeyMsg{Type: tea.KeyTab}}, MenuResult{WantsScoreboard: true}},
		{"quit", []tea.Msg{runeKey('q')}, MenuResult{Quit: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := menuStep(t, NewMenuModel(nil, testConfig()), tt.keys...)
			got := m.result()
			tt.want.Config = testConfig()
			if got != tt.want {
				t.Errorf("result() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := menuStep(t, NewMenuModel(nil, testConfig()), tea.WindowSizeMsg{Width: 120, Height: 50})
	if c := m.Config(); c.ScreenW != 120 || c.ScreenH != 50 {
		t.Errorf("Config() = %+v", c)
	}
}
