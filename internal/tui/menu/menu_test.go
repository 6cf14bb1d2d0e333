// ABOUTME: Tests for the main menu screen
// ABOUTME: Validates cursor movement, selection messages, and count summary

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCursorMovement(t *testing.T) {
	m := New()

	if m.cursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", m.cursor)
	}

	m.Update(keyMsg("down"))
	if m.cursor != 1 {
		t.Errorf("expected cursor at 1 after down, got %d", m.cursor)
	}

	m.Update(keyMsg("up"))
	m.Update(keyMsg("up"))
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m.Update(keyMsg("j"))
	}
	if m.cursor != len(m.entries)-1 {
		t.Errorf("expected cursor clamped at last entry, got %d", m.cursor)
	}
}

func TestEnterSelectsEntry(t *testing.T) {
	m := New()
	m.Update(keyMsg("down"))

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}

	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatal("expected SelectedMsg")
	}
	if sel.Item != ItemCategories {
		t.Errorf("expected ItemCategories, got %v", sel.Item)
	}
}

func TestQSelectsQuit(t *testing.T) {
	m := New()

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected a command from q")
	}

	sel, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatal("expected SelectedMsg")
	}
	if sel.Item != ItemQuit {
		t.Errorf("expected ItemQuit, got %v", sel.Item)
	}
}

func TestViewShowsCountsOnlyWhenKnown(t *testing.T) {
	m := New()

	if strings.Contains(m.View(), "products in") {
		t.Error("expected no summary before counts are set")
	}

	m.SetCounts(42, 7)
	view := m.View()
	if !strings.Contains(view, "42 products in 7 categories") {
		t.Errorf("expected count summary in view, got:\n%s", view)
	}
}
