package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/eggtrail/internal/storage"
)

func TestMenuShowsLevelRecords(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Round{
		{Level: 1, Result: "success", Score: 190},
		{Level: 1, Result: "fail", Score: 120},
	} {
		r.GameID = fakeGameID
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	m := NewMenuModel(store, testConfig(), fakeGameID, testLevels())
	view := m.View()

	tests := []string{"Level 1", "best 190", "won 1/2", "Level 2", "not played", "blocks"}
	for _, want := range tests {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), fakeGameID, testLevels())

	var next tea.Model = m
	for range 5 {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := next.(MenuModel).Selected()
	if sel == nil || sel.Level != 3 {
		t.Fatalf("Selected() = %+v, expected level 3", sel)
	}
	if sel.Target != 2000 || !sel.Blocks {
		t.Errorf("Selected() = %+v, expected the level 3 row", sel)
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(fakeGameID, 50)
	store.SaveScore(fakeGameID, 70)
	store.SaveRound(storage.Round{GameID: fakeGameID, Level: 2, Result: "success", Score: 310})

	m := NewScoreboardModel(store, fakeGameID, 80, 24)
	if m.CurrentView() != BoardBest || len(m.rows) != 2 {
		t.Fatalf("view %v has %d rows, expected best scores with 2", m.CurrentView(), len(m.rows))
	}
	if m.rows[0][1] != "70" {
		t.Errorf("first row = %v, expected score 70", m.rows[0])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.CurrentView() != BoardRecent || len(m.rows) != 1 || m.rows[0][2] != "success" {
		t.Errorf("recent view = %v rows %v", m.CurrentView(), m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.CurrentView() != BoardLevels || len(m.rows) != 1 || m.rows[0][0] != "2" {
		t.Errorf("levels view = %v rows %v", m.CurrentView(), m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.(ScoreboardModel).CurrentView() != BoardRecent {
		t.Error("shift+tab should go back one view")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, fakeGameID, 80, 24)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("View() should explain that scores are unavailable")
	}
}
