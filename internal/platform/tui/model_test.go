package tui

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/registry"
	"github.com/vovakirdan/eggtrail/internal/storage"
)

const fakeGameID = "tui_fake"

// fakeGame ends its round after endAt steps and records the input it saw.
type fakeGame struct {
	level  int
	endAt  int
	steps  int
	state  core.GameState
	seen   map[core.Action]int
	clicks []core.Click
}

func (g *fakeGame) ID() string { return fakeGameID }

func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) StartAt(level int) { g.level = level }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.seen = map[core.Action]int{}
	g.clicks = nil
	g.state = core.GameState{Level: max(g.level, 1), Target: 100}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	for a, on := range in.Actions {
		if on {
			g.seen[a]++
		}
	}
	g.clicks = append(g.clicks, in.Clicks...)

	if in.Has(core.ActionRetry) && g.state.GameOver {
		g.steps = 0
		g.state.GameOver, g.state.Result = false, ""
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	g.state.Score = g.steps * 10
	if g.endAt > 0 && g.steps >= g.endAt && !g.state.GameOver {
		g.state.GameOver, g.state.Result = true, "fail"
		g.state.Elapsed = 2.5
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(s *core.Screen) {
	s.Clear()
	s.DrawText(0, 0, "FAKE")
}

func (g *fakeGame) State() core.GameState { return g.state }

var (
	registerFake sync.Once
	lastFake     *fakeGame
	fakeEndAt    int
)

func useFakeGame(endAt int) {
	registerFake.Do(func() {
		registry.Register(fakeGameID, func() registry.Game {
			lastFake = &fakeGame{endAt: fakeEndAt}
			return lastFake
		})
	})
	fakeEndAt = endAt
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm
}

func TestGameModelForwardsInput(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, runeKey('1'))
	m = update(t, m, tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, TickMsg{})

	if game.seen[core.ActionBuyPipe] != 1 {
		t.Errorf("seen[BuyPipe] = %d, expected 1", game.seen[core.ActionBuyPipe])
	}
	if len(game.clicks) != 1 || !game.clicks[0].Secondary {
		t.Errorf("clicks = %+v, expected one right click", game.clicks)
	}

	m = update(t, m, TickMsg{})
	if game.seen[core.ActionBuyPipe] != 1 {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestGameModelEscCancelsDuringPlay(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	m = update(t, m, TickMsg{})
	if m.BackToMenu() {
		t.Fatal("Esc during play should not leave the game")
	}
	if game.seen[core.ActionBack] != 1 {
		t.Errorf("seen[Back] = %d, expected 1", game.seen[core.ActionBack])
	}
}

func TestGameModelRecordsEachRoundOnce(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{endAt: 3}
	m := NewGameModel(game, store, testConfig(), nil)
	m.Init()

	for range 6 {
		m = update(t, m, TickMsg{})
	}
	rounds, err := store.RecentRounds(fakeGameID, 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("len(RecentRounds()) = %d, expected 1", len(rounds))
	}
	r := rounds[0]
	if r.ID != m.LastRoundID() || r.Score != 30 || r.Result != "fail" || r.Target != 100 {
		t.Errorf("round = %+v", r)
	}
	if r.Duration.Seconds() != 2.5 {
		t.Errorf("Duration = %v, expected 2.5s", r.Duration)
	}
	if high, _ := store.HighScore(fakeGameID); high != 30 {
		t.Errorf("HighScore() = %d, expected 30", high)
	}

	m = update(t, m, runeKey(' '))
	for range 4 {
		m = update(t, m, TickMsg{})
	}
	rounds, _ = store.RecentRounds(fakeGameID, 10)
	if len(rounds) != 2 {
		t.Errorf("len(RecentRounds()) = %d after retry, expected 2", len(rounds))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("Esc after the round should go back to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{}, nil, testConfig(), nil)
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelResizeKeepsRound(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, testConfig(), nil)
	m.Init()
	for range 3 {
		m = update(t, m, TickMsg{})
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.steps != 3 {
		t.Errorf("steps = %d after resize, expected the round to continue", game.steps)
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 40 {
		t.Errorf("View() has %d lines, expected 40", len(lines))
	}
}

func testLevels() []config.LevelConfig {
	return []config.LevelConfig{{Target: 180}, {Target: 300}, {Target: 2000, Blocks: true}}
}

func TestSessionMenuStartsSelectedLevel(t *testing.T) {
	useFakeGame(0)
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: fakeGameID, Levels: testLevels()})
	m.Init()

	var next tea.Model = m
	for _, msg := range []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}} {
		next, _ = next.Update(msg)
	}
	s := next.(SessionModel)
	if !s.InGame() {
		t.Fatal("Enter on a level should start the game")
	}
	if lastFake.level != 2 {
		t.Errorf("StartAt() level = %d, expected 2", lastFake.level)
	}
	if !strings.Contains(s.View(), "FAKE") {
		t.Error("View() should show the game")
	}
}

func TestSessionStartLevelSkipsMenu(t *testing.T) {
	useFakeGame(1)
	m := NewSessionModel(nil, testConfig(), SessionOptions{GameID: fakeGameID, Levels: testLevels(), StartLevel: 3})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should start the level")
	}

	next, _ := m.Update(cmd())
	next, _ = next.Update(TickMsg{})
	if !next.(SessionModel).InGame() || lastFake.level != 3 {
		t.Fatalf("session should be in level 3, got level %d", lastFake.level)
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEscape})
	s := next.(SessionModel)
	if s.InGame() {
		t.Error("Esc after the round should return to the menu")
	}
	if !strings.Contains(s.View(), "Select a level") {
		t.Error("View() should show the menu")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(fakeGameID, 42)

	m := NewSessionModel(store, testConfig(), SessionOptions{GameID: fakeGameID, Levels: testLevels()})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(next.View(), "HIGH SCORES") {
		t.Fatal("Tab should open the scoreboard")
	}

	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("leaving the scoreboard must not quit the session")
		}
	}
	if !strings.Contains(next.View(), "Select a level") {
		t.Error("Esc should return to the menu")
	}
}
