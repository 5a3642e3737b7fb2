package eggtrail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/sim"
	"github.com/vovakirdan/eggtrail/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  100,
		ScreenH:  32,
		TickRate: 30,
		Seed:     12345,
	}
}

// newTestGame resets a game with yaml layered over the defaults.
func newTestGame(t *testing.T, yaml string) *Game {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eggtrail.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetStartLevel(1)
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(testRuntime())
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func clickAt(g *Game, x, y int, secondary bool) core.StepResult {
	in := core.NewInputFrame()
	in.AddClick(core.Click{X: x, Y: y, Secondary: secondary})
	return g.Step(in)
}

// nodeCell returns the screen cell over snapping node i.
func nodeCell(g *Game, i int) (int, int) {
	t := g.world.Track()
	return g.layout.toCell(t.PointAt(t.Nodes()[i]))
}

func TestGameDeterminism(t *testing.T) {
	run := func() sim.Snapshot {
		g := newTestGame(t, "economy:\n  starting_coins: 100\n")
		x, y := nodeCell(g, 15)
		for i := range 400 {
			in := core.NewInputFrame()
			switch i {
			case 5:
				in.Set(core.ActionBuyPortal)
			case 6:
				in.AddClick(core.Click{X: x, Y: y})
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Score != snap2.Score || snap1.Coins != snap2.Coins {
		t.Errorf("Determinism failed: score/coins %d/%d vs %d/%d", snap1.Score, snap1.Coins, snap2.Score, snap2.Coins)
	}
	if len(snap1.Balls) != len(snap2.Balls) {
		t.Fatalf("Determinism failed: %d eggs vs %d", len(snap1.Balls), len(snap2.Balls))
	}
	for i := range snap1.Balls {
		if snap1.Balls[i].Pos != snap2.Balls[i].Pos {
			t.Errorf("Determinism failed: egg %d at %v vs %v", i, snap1.Balls[i].Pos, snap2.Balls[i].Pos)
		}
	}
	if len(snap1.Portals) != 1 {
		t.Errorf("len(Portals) = %d, expected the clicked portal placed", len(snap1.Portals))
	}
}

func TestGameResetStartsLevelOne(t *testing.T) {
	g := newTestGame(t, "")
	state := g.State()
	if state.Level != 1 || state.GameOver || state.Score != 0 {
		t.Errorf("State() = %+v, expected a fresh level 1", state)
	}
	if !g.World().Started() {
		t.Error("level 1 should start without a skill selection")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := newTestGame(t, "")
	l := g.layout
	for y := l.fieldTop; y < l.fieldBottom(); y++ {
		for x := 0; x < l.cols; x++ {
			p, ok := l.toPixel(x, y)
			if !ok {
				t.Fatalf("toPixel(%d, %d) rejected a field cell", x, y)
			}
			if cx, cy := l.toCell(p); cx != x || cy != y {
				t.Fatalf("toCell(toPixel(%d, %d)) = %d, %d", x, y, cx, cy)
			}
		}
	}

	for _, y := range []int{0, l.rows - 1} {
		if _, ok := l.toPixel(10, y); ok {
			t.Errorf("toPixel(10, %d) accepted a HUD row", y)
		}
	}
}

func TestShopClickBuysAndBackRefunds(t *testing.T) {
	g := newTestGame(t, "economy:\n  starting_coins: 100\n")

	clickAt(g, 1, g.layout.fieldTop+shopRow(int(sim.KindPortal)), false)
	p, ok := g.World().PendingPlacement()
	if !ok || p.Kind != sim.KindPortal {
		t.Fatalf("PendingPlacement() = %+v, %v, expected a portal", p, ok)
	}
	if g.State().Coins != 90 {
		t.Errorf("Coins = %d, expected 90", g.State().Coins)
	}

	step(g, core.ActionBack)
	if _, ok := g.World().PendingPlacement(); ok {
		t.Error("Back should cancel the pending placement")
	}
	if g.State().Coins != 100 {
		t.Errorf("Coins = %d after cancel, expected 100", g.State().Coins)
	}
}

func TestConfirmPlacesAtCursorAndRemoveRefunds(t *testing.T) {
	g := newTestGame(t, "economy:\n  starting_coins: 100\n")
	g.cursorX, g.cursorY = nodeCell(g, 24)

	step(g, core.ActionBuyPortal)
	step(g, core.ActionConfirm)
	if n := len(g.Snapshot().Portals); n != 1 {
		t.Fatalf("len(Portals) = %d, expected 1", n)
	}

	step(g, core.ActionRemove)
	if n := len(g.Snapshot().Portals); n != 0 {
		t.Errorf("len(Portals) = %d after remove, expected 0", n)
	}
	if g.State().Coins != 92 {
		t.Errorf("Coins = %d, expected 90 + 2 refund", g.State().Coins)
	}
}

func TestConfirmPlacesPendingAfterWin(t *testing.T) {
	g := newTestGame(t, `economy:
  starting_coins: 100
physics:
  accel: 100000
  max_speed: 100000
round:
  levels:
    - { target: 1, blocks: false }
    - { target: 1, blocks: false }
`)
	for range 90 {
		step(g)
		if g.world.Result() == sim.ResultSuccess {
			break
		}
	}
	if g.world.Result() != sim.ResultSuccess || !g.world.RoundActive() {
		t.Fatalf("Result() = %v, expected a won round still running", g.world.Result())
	}

	g.cursorX, g.cursorY = nodeCell(g, 24)
	step(g, core.ActionBuyPortal)
	step(g, core.ActionConfirm)
	if n := len(g.Snapshot().Portals); n != 1 {
		t.Errorf("len(Portals) = %d, expected the pending portal placed", n)
	}
	if g.State().Level != 1 {
		t.Errorf("Level = %d, expected 1 while a placement was pending", g.State().Level)
	}

	step(g, core.ActionConfirm)
	if g.State().Level != 2 {
		t.Errorf("Level = %d, expected 2 once nothing is pending", g.State().Level)
	}
}

func TestRightClickRemoves(t *testing.T) {
	g := newTestGame(t, "economy:\n  starting_coins: 100\n")
	x, y := nodeCell(g, 24)

	step(g, core.ActionBuyPortal)
	clickAt(g, x, y, false)
	clickAt(g, x, y, true)
	if n := len(g.Snapshot().Portals); n != 0 {
		t.Errorf("len(Portals) = %d, expected the right click to remove it", n)
	}
}

func TestCursorStaysInField(t *testing.T) {
	g := newTestGame(t, "")
	for range 200 {
		step(g, core.ActionUp, core.ActionLeft)
	}
	if x, y := g.Cursor(); x != 0 || y != g.layout.fieldTop {
		t.Errorf("Cursor() = %d, %d, expected 0, %d", x, y, g.layout.fieldTop)
	}
	for range 200 {
		step(g, core.ActionDown, core.ActionRight)
	}
	if x, y := g.Cursor(); x != g.layout.cols-1 || y != g.layout.fieldBottom()-1 {
		t.Errorf("Cursor() = %d, %d, expected the bottom-right field cell", x, y)
	}
}

func TestSkillSelectionOnAdvancedLevel(t *testing.T) {
	SetStartLevel(2)
	g := newTestGame(t, "")

	if !g.World().AwaitingSkills() {
		t.Fatal("level 2 should wait for a skill selection")
	}
	step(g, core.ActionConfirm)
	if g.World().Started() {
		t.Fatal("confirm without skills should not start")
	}

	clickAt(g, g.layout.utilX+1, g.layout.fieldTop+skillRow(1), false)
	if !g.World().SkillActive(sim.SkillCoinRain) {
		t.Fatal("clicking the skill line should toggle it")
	}
	step(g, core.ActionConfirm)
	if !g.World().Started() {
		t.Error("confirm with a skill should start the round")
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(t, "")
	step(g)
	before := g.World().Elapsed()

	step(g, core.ActionPause)
	for range 30 {
		step(g)
	}
	if !g.State().Paused {
		t.Fatal("State().Paused = false")
	}
	if got := g.World().Elapsed(); got != before {
		t.Errorf("Elapsed() = %v while paused, expected %v", got, before)
	}

	step(g, core.ActionPause)
	if g.World().Elapsed() <= before {
		t.Error("clock should run again after unpausing")
	}
}

func TestTimeoutAndRetry(t *testing.T) {
	g := newTestGame(t, "round:\n  time: 1\n")
	var result core.StepResult
	for range 31 {
		result = step(g)
	}
	if !result.State.GameOver || result.State.Result != "fail" {
		t.Fatalf("State = %+v, expected a failed round", result.State)
	}

	step(g, core.ActionConfirm)
	if g.State().Level != 1 {
		t.Error("Confirm must not advance after a failed round")
	}

	result = step(g, core.ActionRetry)
	if result.State.GameOver || result.State.Result != "" {
		t.Errorf("State = %+v after retry, expected a fresh round", result.State)
	}
}

func TestRenderDrawsHUDAndTrack(t *testing.T) {
	g := newTestGame(t, "")
	screen := core.NewScreen(100, 32)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Level 1") || !strings.Contains(row, "Time 60s") {
		t.Errorf("HUD row = %q", row)
	}
	if !strings.ContainsRune(screen.String(), TrackGlyph) {
		t.Error("expected the track to be drawn")
	}
	if row := screen.Row(g.layout.fieldTop); !strings.Contains(row, "SHOP") || !strings.Contains(row, "CHARGES") {
		t.Errorf("panel header row = %q", row)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "")
	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q is not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil || g.ID() != GameID {
		t.Errorf("Create(%q) = %v, %v", GameID, g, err)
	}
}
