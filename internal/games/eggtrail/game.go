// Package eggtrail adapts the egg trail simulation to the arcade platform:
// it owns a World, drives its clock from fixed ticks, maps keyboard and
// mouse input to world operations and draws the state into a cell screen.
package eggtrail

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/sim"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
	"github.com/vovakirdan/eggtrail/internal/registry"
)

// GameID is the registry key of the game.
const GameID = "eggtrail"

// epoch is the start of every manual clock. Only differences matter.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel is the level a fresh game begins on.
var startLevel = 1

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel sets the level new games begin on.
func SetStartLevel(level int) {
	startLevel = max(level, 1)
}

// SetLogger routes game events to l. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for Egg Trail.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.EggTrailConfig
	clock   *sim.ManualClock
	world   *sim.World
	log     *log.Logger

	level   int // start level override, 0 uses SetStartLevel
	paused  bool
	layout  layout
	cursorX int
	cursorY int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Egg Trail game instance.
func New() *Game {
	return &Game{}
}

// StartAt makes the next Reset begin on level.
func (g *Game) StartAt(level int) {
	g.level = max(level, 1)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Egg Trail"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.WithPrefix(GameID)

	cfg, err := config.LoadEggTrail(configPath)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultEggTrailConfig()
	}
	if difficultyPreset != "" {
		config.ApplyEggTrailPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	level := startLevel
	if g.level > 0 {
		level = g.level
	}
	level = core.Clamp(level, 1, cfg.MaxLevel())
	g.clock = sim.NewManualClock(epoch)
	g.world = sim.New(cfg, level, sim.WithClock(g.clock), sim.WithSeed(uint64(runtime.Seed)))
	g.paused = false

	g.minScreenW = 60
	g.minScreenH = 20
	g.resize(runtime.ScreenW, runtime.ScreenH)
	g.cursorX = g.layout.cols / 2
	g.cursorY = g.layout.fieldTop + g.layout.fieldRows/2

	g.logEvents()
}

func (g *Game) resize(w, h int) {
	if w == g.layout.cols && h == g.layout.rows {
		return
	}
	g.layout = newLayout(w, h, g.cfg.Track)
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
	g.cursorX = core.Clamp(g.cursorX, 0, max(w-1, 0))
	g.cursorY = core.Clamp(g.cursorY, g.layout.fieldTop, max(g.layout.fieldBottom()-1, g.layout.fieldTop))
}

// World exposes the simulation for tests and tools.
func (g *Game) World() *sim.World {
	return g.world
}

// Snapshot returns the renderable world state.
func (g *Game) Snapshot() sim.Snapshot {
	return g.world.Snapshot()
}

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() (x, y int) {
	return g.cursorX, g.cursorY
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if !g.paused && !g.screenTooSmall {
		for _, a := range actionOrder {
			if input.Has(a) {
				g.apply(a)
			}
		}
		for _, c := range input.Clicks {
			g.click(c)
		}

		dt := g.runtime.DeltaSeconds()
		g.clock.AdvanceSeconds(dt)
		g.world.Tick(dt)
	}

	g.logEvents()
	return core.StepResult{State: g.State()}
}

// actionOrder fixes the order actions of one frame are applied in.
var actionOrder = []core.Action{
	core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
	core.ActionRestart, core.ActionRetry,
	core.ActionSkill1, core.ActionSkill2, core.ActionSkill3,
	core.ActionBack,
	core.ActionBuyPipe, core.ActionBuyBlock, core.ActionBuyTurbo, core.ActionBuyPad, core.ActionBuyPortal,
	core.ActionSpeedBoost, core.ActionStorm, core.ActionPadCharge,
	core.ActionConfirm, core.ActionRemove,
}

var buyActions = map[core.Action]sim.Kind{
	core.ActionBuyPipe:   sim.KindPipe,
	core.ActionBuyBlock:  sim.KindBlock,
	core.ActionBuyTurbo:  sim.KindTurbo,
	core.ActionBuyPad:    sim.KindPad,
	core.ActionBuyPortal: sim.KindPortal,
}

var chargeActions = map[core.Action]sim.Charge{
	core.ActionSpeedBoost: sim.ChargeSpeedBoost,
	core.ActionStorm:      sim.ChargeStorm,
	core.ActionPadCharge:  sim.ChargePad,
}

var skillActions = map[core.Action]sim.Skill{
	core.ActionSkill1: sim.SkillSuperEgg,
	core.ActionSkill2: sim.SkillCoinRain,
	core.ActionSkill3: sim.SkillRapidFire,
}

func (g *Game) apply(a core.Action) {
	w := g.world
	if k, ok := buyActions[a]; ok {
		w.Purchase(k)
		return
	}
	if c, ok := chargeActions[a]; ok {
		w.ActivateConsumable(c)
		return
	}
	if s, ok := skillActions[a]; ok {
		w.ToggleSkill(s)
		return
	}

	switch a {
	case core.ActionUp:
		g.moveCursor(0, -1)
	case core.ActionDown:
		g.moveCursor(0, 1)
	case core.ActionLeft:
		g.moveCursor(-1, 0)
	case core.ActionRight:
		g.moveCursor(1, 0)
	case core.ActionRestart:
		w.Restart()
	case core.ActionRetry:
		if w.GameOver() {
			w.Retry()
		}
	case core.ActionBack:
		w.CancelPending()
	case core.ActionConfirm:
		g.confirm()
	case core.ActionRemove:
		if p, ok := g.layout.toPixel(g.cursorX, g.cursorY); ok {
			w.HandleSecondaryClick(p)
		}
	}
}

// confirm is the context action of Enter. A pending placement lands at the
// cursor before a won round can advance.
func (g *Game) confirm() {
	w := g.world
	_, pending := w.PendingPlacement()
	switch {
	case w.AwaitingSkills():
		w.ConfirmSkills()
	case w.Result() == sim.ResultSuccess && !pending:
		w.AdvanceLevel()
	default:
		if p, ok := g.layout.toPixel(g.cursorX, g.cursorY); ok {
			w.HandlePrimaryClick(p)
		}
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursorX = core.Clamp(g.cursorX+dx, 0, g.layout.cols-1)
	g.cursorY = core.Clamp(g.cursorY+dy, g.layout.fieldTop, g.layout.fieldBottom()-1)
}

// click routes a pointer press to a panel hotspot or to the playfield.
func (g *Game) click(c core.Click) {
	if !c.Secondary {
		if a, ok := g.layout.hotspot(c.X, c.Y); ok {
			g.apply(a)
			return
		}
	}
	p, ok := g.layout.toPixel(c.X, c.Y)
	if !ok {
		return
	}
	g.cursorX, g.cursorY = c.X, c.Y
	if c.Secondary {
		g.world.HandleSecondaryClick(p)
	} else {
		g.world.HandlePrimaryClick(p)
	}
}

// PointAt maps a screen cell to playfield pixels.
func (g *Game) PointAt(x, y int) (track.Point, bool) {
	return g.layout.toPixel(x, y)
}

func (g *Game) logEvents() {
	for _, e := range g.world.DrainEvents() {
		switch e.Type {
		case sim.EventRoundStarted, sim.EventRoundWon, sim.EventRoundEnded, sim.EventRoundReset:
			g.log.Info(e.Type.String(), "level", e.Level, "value", e.Value, "result", e.Result)
		case sim.EventBallSpawned, sim.EventBallCompleted, sim.EventTeleported:
			// per-egg noise
		default:
			g.log.Debug(e.Type.String(), "kind", e.Kind, "charge", e.Charge, "id", e.ID, "value", e.Value)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	w := g.world
	return core.GameState{
		Score:    w.Score(),
		GameOver: w.GameOver(),
		Paused:   g.paused,
		Level:    w.Level(),
		Coins:    w.Coins(),
		Target:   w.Target(),
		Result:   w.Result().String(),
		Elapsed:  w.Elapsed().Seconds(),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
