package sim

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// straightTrack is a 1000 px horizontal track whose snapping nodes sit every
// 25 px, so progress p lives at pixel (1000*p, 0).
func straightTrack() *track.Track {
	return track.FromPoints([]track.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}, 41)
}

type worldOpt func(*config.EggTrailConfig)

// noAccel freezes ball speed so distances move by exactly speed*dt.
func noAccel(c *config.EggTrailConfig) {
	c.Physics.Accel = 0
	c.Physics.MaxSpeed = 10000
}

func newTestWorld(t *testing.T, level int, opts ...worldOpt) (*World, *ManualClock) {
	t.Helper()
	cfg := config.DefaultEggTrailConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	clock := NewManualClock(t0)
	w := New(cfg, level, WithClock(clock), WithSeed(7), WithTrack(straightTrack()))
	return w, clock
}

// startedWorld returns a running world at level, choosing a skill when the
// level asks for one.
func startedWorld(t *testing.T, level int, opts ...worldOpt) (*World, *ManualClock) {
	t.Helper()
	w, clock := newTestWorld(t, level, opts...)
	if w.AwaitingSkills() {
		w.ToggleSkill(SkillSuperEgg)
		if !w.ConfirmSkills() {
			t.Fatalf("ConfirmSkills() = false on level %d", level)
		}
	}
	if !w.RoundActive() {
		t.Fatalf("RoundActive() = false after start on level %d", level)
	}
	return w, clock
}

func px(progress float64) track.Point {
	return track.Point{X: 1000 * progress, Y: 0}
}

func testBall(distance, speed float64) *Ball {
	b := newBall(0, 1, false)
	b.Distance = distance
	b.Speed = speed
	return b
}

func addBlock(w *World, id int, progress float64) *Block {
	bl := &Block{
		ID:               id,
		Progress:         progress,
		Pos:              w.track.PointAt(progress),
		Active:           true,
		PhaseStarted:     w.now(),
		ActiveDuration:   config.Seconds(w.cfg.Block.ActiveDuration),
		CooldownDuration: config.Seconds(w.cfg.Block.CooldownDuration),
	}
	w.blocks = append(w.blocks, bl)
	return bl
}

func addPortal(w *World, id int, progress float64) *Portal {
	p := &Portal{ID: id, Progress: progress, Pos: w.track.PointAt(progress)}
	w.portals = append(w.portals, p)
	return p
}

func addPad(w *World, id int, progress float64) *BouncePad {
	pad := &BouncePad{
		ID:                id,
		Progress:          progress,
		Pos:               w.track.PointAt(progress),
		RemovalsRemaining: w.cfg.Pad.Removals,
	}
	w.pads = append(w.pads, pad)
	return pad
}

func addStorm(w *World, id int, progress float64) *StormEmitter {
	s := &StormEmitter{ID: id, Progress: progress, Pos: w.track.PointAt(progress), PlacedAt: w.now()}
	w.storms = append(w.storms, s)
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
