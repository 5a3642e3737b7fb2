// Package sim is the Egg Trail simulation core: eggs moving along a track,
// the gadgets that modify them, the round controller and the placement
// economy.
//
// A World is not safe for concurrent use. Callers that drive one world from
// several goroutines wrap it in a Session.
package sim

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// Skill is a passive ability chosen before a round starts.
type Skill int

const (
	SkillSuperEgg Skill = iota
	SkillCoinRain
	SkillRapidFire
	skillCount
)

// Skills lists the passive skills in menu order.
var Skills = []Skill{SkillSuperEgg, SkillCoinRain, SkillRapidFire}

// Key returns the stable key of the skill.
func (s Skill) Key() string {
	switch s {
	case SkillSuperEgg:
		return "super_egg"
	case SkillCoinRain:
		return "coin_rain"
	case SkillRapidFire:
		return "rapid_fire"
	default:
		return "unknown"
	}
}

// World is the single aggregate holding one player's game.
type World struct {
	cfg   config.EggTrailConfig
	track *track.Track
	clock Clock
	rng   *rand.Rand

	level  int
	score  int
	coins  int
	target int

	started     bool
	roundActive bool
	result      RoundResult
	roundStart  time.Time

	skills       [skillCount]bool
	spawnTimer   float64
	spawnCount   int
	coinRainAcc  float64
	rapidFireAcc float64

	balls    []*Ball
	pipes    []*Pipe
	blocks   []*Block
	turbos   []*TurboZone
	pads     []*BouncePad
	portals  []*Portal
	storms   []*StormEmitter
	powerups []*Powerup
	popups   []CoinPopup

	nextID        [kindCount]int
	purchases     [kindCount]int
	nextPowerupID int
	charges       [chargeCount]int
	pending       *Pending

	portalState     PortalState
	portalPhaseEnds time.Time

	nextPowerupAt time.Time

	boostActive  bool
	boostEndsAt  time.Time
	boostReadyAt time.Time

	status string
	events []Event
}

// Option configures a World at construction.
type Option func(*World)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(w *World) { w.clock = c }
}

// WithSeed makes every random roll reproducible.
func WithSeed(seed uint64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithTrack replaces the track built from the configuration.
func WithTrack(t *track.Track) Option {
	return func(w *World) { w.track = t }
}

// New creates a world and resets it to startLevel.
func New(cfg config.EggTrailConfig, startLevel int, opts ...Option) *World {
	w := &World{
		cfg:   cfg,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if w.track == nil {
		w.track = track.Build(cfg.Track.Width, cfg.Track.Height, track.Layout{
			ShopWidth:       cfg.Track.ShopWidth,
			UtilityWidth:    cfg.Track.UtilityWidth,
			StepsPerSegment: cfg.Track.StepsPerSegment,
			Nodes:           cfg.Track.Nodes,
		})
	}
	w.ResetRound(startLevel, false)
	return w
}

// Track returns the immutable path.
func (w *World) Track() *track.Track {
	return w.track
}

// Config returns the configuration the world runs with.
func (w *World) Config() config.EggTrailConfig {
	return w.cfg
}

// Level returns the current 1-based level.
func (w *World) Level() int { return w.level }

// Score returns the round score.
func (w *World) Score() int { return w.score }

// Coins returns the spendable coins.
func (w *World) Coins() int { return w.coins }

// Target returns the score needed to win the current level.
func (w *World) Target() int { return w.target }

// Started reports whether the round clock is running or has run.
func (w *World) Started() bool { return w.started }

// RoundActive reports whether the countdown is still going.
func (w *World) RoundActive() bool { return w.roundActive }

// Result returns the round outcome so far.
func (w *World) Result() RoundResult { return w.result }

// GameOver reports whether the countdown has finished.
func (w *World) GameOver() bool { return w.started && !w.roundActive }

// Charges returns the number of charges held for c.
func (w *World) Charges(c Charge) int {
	if c < 0 || c >= chargeCount {
		return 0
	}
	return w.charges[c]
}

// PendingPlacement returns the gadget waiting for a placement click.
func (w *World) PendingPlacement() (Pending, bool) {
	if w.pending == nil {
		return Pending{}, false
	}
	return *w.pending, true
}

// PortalState returns the state of the portal pair.
func (w *World) PortalState() PortalState { return w.portalState }

// BoostActive reports whether the speed boost is running.
func (w *World) BoostActive() bool { return w.boostActive }

// Status returns the current tooltip line.
func (w *World) Status() string { return w.status }

// Elapsed returns the time since the round clock started.
func (w *World) Elapsed() time.Duration {
	if !w.started {
		return 0
	}
	return w.clock.Now().Sub(w.roundStart)
}

func (w *World) now() time.Time {
	return w.clock.Now()
}

func (w *World) advancedUnlocked() bool {
	return w.level >= w.cfg.Unlocks.Advanced
}

func (w *World) multiplier() float64 {
	if w.boostActive {
		return w.cfg.Boost.Factor
	}
	return 1
}

func (w *World) distanceOf(progress float64) float64 {
	return w.track.DistanceOf(progress)
}

func (w *World) nextGadgetID(k Kind) int {
	w.nextID[k]++
	return w.nextID[k]
}

func (w *World) popup(text string, pos track.Point, tone Tone) {
	w.popups = append(w.popups, CoinPopup{
		Text:      text,
		Pos:       pos,
		Tone:      tone,
		ExpiresAt: w.now().Add(config.Seconds(w.cfg.Popups.Lifetime)),
	})
}

func (w *World) findPipe(id int) *Pipe {
	for _, p := range w.pipes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// crossed is the half-open crossing test used by every gadget.
func crossed(last, target, d float64) bool {
	return last < target && target <= d
}
