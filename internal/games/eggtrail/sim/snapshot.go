package sim

import (
	"fmt"
	"time"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// BallView is a renderable copy of a ball.
type BallView struct {
	Color    int
	Pos      track.Point
	Progress float64
	InPipe   bool
	Special  bool
	Value    int
}

// ShopEntry describes one purchasable gadget.
type ShopEntry struct {
	Kind        Kind
	Title       string
	Description string
	Cost        int
	Locked      bool
	ChargeOnly  bool
}

// SkillEntry describes one passive skill on the selection screen.
type SkillEntry struct {
	Skill       Skill
	Title       string
	Description string
	Available   bool
	Active      bool
}

// Snapshot is a value copy of everything the presentation layer draws.
// It holds no references into the world.
type Snapshot struct {
	Level     int
	Score     int
	Coins     int
	Target    int
	Remaining float64
	RoundTime float64

	Started        bool
	RoundActive    bool
	AwaitingSkills bool
	Result         RoundResult

	Balls    []BallView
	Pipes    []Pipe
	Blocks   []Block
	Turbos   []TurboZone
	Pads     []BouncePad
	Portals  []Portal
	Storms   []StormEmitter
	Powerups []Powerup
	Popups   []CoinPopup

	PortalState     PortalState
	PortalRemaining time.Duration

	Charges     [chargeCount]int
	BoostActive bool
	BoostReady  bool

	Pending    Pending
	HasPending bool

	Shop   []ShopEntry
	Skills []SkillEntry
	Status string
}

// ChargeCount returns the charges held for c.
func (s Snapshot) ChargeCount(c Charge) int {
	if c < 0 || c >= chargeCount {
		return 0
	}
	return s.Charges[c]
}

// Snapshot copies the renderable state. It never changes the world.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Level:          w.level,
		Score:          w.score,
		Coins:          w.coins,
		Target:         w.target,
		Remaining:      w.remaining(),
		RoundTime:      w.cfg.Round.Time,
		Started:        w.started,
		RoundActive:    w.roundActive,
		AwaitingSkills: w.AwaitingSkills(),
		Result:         w.result,

		PortalState:     w.portalState,
		PortalRemaining: w.PortalPhaseRemaining(),
		Charges:         w.charges,
		BoostActive:     w.boostActive,
		BoostReady:      w.BoostReady(),
	}

	s.Balls = make([]BallView, 0, len(w.balls))
	for _, b := range w.balls {
		pos := w.track.PointAtDistance(b.Distance)
		if b.InPipe {
			pos = track.Point{X: b.PipeX, Y: b.PipeY}
		}
		s.Balls = append(s.Balls, BallView{
			Color:    b.Color,
			Pos:      pos,
			Progress: w.track.ProgressOf(b.Distance),
			InPipe:   b.InPipe,
			Special:  b.Special,
			Value:    b.ScoreValue + b.BonusScore,
		})
	}
	s.Pipes = copyAll(w.pipes)
	s.Blocks = copyAll(w.blocks)
	s.Turbos = copyAll(w.turbos)
	s.Pads = copyAll(w.pads)
	s.Portals = copyAll(w.portals)
	s.Storms = copyAll(w.storms)
	s.Powerups = copyAll(w.powerups)
	s.Popups = append([]CoinPopup(nil), w.popups...)

	if w.pending != nil {
		s.Pending = *w.pending
		s.HasPending = true
	}

	for _, k := range Kinds {
		s.Shop = append(s.Shop, ShopEntry{
			Kind:        k,
			Title:       shopInfo[k].title,
			Description: shopInfo[k].description,
			Cost:        w.Cost(k),
			Locked:      !w.Unlocked(k),
			ChargeOnly:  k == KindStorm,
		})
	}
	for _, sk := range Skills {
		s.Skills = append(s.Skills, SkillEntry{
			Skill:       sk,
			Title:       skillInfo[sk].title,
			Description: skillInfo[sk].description,
			Available:   w.SkillAvailable(sk),
			Active:      w.skills[sk],
		})
	}
	s.Status = w.statusLine()
	return s
}

func copyAll[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}

// statusLine is the tooltip shown under the playfield.
func (w *World) statusLine() string {
	switch {
	case w.status != "":
		return w.status
	case w.AwaitingSkills():
		return "Choose your skills, then confirm to start"
	case w.pending != nil:
		info := shopInfo[w.pending.Kind]
		return fmt.Sprintf("Place %s: %s", info.title, info.description)
	case w.result == ResultSuccess && w.roundActive:
		return "Target reached! Keep going or advance"
	case w.result == ResultSuccess:
		return "Level cleared"
	case w.result == ResultFail:
		return "Out of time"
	default:
		return ""
	}
}
