package sim

import (
	"time"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail/track"
)

// Kind identifies a placeable gadget.
type Kind int

const (
	KindPipe Kind = iota
	KindBlock
	KindTurbo
	KindPad
	KindPortal
	KindStorm
	kindCount
)

// Kinds lists every gadget kind in shop order.
var Kinds = []Kind{KindPipe, KindBlock, KindTurbo, KindPad, KindPortal, KindStorm}

// String returns the shop key of the kind.
func (k Kind) String() string {
	switch k {
	case KindPipe:
		return "pipe"
	case KindBlock:
		return "block"
	case KindTurbo:
		return "turbo"
	case KindPad:
		return "pad"
	case KindPortal:
		return "portal"
	case KindStorm:
		return "storm"
	default:
		return "unknown"
	}
}

// Charge identifies a consumable ability. Collectible power-ups carry one.
type Charge int

const (
	ChargeSpeedBoost Charge = iota
	ChargeStorm
	ChargePad
	chargeCount
)

// String returns a short name for the charge.
func (c Charge) String() string {
	switch c {
	case ChargeSpeedBoost:
		return "boost"
	case ChargeStorm:
		return "storm"
	case ChargePad:
		return "pad"
	default:
		return "unknown"
	}
}

// PortalState is the shared state of the portal pair.
type PortalState int

const (
	PortalInactive PortalState = iota
	PortalActive
	PortalCooldown
)

// String returns the state name.
func (s PortalState) String() string {
	switch s {
	case PortalActive:
		return "active"
	case PortalCooldown:
		return "cooldown"
	default:
		return "inactive"
	}
}

// StormPhase is the lifecycle phase of a storm emitter.
type StormPhase int

const (
	StormCounting StormPhase = iota
	StormRewarding
)

// RoundResult is the outcome of a round.
type RoundResult int

const (
	ResultNone RoundResult = iota
	ResultSuccess
	ResultFail
)

// String returns "", "success" or "fail".
func (r RoundResult) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFail:
		return "fail"
	default:
		return ""
	}
}

// IDSet is a small set of gadget ids.
type IDSet map[int]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id.
func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Ball is one egg on the track.
type Ball struct {
	Color        int
	Distance     float64
	LastDistance float64
	Speed        float64

	InPipe bool
	PipeID int
	PipeX  float64
	PipeY  float64

	UsedPipes  IDSet
	BlockHits  IDSet
	TurboHits  IDSet
	PortalHits IDSet

	BonusScore int
	ScoreValue int
	CoinValue  int
	Special    bool
}

func newBall(color, value int, special bool) *Ball {
	return &Ball{
		Color:      color,
		ScoreValue: value,
		CoinValue:  value,
		Special:    special,
		UsedPipes:  IDSet{},
		BlockHits:  IDSet{},
		TurboHits:  IDSet{},
		PortalHits: IDSet{},
	}
}

// Rect is an axis-aligned rectangle in playfield pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r grown by margin on every side.
func (r Rect) Contains(p track.Point, margin float64) bool {
	return p.X >= r.X-margin && p.X <= r.X+r.W+margin &&
		p.Y >= r.Y-margin && p.Y <= r.Y+r.H+margin
}

// Pipe is a vertical chute from an upper stretch of track to a lower one.
type Pipe struct {
	ID            int
	EntryProgress float64
	ExitProgress  float64
	EntryY        float64
	ExitY         float64
	X             float64
	Rect          Rect
	Cost          int
}

// Block slows eggs and adds bonus score while active.
type Block struct {
	ID               int
	Progress         float64
	Pos              track.Point
	Active           bool
	PhaseStarted     time.Time
	ActiveDuration   time.Duration
	CooldownDuration time.Duration
	Upgrades         int
	Cost             int
}

// TurboZone is a lane that pushes eggs forward and multiplies their value once.
type TurboZone struct {
	ID            int
	StartProgress float64
	EndProgress   float64
	Multiplier    float64
	Cost          int
}

// Center returns the middle of the lane in progress.
func (z *TurboZone) Center() float64 {
	return (z.StartProgress + z.EndProgress) / 2
}

// BouncePad is a supply pad that scatters power-ups once enough other
// gadgets have been removed.
type BouncePad struct {
	ID                int
	Progress          float64
	Pos               track.Point
	RemovalsRemaining int
	Ready             bool
	Cost              int
}

// Portal is one gate of the portal pair.
type Portal struct {
	ID       int
	Progress float64
	Pos      track.Point
	Cost     int
}

// StormEmitter counts passing eggs for a window and then pays a reward.
type StormEmitter struct {
	ID       int
	Progress float64
	Pos      track.Point
	Phase    StormPhase
	PlacedAt time.Time
	Tally    int
	Reward   int
	RewardAt time.Time
}

// Powerup is a collectible sitting on the track.
type Powerup struct {
	ID        int
	Kind      Charge
	Progress  float64
	ExpiresAt time.Time
}

// Tone tells the renderer how to color a popup.
type Tone int

const (
	ToneScore Tone = iota
	ToneCoins
	ToneBonus
	TonePickup
)

// CoinPopup is floating feedback text.
type CoinPopup struct {
	Text      string
	Pos       track.Point
	Tone      Tone
	ExpiresAt time.Time
}

// Pending is a purchased gadget waiting for its placement click.
type Pending struct {
	Kind       Kind
	ID         int
	Cost       int
	FromCharge bool
}
