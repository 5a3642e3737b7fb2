// Package config provides YAML-based game configuration loading and
// difficulty presets for Egg Trail.
package config

import (
	"errors"
	"fmt"
	"time"
)

// EggTrailConfig contains every tunable of the simulation.
// Durations are float seconds in YAML.
type EggTrailConfig struct {
	Track    TrackConfig   `yaml:"track"`
	Physics  PhysicsConfig `yaml:"physics"`
	Round    RoundConfig   `yaml:"round"`
	Unlocks  UnlockConfig  `yaml:"unlocks"`
	Pipe     PipeConfig    `yaml:"pipe"`
	Block    BlockConfig   `yaml:"block"`
	Turbo    TurboConfig   `yaml:"turbo"`
	Portal   PortalConfig  `yaml:"portal"`
	Pad      PadConfig     `yaml:"pad"`
	Storm    StormConfig   `yaml:"storm"`
	Powerups PowerupConfig `yaml:"powerups"`
	Boost    BoostConfig   `yaml:"boost"`
	Skills   SkillsConfig  `yaml:"skills"`
	Economy  EconomyConfig `yaml:"economy"`
	Popups   PopupConfig   `yaml:"popups"`
	Removal  RemovalConfig `yaml:"removal"`
}

// TrackConfig describes the playfield and the Z path drawn inside it.
type TrackConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	ShopWidth       float64 `yaml:"shop_width"`
	UtilityWidth    float64 `yaml:"utility_width"`
	StepsPerSegment int     `yaml:"steps_per_segment"`
	Nodes           int     `yaml:"nodes"` // snapping grid size
}

// PhysicsConfig defines egg motion. Speeds are pixels per second.
type PhysicsConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
	Accel         float64 `yaml:"accel"`
	MaxSpeed      float64 `yaml:"max_speed"`
	BallRadius    float64 `yaml:"ball_radius"`
	Colors        int     `yaml:"colors"`
}

// RoundConfig defines the countdown and the level table.
type RoundConfig struct {
	Time   float64       `yaml:"time"`
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig is one row of the level table.
type LevelConfig struct {
	Target int  `yaml:"target"`
	Blocks bool `yaml:"blocks"`
}

// UnlockConfig lists the first level each feature becomes available at.
type UnlockConfig struct {
	Advanced  int `yaml:"advanced"` // skills, speed boost, power-ups
	Turbo     int `yaml:"turbo"`
	Pad       int `yaml:"pad"`
	RapidFire int `yaml:"rapid_fire"`
}

// PipeConfig defines vertical pipes.
type PipeConfig struct {
	Costs  []int   `yaml:"costs"`
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"` // fallback chute height when the column has no track pair
}

// BlockUpgrade is one step of the diminishing-returns upgrade schedule.
type BlockUpgrade struct {
	ActiveBonus float64 `yaml:"active_bonus"`
	CooldownCut float64 `yaml:"cooldown_cut"`
}

// BlockConfig defines slowing blocks.
type BlockConfig struct {
	Costs            []int          `yaml:"costs"`
	SlowFactor       float64        `yaml:"slow_factor"`
	Bonus            int            `yaml:"bonus"`
	ActiveDuration   float64        `yaml:"active_duration"`
	CooldownDuration float64        `yaml:"cooldown_duration"`
	Upgrades         []BlockUpgrade `yaml:"upgrades"`
}

// TurboConfig defines turbo lanes.
type TurboConfig struct {
	Costs      []int   `yaml:"costs"`
	Length     float64 `yaml:"length"` // fraction of the track
	Multiplier float64 `yaml:"multiplier"`
}

// PortalConfig defines the portal pair.
type PortalConfig struct {
	Cost             int     `yaml:"cost"`
	ActiveDuration   float64 `yaml:"active_duration"`
	CooldownDuration float64 `yaml:"cooldown_duration"`
	InfusionSeconds  float64 `yaml:"infusion_seconds"`
	Radius           float64 `yaml:"radius"`
	TeleportOffset   float64 `yaml:"teleport_offset"`
	SpeedFloor       float64 `yaml:"speed_floor"`
}

// PadConfig defines bounce (supply) pads.
type PadConfig struct {
	Cost     int     `yaml:"cost"`
	Removals int     `yaml:"removals"`
	DropMin  int     `yaml:"drop_min"`
	DropMax  int     `yaml:"drop_max"`
	Spread   float64 `yaml:"spread"` // progress spread of scattered drops
	Radius   float64 `yaml:"radius"`
}

// StormConfig defines storm emitters.
type StormConfig struct {
	Window          float64 `yaml:"window"`
	Target          int     `yaml:"target"`
	RewardMin       int     `yaml:"reward_min"`
	RewardMax       int     `yaml:"reward_max"`
	DisplayDuration float64 `yaml:"display_duration"`
	Radius          float64 `yaml:"radius"`
}

// PowerupConfig defines collectible power-ups along the track.
type PowerupConfig struct {
	DelayMin    float64 `yaml:"delay_min"`
	DelayMax    float64 `yaml:"delay_max"`
	MaxActive   int     `yaml:"max_active"`
	Lifetime    float64 `yaml:"lifetime"`
	MinProgress float64 `yaml:"min_progress"`
	MaxProgress float64 `yaml:"max_progress"`
}

// BoostConfig defines the speed-boost consumable.
type BoostConfig struct {
	Duration float64 `yaml:"duration"`
	Factor   float64 `yaml:"factor"`
	Cooldown float64 `yaml:"cooldown"`
}

// SkillsConfig defines the passive skills.
type SkillsConfig struct {
	SpecialEggValue   int     `yaml:"special_egg_value"`
	SpecialEvery      int     `yaml:"special_every"`
	CoinRainRate      float64 `yaml:"coin_rain_rate"`
	RapidFireInterval float64 `yaml:"rapid_fire_interval"`
}

// EconomyConfig defines currency rules.
type EconomyConfig struct {
	StartingCoins int `yaml:"starting_coins"`
	RemovalRefund int `yaml:"removal_refund"`
}

// PopupConfig defines floating feedback text.
type PopupConfig struct {
	Lifetime float64 `yaml:"lifetime"`
}

// RemovalConfig holds hit radii for removal clicks that have no other home.
type RemovalConfig struct {
	BlockRadius float64 `yaml:"block_radius"`
	TurboRadius float64 `yaml:"turbo_radius"`
	PipeMargin  float64 `yaml:"pipe_margin"`
}

// Seconds converts a YAML float-seconds value to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Level returns the level row for a 1-based level number, clamped to the table.
func (c EggTrailConfig) Level(level int) LevelConfig {
	if len(c.Round.Levels) == 0 {
		return LevelConfig{}
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Round.Levels) {
		idx = len(c.Round.Levels) - 1
	}
	return c.Round.Levels[idx]
}

// MaxLevel returns the number of configured levels.
func (c EggTrailConfig) MaxLevel() int {
	return len(c.Round.Levels)
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values the simulation cannot run without.
func (c EggTrailConfig) Validate() error {
	switch {
	case c.Track.Width <= 0 || c.Track.Height <= 0:
		return fmt.Errorf("%w: track size must be positive", ErrInvalidConfig)
	case c.Track.StepsPerSegment <= 0:
		return fmt.Errorf("%w: track.steps_per_segment must be positive", ErrInvalidConfig)
	case c.Track.Nodes < 2:
		return fmt.Errorf("%w: track.nodes must be at least 2", ErrInvalidConfig)
	case c.Physics.SpawnInterval <= 0:
		return fmt.Errorf("%w: physics.spawn_interval must be positive", ErrInvalidConfig)
	case c.Round.Time <= 0:
		return fmt.Errorf("%w: round.time must be positive", ErrInvalidConfig)
	case len(c.Round.Levels) == 0:
		return fmt.Errorf("%w: round.levels is empty", ErrInvalidConfig)
	case len(c.Pipe.Costs) == 0:
		return fmt.Errorf("%w: pipe.costs is empty", ErrInvalidConfig)
	case len(c.Block.Costs) == 0:
		return fmt.Errorf("%w: block.costs is empty", ErrInvalidConfig)
	case len(c.Turbo.Costs) == 0:
		return fmt.Errorf("%w: turbo.costs is empty", ErrInvalidConfig)
	case c.Pad.DropMin > c.Pad.DropMax:
		return fmt.Errorf("%w: pad.drop_min exceeds pad.drop_max", ErrInvalidConfig)
	case c.Powerups.DelayMin > c.Powerups.DelayMax:
		return fmt.Errorf("%w: powerups.delay_min exceeds powerups.delay_max", ErrInvalidConfig)
	}
	return nil
}
