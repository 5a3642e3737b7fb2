package config

import (
	_ "embed"
)

//go:embed defaults/eggtrail.yaml
var defaultEggTrailYAML []byte

// DefaultEggTrailConfig returns the built-in Egg Trail tuning.
// It mirrors defaults/eggtrail.yaml and is the last fallback of the loader.
func DefaultEggTrailConfig() EggTrailConfig {
	return EggTrailConfig{
		Track: TrackConfig{
			Width:           820,
			Height:          620,
			ShopWidth:       140,
			UtilityWidth:    150,
			StepsPerSegment: 36,
			Nodes:           40,
		},
		Physics: PhysicsConfig{
			SpawnInterval: 0.3,
			Accel:         180,
			MaxSpeed:      480,
			BallRadius:    12,
			Colors:        4,
		},
		Round: RoundConfig{
			Time: 60,
			Levels: []LevelConfig{
				{Target: 180, Blocks: false},
				{Target: 300, Blocks: true},
				{Target: 2000, Blocks: true},
				{Target: 4000, Blocks: true},
			},
		},
		Unlocks: UnlockConfig{
			Advanced:  2,
			Turbo:     3,
			Pad:       3,
			RapidFire: 3,
		},
		Pipe: PipeConfig{
			Costs:  []int{10, 20, 25, 40, 60},
			Speed:  1000,
			Width:  22,
			Height: 180,
		},
		Block: BlockConfig{
			Costs:            []int{16, 25, 30, 38, 40, 50, 80, 100, 120, 150},
			SlowFactor:       0.35,
			Bonus:            2,
			ActiveDuration:   5,
			CooldownDuration: 4,
			Upgrades: []BlockUpgrade{
				{ActiveBonus: 1.5, CooldownCut: 1.0},
				{ActiveBonus: 1.0, CooldownCut: 0.75},
				{ActiveBonus: 0.75, CooldownCut: 0.5},
				{ActiveBonus: 0.5, CooldownCut: 0.25},
			},
		},
		Turbo: TurboConfig{
			Costs:      []int{25, 45, 60, 80, 110},
			Length:     0.05,
			Multiplier: 2,
		},
		Portal: PortalConfig{
			Cost:             10,
			ActiveDuration:   10,
			CooldownDuration: 30,
			InfusionSeconds:  3,
			Radius:           26,
			TeleportOffset:   18,
			SpeedFloor:       18,
		},
		Pad: PadConfig{
			Cost:     10,
			Removals: 3,
			DropMin:  3,
			DropMax:  5,
			Spread:   0.04,
			Radius:   38,
		},
		Storm: StormConfig{
			Window:          5,
			Target:          12,
			RewardMin:       5,
			RewardMax:       60,
			DisplayDuration: 1.5,
			Radius:          30,
		},
		Powerups: PowerupConfig{
			DelayMin:    6,
			DelayMax:    12,
			MaxActive:   3,
			Lifetime:    12,
			MinProgress: 0.1,
			MaxProgress: 0.9,
		},
		Boost: BoostConfig{
			Duration: 3,
			Factor:   2,
			Cooldown: 20,
		},
		Skills: SkillsConfig{
			SpecialEggValue:   10,
			SpecialEvery:      5,
			CoinRainRate:      10,
			RapidFireInterval: 0.5,
		},
		Economy: EconomyConfig{
			StartingCoins: 0,
			RemovalRefund: 2,
		},
		Popups: PopupConfig{
			Lifetime: 1.0,
		},
		Removal: RemovalConfig{
			BlockRadius: 18,
			TurboRadius: 16,
			PipeMargin:  8,
		},
	}
}
