package config

import (
	_ "embed"
)

//go:embed defaults/starlane.yaml
var defaultStarlaneYAML []byte

// DefaultStarlaneConfig returns the built-in configuration. It mirrors the
// embedded defaults/starlane.yaml.
func DefaultStarlaneConfig() StarlaneConfig {
	return StarlaneConfig{
		Playfield: PlayfieldConfig{
			MinX: -38,
			MaxX: 38,
			MinY: 0,
			MaxY: 20,
		},
		Player: PlayerConfig{
			Y:            19,
			Speed:        30,
			Health:       1,
			Lives:        3,
			HalfWidth:    1.5,
			HalfHeight:   0.5,
			FireCooldown: 0.25,
		},
		Combat: CombatConfig{
			DamagePerHit:          1,
			PlayerProjectileSpeed: 30,
			EnemyProjectileSpeed:  12,
			ProjectileHalfWidth:   0.25,
			ProjectileHalfHeight:  0.5,
			SpreadOffset:          1.5,
		},
		Enemies: EnemyKinds{
			Scout:   EnemyConfig{Health: 1, Points: 100, Speed: 2.0, FireInterval: 0, HalfWidth: 1.5, HalfHeight: 0.5},
			Fighter: EnemyConfig{Health: 2, Points: 200, Speed: 1.5, FireInterval: 2.5, HalfWidth: 1.5, HalfHeight: 0.5},
			Bomber:  EnemyConfig{Health: 3, Points: 300, Speed: 1.0, FireInterval: 4.0, HalfWidth: 2.0, HalfHeight: 0.5},
		},
		Waves: WaveConfig{
			BaseBudget:    4,
			BudgetPerWave: 2,
			BaseInterval:  1.2,
			IntervalDecay: 0.9,
			MinInterval:   0.4,
			LaneMargin:    4,
		},
		Formation: FormationConfig{
			SwaySpeed:  1.5,
			SwayPeriod: 2.0,
		},
		PowerUps: PowerUpConfig{
			DropChance: 0.1,
			Duration:   5.0,
			FallSpeed:  3.0,
			HalfSize:   0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `starlane config`.
func DefaultYAML() []byte {
	return defaultStarlaneYAML
}
