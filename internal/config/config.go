// Package config provides YAML-based configuration loading for the
// simulation: playfield, player, enemy kinds, waves, and power-ups.
package config

import "fmt"

// StarlaneConfig contains all tunable parameters of the simulation.
type StarlaneConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Player    PlayerConfig    `yaml:"player"`
	Combat    CombatConfig    `yaml:"combat"`
	Enemies   EnemyKinds      `yaml:"enemies"`
	Waves     WaveConfig      `yaml:"waves"`
	Formation FormationConfig `yaml:"formation"`
	PowerUps  PowerUpConfig   `yaml:"powerups"`
}

// PlayfieldConfig defines the world rectangle. Y grows downward: enemies
// enter at MinY and escape past MaxY.
type PlayfieldConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// Width returns the horizontal extent.
func (p PlayfieldConfig) Width() float64 { return p.MaxX - p.MinX }

// Height returns the vertical extent.
func (p PlayfieldConfig) Height() float64 { return p.MaxY - p.MinY }

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Y            float64 `yaml:"y"`             // Fixed lane
	Speed        float64 `yaml:"speed"`         // Units per second
	Health       int     `yaml:"health"`        // Hits absorbed per life
	Lives        int     `yaml:"lives"`         // Lives per game
	HalfWidth    float64 `yaml:"half_width"`    // Collision half extent
	HalfHeight   float64 `yaml:"half_height"`   // Collision half extent
	FireCooldown float64 `yaml:"fire_cooldown"` // Seconds between shots
}

// CombatConfig defines projectiles and damage.
type CombatConfig struct {
	DamagePerHit          int     `yaml:"damage_per_hit"`
	PlayerProjectileSpeed float64 `yaml:"player_projectile_speed"`
	EnemyProjectileSpeed  float64 `yaml:"enemy_projectile_speed"`
	ProjectileHalfWidth   float64 `yaml:"projectile_half_width"`
	ProjectileHalfHeight  float64 `yaml:"projectile_half_height"`
	SpreadOffset          float64 `yaml:"spread_offset"` // Side-shot distance for power-ups
}

// EnemyConfig defines one enemy kind.
type EnemyConfig struct {
	Health       int     `yaml:"health"`
	Points       int     `yaml:"points"`
	Speed        float64 `yaml:"speed"`         // Descent speed, units per second
	FireInterval float64 `yaml:"fire_interval"` // Seconds between shots, 0 = unarmed
	HalfWidth    float64 `yaml:"half_width"`
	HalfHeight   float64 `yaml:"half_height"`
}

// EnemyKinds holds the three enemy kinds.
type EnemyKinds struct {
	Scout   EnemyConfig `yaml:"scout"`
	Fighter EnemyConfig `yaml:"fighter"`
	Bomber  EnemyConfig `yaml:"bomber"`
}

// FormationConfig defines the shared horizontal sway of all enemies.
type FormationConfig struct {
	SwaySpeed  float64 `yaml:"sway_speed"`
	SwayPeriod float64 `yaml:"sway_period"` // Seconds between direction flips
}

// PowerUpConfig defines pickups dropped by destroyed enemies.
type PowerUpConfig struct {
	DropChance float64 `yaml:"drop_chance"` // 0.0 - 1.0
	Duration   float64 `yaml:"duration"`    // Seconds
	FallSpeed  float64 `yaml:"fall_speed"`
	HalfSize   float64 `yaml:"half_size"`
}

// Validate checks the parts of the config that cannot be repaired per wave.
// Wave parameters are validated lazily at wave start instead.
func (c StarlaneConfig) Validate() error {
	if c.Playfield.MaxX <= c.Playfield.MinX || c.Playfield.MaxY <= c.Playfield.MinY {
		return fmt.Errorf("config: empty playfield [%v,%v]x[%v,%v]",
			c.Playfield.MinX, c.Playfield.MaxX, c.Playfield.MinY, c.Playfield.MaxY)
	}
	if c.Player.Y < c.Playfield.MinY || c.Player.Y > c.Playfield.MaxY {
		return fmt.Errorf("config: player lane y=%v outside playfield", c.Player.Y)
	}
	if c.Player.Lives <= 0 {
		return fmt.Errorf("config: player lives must be positive, got %d", c.Player.Lives)
	}
	if c.Player.Health <= 0 {
		return fmt.Errorf("config: player health must be positive, got %d", c.Player.Health)
	}
	if c.Combat.DamagePerHit <= 0 {
		return fmt.Errorf("config: damage_per_hit must be positive, got %d", c.Combat.DamagePerHit)
	}
	kinds := []struct {
		name string
		cfg  EnemyConfig
	}{
		{"scout", c.Enemies.Scout},
		{"fighter", c.Enemies.Fighter},
		{"bomber", c.Enemies.Bomber},
	}
	for _, k := range kinds {
		if k.cfg.Health <= 0 {
			return fmt.Errorf("config: enemy %s health must be positive, got %d", k.name, k.cfg.Health)
		}
	}
	return nil
}
