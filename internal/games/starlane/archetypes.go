package starlane

import (
	"github.com/vovakirdan/starlane/internal/config"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// SpawnPlayer creates the player ship centered on its lane.
func SpawnPlayer(ctx *Context) ecs.Entity {
	pc := ctx.Cfg.Player
	x := (ctx.Cfg.Playfield.MinX + ctx.Cfg.Playfield.MaxX) / 2
	e := ctx.World.Create(
		Transform{X: x, Y: pc.Y},
		Velocity{},
		Health{Current: pc.Health, Max: pc.Health},
		FactionPlayer,
		Bounds{HalfW: pc.HalfWidth, HalfH: pc.HalfHeight},
		Sprite{Kind: SpritePlayer},
		Weapon{Cooldown: pc.FireCooldown},
	)
	ctx.Player = e
	return e
}

// enemyConfig returns the tuning for kind.
func enemyConfig(cfg *config.StarlaneConfig, kind EnemyKind) config.EnemyConfig {
	switch kind {
	case EnemyFighter:
		return cfg.Enemies.Fighter
	case EnemyBomber:
		return cfg.Enemies.Bomber
	default:
		return cfg.Enemies.Scout
	}
}

// SpawnEnemy creates an enemy of the given kind at (x, y), descending at
// the kind's speed.
func SpawnEnemy(ctx *Context, kind EnemyKind, x, y float64) ecs.Entity {
	ec := enemyConfig(ctx.Cfg, kind)
	return ctx.World.Create(
		Transform{X: x, Y: y},
		Velocity{DY: ec.Speed},
		Health{Current: ec.Health, Max: ec.Health},
		FactionEnemy,
		Bounds{HalfW: ec.HalfWidth, HalfH: ec.HalfHeight},
		Sprite{Kind: kind.Sprite()},
		Enemy{Kind: kind, Points: ec.Points, FireInterval: ec.FireInterval, FireTimer: ec.FireInterval},
	)
}

// SpawnProjectile creates a projectile of faction f moving vertically at vy.
func SpawnProjectile(ctx *Context, f Faction, x, y, vy float64) ecs.Entity {
	cc := ctx.Cfg.Combat
	sprite := SpritePlayerShot
	if f == FactionEnemyProjectile {
		sprite = SpriteEnemyShot
	}
	return ctx.World.Create(
		Transform{X: x, Y: y},
		Velocity{DY: vy},
		f,
		Bounds{HalfW: cc.ProjectileHalfWidth, HalfH: cc.ProjectileHalfHeight},
		Sprite{Kind: sprite},
	)
}

// SpawnPickup creates a falling power-up at (x, y).
func SpawnPickup(ctx *Context, kind PowerUpKind, x, y float64) ecs.Entity {
	pc := ctx.Cfg.PowerUps
	sprite := SpritePickupDouble
	if kind == PowerUpTripleShot {
		sprite = SpritePickupTriple
	}
	return ctx.World.Create(
		Transform{X: x, Y: y},
		Velocity{DY: pc.FallSpeed},
		FactionPickup,
		Bounds{HalfW: pc.HalfSize, HalfH: pc.HalfSize},
		Sprite{Kind: sprite},
		Pickup{Kind: kind},
	)
}
