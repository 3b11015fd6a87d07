package starlane

import (
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// Component type identifiers.
const (
	CTransform ecs.ComponentType = iota
	CVelocity
	CHealth
	CFaction
	CBounds
	CSprite
	CEnemy
	CWeapon
	CPickup
	CPowerUp
)

// Transform is an entity's position in world units. Only the movement
// system changes it after creation.
type Transform struct {
	X, Y float64
}

func (Transform) Type() ecs.ComponentType { return CTransform }

// Velocity is displacement per second.
type Velocity struct {
	DX, DY float64
}

func (Velocity) Type() ecs.ComponentType { return CVelocity }

// Health is remaining hit points. The entity is destroyed (or, for the
// player, loses a life) when Current drops to zero or below.
type Health struct {
	Current int
	Max     int
}

func (Health) Type() ecs.ComponentType { return CHealth }

// Faction decides which pairs may collide.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionPlayerProjectile
	FactionEnemyProjectile
	FactionPickup
)

func (Faction) Type() ecs.ComponentType { return CFaction }

// String returns the faction name.
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "Player"
	case FactionEnemy:
		return "Enemy"
	case FactionPlayerProjectile:
		return "PlayerProjectile"
	case FactionEnemyProjectile:
		return "EnemyProjectile"
	case FactionPickup:
		return "Pickup"
	default:
		return "Unknown"
	}
}

// Victim returns the faction a projectile of faction f can hit.
// ok is false for factions that are not projectiles.
func (f Faction) Victim() (target Faction, ok bool) {
	switch f {
	case FactionPlayerProjectile:
		return FactionEnemy, true
	case FactionEnemyProjectile:
		return FactionPlayer, true
	default:
		return 0, false
	}
}

// Bounds is an axis-aligned collision box centered on the Transform.
type Bounds struct {
	HalfW, HalfH float64
}

func (Bounds) Type() ecs.ComponentType { return CBounds }

// Box returns the world-space collision box at t.
func (b Bounds) Box(t Transform) core.Box {
	return core.NewBox(t.X, t.Y, b.HalfW, b.HalfH)
}

// SpriteKind tells the renderer what to draw.
type SpriteKind uint8

const (
	SpritePlayer SpriteKind = iota
	SpriteScout
	SpriteFighter
	SpriteBomber
	SpritePlayerShot
	SpriteEnemyShot
	SpritePickupDouble
	SpritePickupTriple
)

// String returns the sprite name.
func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpriteScout:
		return "scout"
	case SpriteFighter:
		return "fighter"
	case SpriteBomber:
		return "bomber"
	case SpritePlayerShot:
		return "player_shot"
	case SpriteEnemyShot:
		return "enemy_shot"
	case SpritePickupDouble:
		return "pickup_double"
	case SpritePickupTriple:
		return "pickup_triple"
	default:
		return "unknown"
	}
}

// Sprite is the visual kind exported to the renderer.
type Sprite struct {
	Kind SpriteKind
}

func (Sprite) Type() ecs.ComponentType { return CSprite }

// EnemyKind identifies an enemy archetype.
type EnemyKind uint8

const (
	EnemyScout EnemyKind = iota
	EnemyFighter
	EnemyBomber
)

// String returns the enemy kind name as used in config files.
func (k EnemyKind) String() string {
	switch k {
	case EnemyScout:
		return "scout"
	case EnemyFighter:
		return "fighter"
	case EnemyBomber:
		return "bomber"
	default:
		return "unknown"
	}
}

// Sprite returns the sprite for this kind.
func (k EnemyKind) Sprite() SpriteKind {
	switch k {
	case EnemyFighter:
		return SpriteFighter
	case EnemyBomber:
		return SpriteBomber
	default:
		return SpriteScout
	}
}

// parseEnemyKind maps a config name to a kind. ok is false for "" and
// unknown names.
func parseEnemyKind(s string) (EnemyKind, bool) {
	switch s {
	case "scout":
		return EnemyScout, true
	case "fighter":
		return EnemyFighter, true
	case "bomber":
		return EnemyBomber, true
	default:
		return 0, false
	}
}

// Enemy holds per-enemy AI and scoring data.
type Enemy struct {
	Kind         EnemyKind
	Points       int
	FireInterval float64 // 0 = unarmed
	FireTimer    float64
}

func (Enemy) Type() ecs.ComponentType { return CEnemy }

// Weapon is the player's fire-rate limiter.
type Weapon struct {
	Cooldown float64
	Timer    float64
}

func (Weapon) Type() ecs.ComponentType { return CWeapon }

// PowerUpKind is a temporary weapon upgrade.
type PowerUpKind uint8

const (
	PowerUpNone PowerUpKind = iota
	PowerUpDoubleShot
	PowerUpTripleShot
)

// String returns the power-up name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpDoubleShot:
		return "Double Shot"
	case PowerUpTripleShot:
		return "Triple Shot"
	default:
		return ""
	}
}

// Pickup marks a falling power-up item.
type Pickup struct {
	Kind PowerUpKind
}

func (Pickup) Type() ecs.ComponentType { return CPickup }

// PowerUp is an active upgrade on the player.
type PowerUp struct {
	Kind     PowerUpKind
	TimeLeft float64
}

func (PowerUp) Type() ecs.ComponentType { return CPowerUp }

// Component masks used by the systems.
var (
	maskMovable    = ecs.MaskOf(CTransform, CVelocity, CFaction)
	maskCollider   = ecs.MaskOf(CTransform, CBounds, CFaction)
	maskEnemy      = ecs.MaskOf(CEnemy, CTransform, CVelocity)
	maskPickup     = ecs.MaskOf(CPickup, CTransform, CBounds)
	maskRenderable = ecs.MaskOf(CTransform, CSprite)
)
