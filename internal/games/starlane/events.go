package starlane

import "github.com/vovakirdan/starlane/internal/ecs"

// EventKind tags the variant carried by an Event.
type EventKind uint8

const (
	// EventCollision: Source is a projectile that hit Target.
	EventCollision EventKind = iota + 1
	// EventPickup: Source is a power-up pickup touched by the player (Target).
	EventPickup
)

// Event is a per-frame message from detection systems to the resolver.
// Events are consumed within the frame they are produced.
type Event struct {
	Kind   EventKind
	Source ecs.Entity
	Target ecs.Entity
}

// Collision returns a collision event.
func Collision(projectile, target ecs.Entity) Event {
	return Event{Kind: EventCollision, Source: projectile, Target: target}
}

// PickedUp returns a pickup event.
func PickedUp(pickup, player ecs.Entity) Event {
	return Event{Kind: EventPickup, Source: pickup, Target: player}
}

// EventQueue collects events in emission order.
type EventQueue struct {
	events []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns all queued events and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// SoundKind identifies an audio trigger.
type SoundKind uint8

const (
	SoundPlayerFired SoundKind = iota
	SoundEnemyFired
	SoundEnemyHit
	SoundEnemyDestroyed
	SoundEnemyEscaped
	SoundPlayerHit
	SoundLifeLost
	SoundPowerUp
	SoundWaveCleared
	SoundGameOver
)

// String returns the sound name.
func (k SoundKind) String() string {
	switch k {
	case SoundPlayerFired:
		return "PlayerFired"
	case SoundEnemyFired:
		return "EnemyFired"
	case SoundEnemyHit:
		return "EnemyHit"
	case SoundEnemyDestroyed:
		return "EnemyDestroyed"
	case SoundEnemyEscaped:
		return "EnemyEscaped"
	case SoundPlayerHit:
		return "PlayerHit"
	case SoundLifeLost:
		return "LifeLost"
	case SoundPowerUp:
		return "PowerUp"
	case SoundWaveCleared:
		return "WaveCleared"
	case SoundGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
