// Package ecs provides the entity store used by the simulation, backed by
// a donburi world. Entities are versioned handles; components are plain
// data attached to them and looked up by ComponentType.
package ecs

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"
)

// Entity is an opaque handle to a game object. Index is the donburi entity
// id and Generation its version (offset by one so the zero handle is never
// live), so a handle kept past Destroy never aliases a newer entity
// reusing the same id.
type Entity struct {
	Index      uint32
	Generation uint32
	ref        donburi.Entity
}

// Nil is the zero Entity. No live entity ever compares equal to it.
var Nil = Entity{}

func wrap(ref donburi.Entity) Entity {
	return Entity{
		Index:      uint32(ref.Id()),
		Generation: uint32(ref.Version()) + 1,
		ref:        ref,
	}
}

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool {
	return e.Generation == 0
}

// String returns a compact "slot:generation" form used in logs.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Generation)
}

// ComponentType identifies a kind of component. Values must be below
// MaxComponentTypes.
type ComponentType uint8

// MaxComponentTypes bounds the number of component types a World can hold.
const MaxComponentTypes = 32

// Component is implemented by every data struct stored in the World.
type Component interface {
	Type() ComponentType
}

// Mask is a set of component types.
type Mask uint32

// MaskOf builds a mask containing the given component types.
func MaskOf(types ...ComponentType) Mask {
	var m Mask
	for _, t := range types {
		m |= 1 << t
	}
	return m
}

// Has reports whether every type in other is also in m.
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// With returns m plus t.
func (m Mask) With(t ComponentType) Mask {
	return m | 1<<t
}

// Without returns m minus t.
func (m Mask) Without(t ComponentType) Mask {
	return m &^ (1 << t)
}

// Errors returned by World accessors.
var (
	// ErrNotFound is returned when an entity lacks the requested component
	// or no longer exists.
	ErrNotFound = errors.New("ecs: not found")

	// ErrStaleEntity is returned for handles whose slot was destroyed or
	// reused. It matches ErrNotFound under errors.Is.
	ErrStaleEntity = fmt.Errorf("%w: stale entity reference", ErrNotFound)
)
