package ecs

import (
	"fmt"
	"iter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// slotData wraps a stored component. donburi component types are keyed by
// a concrete Go type, so every ComponentType gets its own donburi type
// holding the interface value.
type slotData struct {
	c Component
}

// componentTypes maps each ComponentType to its donburi registration.
var componentTypes = registerComponentTypes()

func registerComponentTypes() [MaxComponentTypes]*donburi.ComponentType[slotData] {
	var out [MaxComponentTypes]*donburi.ComponentType[slotData]
	for t := range out {
		out[t] = donburi.NewComponentType[slotData]().SetName(fmt.Sprintf("ecs.component.%d", t))
	}
	return out
}

func donburiType(t ComponentType) *donburi.ComponentType[slotData] {
	if int(t) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: component type %d exceeds maximum (%d)", t, MaxComponentTypes))
	}
	return componentTypes[t]
}

// World owns all live entities and their components.
//
// Destroyed entities are released to donburi only when Maintain is called,
// so a handle captured earlier in a frame can never observe a different
// entity under the same id before the frame ends. Versions guard reuse
// across frames.
type World struct {
	world   donburi.World
	live    map[donburi.Entity]struct{}
	order   []Entity // creation order; may hold dead handles until Maintain
	pending []Entity // destroyed this frame, removed from donburi by Maintain
	counts  map[Mask]*donburi.Query
}

// NewWorld creates an empty World with room for capacity entities in its
// creation-order index before it needs to grow.
func NewWorld(capacity int) *World {
	if capacity < 0 {
		capacity = 0
	}
	return &World{
		world:  donburi.NewWorld(),
		live:   make(map[donburi.Entity]struct{}, capacity),
		order:  make([]Entity, 0, capacity),
		counts: make(map[Mask]*donburi.Query),
	}
}

// Create allocates a new entity carrying the given components. When two
// components share a type the last one wins.
func (w *World) Create(components ...Component) Entity {
	var byType [MaxComponentTypes]Component
	var mask Mask
	for _, c := range components {
		t := c.Type()
		donburiType(t)
		byType[t] = c
		mask = mask.With(t)
	}

	types := w.typesOf(mask)
	e := wrap(w.world.Create(types...))
	entry := w.world.Entry(e.ref)
	for t, c := range byType {
		if c != nil {
			componentTypes[t].Set(entry, &slotData{c: c})
		}
	}

	w.live[e.ref] = struct{}{}
	w.order = append(w.order, e)
	return e
}

// Destroy removes the entity and all its components. Destroying a stale or
// already-destroyed handle is a no-op.
//
// The components go at once so queries and counts stop matching; the
// donburi entity itself is released by Maintain.
func (w *World) Destroy(e Entity) {
	if !w.Alive(e) {
		return
	}
	entry := w.world.Entry(e.ref)
	for _, ct := range componentTypes {
		if entry.HasComponent(ct) {
			entry.RemoveComponent(ct)
		}
	}
	delete(w.live, e.ref)
	w.pending = append(w.pending, e)
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	if e.IsNil() {
		return false
	}
	if _, ok := w.live[e.ref]; !ok {
		return false
	}
	return w.world.Valid(e.ref)
}

// Get returns the component of type t attached to e.
func (w *World) Get(e Entity, t ComponentType) (Component, error) {
	if !w.Alive(e) {
		return nil, ErrStaleEntity
	}
	ct := donburiType(t)
	entry := w.world.Entry(e.ref)
	if !entry.HasComponent(ct) {
		return nil, ErrNotFound
	}
	return ct.Get(entry).c, nil
}

// Has reports whether e is alive and carries a component of type t.
func (w *World) Has(e Entity, t ComponentType) bool {
	return w.Alive(e) && w.world.Entry(e.ref).HasComponent(donburiType(t))
}

// Set replaces an existing component on e. It fails with ErrNotFound when
// e lacks a component of that type, and with ErrStaleEntity when e is gone.
func (w *World) Set(e Entity, c Component) error {
	if !w.Alive(e) {
		return ErrStaleEntity
	}
	ct := donburiType(c.Type())
	entry := w.world.Entry(e.ref)
	if !entry.HasComponent(ct) {
		return ErrNotFound
	}
	ct.Set(entry, &slotData{c: c})
	return nil
}

// Add attaches c to e, replacing any component of the same type.
func (w *World) Add(e Entity, c Component) error {
	if !w.Alive(e) {
		return ErrStaleEntity
	}
	ct := donburiType(c.Type())
	entry := w.world.Entry(e.ref)
	if !entry.HasComponent(ct) {
		entry.AddComponent(ct)
	}
	ct.Set(entry, &slotData{c: c})
	return nil
}

// Remove detaches the component of type t from e. Missing components and
// stale handles are ignored.
func (w *World) Remove(e Entity, t ComponentType) {
	if !w.Has(e, t) {
		return
	}
	w.world.Entry(e.ref).RemoveComponent(componentTypes[t])
}

// Mask returns the component set of e, or zero when e is not alive.
func (w *World) Mask(e Entity) Mask {
	if !w.Alive(e) {
		return 0
	}
	entry := w.world.Entry(e.ref)
	var m Mask
	for t, ct := range componentTypes {
		if entry.HasComponent(ct) {
			m = m.With(ComponentType(t))
		}
	}
	return m
}

// Query yields every live entity whose component set contains mask, in
// creation order. The sequence is lazy and may be ranged over any number of
// times. Entities created while it runs are not visited; entities destroyed
// while it runs are skipped once reached. Maintain must not be called from
// inside the loop.
func (w *World) Query(mask Mask) iter.Seq[Entity] {
	types := w.typesOf(mask)
	return func(yield func(Entity) bool) {
		n := len(w.order)
		for i := 0; i < n; i++ {
			e := w.order[i]
			if !w.Alive(e) || !hasAll(w.world.Entry(e.ref), types) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Count returns how many live entities match mask.
func (w *World) Count(mask Mask) int {
	if mask == 0 {
		return w.Len()
	}
	q, ok := w.counts[mask]
	if !ok {
		q = donburi.NewQuery(filter.Contains(w.typesOf(mask)...))
		w.counts[mask] = q
	}
	return q.Count(w.world)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.live)
}

// Maintain compacts the creation-order index and releases entities
// destroyed since the previous call. Call it once per frame, after every
// system has run.
func (w *World) Maintain() {
	for _, e := range w.pending {
		w.world.Remove(e.ref)
	}
	clear(w.pending)
	w.pending = w.pending[:0]

	kept := w.order[:0]
	for _, e := range w.order {
		if w.Alive(e) {
			kept = append(kept, e)
		}
	}
	clear(w.order[len(kept):])
	w.order = kept
}

// Clear destroys every entity. Versions are preserved so handles taken
// before Clear stay stale afterwards.
func (w *World) Clear() {
	for _, e := range w.order {
		w.Destroy(e)
	}
	w.Maintain()
}

// typesOf lists the donburi component types in mask.
func (w *World) typesOf(mask Mask) []donburi.IComponentType {
	var out []donburi.IComponentType
	for t := range ComponentType(MaxComponentTypes) {
		if mask&(1<<t) != 0 {
			out = append(out, componentTypes[t])
		}
	}
	return out
}

func hasAll(entry *donburi.Entry, types []donburi.IComponentType) bool {
	for _, ct := range types {
		if !entry.HasComponent(ct) {
			return false
		}
	}
	return true
}

// GetAs returns the component of type T attached to e.
func GetAs[T Component](w *World, e Entity) (T, error) {
	var zero T
	c, err := w.Get(e, zero.Type())
	if err != nil {
		return zero, err
	}
	v, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: component type mismatch on %s", ErrNotFound, e)
	}
	return v, nil
}
