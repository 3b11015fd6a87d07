package starlane

import (
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// DetectCollisions tests every projectile against the entities of its
// victim faction and queues one event per hit. A projectile hits at most
// one target per frame, the first overlapping one in creation order, and
// is destroyed immediately so later systems never see it.
//
// Pickups touching the player produce pickup events.
func DetectCollisions(ctx *Context) {
	w := ctx.World

	for p := range w.Query(maskCollider) {
		f, _ := ecs.GetAs[Faction](w, p)
		victim, ok := f.Victim()
		if !ok {
			continue
		}
		pbox := colliderBox(w, p)

		for t := range w.Query(maskCollider) {
			if tf, _ := ecs.GetAs[Faction](w, t); tf != victim {
				continue
			}
			if !w.Has(t, CHealth) {
				continue
			}
			if pbox.Intersects(colliderBox(w, t)) {
				ctx.Events.Push(Collision(p, t))
				w.Destroy(p)
				break
			}
		}
	}

	player := ctx.Player
	if !w.Alive(player) {
		return
	}
	playerBox := colliderBox(w, player)
	for pk := range w.Query(maskPickup) {
		if playerBox.Intersects(colliderBox(w, pk)) {
			ctx.Events.Push(PickedUp(pk, player))
		}
	}
}

func colliderBox(w *ecs.World, e ecs.Entity) core.Box {
	tr, _ := ecs.GetAs[Transform](w, e)
	b, _ := ecs.GetAs[Bounds](w, e)
	return b.Box(tr)
}
