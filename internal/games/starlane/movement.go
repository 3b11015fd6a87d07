package starlane

import (
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// Move integrates velocity into position for every movable entity.
//
// The player is clamped horizontally to the playfield. Any other entity
// whose center leaves the vertical extent is destroyed in the same frame;
// an enemy that escapes past the bottom is counted and scores nothing.
func Move(ctx *Context, dt float64) {
	w := ctx.World
	pf := ctx.Cfg.Playfield
	for e := range w.Query(maskMovable) {
		tr, _ := ecs.GetAs[Transform](w, e)
		vel, _ := ecs.GetAs[Velocity](w, e)
		faction, _ := ecs.GetAs[Faction](w, e)

		tr.X += vel.DX * dt
		tr.Y += vel.DY * dt

		if faction == FactionPlayer {
			halfW := 0.0
			if b, err := ecs.GetAs[Bounds](w, e); err == nil {
				halfW = b.HalfW
			}
			lo, hi := pf.MinX+halfW, pf.MaxX-halfW
			if lo > hi {
				lo = (pf.MinX + pf.MaxX) / 2
				hi = lo
			}
			tr.X = core.ClampF(tr.X, lo, hi)
			_ = w.Set(e, tr)
			continue
		}

		if tr.Y < pf.MinY || tr.Y > pf.MaxY {
			if faction == FactionEnemy && tr.Y > pf.MaxY {
				ctx.Escaped++
				ctx.Emit(SoundEnemyEscaped)
				ctx.Log.Debug("enemy escaped", "entity", e, "x", tr.X)
			}
			w.Destroy(e)
			continue
		}
		_ = w.Set(e, tr)
	}
}
