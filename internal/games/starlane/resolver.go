package starlane

import "github.com/vovakirdan/starlane/internal/ecs"

// Resolve applies the frame's events in emission order: damage, scoring,
// lives, pickups and destruction. Events naming an entity that no longer
// exists (for example a target already destroyed earlier in the same
// frame) are ignored.
func Resolve(ctx *Context, events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventCollision:
			resolveHit(ctx, ev)
		case EventPickup:
			resolvePickup(ctx, ev)
		}
	}
}

func resolveHit(ctx *Context, ev Event) {
	w := ctx.World
	w.Destroy(ev.Source)

	hp, err := ecs.GetAs[Health](w, ev.Target)
	if err != nil {
		return
	}
	faction, _ := ecs.GetAs[Faction](w, ev.Target)
	hp.Current -= ctx.Cfg.Combat.DamagePerHit

	switch faction {
	case FactionEnemy:
		if hp.Current > 0 {
			_ = w.Set(ev.Target, hp)
			ctx.Emit(SoundEnemyHit)
			return
		}
		destroyEnemy(ctx, ev.Target)
	case FactionPlayer:
		ctx.Emit(SoundPlayerHit)
		if hp.Current > 0 {
			_ = w.Set(ev.Target, hp)
			return
		}
		loseLife(ctx, ev.Target, hp)
	default:
		_ = w.Set(ev.Target, hp)
	}
}

func destroyEnemy(ctx *Context, e ecs.Entity) {
	w := ctx.World
	en, _ := ecs.GetAs[Enemy](w, e)
	tr, _ := ecs.GetAs[Transform](w, e)

	ctx.Score += en.Points
	ctx.Kills++
	w.Destroy(e)
	ctx.Emit(SoundEnemyDestroyed)
	ctx.Log.Debug("enemy destroyed", "entity", e, "kind", en.Kind, "points", en.Points, "score", ctx.Score)

	maybeDrop(ctx, tr.X, tr.Y)
}

// maybeDrop rolls for a power-up at a destroyed enemy's position.
func maybeDrop(ctx *Context, x, y float64) {
	chance := ctx.Cfg.PowerUps.DropChance
	if chance <= 0 {
		return
	}
	if ctx.RNG.Float64() >= chance {
		return
	}
	kind := PowerUpDoubleShot
	if ctx.RNG.Intn(2) == 1 {
		kind = PowerUpTripleShot
	}
	SpawnPickup(ctx, kind, x, y)
}

// loseLife handles the player's health reaching zero. With lives left the
// ship is restored in place; otherwise it is destroyed and the game ends.
func loseLife(ctx *Context, e ecs.Entity, hp Health) {
	w := ctx.World
	ctx.Lives--
	if ctx.Lives > 0 {
		hp.Current = hp.Max
		_ = w.Set(e, hp)
		w.Remove(e, CPowerUp)
		ctx.Emit(SoundLifeLost)
		ctx.Log.Debug("life lost", "lives", ctx.Lives)
		return
	}
	ctx.Lives = 0
	w.Destroy(e)
	ctx.Emit(SoundGameOver)
	ctx.Request(TransitionGameOver)
	ctx.Log.Debug("player destroyed", "score", ctx.Score)
}

// resolvePickup grants the pickup's power-up. Collecting while one is
// active switches the kind and extends the remaining time.
func resolvePickup(ctx *Context, ev Event) {
	w := ctx.World
	pk, err := ecs.GetAs[Pickup](w, ev.Source)
	if err != nil || !w.Alive(ev.Target) {
		return
	}
	w.Destroy(ev.Source)

	duration := ctx.Cfg.PowerUps.Duration
	pu := PowerUp{Kind: pk.Kind, TimeLeft: duration}
	if cur, err := ecs.GetAs[PowerUp](w, ev.Target); err == nil {
		pu.TimeLeft += cur.TimeLeft
	}
	_ = w.Add(ev.Target, pu)
	ctx.Emit(SoundPowerUp)
	ctx.Log.Debug("power-up collected", "kind", pk.Kind, "time_left", pu.TimeLeft)
}
