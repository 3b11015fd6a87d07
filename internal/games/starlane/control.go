package starlane

import (
	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

// SteerPlayer applies movement and fire commands to the player ship and
// ticks its weapon cooldown and power-up timer.
func SteerPlayer(ctx *Context, in core.InputFrame, dt float64) {
	w := ctx.World
	p := ctx.Player
	if !w.Alive(p) {
		return
	}

	speed := ctx.Cfg.Player.Speed
	vel := Velocity{}
	if in.Has(core.CommandMoveLeft) {
		vel.DX -= speed
	}
	if in.Has(core.CommandMoveRight) {
		vel.DX += speed
	}
	_ = w.Set(p, vel)

	pu, puErr := ecs.GetAs[PowerUp](w, p)
	if puErr == nil {
		pu.TimeLeft -= dt
		if pu.TimeLeft <= 0 {
			w.Remove(p, CPowerUp)
			pu = PowerUp{}
			ctx.Log.Debug("power-up expired")
		} else {
			_ = w.Set(p, pu)
		}
	}

	weapon, err := ecs.GetAs[Weapon](w, p)
	if err != nil {
		return
	}
	if weapon.Timer > 0 {
		weapon.Timer -= dt
	}
	if in.Has(core.CommandFire) && weapon.Timer <= 0 {
		firePattern(ctx, pu.Kind)
		weapon.Timer = weapon.Cooldown
		ctx.Provoked = true
		ctx.Emit(SoundPlayerFired)
	}
	_ = w.Set(p, weapon)
}

// firePattern spawns the player's volley. Power-ups add side shots.
func firePattern(ctx *Context, kind PowerUpKind) {
	tr, err := ecs.GetAs[Transform](ctx.World, ctx.Player)
	if err != nil {
		return
	}
	cc := ctx.Cfg.Combat
	y := tr.Y - ctx.Cfg.Player.HalfHeight - cc.ProjectileHalfHeight

	offsets := []float64{0}
	switch kind {
	case PowerUpDoubleShot:
		offsets = append(offsets, -cc.SpreadOffset)
	case PowerUpTripleShot:
		offsets = append(offsets, -cc.SpreadOffset, cc.SpreadOffset)
	}
	for _, dx := range offsets {
		SpawnProjectile(ctx, FactionPlayerProjectile, tr.X+dx, y, -cc.PlayerProjectileSpeed)
	}
}

// DriveEnemies sets the formation sway on every enemy and lets armed
// enemies return fire once the player has fired in this wave.
func DriveEnemies(ctx *Context, dt float64) {
	w := ctx.World
	sway := ctx.Formation.Advance(ctx.Cfg.Formation, dt)
	cc := ctx.Cfg.Combat

	for e := range w.Query(maskEnemy) {
		vel, _ := ecs.GetAs[Velocity](w, e)
		vel.DX = sway
		_ = w.Set(e, vel)

		en, _ := ecs.GetAs[Enemy](w, e)
		if !ctx.Provoked || en.FireInterval <= 0 {
			continue
		}
		en.FireTimer -= dt
		if en.FireTimer <= 0 {
			en.FireTimer += en.FireInterval
			if en.FireTimer <= 0 {
				en.FireTimer = en.FireInterval
			}
			tr, _ := ecs.GetAs[Transform](w, e)
			halfH := 0.0
			if b, err := ecs.GetAs[Bounds](w, e); err == nil {
				halfH = b.HalfH
			}
			SpawnProjectile(ctx, FactionEnemyProjectile, tr.X, tr.Y+halfH+cc.ProjectileHalfHeight, cc.EnemyProjectileSpeed)
			ctx.Emit(SoundEnemyFired)
		}
		_ = w.Set(e, en)
	}
}
