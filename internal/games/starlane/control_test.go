package starlane

import (
	"testing"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/ecs"
)

func TestFirePattern(t *testing.T) {
	tests := []struct {
		name     string
		powerUp  PowerUpKind
		expected int
	}{
		{"single", PowerUpNone, 1},
		{"double", PowerUpDoubleShot, 2},
		{"triple", PowerUpTripleShot, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			ctx := newTestContext(&cfg)
			p := SpawnPlayer(ctx)
			if tc.powerUp != PowerUpNone {
				_ = ctx.World.Add(p, PowerUp{Kind: tc.powerUp, TimeLeft: 5})
			}

			SteerPlayer(ctx, core.NewInputFrame(core.CommandFire), dt60)

			if n := countFaction(ctx.World, FactionPlayerProjectile); n != tc.expected {
				t.Errorf("projectiles = %d, expected %d", n, tc.expected)
			}
			if !ctx.Provoked {
				t.Error("firing should provoke the enemies")
			}
			for e := range ctx.World.Query(maskMovable) {
				if f, _ := ecs.GetAs[Faction](ctx.World, e); f != FactionPlayerProjectile {
					continue
				}
				vel, _ := ecs.GetAs[Velocity](ctx.World, e)
				if vel.DY != -cfg.Combat.PlayerProjectileSpeed {
					t.Errorf("projectile DY = %v, expected %v", vel.DY, -cfg.Combat.PlayerProjectileSpeed)
				}
			}
		})
	}
}

func TestSteerPlayerVelocity(t *testing.T) {
	tests := []struct {
		name     string
		cmds     []core.Command
		expected float64
	}{
		{"idle", nil, 0},
		{"left", []core.Command{core.CommandMoveLeft}, -30},
		{"right", []core.Command{core.CommandMoveRight}, 30},
		{"both cancel", []core.Command{core.CommandMoveLeft, core.CommandMoveRight}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			ctx := newTestContext(&cfg)
			p := SpawnPlayer(ctx)

			SteerPlayer(ctx, core.NewInputFrame(tc.cmds...), dt60)

			vel, _ := ecs.GetAs[Velocity](ctx.World, p)
			if vel.DX != tc.expected {
				t.Errorf("DX = %v, expected %v", vel.DX, tc.expected)
			}
		})
	}
}

func TestPowerUpExpires(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	p := SpawnPlayer(ctx)
	_ = ctx.World.Add(p, PowerUp{Kind: PowerUpDoubleShot, TimeLeft: 0.5})

	SteerPlayer(ctx, core.NewInputFrame(), 0.25)
	if !ctx.World.Has(p, CPowerUp) {
		t.Fatal("power-up expired early")
	}
	SteerPlayer(ctx, core.NewInputFrame(), 0.25)
	if ctx.World.Has(p, CPowerUp) {
		t.Error("power-up should expire")
	}
}

func TestUnprovokedEnemiesHoldFire(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	SpawnEnemy(ctx, EnemyBomber, 0, 5)

	for range 600 {
		DriveEnemies(ctx, dt60)
	}
	if n := countFaction(ctx.World, FactionEnemyProjectile); n != 0 {
		t.Fatalf("enemy projectiles = %d, expected 0", n)
	}

	ctx.Provoked = true
	for range 600 {
		DriveEnemies(ctx, dt60)
	}
	if n := countFaction(ctx.World, FactionEnemyProjectile); n < 2 {
		t.Errorf("enemy projectiles = %d, expected at least 2 in 10s at a 4s interval", n)
	}
}
