package starlane

import (
	"testing"

	"github.com/vovakirdan/starlane/internal/ecs"
)

// hit queues a collision between a fresh player shot and target.
func hit(ctx *Context, target ecs.Entity) Event {
	shot := SpawnProjectile(ctx, FactionPlayerProjectile, 100, 100, 0)
	return Collision(shot, target)
}

func TestResolveHealthArithmetic(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	bomber := SpawnEnemy(ctx, EnemyBomber, 0, 5) // health 3

	Resolve(ctx, []Event{hit(ctx, bomber), hit(ctx, bomber)})

	hp, err := ecs.GetAs[Health](ctx.World, bomber)
	if err != nil {
		t.Fatalf("bomber should survive two hits: %v", err)
	}
	if hp.Current != 1 {
		t.Errorf("Health = %d, expected 1", hp.Current)
	}
	if ctx.Score != 0 {
		t.Errorf("Score = %d, expected 0", ctx.Score)
	}

	Resolve(ctx, []Event{hit(ctx, bomber)})

	if ctx.World.Alive(bomber) {
		t.Error("bomber should be destroyed at zero health")
	}
	if ctx.Score != cfg.Enemies.Bomber.Points {
		t.Errorf("Score = %d, expected %d", ctx.Score, cfg.Enemies.Bomber.Points)
	}
	if !hasSound(ctx.sounds, SoundEnemyDestroyed) {
		t.Errorf("sounds = %v, expected EnemyDestroyed", ctx.sounds)
	}
}

func TestResolveConsumesProjectile(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	enemy := SpawnEnemy(ctx, EnemyFighter, 0, 5)
	ev := hit(ctx, enemy)

	Resolve(ctx, []Event{ev})

	if ctx.World.Alive(ev.Source) {
		t.Error("projectile should be destroyed after resolution")
	}
}

func TestResolveStaleTargetIsNoop(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	scout := SpawnEnemy(ctx, EnemyScout, 0, 5)

	Resolve(ctx, []Event{hit(ctx, scout), hit(ctx, scout)})

	if ctx.Score != cfg.Enemies.Scout.Points {
		t.Errorf("Score = %d, expected %d (scored once)", ctx.Score, cfg.Enemies.Scout.Points)
	}
	if ctx.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", ctx.Kills)
	}
}

func TestResolvePlayerLosesLife(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	player := SpawnPlayer(ctx)
	_ = ctx.World.Add(player, PowerUp{Kind: PowerUpDoubleShot, TimeLeft: 3})

	Resolve(ctx, []Event{hit(ctx, player)})

	if !ctx.World.Alive(player) {
		t.Fatal("player with lives left must persist")
	}
	if ctx.Lives != cfg.Player.Lives-1 {
		t.Errorf("Lives = %d, expected %d", ctx.Lives, cfg.Player.Lives-1)
	}
	hp, _ := ecs.GetAs[Health](ctx.World, player)
	if hp.Current != cfg.Player.Health {
		t.Errorf("Health = %d, expected restored %d", hp.Current, cfg.Player.Health)
	}
	if ctx.World.Has(player, CPowerUp) {
		t.Error("losing a life should drop the active power-up")
	}
	if len(ctx.requests) != 0 {
		t.Errorf("requests = %v, expected none", ctx.requests)
	}
}

func TestResolveLastLifeRequestsGameOver(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 1
	ctx := newTestContext(&cfg)
	player := SpawnPlayer(ctx)

	Resolve(ctx, []Event{hit(ctx, player), hit(ctx, player)})

	if ctx.World.Alive(player) {
		t.Error("player should be destroyed on the last life")
	}
	if ctx.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", ctx.Lives)
	}
	if len(ctx.requests) != 1 || ctx.requests[0] != TransitionGameOver {
		t.Errorf("requests = %v, expected [GameOver]", ctx.requests)
	}
}

func TestResolveDropsPickup(t *testing.T) {
	cfg := testConfig()
	cfg.PowerUps.DropChance = 1
	ctx := newTestContext(&cfg)
	scout := SpawnEnemy(ctx, EnemyScout, 4, 6)

	Resolve(ctx, []Event{hit(ctx, scout)})

	var found bool
	for e := range ctx.World.Query(maskPickup) {
		tr, _ := ecs.GetAs[Transform](ctx.World, e)
		if tr.X != 4 || tr.Y != 6 {
			t.Errorf("pickup at (%v, %v), expected (4, 6)", tr.X, tr.Y)
		}
		found = true
	}
	if !found {
		t.Error("expected a pickup with drop chance 1")
	}
}

func TestResolvePickupExtendsPowerUp(t *testing.T) {
	cfg := testConfig()
	ctx := newTestContext(&cfg)
	player := SpawnPlayer(ctx)
	_ = ctx.World.Add(player, PowerUp{Kind: PowerUpDoubleShot, TimeLeft: 2})
	pk := SpawnPickup(ctx, PowerUpTripleShot, 0, cfg.Player.Y)

	Resolve(ctx, []Event{PickedUp(pk, player), PickedUp(pk, player)})

	pu, err := ecs.GetAs[PowerUp](ctx.World, player)
	if err != nil {
		t.Fatalf("power-up missing: %v", err)
	}
	if pu.Kind != PowerUpTripleShot {
		t.Errorf("Kind = %s, expected %s", pu.Kind, PowerUpTripleShot)
	}
	expected := 2 + cfg.PowerUps.Duration
	if pu.TimeLeft != expected {
		t.Errorf("TimeLeft = %v, expected %v (pickup applied once)", pu.TimeLeft, expected)
	}
	if ctx.World.Alive(pk) {
		t.Error("pickup should be consumed")
	}
}
