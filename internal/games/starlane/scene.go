package starlane

import (
	"encoding/binary"
	"math"

	"github.com/vovakirdan/starlane/internal/ecs"
)

// SpriteInstance is one drawable entity in a frame.
type SpriteInstance struct {
	Entity ecs.Entity
	Kind   SpriteKind
	X, Y   float64
}

// HUD is the heads-up display data of a frame.
type HUD struct {
	Score       int
	Lives       int
	Wave        int
	State       State
	PowerUp     PowerUpKind
	PowerUpLeft float64
}

// Frame is the read-only view of the world handed to the renderer and the
// audio player after each step.
type Frame struct {
	Tick    uint64
	Sprites []SpriteInstance // creation order
	Sounds  []SoundKind      // emission order
	HUD     HUD
}

// Export builds a frame from the current world. The returned slices do not
// alias simulation state.
func Export(ctx *Context, tick uint64, hud HUD) Frame {
	w := ctx.World
	f := Frame{Tick: tick, HUD: hud}
	for e := range w.Query(maskRenderable) {
		tr, _ := ecs.GetAs[Transform](w, e)
		sp, _ := ecs.GetAs[Sprite](w, e)
		f.Sprites = append(f.Sprites, SpriteInstance{Entity: e, Kind: sp.Kind, X: tr.X, Y: tr.Y})
	}
	if len(ctx.sounds) > 0 {
		f.Sounds = append([]SoundKind(nil), ctx.sounds...)
	}
	return f
}

// MarshalBinary encodes the frame in a fixed little-endian layout. Two
// frames are equal exactly when their encodings are byte-identical.
func (f Frame) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 64+len(f.Sprites)*25+len(f.Sounds))
	le := binary.LittleEndian

	buf = le.AppendUint64(buf, f.Tick)
	buf = le.AppendUint64(buf, uint64(int64(f.HUD.Score))) //#nosec G115 -- two's complement encoding
	buf = le.AppendUint64(buf, uint64(int64(f.HUD.Lives))) //#nosec G115 -- two's complement encoding
	buf = le.AppendUint64(buf, uint64(int64(f.HUD.Wave)))  //#nosec G115 -- two's complement encoding
	buf = append(buf, byte(f.HUD.State), byte(f.HUD.PowerUp))
	buf = le.AppendUint64(buf, math.Float64bits(f.HUD.PowerUpLeft))

	buf = le.AppendUint32(buf, uint32(len(f.Sprites))) //#nosec G115 -- sprite count fits in uint32
	for _, s := range f.Sprites {
		buf = le.AppendUint32(buf, s.Entity.Index)
		buf = le.AppendUint32(buf, s.Entity.Generation)
		buf = append(buf, byte(s.Kind))
		buf = le.AppendUint64(buf, math.Float64bits(s.X))
		buf = le.AppendUint64(buf, math.Float64bits(s.Y))
	}

	buf = le.AppendUint32(buf, uint32(len(f.Sounds))) //#nosec G115 -- sound count fits in uint32
	for _, s := range f.Sounds {
		buf = append(buf, byte(s))
	}
	return buf, nil
}

// Hash returns a hash of the frame for determinism testing.
func (f Frame) Hash() uint64 {
	data, _ := f.MarshalBinary()
	h := uint64(len(data))
	for _, b := range data {
		h = h*31 + uint64(b)
	}
	return h
}
