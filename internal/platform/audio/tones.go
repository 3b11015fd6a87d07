package audio

import (
	"math"

	"github.com/vovakirdan/starlane/internal/core"
	"github.com/vovakirdan/starlane/internal/games/starlane"
)

// SampleRate of every generated buffer.
const SampleRate = 44100

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
	waveNoise
)

// note is one segment of a sound effect.
type note struct {
	wave    waveform
	freq    float64 // Hz; ignored for noise
	seconds float64
	gain    float64
}

// effects maps each sound to its notes, played back to back.
var effects = map[starlane.SoundKind][]note{
	starlane.SoundPlayerFired:    {{waveSquare, 880, 0.05, 0.25}},
	starlane.SoundEnemyFired:     {{waveSquare, 330, 0.07, 0.2}},
	starlane.SoundEnemyHit:       {{waveSaw, 220, 0.06, 0.3}},
	starlane.SoundEnemyDestroyed: {{waveNoise, 0, 0.18, 0.35}},
	starlane.SoundEnemyEscaped:   {{waveSine, 150, 0.2, 0.3}},
	starlane.SoundPlayerHit:      {{waveSaw, 110, 0.25, 0.4}},
	starlane.SoundLifeLost:       {{waveSaw, 110, 0.15, 0.4}, {waveSaw, 82, 0.3, 0.4}},
	starlane.SoundPowerUp:        {{waveSine, 660, 0.08, 0.3}, {waveSine, 990, 0.12, 0.3}},
	starlane.SoundWaveCleared:    {{waveSine, 523, 0.1, 0.3}, {waveSine, 659, 0.1, 0.3}, {waveSine, 784, 0.2, 0.3}},
	starlane.SoundGameOver:       {{waveSine, 392, 0.25, 0.35}, {waveSine, 330, 0.25, 0.35}, {waveSine, 262, 0.5, 0.35}},
}

// render synthesizes the mono samples of a sound. Unknown kinds yield nil.
func render(kind starlane.SoundKind) []float64 {
	var out []float64
	for _, n := range effects[kind] {
		out = append(out, n.samples()...)
	}
	return out
}

// samples generates the note with a short attack and release so segments
// do not click.
func (n note) samples() []float64 {
	count := int(n.seconds * SampleRate)
	buf := make([]float64, count)
	noise := core.NewSimpleRNG(int64(n.freq*1000) + int64(count))
	phase, inc := 0.0, n.freq/SampleRate

	for i := range buf {
		var v float64
		switch n.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (phase - 0.5)
		case waveNoise:
			v = noise.Float64()*2 - 1
		}
		buf[i] = v * n.gain * envelope(i, count)

		phase += inc
		if phase >= 1 {
			phase--
		}
	}
	return buf
}

// envelope ramps the first and last 5ms.
func envelope(i, total int) float64 {
	ramp := SampleRate / 200
	if ramp*2 > total {
		ramp = total / 2
	}
	if ramp == 0 {
		return 1
	}
	switch {
	case i < ramp:
		return float64(i) / float64(ramp)
	case i >= total-ramp:
		return float64(total-i) / float64(ramp)
	default:
		return 1
	}
}
