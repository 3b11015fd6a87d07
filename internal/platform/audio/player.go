// Package audio plays the simulation's sound triggers. Playback is
// fire-and-forget: Play never blocks the game loop and a missing audio
// device degrades to silence.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starlane/internal/games/starlane"
)

// Sink consumes sound triggers.
type Sink interface {
	Play(kind starlane.SoundKind)
	Close()
}

// Nop is a Sink that discards everything. Used when muted, over SSH, and
// when the audio device cannot be opened.
type Nop struct{}

func (Nop) Play(starlane.SoundKind) {}
func (Nop) Close()                  {}

// Player renders sounds through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       map[starlane.SoundKind][]float64
	initialized bool
	log         *log.Logger
}

// NewPlayer creates a player. Call Init before Play.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{
		mixer: &beep.Mixer{},
		cache: make(map[starlane.SoundKind][]float64),
		log:   logger,
	}
}

// Init opens the speaker and pre-renders every effect. It is safe to call
// more than once.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	sr := beep.SampleRate(SampleRate)
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		return err
	}
	for kind := range effects {
		p.cache[kind] = render(kind)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	if p.log != nil {
		p.log.Debug("audio ready", "sample_rate", SampleRate, "effects", len(p.cache))
	}
	return nil
}

// Play queues a sound. Unknown kinds and calls before Init are ignored.
func (p *Player) Play(kind starlane.SoundKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	buf, ok := p.cache[kind]
	if !ok || len(buf) == 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(&bufferStreamer{buf: buf})
	speaker.Unlock()
}

// Close silences all playing sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Open returns a ready Sink: a Player when audio works, Nop when muted or
// when the device is unavailable.
func Open(muted bool, logger *log.Logger) Sink {
	if muted {
		return Nop{}
	}
	p := NewPlayer(logger)
	if err := p.Init(); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return Nop{}
	}
	return p
}

// bufferStreamer plays a mono buffer on both channels once.
type bufferStreamer struct {
	buf []float64
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error { return nil }
