// Package audio plays short synthesized tones for game events.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/pong/pong"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

var (
	paddleHitTones  = []note{{freq: 440, duration: 50 * time.Millisecond}}
	wallBounceTones = []note{{freq: 220, duration: 40 * time.Millisecond}}
	pointTones      = []note{
		{freq: 660, duration: 90 * time.Millisecond},
		{freq: 880, duration: 140 * time.Millisecond},
	}
)

// Cues implements pong.Cues on top of the beep speaker. Until Init
// succeeds every cue is silently dropped.
type Cues struct {
	mu     sync.Mutex
	volume float64
	muted  bool
	sink   func(beep.Streamer)
	log    *zap.Logger
}

var _ pong.Cues = (*Cues)(nil)

// New creates silent cues at the given volume in [0, 1].
func New(volume float64, log *zap.Logger) *Cues {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cues{volume: math.Max(0, math.Min(1, volume)), log: log}
}

// Init opens the audio device. On failure the cues stay silent.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sink != nil {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	c.sink = func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}
	c.log.Debug("audio initialized", zap.Int("sampleRate", int(sampleRate)))
	return nil
}

// Close stops playback.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sink == nil {
		return
	}
	speaker.Clear()
	c.sink = nil
}

func (c *Cues) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

func (c *Cues) PaddleHit() {
	c.play(paddleHitTones)
}

func (c *Cues) WallBounce() {
	c.play(wallBounceTones)
}

func (c *Cues) PointScored(player pong.PlayerId) {
	c.log.Debug("point cue", zap.Stringer("player", player))
	c.play(pointTones)
}

func (c *Cues) play(tones []note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sink == nil || c.muted || c.volume <= 0 {
		return
	}
	s, err := sequence(tones, c.volume)
	if err != nil {
		c.log.Warn("failed to build tone", zap.Error(err))
		return
	}
	c.sink(s)
}

// sequence builds a finite streamer playing tones back to back.
func sequence(tones []note, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		s, err := tone(t.freq, t.duration, volume)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}

func tone(freq float64, duration time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0fHz: %w", freq, err)
	}
	s := beep.Take(sampleRate.N(duration), sine)
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}, nil
}
