// Package audio plays short synthesized sound effects for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays game sound effects through a shared mixer. Every Play
// method is a no-op until Initialize succeeds, so the game runs without an
// audio device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlaySlice plays a short rising swish.
func (sm *SoundManager) PlaySlice() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*120), NewSweepGenerator(sampleRate, 400, 1200, 0.120)))
}

// PlayMiss plays a low thud for a dropped fruit.
func (sm *SoundManager) PlayMiss() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*200), NewToneGenerator(sampleRate, 110, 12)))
}

// PlayGameOver plays three falling notes.
func (sm *SoundManager) PlayGameOver() {
	note := func(freq float64) beep.Streamer {
		return beep.Take(sampleRate.N(time.Millisecond*220), NewToneGenerator(sampleRate, freq, 6))
	}
	sm.play(beep.Seq(note(392), note(330), note(262)))
}

// PlayToggle plays a click for pause, resume and cursor toggles.
func (sm *SoundManager) PlayToggle() {
	sm.play(beep.Take(sampleRate.N(time.Millisecond*60), NewToneGenerator(sampleRate, 880, 40)))
}

// ToneGenerator is a sine tone with an exponential decay envelope.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	pos   int
}

// NewToneGenerator creates a tone at freq Hz. decay is the envelope rate per
// second; larger is shorter.
func NewToneGenerator(sr beep.SampleRate, freq, decay float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, decay: decay}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.25 * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// SweepGenerator glides linearly from one frequency to another over a
// duration in seconds, fading out as it goes.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	duration float64
	phase    float64
	pos      int
}

// NewSweepGenerator creates a sweep from `from` to `to` Hz.
func NewSweepGenerator(sr beep.SampleRate, from, to, duration float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, duration: duration}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		progress := math.Min(t/g.duration, 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		sample := 0.2 * (1 - progress) * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
