package synth

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Sink plays a source streamer through a speed / volume / pause chain:
//
//	source -> Resampler (speed) -> Volume -> Ctrl (pause) -> Mixer
//
// One-shot effects are mixed in alongside the chain. The speaker is only
// touched by Start, so a Sink can be driven headless in tests by streaming
// from it directly.
type Sink struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	resampler *beep.Resampler
	volume    *effects.Volume
	ctrl      *beep.Ctrl
	mixer     *beep.Mixer
	linear    float64
	started   bool
}

// NewSink builds the playback chain around source at the given sample rate.
// Speed starts at 1.0, volume at 1.0, unpaused.
func NewSink(source beep.Streamer, rate beep.SampleRate) *Sink {
	resampler := beep.ResampleRatio(4, 1.0, source)
	volume := &effects.Volume{Streamer: resampler, Base: 2, Volume: 0}
	ctrl := &beep.Ctrl{Streamer: volume}

	mixer := &beep.Mixer{}
	mixer.Add(ctrl)

	return &Sink{
		rate:      rate,
		resampler: resampler,
		volume:    volume,
		ctrl:      ctrl,
		mixer:     mixer,
		linear:    1.0,
	}
}

// Start initializes the speaker and begins playback. Call once.
func (s *Sink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.started = true
	return nil
}

// locked runs f while holding the speaker lock if playback has started, so
// the audio goroutine never observes a half-applied change.
func (s *Sink) locked(f func()) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	f()
}

// SetSpeed adjusts the playback rate. Values are clamped to a small positive
// minimum since the resampler cannot run at zero.
func (s *Sink) SetSpeed(ratio float64) {
	if ratio < 0.05 {
		ratio = 0.05
	}
	s.locked(func() {
		s.resampler.SetRatio(ratio)
	})
}

// Speed returns the current playback rate.
func (s *Sink) Speed() float64 {
	var ratio float64
	s.locked(func() {
		ratio = s.resampler.Ratio()
	})
	return ratio
}

// SetVolume sets linear volume. Zero or negative silences the sink.
func (s *Sink) SetVolume(v float64) {
	s.locked(func() {
		s.linear = v
		if v <= 0 {
			s.volume.Volume = 0
			s.volume.Silent = true
		} else {
			s.volume.Volume = math.Log2(v)
			s.volume.Silent = false
		}
	})
}

// Volume returns the linear volume last set.
func (s *Sink) Volume() float64 {
	var v float64
	s.locked(func() {
		v = s.linear
	})
	return v
}

// Toggle flips the paused state and reports the new value.
func (s *Sink) Toggle() bool {
	var paused bool
	s.locked(func() {
		s.ctrl.Paused = !s.ctrl.Paused
		paused = s.ctrl.Paused
	})
	return paused
}

// Paused reports whether playback is paused.
func (s *Sink) Paused() bool {
	var paused bool
	s.locked(func() {
		paused = s.ctrl.Paused
	})
	return paused
}

// PlayEffect mixes a one-shot streamer in next to the main chain. Effects
// are not affected by the sink's speed, volume, or pause state.
func (s *Sink) PlayEffect(effect beep.Streamer) {
	s.locked(func() {
		s.mixer.Add(effect)
	})
}

// Stream drains the mixed output. Used by tests to drive the chain without a
// speaker.
func (s *Sink) Stream(samples [][2]float64) (n int, ok bool) {
	return s.mixer.Stream(samples)
}

func (s *Sink) Err() error { return nil }
