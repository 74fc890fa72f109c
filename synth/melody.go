package synth

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// note is one step of the looping track: a lead frequency held for a number
// of quarter beats. Zero frequency is a rest.
type note struct {
	freq  float64
	beats int
}

// A small A-minor progression that loops cleanly.
var melodyNotes = []note{
	{220.00, 2}, {261.63, 1}, {329.63, 1},
	{440.00, 2}, {329.63, 1}, {261.63, 1},
	{196.00, 2}, {246.94, 1}, {293.66, 1},
	{392.00, 2}, {293.66, 1}, {0, 1},
}

const beatDuration = 250 * time.Millisecond

// Melody is an endless synthesized track: a decaying sine lead over a soft
// sub-octave bass. It never drains, so it can be resampled and paused
// indefinitely by a Sink.
type Melody struct {
	rate       beep.SampleRate
	noteIndex  int
	notePos    int
	noteLength int
}

func NewMelody(rate beep.SampleRate) *Melody {
	m := &Melody{rate: rate}
	m.noteLength = rate.N(beatDuration) * melodyNotes[0].beats
	return m
}

func (m *Melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if m.notePos >= m.noteLength {
			m.noteIndex = (m.noteIndex + 1) % len(melodyNotes)
			m.notePos = 0
			m.noteLength = m.rate.N(beatDuration) * melodyNotes[m.noteIndex].beats
		}

		current := melodyNotes[m.noteIndex]
		t := float64(m.notePos) / float64(m.rate)
		progress := float64(m.notePos) / float64(m.noteLength)

		var sample float64
		if current.freq > 0 {
			decay := math.Exp(-progress * 3)
			sample += 0.25 * decay * math.Sin(2*math.Pi*current.freq*t)
			sample += 0.10 * math.Sin(2*math.Pi*current.freq/2*t)
		}

		samples[i][0] = sample
		samples[i][1] = sample
		m.notePos++
	}
	return len(samples), true
}

func (m *Melody) Err() error { return nil }

// NewBlip returns a short percussive ping used for collision feedback.
func NewBlip(rate beep.SampleRate) beep.Streamer {
	const duration = 80 * time.Millisecond
	osc := NewOscillator(880, duration, WaveTriangle, rate)
	return NewEnvelope(osc, duration, 2*time.Millisecond, 60*time.Millisecond, rate)
}
