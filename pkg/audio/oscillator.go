// Package audio wires the note pipeline's Sink interface to real sound:
// a soundfont-backed synth voice, a sample player, and live MIDI/CC output.
package audio

import (
	"io"
	"math"
	"math/rand"
)

const sampleRate = 44100

// pcmReader turns a sample-generating closure into an io.Reader of 16-bit
// little-endian stereo PCM, the format ebiten's audio.Context expects.
// pos counts up to frames and then the reader reports io.EOF, so a
// one-shot voice stops cleanly without an explicit Close.
type pcmReader struct {
	frame  func(t float64) float64
	pos    int64
	frames int64
}

func newPCMReader(durationSeconds float64, frame func(t float64) float64) *pcmReader {
	return &pcmReader{frame: frame, frames: int64(durationSeconds * sampleRate)}
}

func (r *pcmReader) Read(buf []byte) (int, error) {
	if r.pos >= r.frames {
		return 0, io.EOF
	}
	n := 0
	for n+4 <= len(buf) && r.pos < r.frames {
		t := float64(r.pos) / sampleRate
		s := clampSample(r.frame(t))
		v := int16(s * 32767)
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		buf[n+2] = buf[n]
		buf[n+3] = buf[n+1]
		n += 4
		r.pos++
	}
	return n, nil
}

func clampSample(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// expEnvelope matches the original engine's exp(-t*10) amplitude decay used
// by all four oscillator voices.
func expEnvelope(t float64) float64 {
	return math.Exp(-t * 10)
}

// sineWave, sawWave, triWave, squareWave are the four Synth engine voices
// (engine 0-3): a carrier at pitchHz, frequency-modulated by fm the same way
// sine_synth/saw_synth/tri_synth/square_synth scale their carrier
// (pitch*0.75*fm), amplitude-scaled by velocity and the shared envelope.
func sineWave(pitchHz, fm, velocity float64) func(t float64) float64 {
	carrier := pitchHz * 0.75 * fm
	return func(t float64) float64 {
		return math.Sin(2*math.Pi*carrier*t) * velocity * expEnvelope(t)
	}
}

func sawWave(pitchHz, fm, velocity float64) func(t float64) float64 {
	carrier := pitchHz * 0.75 * fm
	return func(t float64) float64 {
		phase := math.Mod(carrier*t, 1)
		return (2*phase - 1) * velocity * expEnvelope(t)
	}
}

func triWave(pitchHz, fm, velocity float64) func(t float64) float64 {
	carrier := pitchHz * 0.75 * fm
	return func(t float64) float64 {
		phase := math.Mod(carrier*t, 1)
		tri := 2*math.Abs(2*phase-1) - 1
		return tri * velocity * expEnvelope(t)
	}
}

func squareWave(pitchHz, fm, velocity float64) func(t float64) float64 {
	carrier := pitchHz * 0.75 * fm
	return func(t float64) float64 {
		phase := math.Mod(carrier*t, 1)
		sq := 1.0
		if phase >= 0.5 {
			sq = -1.0
		}
		return sq * velocity * expEnvelope(t)
	}
}

// bassdrumWave is the engine >= 4 percussion voice used when no SoundFont
// is loaded: a pitch sweep
// from pitch0 down to pitch1 over the first ~25ms mixed with band-limited
// noise, both under a faster kick envelope, following bassdrum2's shape.
func bassdrumWave(pitch0, pitch1, velocity float64) func(t float64) float64 {
	rng := rand.New(rand.NewSource(1))
	return func(t float64) float64 {
		sweepT := t * 40
		if sweepT > 1 {
			sweepT = 1
		}
		freq := pitch0 + (pitch1-pitch0)*sweepT - 10*t
		if freq < 1 {
			freq = 1
		}
		sweep := math.Sin(2 * math.Pi * freq * t)
		noise := (rng.Float64()*2 - 1) * math.Exp(-t*8)
		kickEnv := math.Exp(-t * 10)
		return (sweep + noise*0.3) * velocity * kickEnv
	}
}

// midiHz converts a MIDI note number to frequency, matching fundsp's
// midi_hz (A4 = note 69 = 440Hz, twelve-tone equal temperament).
func midiHz(noteNumber int) float64 {
	return 440 * math.Pow(2, (float64(noteNumber)-69)/12)
}
