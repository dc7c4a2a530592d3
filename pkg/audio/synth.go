package audio

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/orcagrid/orca-go/pkg/grid"
)

// SynthSink implements engine.Sink for NoteSynth notes: engines 0-3 render
// one of four oscillator voices (see oscillator.go) as a one-shot stream;
// when a SoundFont is loaded, any other engine value is routed to a shared
// SoundBank, so every engine beyond the four explicit ones draws on the
// General MIDI instrument library; with no SoundFont loaded those engines
// play the bespoke bassdrum voice. Duration and an envelope end the oscillator voices on
// their own, and the SoundBank voice is timed the same way via
// NoteOnTimed, so Stop is a no-op either way — following the original
// engine's synth thread, which never explicitly stops a voice once
// triggered.
type SynthSink struct {
	ctx  *audio.Context
	bank *SoundBank
	log  *slog.Logger
}

// NewSynthSink builds a SynthSink sharing ctx with any other ebiten-audio
// sink (a process may only have one audio.Context) and bank with the
// MIDI/CC sinks' software-synth fallback.
func NewSynthSink(ctx *audio.Context, bank *SoundBank, log *slog.Logger) *SynthSink {
	return &SynthSink{ctx: ctx, bank: bank, log: log}
}

func (s *SynthSink) Start(n grid.Note) {
	pitch := midiHz(n.NoteNumber)
	fm := fmFactor(n.Speed)
	velocity := float64(n.Velocity) * 0.0076
	durationSeconds := float64(n.Duration) / 1000

	if n.Engine > 3 {
		if s.bank.hasSynth() {
			program := n.Engine % 128
			s.bank.programChange(0, program)
			s.bank.NoteOnTimed(0, n.NoteNumber&0x7f, n.Velocity&0x7f, time.Duration(n.Duration)*time.Millisecond)
			return
		}
		// No SoundFont loaded: fall back to the original engine's bespoke
		// percussion voice instead of going silent.
		s.play(bassdrumWave(pitch, midiHz(n.NoteNumber/2), velocity), durationSeconds)
		return
	}

	var frame func(t float64) float64
	switch n.Engine {
	case 0:
		frame = sineWave(pitch, fm, velocity)
	case 1:
		frame = sawWave(pitch, fm, velocity)
	case 2:
		frame = triWave(pitch, fm, velocity)
	default:
		frame = squareWave(pitch, fm, velocity)
	}

	s.play(frame, durationSeconds)
}

func (s *SynthSink) play(frame func(t float64) float64, durationSeconds float64) {
	player, err := s.ctx.NewPlayer(newPCMReader(durationSeconds, frame))
	if err != nil {
		s.log.Warn("synth: failed to build player", "err", err)
		return
	}
	player.Play()
}

func (s *SynthSink) Stop(grid.Note) {}

// fmFactor maps a raw east-cell speed value (0-35) to the fm multiplier
// sine_synth/saw_synth/tri_synth/square_synth apply to their carrier; a
// value of 0 would silence the carrier entirely, so it is floored at 1.
func fmFactor(speed int) float64 {
	if speed <= 0 {
		return 1
	}
	return float64(speed)
}
