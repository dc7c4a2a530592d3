package audio

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

// SoundBank is a persistent General MIDI software synthesizer, used by
// SynthSink's default (non-oscillator) voice and as MIDISink's audible
// fallback when no physical MIDI port is available. Unlike the one-shot
// oscillator voices in oscillator.go, a SoundBank keeps a single streaming
// player running for its whole lifetime and is driven by NoteOn/NoteOff
// calls, mirroring how a real MIDI device is driven.
type SoundBank struct {
	mu    sync.Mutex
	synth *meltysynth.Synthesizer
	log   *slog.Logger
}

// NewSoundBank loads a SoundFont (searched via locateSoundFont) and starts
// it rendering into ctx. A missing SoundFont yields a SoundBank whose
// NoteOn/NoteOff are no-ops, so a missing asset degrades to silence instead
// of failing the engine.
func NewSoundBank(ctx *audio.Context, explicitPath string, log *slog.Logger) *SoundBank {
	b := &SoundBank{log: log}

	path := locateSoundFont(explicitPath)
	if path == "" {
		log.Info("soundbank: no SoundFont found, General MIDI voices will be silent")
		return b
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("soundbank: failed to open SoundFont", "path", path, "err", err)
		return b
	}
	defer f.Close()

	sf, err := meltysynth.NewSoundFont(f)
	if err != nil {
		log.Warn("soundbank: failed to parse SoundFont", "path", path, "err", err)
		return b
	}

	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		log.Warn("soundbank: failed to start synthesizer", "err", err)
		return b
	}
	b.synth = synth

	player, err := ctx.NewPlayer(newSynthReader(b))
	if err != nil {
		log.Warn("soundbank: failed to build streaming player", "err", err)
		return b
	}
	player.Play()
	return b
}

func (b *SoundBank) NoteOn(channel, key, velocity int) {
	if b.synth == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synth.NoteOn(int32(channel), int32(key), int32(velocity))
}

func (b *SoundBank) NoteOff(channel, key int) {
	if b.synth == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synth.NoteOff(int32(channel), int32(key))
}

// hasSynth reports whether a SoundFont was actually loaded.
func (b *SoundBank) hasSynth() bool {
	return b.synth != nil
}

// programChange selects a General MIDI instrument on channel via a raw
// 0xC0 program-change MIDI message, the way the Synth operator's engine
// field selects an instrument when routed to the software synth fallback.
func (b *SoundBank) programChange(channel, program int) {
	if b.synth == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synth.ProcessMidiMessage(int32(channel), 0xC0, int32(program), 0)
}

// controlChange sends a raw 0xB0 control-change MIDI message, used by
// CCSink's software-synth fallback.
func (b *SoundBank) controlChange(channel, controller, value int) {
	if b.synth == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synth.ProcessMidiMessage(int32(channel), 0xB0, int32(controller), int32(value))
}

// NoteOnTimed is a convenience for voices that only live for a fixed
// duration rather than an explicit Stop, such as the Synth operator's
// engines above 3 when they are routed to the SoundBank.
func (b *SoundBank) NoteOnTimed(channel, key, velocity int, duration time.Duration) {
	b.NoteOn(channel, key, velocity)
	time.AfterFunc(duration, func() { b.NoteOff(channel, key) })
}

// synthReader adapts SoundBank's Render calls to the io.Reader shape
// ebiten's audio.Context expects from a continuously-streaming source.
type synthReader struct {
	bank   *SoundBank
	left   []float32
	right  []float32
	frames int
}

func newSynthReader(bank *SoundBank) *synthReader {
	const blockFrames = 256
	return &synthReader{
		bank:   bank,
		left:   make([]float32, blockFrames),
		right:  make([]float32, blockFrames),
		frames: blockFrames,
	}
}

func (r *synthReader) Read(buf []byte) (int, error) {
	wantFrames := len(buf) / 4
	if wantFrames > r.frames {
		wantFrames = r.frames
	}
	if wantFrames == 0 {
		return 0, nil
	}

	r.bank.mu.Lock()
	if r.bank.synth != nil {
		r.bank.synth.Render(r.left[:wantFrames], r.right[:wantFrames])
	} else {
		for i := 0; i < wantFrames; i++ {
			r.left[i], r.right[i] = 0, 0
		}
	}
	r.bank.mu.Unlock()

	for i := 0; i < wantFrames; i++ {
		l := int16(clampSample(float64(r.left[i])) * 32767)
		rr := int16(clampSample(float64(r.right[i])) * 32767)
		buf[i*4] = byte(l)
		buf[i*4+1] = byte(l >> 8)
		buf[i*4+2] = byte(rr)
		buf[i*4+3] = byte(rr >> 8)
	}
	return wantFrames * 4, nil
}
