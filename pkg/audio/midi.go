package audio

import (
	"log/slog"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/orcagrid/orca-go/pkg/grid"
)

// VirtualPortName is the name the MIDI sink advertises when it opens a
// virtual output port, so other software sees it as a destination named
// after this engine.
const VirtualPortName = "orca"

// MIDISink implements engine.Sink for NoteMIDI notes by sending real
// note-on/note-off messages to a MIDI output port, following
// run_midi's start/stop shape: Start sends note-off then note-on (so a
// retrigger never leaves a stuck note), Stop sends note-off alone.
type MIDISink struct {
	send func(msg midi.Message) error
	bank *SoundBank // audible fallback when no physical MIDI port exists
	log  *slog.Logger
}

// NewMIDISink opens a virtual MIDI output port named VirtualPortName via
// rtmididrv, so the process appears as a selectable MIDI destination in
// other software. If no MIDI backend is available on the host, it plays
// through bank instead, so a grid still produces sound on a machine with
// no MIDI subsystem.
func NewMIDISink(bank *SoundBank, log *slog.Logger) *MIDISink {
	s := &MIDISink{bank: bank, log: log}

	drv, err := rtmididrv.New()
	if err != nil {
		log.Info("midi: no MIDI backend available, falling back to the software synth", "err", err)
		return s
	}
	out, err := drv.OpenVirtualOut(VirtualPortName)
	if err != nil {
		log.Warn("midi: failed to open virtual output port, falling back to the software synth", "err", err)
		return s
	}
	send, err := midi.SendTo(out)
	if err != nil {
		log.Warn("midi: failed to bind sender, falling back to the software synth", "err", err)
		return s
	}
	s.send = send
	allNotesOff(send)
	return s
}

func (s *MIDISink) Start(n grid.Note) {
	ch, key, vel := n.Channel&0x0f, n.NoteNumber&0x7f, n.Velocity&0x7f
	if s.send == nil {
		s.bank.NoteOff(ch, key)
		s.bank.NoteOn(ch, key, vel)
		return
	}
	_ = s.send(midi.NoteOff(uint8(ch), uint8(key)))
	_ = s.send(midi.NoteOn(uint8(ch), uint8(key), uint8(vel)))
}

func (s *MIDISink) Stop(n grid.Note) {
	ch, key := n.Channel&0x0f, n.NoteNumber&0x7f
	if s.send == nil {
		s.bank.NoteOff(ch, key)
		return
	}
	_ = s.send(midi.NoteOff(uint8(ch), uint8(key)))
}

// Shutdown sends an all-notes-off sweep across every channel, matching
// run_midi's behavior when the grid enters its shutdown state.
func (s *MIDISink) Shutdown() {
	if s.send == nil {
		return
	}
	allNotesOff(s.send)
}

func allNotesOff(send func(msg midi.Message) error) {
	for ch := uint8(0); ch < 16; ch++ {
		for key := uint8(0); key < 128; key++ {
			_ = send(midi.NoteOff(ch, key))
		}
	}
}

// CCSink implements engine.Sink for NoteCC notes: a fresh CC note sends a
// single controller-change message whose value is exponentially scaled
// from the raw base-36 velocity, matching scale_exponential; CC notes carry
// no sustain, so Stop is a no-op.
type CCSink struct {
	send func(msg midi.Message) error
	bank *SoundBank
}

// NewCCSink shares a MIDI output connection the same way MIDISink does,
// falling back to bank's software synth when no physical port is found.
func NewCCSink(bank *SoundBank, log *slog.Logger) *CCSink {
	s := &CCSink{bank: bank}

	drv, err := rtmididrv.New()
	if err != nil {
		log.Info("midi cc: no MIDI backend available, falling back to the software synth", "err", err)
		return s
	}
	out, err := drv.OpenVirtualOut(VirtualPortName + "-cc")
	if err != nil {
		log.Warn("midi cc: failed to open virtual output port, falling back to the software synth", "err", err)
		return s
	}
	send, err := midi.SendTo(out)
	if err != nil {
		log.Warn("midi cc: failed to bind sender, falling back to the software synth", "err", err)
		return s
	}
	s.send = send
	return s
}

func (s *CCSink) Start(n grid.Note) {
	ch, cc := n.Channel&0x0f, n.Degree&0x7f
	val := scaleExponential(n.Velocity)
	if s.send == nil {
		s.bank.controlChange(ch, cc, int(val))
		return
	}
	_ = s.send(midi.ControlChange(uint8(ch), uint8(cc), val))
}

func (s *CCSink) Stop(grid.Note) {}

// scaleExponential matches the original engine's velocity curve for MIDI
// CC values: the raw 0-36 base value is normalized, passed through 2^x,
// multiplied by 127 and clamped to 0-127. Since 2^x >= 1 for any
// non-negative raw value, every non-negative input yields 127.
func scaleExponential(raw int) uint8 {
	normalized := float64(raw) / 36
	exp := math.Pow(2, normalized)
	v := exp * 127
	if v > 127 {
		v = 127
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}
