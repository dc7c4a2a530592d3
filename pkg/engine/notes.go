package engine

import "github.com/orcagrid/orca-go/pkg/grid"

// Sink receives start/stop commands for one note_type. Concrete sinks
// (MIDI, synth, sampler, MIDI CC) live in pkg/audio; engine
// only depends on this interface so the note pipeline stays testable
// without real devices.
type Sink interface {
	Start(n grid.Note)
	Stop(n grid.Note)
}

// noSink is used for any note_type whose sink was not wired, so a missing
// collaborator drops notes instead of panicking.
type noSink struct{}

func (noSink) Start(grid.Note) {}
func (noSink) Stop(grid.Note)  {}

// Sinks routes a Note to its sink by note_type: MIDI notes to the MIDI
// sink, synth notes to the synth sink, sample notes to the sampler sink,
// and CC notes to the MIDI CC sink.
type Sinks struct {
	MIDI    Sink
	Synth   Sink
	Sampler Sink
	CC      Sink
}

func (s Sinks) dispatcher(t grid.NoteType) Sink {
	switch t {
	case grid.NoteMIDI:
		if s.MIDI != nil {
			return s.MIDI
		}
	case grid.NoteSynth:
		if s.Synth != nil {
			return s.Synth
		}
	case grid.NoteSample:
		if s.Sampler != nil {
			return s.Sampler
		}
	case grid.NoteCC:
		if s.CC != nil {
			return s.CC
		}
	}
	return noSink{}
}

type noteKey struct {
	channel    int
	noteNumber int
}

func keyOf(n grid.Note) noteKey {
	ch, nn := n.Key()
	return noteKey{channel: ch, noteNumber: nn}
}

func saturatingSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}

// pickWinner resolves two notes sharing a (channel, note_number) key: a
// not-started (freshly emitted) candidate always supersedes a started one
// (a retrigger); between two started candidates
// (already duration-decremented by the caller), the one with the greater
// remaining duration survives.
func pickWinner(a, b grid.Note) grid.Note {
	if a.Started != b.Started {
		if a.Started {
			return b
		}
		return a
	}
	if a.Started && a.Duration < b.Duration {
		return b
	}
	if a.Started {
		return a
	}
	return b
}

// RunNotePipeline runs the note pipeline end-to-end: it decrements already
// started notes by tickMillis, groups the tick's full note buffer by
// (channel, note_number), dispatches each surviving note to its sink, and
// returns the notes to retain for the next tick (duration > 0).
//
// A note already playing with duration left is left alone (no repeated
// Start/Stop calls); a fresh or retriggered note gets Stop then Start, and
// a note whose duration has just reached zero gets Stop only.
func RunNotePipeline(notes []grid.Note, tickMillis int, sinks Sinks) []grid.Note {
	transformed := make([]grid.Note, len(notes))
	for i, n := range notes {
		if n.Started {
			n.Duration = saturatingSub(n.Duration, tickMillis)
		}
		transformed[i] = n
	}

	grouped := make(map[noteKey]grid.Note, len(transformed))
	var order []noteKey
	for _, n := range transformed {
		k := keyOf(n)
		existing, ok := grouped[k]
		if !ok {
			grouped[k] = n
			order = append(order, k)
			continue
		}
		grouped[k] = pickWinner(existing, n)
	}

	var retained []grid.Note
	for _, k := range order {
		n := grouped[k]
		sink := sinks.dispatcher(n.NoteType)

		switch {
		case n.Started && n.Duration <= 0:
			sink.Stop(n)
		case !n.Started:
			// A retrigger sends a stop before the start, so a rapid
			// re-bang of the same (channel, note_number) never leaves a
			// stuck note behind.
			sink.Stop(n)
			sink.Start(n)
		}
		n.Started = true

		if n.Duration > 0 {
			retained = append(retained, n)
		}
	}
	return retained
}
