package grid

// NoteType selects which sink a Note is routed to by the note pipeline.
type NoteType int

const (
	NoteMIDI   NoteType = 0
	NoteSynth  NoteType = 1
	NoteSample NoteType = 2
	NoteCC     NoteType = 3
)

// Note is a single musical event produced by a bang operator and carried
// through the note pipeline to an output engine. Fields not relevant to a
// given NoteType are left at their zero value.
type Note struct {
	NoteType NoteType

	Channel int // 0-15 for MIDI, CC status byte for NoteCC
	Engine  int // synth voice index

	Sample int // sampler slot index
	Slot    int
	Speed   int
	Reverb  int

	NoteNumber int // MIDI pitch 0-127
	Velocity   int // 0-127
	Duration   int // remaining lifetime in milliseconds
	Degree     int // scale degree, or CC controller number for NoteCC

	Started bool
}

// Key identifies the (channel, note_number) group the note pipeline
// deduplicates on.
func (n Note) Key() (int, int) {
	return n.Channel, n.NoteNumber
}
