package operator

import (
	"github.com/orcagrid/orca-go/pkg/codec"
	"github.com/orcagrid/orca-go/pkg/grid"
)

// naturalNotes and sharpNotes are the semitone offsets of the seven
// "white key" letters depending on case.
var naturalNotes = [7]int{9, 11, 0, 2, 4, 5, 7}
var sharpNotes = [7]int{10, 12, 1, 3, 5, 6, 8}

// scaleNames fixes the row order of the 26-scale table.
var scaleNames = []string{
	"Major", "Minor", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Locrian",
	"Harmonic Minor", "Harmonic Major", "Melodic Minor", "Melodic Major",
	"Super Locrian", "Romanian Minor", "Hungarian Minor", "Neapolitan Minor",
	"Enigmatic", "Spanish", "Leading Whole", "Lydian Minor", "Neapolitan Major",
	"Locrian Major", "Todi", "Purvi", "Marva", "Bhairav", "Ahirbhairav",
}

// scales holds the 26×7 semitone-offset table, one row per entry of
// scaleNames, checked row-for-row against the reference implementation's
// scale table; see DESIGN.md.
var scales = [26][7]int{
	{0, 2, 4, 5, 7, 9, 11},   // Major
	{0, 2, 3, 5, 7, 8, 10},   // Minor
	{0, 2, 3, 5, 7, 9, 10},   // Dorian
	{0, 1, 3, 5, 7, 8, 10},   // Phrygian
	{0, 2, 4, 6, 7, 9, 11},   // Lydian
	{0, 2, 4, 5, 7, 9, 10},   // Mixolydian
	{0, 1, 3, 5, 6, 8, 10},   // Locrian
	{0, 2, 3, 5, 7, 8, 11},   // Harmonic Minor
	{0, 2, 4, 5, 7, 8, 11},   // Harmonic Major
	{0, 2, 3, 5, 7, 9, 11},   // Melodic Minor
	{0, 2, 4, 5, 7, 8, 10},   // Melodic Major
	{0, 1, 3, 4, 6, 8, 10},   // Super Locrian
	{0, 2, 3, 6, 7, 9, 10},   // Romanian Minor
	{0, 2, 3, 6, 7, 8, 11},   // Hungarian Minor
	{0, 1, 3, 5, 7, 8, 11},   // Neapolitan Minor
	{0, 1, 4, 6, 8, 10, 11},  // Enigmatic
	{0, 1, 4, 5, 7, 8, 10},   // Spanish
	{0, 2, 4, 6, 8, 10, 11},  // Leading Whole
	{0, 2, 4, 6, 7, 8, 10},   // Lydian Minor
	{0, 1, 3, 5, 7, 9, 11},   // Neapolitan Major
	{0, 2, 4, 5, 6, 8, 10},   // Locrian Major
	{0, 1, 3, 6, 7, 8, 11},   // Todi
	{0, 1, 4, 6, 7, 8, 11},   // Purvi
	{0, 1, 4, 6, 7, 9, 11},   // Marva
	{0, 1, 4, 5, 7, 8, 11},   // Bhairav
	{0, 1, 4, 5, 7, 9, 10},   // Ahirbhairav
}

// mod positive-normalizes a % b for negative a.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// notePitch computes a pitch for the Scaler/Synth operators: given the
// current globals, an octave offset and a scale degree, returns the
// absolute MIDI note number. The natural/sharp assignment is inverted
// relative to the plain MIDI operator and is kept that way rather than
// "corrected"; see DESIGN.md.
func notePitch(globals grid.Globals, octave, degree int) int {
	base := codec.Decode(globals.Key)
	noteIndex := mod(base.V-10, 7)
	octaveOffset := 1 + floorDiv(base.V-10, 7)

	var noteOffset int
	if base.Upper {
		noteOffset = sharpNotes[noteIndex]
	} else {
		noteOffset = naturalNotes[noteIndex]
	}

	scaleIdx := mod(codec.Decode(globals.Scale).V, len(scales))
	row := scales[scaleIdx]
	scaleOffset := 12*(degree/7) + row[mod(degree, 7)]

	return scaleOffset + 12*(octave+octaveOffset) + noteOffset
}

// floorDiv is integer division rounding toward negative infinity, needed
// because base-10 can be negative for digit keys ('0'-'9').
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// velocityToMIDI scales a decoded 0-35 velocity value to the 0-127 MIDI
// range by the multiplier 127/35.
func velocityToMIDI(v int) int {
	scaled := v * 127 / 35
	if scaled > 127 {
		scaled = 127
	}
	if scaled < 0 {
		scaled = 0
	}
	return scaled
}

// durationMillis converts a decoded duration value into milliseconds given
// the current tick duration: dur * tick_time.
func durationMillis(dur, tickMillis int) int {
	return dur * tickMillis
}
