package operator

import "github.com/orcagrid/orca-go/pkg/grid"

// evalMIDI implements "MIDI": on bang, emits a note_type=0 Note built from
// the five east cells (channel, octave, note, velocity, duration).
func evalMIDI(ctx *grid.Context, row, col int) []grid.Update {
	chPort, ch := listenDecoded(ctx, "channel", row, col+1, '0')
	octPort, oct := listenDecoded(ctx, "octave", row, col+2, '0')
	notePort, note := listenDecoded(ctx, "note", row, col+3, '0')
	velPort, vel := listenDecoded(ctx, "velocity", row, col+4, 'f')
	durPort, dur := listenDecoded(ctx, "duration", row, col+5, '1')

	updates := []grid.Update{grid.Inputs(chPort, octPort, notePort, velPort, durPort)}
	if !isBangAdjacent(ctx, row, col) {
		return updates
	}

	n := grid.Note{
		NoteType:   grid.NoteMIDI,
		Channel:    ch.V,
		NoteNumber: note.V + 12*oct.V,
		Velocity:   velocityToMIDI(vel.V),
		Duration:   durationMillis(dur.V, ctx.TickMillis()),
	}
	return append(updates, grid.Notes(n))
}

// evalSynth implements "Synth": on bang, emits a note_type=1 Note pitched
// via the Scaler/Synth scale formula against the current globals, using
// its seventh field (fm) as the Note's Speed slot.
func evalSynth(ctx *grid.Context, row, col int) []grid.Update {
	enginePort, engine := listenDecoded(ctx, "engine", row, col+1, '0')
	octPort, oct := listenDecoded(ctx, "octave", row, col+2, '0')
	degPort, deg := listenDecoded(ctx, "degree", row, col+3, '0')
	velPort, vel := listenDecoded(ctx, "velocity", row, col+4, 'f')
	durPort, dur := listenDecoded(ctx, "duration", row, col+5, '1')
	revPort, rev := listenDecoded(ctx, "reverb", row, col+6, '0')
	fmPort, fm := listenDecoded(ctx, "fm", row, col+7, '0')

	updates := []grid.Update{grid.Inputs(enginePort, octPort, degPort, velPort, durPort, revPort, fmPort)}
	if !isBangAdjacent(ctx, row, col) {
		return updates
	}

	n := grid.Note{
		NoteType:   grid.NoteSynth,
		Engine:     engine.V,
		NoteNumber: notePitch(ctx.Globals(), oct.V, deg.V),
		Velocity:   velocityToMIDI(vel.V),
		Duration:   durationMillis(dur.V, ctx.TickMillis()),
		Reverb:     rev.V,
		Speed:      fm.V,
		Degree:     deg.V,
	}
	return append(updates, grid.Notes(n))
}

// evalScaler implements "Scaler": on bang, emits a note_type=0 Note whose
// pitch comes from the Scaler/Synth scale formula rather than a raw MIDI
// note number.
func evalScaler(ctx *grid.Context, row, col int) []grid.Update {
	chPort, ch := listenDecoded(ctx, "channel", row, col+1, '0')
	octPort, oct := listenDecoded(ctx, "octave", row, col+2, '0')
	degPort, deg := listenDecoded(ctx, "degree", row, col+3, '0')
	velPort, vel := listenDecoded(ctx, "velocity", row, col+4, 'f')
	durPort, dur := listenDecoded(ctx, "duration", row, col+5, '1')

	updates := []grid.Update{grid.Inputs(chPort, octPort, degPort, velPort, durPort)}
	if !isBangAdjacent(ctx, row, col) {
		return updates
	}

	n := grid.Note{
		NoteType:   grid.NoteMIDI,
		Channel:    ch.V,
		NoteNumber: notePitch(ctx.Globals(), oct.V, deg.V),
		Velocity:   velocityToMIDI(vel.V),
		Duration:   durationMillis(dur.V, ctx.TickMillis()),
		Degree:     deg.V,
	}
	return append(updates, grid.Notes(n))
}

// evalMIDICC implements "MIDI CC": on bang, emits a note_type=3 Note
// carrying a controller number (Degree) and the raw base-36 value
// (Velocity), which the CC sink scales itself.
func evalMIDICC(ctx *grid.Context, row, col int) []grid.Update {
	chPort, ch := listenDecoded(ctx, "channel", row, col+1, '0')
	cmdPort, cmd := listenDecoded(ctx, "controller", row, col+2, '0')
	valPort, val := listenDecoded(ctx, "value", row, col+3, '0')

	updates := []grid.Update{grid.Inputs(chPort, cmdPort, valPort)}
	if !isBangAdjacent(ctx, row, col) {
		return updates
	}

	n := grid.Note{
		NoteType: grid.NoteCC,
		Channel:  ch.V,
		Degree:   cmd.V,
		Velocity: val.V,
		Duration: ctx.TickMillis(),
	}
	return append(updates, grid.Notes(n))
}

// evalSampler implements "Sampler": on bang, emits a note_type=2 Note.
// Field order (sample, slot, speed, reverb, velocity, duration) follows
// the velocity-before-duration convention the MIDI, Synth, and Scaler
// table entries use; see DESIGN.md.
func evalSampler(ctx *grid.Context, row, col int) []grid.Update {
	samplePort, sample := listenDecoded(ctx, "sample", row, col+1, '0')
	slotPort, slot := listenDecoded(ctx, "slot", row, col+2, '0')
	speedPort, speed := listenDecoded(ctx, "speed", row, col+3, 'z')
	reverbPort, reverb := listenDecoded(ctx, "reverb", row, col+4, '0')
	velPort, vel := listenDecoded(ctx, "velocity", row, col+5, 'f')
	durPort, dur := listenDecoded(ctx, "duration", row, col+6, '1')

	updates := []grid.Update{grid.Inputs(samplePort, slotPort, speedPort, reverbPort, velPort, durPort)}
	if !isBangAdjacent(ctx, row, col) {
		return updates
	}

	n := grid.Note{
		NoteType: grid.NoteSample,
		Sample:   sample.V,
		Slot:     slot.V,
		Speed:    speed.V,
		Reverb:   reverb.V,
		Velocity: velocityToMIDI(vel.V),
		Duration: durationMillis(dur.V, ctx.TickMillis()),
	}
	return append(updates, grid.Notes(n))
}

// evalGlobals implements "Globals": updates the persistent key/scale pair
// from the two east cells, leaving either unchanged when its cell is
// Empty.
func evalGlobals(ctx *grid.Context, row, col int) []grid.Update {
	current := ctx.Globals()
	keyPort := ctx.Listen("key", row, col+1, current.Key)
	scalePort := ctx.Listen("scale", row, col+2, current.Scale)

	return []grid.Update{
		grid.Inputs(keyPort, scalePort),
		grid.SetGlobals(keyPort.Value, scalePort.Value),
	}
}
