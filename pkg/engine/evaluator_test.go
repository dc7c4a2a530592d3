package engine

import (
	"testing"

	"github.com/orcagrid/orca-go/pkg/grid"
	"github.com/orcagrid/orca-go/pkg/operator"
)

func newCtx(lines []string) *grid.Context {
	cols := 0
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	return grid.NewFromLines(lines, cols, 120, 4, nil, nil)
}

// S1 — Addition: 3A4..... → the cell directly below A holds 7, both
// operand cells locked.
func TestScenario_Addition(t *testing.T) {
	ctx := newCtx([]string{
		"3A4.....",
		"........",
	})
	ev := NewEvaluator(operator.NewDefaultRegistry(), Sinks{})
	ev.Tick(ctx)

	if got := ctx.Read(1, 1); got != '7' {
		t.Fatalf("expected '7' below A, got %q", got)
	}
	if !ctx.IsLocked(0, 0) || !ctx.IsLocked(0, 2) {
		t.Fatalf("expected both operand cells locked")
	}
}

// S2 — Clock modulo: 1C8..... cycles 0..7 below C across 8 ticks.
func TestScenario_ClockModulo(t *testing.T) {
	ctx := newCtx([]string{
		"1C8.....",
		"........",
	})
	ev := NewEvaluator(operator.NewDefaultRegistry(), Sinks{})
	for i := 0; i < 9; i++ {
		want := rune('0' + i%8)
		ev.Tick(ctx)
		if got := ctx.Read(1, 1); got != want {
			t.Fatalf("tick %d: want %q got %q", i, want, got)
		}
	}
}

// S3 — Bang propagation: *E...... clears the bang and moves East one
// column right, locking the destination.
func TestScenario_BangPropagation(t *testing.T) {
	ctx := newCtx([]string{"*E......"})
	ev := NewEvaluator(operator.NewDefaultRegistry(), Sinks{})
	ev.Tick(ctx)

	if ctx.Read(0, 0) == grid.Bang {
		t.Fatalf("expected stale bang cleared")
	}
	if ctx.Read(0, 1) != grid.Empty || ctx.Read(0, 2) != 'E' {
		t.Fatalf("expected E to move one column east, got %q", ctx.Snapshot())
	}
}

// A bang clears after the tick it triggers: no '*' survives into the next one.
func TestInvariant_NoStaleBangsSurvive(t *testing.T) {
	ctx := newCtx([]string{"*........"})
	ev := NewEvaluator(operator.NewDefaultRegistry(), Sinks{})
	ev.Tick(ctx)
	if ctx.Read(0, 0) == grid.Bang {
		t.Fatalf("the original bang at (0,0) should have been cleared")
	}
}

// Two ticks from the same starting grid with no random-using operators
// produce identical results.
func TestInvariant_DeterministicWithoutRandom(t *testing.T) {
	lines := []string{
		"3A4.....",
		"........",
	}
	ctx1 := newCtx(append([]string(nil), lines...))
	ctx2 := newCtx(append([]string(nil), lines...))

	reg := operator.NewDefaultRegistry()
	NewEvaluator(reg, Sinks{}).Tick(ctx1)
	NewEvaluator(reg, Sinks{}).Tick(ctx2)

	if !ctx1.CloneMatrix().Equal(ctx2.CloneMatrix()) {
		t.Fatalf("expected identical grids from identical starting state")
	}
}

type recordSink struct {
	started []grid.Note
	stopped []grid.Note
}

func (r *recordSink) Start(n grid.Note) { r.started = append(r.started, n) }
func (r *recordSink) Stop(n grid.Note)  { r.stopped = append(r.stopped, n) }

// S5 — MIDI note on bang: *:03C4f emits one note_type=0 note on channel 0.
func TestScenario_MIDINoteOnBang(t *testing.T) {
	ctx := newCtx([]string{
		"...........",
		"...........",
		"...........",
		"*:03C4f....",
	})
	midi := &recordSink{}
	ev := NewEvaluator(operator.NewDefaultRegistry(), Sinks{MIDI: midi})
	ev.Tick(ctx)

	if len(midi.started) != 1 {
		t.Fatalf("expected exactly one MIDI note start, got %d", len(midi.started))
	}
	n := midi.started[0]
	if n.NoteType != grid.NoteMIDI || n.Channel != 0 {
		t.Fatalf("unexpected note: %+v", n)
	}
}

// For every note with duration > 0, after one tick with tick_time = d its
// new duration equals max(0, old-d).
func TestNotePipeline_DurationDecrements(t *testing.T) {
	notes := []grid.Note{
		{NoteType: grid.NoteMIDI, Channel: 0, NoteNumber: 60, Duration: 100, Started: true},
	}
	retained := RunNotePipeline(notes, 30, Sinks{})
	if len(retained) != 1 || retained[0].Duration != 70 {
		t.Fatalf("expected duration 70, got %+v", retained)
	}
}

func TestNotePipeline_DurationNeverGoesNegative(t *testing.T) {
	notes := []grid.Note{
		{NoteType: grid.NoteMIDI, Channel: 0, NoteNumber: 60, Duration: 10, Started: true},
	}
	retained := RunNotePipeline(notes, 30, Sinks{})
	if len(retained) != 0 {
		t.Fatalf("expected the note to be dropped once its duration hits 0, got %+v", retained)
	}
}

func TestNotePipeline_FreshNoteSupersedesStarted(t *testing.T) {
	notes := []grid.Note{
		{NoteType: grid.NoteMIDI, Channel: 0, NoteNumber: 60, Duration: 5, Started: true},
		{NoteType: grid.NoteMIDI, Channel: 0, NoteNumber: 60, Duration: 50, Started: false},
	}
	retained := RunNotePipeline(notes, 30, Sinks{})
	if len(retained) != 1 || retained[0].Duration != 50 {
		t.Fatalf("expected the fresh retrigger (duration 50) to win, got %+v", retained)
	}
}
