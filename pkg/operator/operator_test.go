package operator

import (
	"testing"

	"github.com/orcagrid/orca-go/pkg/grid"
)

func newCtx(t *testing.T, lines []string) *grid.Context {
	t.Helper()
	cols := 0
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	return grid.NewFromLines(lines, cols, 120, 4, nil, nil)
}

func apply(ctx *grid.Context, updates []grid.Update) {
	for _, u := range updates {
		u.Apply(ctx)
	}
}

func TestEvalAddEncodesBase36Letter(t *testing.T) {
	ctx := newCtx(t, []string{
		"9A2",
		"...",
	})
	apply(ctx, evalAdd(ctx, 0, 1))
	if got := ctx.Read(1, 1); got != 'b' {
		t.Fatalf("9+2 = 11, want 'b' (base36), got %q", got)
	}
}

func TestEvalAddUppercaseOnEitherOperandUppercases(t *testing.T) {
	ctx := newCtx(t, []string{
		"1A2",
		"...",
	})
	ctx.Write(0, 0, 'B') // uppercase hex-ish digit, decodes same numeric value with Upper=true
	apply(ctx, evalAdd(ctx, 0, 1))
	if got := ctx.Read(1, 1); got < 'A' || got > 'Z' {
		t.Fatalf("expected uppercase result when an operand is uppercase, got %q", got)
	}
}

func TestEvalMultiplySaturates(t *testing.T) {
	ctx := newCtx(t, []string{
		"zMz",
		"...",
	})
	apply(ctx, evalMultiply(ctx, 0, 1))
	if got := ctx.Read(1, 1); got != 'z' {
		t.Fatalf("35*35 saturates to 35 ('z'), got %q", got)
	}
}

func TestEvalLesserEmptyOperandYieldsNul(t *testing.T) {
	ctx := newCtx(t, []string{
		".L2",
		"...",
	})
	apply(ctx, evalLesser(ctx, 0, 1))
	if got := ctx.Read(1, 1); got != grid.Nul {
		t.Fatalf("expected nul output when an operand is empty, got %q", got)
	}
}

func TestMoveEastIntoEmptyCellMoves(t *testing.T) {
	ctx := newCtx(t, []string{"E.."})
	apply(ctx, evalMoveEast(ctx, 0, 0))
	if ctx.Read(0, 0) != grid.Empty || ctx.Read(0, 1) != 'E' {
		t.Fatalf("expected E to move east, grid=%q", ctx.Snapshot())
	}
}

func TestMoveEastIntoOccupiedCellBangsSelf(t *testing.T) {
	ctx := newCtx(t, []string{"EX."})
	apply(ctx, evalMoveEast(ctx, 0, 0))
	if ctx.Read(0, 0) != grid.Bang {
		t.Fatalf("expected blocked mover to bang itself, got %q", ctx.Read(0, 0))
	}
}

func TestEvalIfRawEquality(t *testing.T) {
	ctx := newCtx(t, []string{
		"1F1",
		"...",
	})
	apply(ctx, evalIf(ctx, 0, 1))
	if got := ctx.Read(1, 1); got != grid.Bang {
		t.Fatalf("equal operands should bang, got %q", got)
	}
}

func TestEvalDelayFiresOnMultiple(t *testing.T) {
	ctx := newCtx(t, []string{
		"1D2",
		"...",
	})
	for i := 0; i < 6; i++ {
		ctx.SetNotes(nil)
		updates := evalDelay(ctx, 0, 1)
		apply(ctx, updates)
		want := grid.Empty
		if i%2 == 0 {
			want = grid.Bang
		}
		if got := ctx.Read(1, 1); got != want {
			t.Fatalf("tick %d: want %q got %q", i, want, got)
		}
		ctx.IncrementTicks()
	}
}

func TestEvalVariableWriteThenRead(t *testing.T) {
	ctx := newCtx(t, []string{
		"Va1",
		"...",
	})
	apply(ctx, evalVariable(ctx, 0, 0))
	if got := ctx.ReadVariable('a', grid.Empty); got != '1' {
		t.Fatalf("expected variable a=1, got %q", got)
	}

	ctx2 := newCtx(t, []string{
		"V.a",
		"...",
	})
	ctx2.SetVariable('a', '7')
	apply(ctx2, evalVariable(ctx2, 0, 0))
	if got := ctx2.Read(1, 0); got != '7' {
		t.Fatalf("expected read-mode output '7', got %q", got)
	}
}

func TestEvalCommentLocksThroughNextHash(t *testing.T) {
	ctx := newCtx(t, []string{"#ABC#DEF"})
	updates := evalComment(ctx, 0, 0)
	apply(ctx, updates)
	for c := 0; c <= 4; c++ {
		if !ctx.IsLocked(0, c) {
			t.Fatalf("expected col %d locked inside comment span", c)
		}
	}
	if ctx.IsLocked(0, 5) {
		t.Fatalf("expected col 5 (D, past closing #) to be unlocked")
	}
}

func TestEvalMIDIEmitsNoteOnBang(t *testing.T) {
	ctx := newCtx(t, []string{
		".....",
		"*:0048z1",
	})
	updates := evalMIDI(ctx, 1, 1)
	apply(ctx, updates)
	notes := ctx.Notes()
	if len(notes) != 1 {
		t.Fatalf("expected one note emitted, got %d", len(notes))
	}
	n := notes[0]
	if n.NoteType != grid.NoteMIDI {
		t.Fatalf("expected NoteMIDI, got %v", n.NoteType)
	}
}

func TestEvalMIDINoBangNoNote(t *testing.T) {
	ctx := newCtx(t, []string{
		".....",
		".:0048z1",
	})
	apply(ctx, evalMIDI(ctx, 1, 1))
	if len(ctx.Notes()) != 0 {
		t.Fatalf("expected no note without an adjacent bang")
	}
}

func TestEvalGlobalsUpdatesKeyAndScale(t *testing.T) {
	ctx := newCtx(t, []string{"@D1"})
	apply(ctx, evalGlobals(ctx, 0, 0))
	g := ctx.Globals()
	if g.Key != 'D' || g.Scale != '1' {
		t.Fatalf("expected key=D scale=1, got %+v", g)
	}
}

func TestEvalSaveRequestsOnBang(t *testing.T) {
	ctx := newCtx(t, []string{
		"*........",
		"[mysong..",
	})
	updates := evalSave(ctx, 1, 0)
	var saved string
	for _, u := range updates {
		if u.Kind == grid.UpdateSave {
			saved = u.Name
		}
	}
	if saved != "mysong" {
		t.Fatalf("expected a save request for %q, got %q", "mysong", saved)
	}
	apply(ctx, updates)
	ctx.FlushPersistence()
}
