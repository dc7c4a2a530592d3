// Package engine drives one grid tick at a time: the evaluator scans the
// grid for operators to run and, at the end of every tick, pushes the
// accumulated notes through the note pipeline.
package engine

import (
	"github.com/orcagrid/orca-go/pkg/grid"
	"github.com/orcagrid/orca-go/pkg/operator"
)

// Evaluator runs one tick against a Context: it uses a fixed Registry to
// resolve a cell's character to the operator that should run, and a fixed
// set of Sinks to dispatch the tick's surviving notes to.
type Evaluator struct {
	registry *operator.Registry
	sinks    Sinks
}

// NewEvaluator builds an Evaluator bound to registry and sinks. A zero
// Sinks value is valid: every note_type is then silently dropped, which is
// useful for tests that only assert grid state.
func NewEvaluator(registry *operator.Registry, sinks Sinks) *Evaluator {
	return &Evaluator{registry: registry, sinks: sinks}
}

// Tick runs exactly one tick against ctx: unlock and clear variables, clear
// stale bangs, the tick-operator pass in row-major order, the bang-operator
// pass, the tick increment, the note pipeline, and finally any pending
// save/load request. Callers (the scheduler) hold ctx.Mu for the duration
// of the call.
func (e *Evaluator) Tick(ctx *grid.Context) {
	ctx.UnlockAll()
	ctx.ClearVariables()
	e.clearStaleBangs(ctx)
	e.tickPass(ctx)
	e.bangPass(ctx)
	ctx.IncrementTicks()

	retained := RunNotePipeline(ctx.Notes(), ctx.TickMillis(), e.sinks)
	ctx.SetNotes(retained)
	ctx.FlushPersistence()
}

// clearStaleBangs replaces every '*' left over from the previous tick with
// '.', so that only bangs written during this tick survive to be read by
// the bang pass, and no bang ever lives past the tick it triggers.
func (e *Evaluator) clearStaleBangs(ctx *grid.Context) {
	rows, cols := ctx.Rows(), ctx.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ctx.Read(r, c) == grid.Bang {
				ctx.Write(r, c, grid.Empty)
			}
		}
	}
}

// tickPass runs every unlocked cell whose character maps to a TickKind
// descriptor, in row-major order, applying its Updates before the next cell
// is considered.
func (e *Evaluator) tickPass(ctx *grid.Context) {
	rows, cols := ctx.Rows(), ctx.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ctx.IsLocked(r, c) {
				continue
			}
			d, ok := e.registry.Lookup(ctx.Read(r, c))
			if !ok || d.Kind != operator.TickKind {
				continue
			}
			e.apply(ctx, d.Eval(ctx, r, c))
		}
	}
}

// bangPass runs every unlocked cell whose character maps to a BangKind
// descriptor (the lowercase twin of a letter operator) and is adjacent to a
// bang.
func (e *Evaluator) bangPass(ctx *grid.Context) {
	rows, cols := ctx.Rows(), ctx.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ctx.IsLocked(r, c) {
				continue
			}
			d, ok := e.registry.Lookup(ctx.Read(r, c))
			if !ok || d.Kind != operator.BangKind {
				continue
			}
			if !ctx.BangAdjacent(r, c) {
				continue
			}
			e.apply(ctx, d.Eval(ctx, r, c))
		}
	}
}

func (e *Evaluator) apply(ctx *grid.Context, updates []grid.Update) {
	for _, u := range updates {
		u.Apply(ctx)
	}
}
