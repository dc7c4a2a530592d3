package grid

import (
	"log/slog"
	"sync"
)

// Persistence is the save/load collaborator the core delegates to. It is
// the only way the grid touches storage; the core itself never opens a
// file directly — save and load are both opaque string-keyed operations.
type Persistence interface {
	Save(name string, lines []string) error
	Load(name string) (lines []string, err error)
}

// Context is the single shared, mutex-guarded record: the grid, its
// per-tick lock set and variable map, the accumulated note buffer,
// tempo/divisions, the run state, and the musical globals. The editor
// thread, the evaluator thread, and the sink threads all serialize access
// to it through Mu.
type Context struct {
	// Mu is held by the evaluator for exactly one tick, by the editor for
	// exactly one keystroke, and never by a sink except to update a status
	// field.
	Mu sync.Mutex

	grid    *Matrix
	locks   *LockSet
	vars    *Variables
	globals Globals
	notes   []Note

	ticks uint64

	Tempo     int
	Divisions int
	state     RunState

	persistence Persistence
	log         *slog.Logger

	pendingSave *string
	pendingLoad *string
}

// New constructs a Context over a fresh rows×cols grid. tempo and divisions
// must multiply with 60000 to produce an integer tick duration; callers
// normally get these from CLI defaults of tempo=120, divisions=4.
func New(rows, cols, tempo, divisions int, persistence Persistence, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	return &Context{
		grid:        NewMatrix(rows, cols),
		locks:       NewLockSet(),
		vars:        NewVariables(),
		globals:     DefaultGlobals(),
		Tempo:       tempo,
		Divisions:   divisions,
		state:       Running,
		persistence: persistence,
		log:         log,
	}
}

// NewFromLines constructs a Context whose grid is pre-populated from saved
// text, used by session load and by tests that want a specific starting
// layout.
func NewFromLines(lines []string, cols, tempo, divisions int, persistence Persistence, log *slog.Logger) *Context {
	ctx := New(len(lines), cols, tempo, divisions, persistence, log)
	ctx.grid = NewMatrixFromLines(lines, cols)
	return ctx
}

func (c *Context) Rows() int { return c.grid.Rows() }
func (c *Context) Cols() int { return c.grid.Cols() }
func (c *Context) Ticks() uint64 { return c.ticks }

// Read returns the cell at (r, c), or Nul out of range.
func (c *Context) Read(r, c2 int) rune { return c.grid.Read(r, c2) }

// Write sets the cell at (r, c); a no-op out of range. Used by the editor
// thread, by tests, and by the evaluator's stale-bang clearing; operators
// themselves only ever write through Update.Apply.
func (c *Context) Write(r, c2 int, ch rune) { c.grid.Write(r, c2, ch) }

// Listen reads (r, c) like Read, substituting def when the cell is Empty.
func (c *Context) Listen(label string, r, c2 int, def rune) Port {
	v := c.grid.Read(r, c2)
	if v == Empty {
		v = def
	}
	return Port{Label: label, Row: r, Col: c2, Value: v}
}

// ListenRaw is Listen without the Empty→def substitution, used by
// operators whose semantics explicitly want the nul value for out-of-range
// or blank neighbours (e.g. cardinal movers checking for Empty directly).
func (c *Context) ListenRaw(label string, r, c2 int) Port {
	return Port{Label: label, Row: r, Col: c2, Value: c.grid.Read(r, c2)}
}

// BangAdjacent reports whether the north, west, or south neighbour (never
// east) currently holds a bang. Shared by the tick evaluator's second pass
// and by every bang-gated operator.
func (c *Context) BangAdjacent(r, c2 int) bool {
	return c.Read(r-1, c2) == Bang || c.Read(r, c2-1) == Bang || c.Read(r+1, c2) == Bang
}

func (c *Context) Lock(r, c2 int)               { c.locks.Lock(r, c2) }
func (c *Context) LockNamed(r, c2 int, n string) { c.locks.LockNamed(r, c2, n) }
func (c *Context) IsLocked(r, c2 int) bool       { return c.locks.IsLocked(r, c2) }
func (c *Context) UnlockAll()                    { c.locks.UnlockAll() }
func (c *Context) PortName(r, c2 int) (string, bool) { return c.locks.Name(r, c2) }

func (c *Context) SetVariable(name, value rune) { c.vars.Set(name, value) }
func (c *Context) ReadVariable(name, def rune) rune { return c.vars.Get(name, def) }
func (c *Context) ClearVariables()              { c.vars.Clear() }

func (c *Context) Globals() Globals { return c.globals }
func (c *Context) SetGlobals(g Globals) { c.globals = g }

// WriteNote appends n to the accumulated note buffer.
func (c *Context) WriteNote(n Note) { c.notes = append(c.notes, n) }

// Notes returns the accumulated note buffer.
func (c *Context) Notes() []Note { return c.notes }

// SetNotes replaces the note buffer; called by the note pipeline after it
// dispatches and prunes finished notes.
func (c *Context) SetNotes(notes []Note) { c.notes = notes }

// IncrementTicks advances the tick counter. Called once at the end of each
// tick by the evaluator.
func (c *Context) IncrementTicks() { c.ticks++ }

// State returns the current run state.
func (c *Context) State() RunState { return c.state }

// SetState transitions the run state.
func (c *Context) SetState(s RunState) { c.state = s }

// TickMillis returns 60000 / (Tempo * Divisions), the per-tick duration in
// milliseconds.
func (c *Context) TickMillis() int {
	denom := c.Tempo * c.Divisions
	if denom <= 0 {
		return 0
	}
	return 60000 / denom
}

// requestSave records a save request for the persistence collaborator to
// service at end of tick; failures are logged and otherwise ignored, so a
// request silently drops rather than crashing the tick.
func (c *Context) requestSave(name string) {
	c.pendingSave = &name
}

func (c *Context) requestLoad(name string) {
	c.pendingLoad = &name
}

// FlushPersistence services any pending Save/Load request accumulated
// during the tick just evaluated. Called once per tick, after Update
// application, so save/load never races with the grid being mutated mid
// scan.
func (c *Context) FlushPersistence() {
	if c.pendingSave != nil {
		name := *c.pendingSave
		c.pendingSave = nil
		if c.persistence == nil {
			return
		}
		if err := c.persistence.Save(name, c.grid.Lines()); err != nil {
			c.log.Warn("grid save failed", "name", name, "err", err)
		}
	}
	if c.pendingLoad != nil {
		name := *c.pendingLoad
		c.pendingLoad = nil
		if c.persistence == nil {
			return
		}
		lines, err := c.persistence.Load(name)
		if err != nil {
			c.log.Warn("grid load failed", "name", name, "err", err)
			return
		}
		c.grid = NewMatrixFromLines(lines, c.grid.Cols())
	}
}

// Snapshot returns the grid's current text lines, used by the UI and by
// session auto-save.
func (c *Context) Snapshot() []string { return c.grid.Lines() }

// CloneMatrix exposes a defensive copy of the underlying matrix, used by
// tests asserting cross-tick determinism.
func (c *Context) CloneMatrix() *Matrix { return c.grid.Clone() }
