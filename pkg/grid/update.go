package grid

// UpdateKind discriminates the Update variants an operator may return. An
// operator never mutates the context itself; the tick evaluator applies the
// Updates it returns, keeping every operator a pure function of the grid.
type UpdateKind int

const (
	UpdateInputs UpdateKind = iota
	UpdateOutputs
	UpdateLocks
	UpdateNotes
	UpdateVariables
	UpdateGlobals
	UpdateSave
	UpdateLoad
)

// VarAssign is a single name/value pair for an UpdateVariables.
type VarAssign struct {
	Name  rune
	Value rune
}

// Update is the uniform value type describing one effect of an operator
// evaluation. Only the fields relevant to Kind are populated.
type Update struct {
	Kind UpdateKind

	Ports []Port // UpdateInputs, UpdateOutputs, UpdateLocks
	Notes []Note // UpdateNotes

	Vars []VarAssign // UpdateVariables

	GlobalKey   rune // UpdateGlobals
	GlobalScale rune // UpdateGlobals

	Name string // UpdateSave, UpdateLoad
}

// Inputs locks each port's cell with its label, marking it read this tick.
func Inputs(ports ...Port) Update { return Update{Kind: UpdateInputs, Ports: ports} }

// Outputs writes each port's value to its cell and locks the cell.
func Outputs(ports ...Port) Update { return Update{Kind: UpdateOutputs, Ports: ports} }

// Locks claims cells without writing them.
func Locks(ports ...Port) Update { return Update{Kind: UpdateLocks, Ports: ports} }

// Notes appends the given notes to the tick's note buffer.
func Notes(notes ...Note) Update { return Update{Kind: UpdateNotes, Notes: notes} }

// SetVariables assigns the given name/value pairs in the tick-local variable
// map.
func SetVariables(vars ...VarAssign) Update { return Update{Kind: UpdateVariables, Vars: vars} }

// SetGlobals updates the persistent key/scale globals.
func SetGlobals(key, scale rune) Update {
	return Update{Kind: UpdateGlobals, GlobalKey: key, GlobalScale: scale}
}

// SaveRequest asks the persistence collaborator to save the grid under name.
func SaveRequest(name string) Update { return Update{Kind: UpdateSave, Name: name} }

// LoadRequest asks the persistence collaborator to load the grid from name.
func LoadRequest(name string) Update { return Update{Kind: UpdateLoad, Name: name} }

// Apply performs the effect described by u against ctx. The tick evaluator
// is the sole caller; operators themselves never call this.
func (u Update) Apply(ctx *Context) {
	switch u.Kind {
	case UpdateInputs:
		for _, p := range u.Ports {
			ctx.locks.LockNamed(p.Row, p.Col, p.Label)
		}
	case UpdateOutputs:
		for _, p := range u.Ports {
			ctx.grid.Write(p.Row, p.Col, p.Value)
			ctx.locks.LockNamed(p.Row, p.Col, p.Label)
		}
	case UpdateLocks:
		for _, p := range u.Ports {
			ctx.locks.LockNamed(p.Row, p.Col, p.Label)
		}
	case UpdateNotes:
		ctx.notes = append(ctx.notes, u.Notes...)
	case UpdateVariables:
		for _, va := range u.Vars {
			ctx.vars.Set(va.Name, va.Value)
		}
	case UpdateGlobals:
		if u.GlobalKey != 0 {
			ctx.globals.Key = u.GlobalKey
		}
		if u.GlobalScale != 0 {
			ctx.globals.Scale = u.GlobalScale
		}
	case UpdateSave:
		ctx.requestSave(u.Name)
	case UpdateLoad:
		ctx.requestLoad(u.Name)
	}
}
