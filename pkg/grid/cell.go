package grid

// Sentinel cell values. Empty is the resting state of a cell; Bang is a
// transient trigger cleared at the start of every tick; Nul is returned for
// any out-of-bounds read and never appears in a live grid.
const (
	Empty rune = '.'
	Bang  rune = '*'
	Nul   rune = 0
)
