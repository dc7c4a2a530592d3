package grid

// Globals holds the two single-character fields that persist across ticks
// and are read by the Scaler and Synth operators: the current musical key
// and scale index. Updated by the Globals operator.
type Globals struct {
	Key   rune
	Scale rune
}

// DefaultGlobals returns the grid's initial key ('C') and scale ('0').
func DefaultGlobals() Globals {
	return Globals{Key: 'C', Scale: '0'}
}
