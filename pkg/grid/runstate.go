package grid

// RunState drives the scheduler: only Running causes ticks to execute, and
// transitioning to Shutdown is the evaluator's cue to stop and the MIDI
// sink's cue to send all-notes-off.
type RunState int

const (
	Running RunState = iota
	Paused
	Shutdown
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
