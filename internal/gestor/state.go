package gestor

// State is a step of a run. Previewed, Moved and Aborted are terminal for
// their respective commands.
type State int

const (
	StateIdle State = iota
	StateScanned
	StatePreviewed
	StateConfirmed
	StateMoved
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanned:
		return "scanned"
	case StatePreviewed:
		return "previewed"
	case StateConfirmed:
		return "confirmed"
	case StateMoved:
		return "moved"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
