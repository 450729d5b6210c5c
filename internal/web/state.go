package web

// State is the lifecycle of one embedded feedback server.
type State int32

const (
	// Listening: bound to a port, not yet serving.
	Listening State = iota
	// AwaitingSubmission: serving the form and waiting for the first POST /submit.
	AwaitingSubmission
	// Completed: an answer was stored; later submissions are ignored.
	Completed
	// TimedOut: the orchestrator gave up; the listener is closed.
	TimedOut
)

func (s State) String() string {
	switch s {
	case Listening:
		return "listening"
	case AwaitingSubmission:
		return "awaiting_submission"
	case Completed:
		return "completed"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// terminal reports whether no further transition is possible.
func (s State) terminal() bool {
	return s == Completed || s == TimedOut
}
