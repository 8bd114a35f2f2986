// Package state defines the phase machine of a single level attempt.
package state

// Phase represents the current phase of a level attempt.
type Phase int

const (
	// PhaseCountdown is the pre-run countdown. The world is frozen and
	// input is ignored.
	PhaseCountdown Phase = iota
	// PhaseRunning is active play.
	PhaseRunning
	// PhaseCompleting is the short door-opening window between reaching
	// the door and the summary.
	PhaseCompleting
	// PhaseCompleted is terminal: the summary is showing and only
	// restart/exit input is handled.
	PhaseCompleted
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "Countdown"
	case PhaseRunning:
		return "Running"
	case PhaseCompleting:
		return "Completing"
	case PhaseCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Active reports whether the simulation should advance in this phase.
func (p Phase) Active() bool {
	return p == PhaseRunning || p == PhaseCompleting
}
