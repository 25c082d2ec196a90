package models

import "fmt"

// State is the lifecycle position of a single upload/process/render workflow.
type State int

const (
	StateIdle State = iota
	StateReady
	StateProcessing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition validates a workflow state change.
//
// A new selection is accepted from every state, a run may start from ready or
// either terminal state (or supersede one already processing), and only
// processing resolves into done or failed.
func (s State) CanTransition(to State) bool {
	switch to {
	case StateIdle, StateReady:
		return true
	case StateProcessing:
		return s == StateReady || s == StateProcessing || s.Terminal()
	case StateDone, StateFailed:
		return s == StateProcessing
	default:
		return false
	}
}
