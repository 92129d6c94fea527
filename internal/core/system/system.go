package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain packet queues, join/leave sessions
	PhasePreUpdate               // 1: dispatch last tick's lifecycle events
	PhaseUpdate                  // 2: entity behaviors
	PhasePostUpdate              // 3: visibility refresh of dirty clients
	PhaseOutput                  // 4: flush session buffers
	PhasePersist                 // 5: lifecycle journal
	PhaseCleanup                 // 6: despawn flush
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every game-loop system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
