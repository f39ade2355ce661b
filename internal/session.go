package internal

import "context"

// SessionState is what the container runtime reported about the session container.
type SessionState int

const (
	// SessionAbsent means no container with the session name exists.
	SessionAbsent SessionState = iota
	// SessionStopped means the container exists but is not running.
	SessionStopped
	// SessionRunning means the container is running.
	SessionRunning
	// SessionUnknown means the runtime could not be queried.
	SessionUnknown
)

func (s SessionState) String() string {
	switch s {
	case SessionAbsent:
		return "absent"
	case SessionStopped:
		return "stopped"
	case SessionRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Action is the terminal step taken for a session state.
type Action int

const (
	// ActionOneShot creates, runs and removes an ephemeral container.
	ActionOneShot Action = iota
	// ActionAttach executes the command in the running session container.
	ActionAttach
	// ActionStartThenAttach starts the stopped session container, then attaches.
	ActionStartThenAttach
)

func (a Action) String() string {
	switch a {
	case ActionAttach:
		return "attach"
	case ActionStartThenAttach:
		return "start-then-attach"
	default:
		return "one-shot"
	}
}

// Decide maps a session state to the action to take. A state that could not
// be determined is treated like an absent session.
func Decide(state SessionState) Action {
	switch state {
	case SessionRunning:
		return ActionAttach
	case SessionStopped:
		return ActionStartThenAttach
	default:
		return ActionOneShot
	}
}

// Sessions queries and starts session containers.
type Sessions interface {
	Query(ctx context.Context, name SessionName) SessionState
	Start(ctx context.Context, name SessionName) error
}
