package internal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const sessionQueryTimeout = 5 * time.Second

// RuntimeSessions resolves sessions through the runtime's own CLI
// (`<runtime> ps [-a] --format {{.Names}}`, `<runtime> start`). It serves
// runtimes that the Engine API client cannot reach, such as podman.
type RuntimeSessions struct {
	runtime string
	runner  Runner
}

// NewRuntimeSessions creates a RuntimeSessions that invokes runtime through runner.
func NewRuntimeSessions(runtime string, runner Runner) RuntimeSessions {
	return RuntimeSessions{
		runtime: runtime,
		runner:  runner,
	}
}

// Query lists all containers, then running containers, and matches name
// exactly. A failing listing yields SessionUnknown.
func (s RuntimeSessions) Query(ctx context.Context, name SessionName) SessionState {
	all, err := s.names(ctx, true)
	if err != nil {
		return SessionUnknown
	}
	if !containsName(all, name) {
		return SessionAbsent
	}

	running, err := s.names(ctx, false)
	if err != nil {
		return SessionUnknown
	}
	if containsName(running, name) {
		return SessionRunning
	}
	return SessionStopped
}

// Start starts the stopped session container.
func (s RuntimeSessions) Start(ctx context.Context, name SessionName) error {
	if _, err := s.runner.Output(ctx, Command{s.runtime, "start", string(name)}); err != nil {
		return fmt.Errorf("failed to start container %q: %w", name, err)
	}
	return nil
}

func (s RuntimeSessions) names(ctx context.Context, all bool) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionQueryTimeout)
	defer cancel()

	command := Command{s.runtime, "ps"}
	if all {
		command = append(command, "-a")
	}
	command = append(command, "--format", "{{.Names}}")

	out, err := s.runner.Output(ctx, command)
	if err != nil {
		return nil, err
	}

	// Linked containers list several comma separated names on one line.
	return strings.FieldsFunc(string(out), func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	}), nil
}

func containsName(names []string, name SessionName) bool {
	for _, candidate := range names {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "/") == string(name) {
			return true
		}
	}
	return false
}
