package internal_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/ryanmoran/idfdock/internal"
)

type fakeRunner struct {
	paths    map[string]string
	codes    []int
	runErr   error
	commands []internal.Command

	outputs   map[string]string
	outputErr map[string]error
	captured  []internal.Command
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	if path, ok := r.paths[file]; ok {
		return path, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (r *fakeRunner) Run(ctx context.Context, command internal.Command) (int, error) {
	r.commands = append(r.commands, command)
	if r.runErr != nil {
		return 0, r.runErr
	}
	if len(r.codes) == 0 {
		return 0, nil
	}
	code := r.codes[0]
	r.codes = r.codes[1:]
	return code, nil
}

func (r *fakeRunner) Output(ctx context.Context, command internal.Command) ([]byte, error) {
	r.captured = append(r.captured, command)
	key := strings.Join(command, " ")
	if err, ok := r.outputErr[key]; ok {
		return nil, err
	}
	return []byte(r.outputs[key]), nil
}

type fakeSessions struct {
	state    internal.SessionState
	startErr error
	queried  []internal.SessionName
	started  []internal.SessionName
}

func (s *fakeSessions) Query(ctx context.Context, name internal.SessionName) internal.SessionState {
	s.queried = append(s.queried, name)
	return s.state
}

func (s *fakeSessions) Start(ctx context.Context, name internal.SessionName) error {
	s.started = append(s.started, name)
	return s.startErr
}

type fakeTerminal struct {
	interactive bool
	height      uint
	width       uint
}

func (t fakeTerminal) StdinIsTerminal() bool      { return t.interactive }
func (t fakeTerminal) Size() (height, width uint) { return t.height, t.width }

func newBufferWriter() (*internal.StandardWriter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return internal.NewCustomWriter(out, errOut), out, errOut
}

func linuxHost() internal.Host {
	return internal.Host{
		OS:         "linux",
		UID:        1000,
		GID:        1000,
		WorkingDir: "/home/dev/blink",
		HomeDir:    "/home/dev",
		Executable: "/usr/local/bin/idfdock",
	}
}
