package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
)

// Runner executes commands as blocking child processes.
type Runner interface {
	// LookPath reports where an executable is found on PATH.
	LookPath(file string) (string, error)
	// Run executes command with the wrapper's stdio and returns its exit code.
	// The error is non-nil only when the process could not be started.
	Run(ctx context.Context, command Command) (int, error)
	// Output executes command without a terminal and returns its stdout.
	// A non-zero exit is an error carrying the command's stderr.
	Output(ctx context.Context, command Command) ([]byte, error)
}

// ProcessRunner runs commands with os/exec, forwarding interrupt and
// termination signals to the child so the wrapper outlives it.
type ProcessRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessRunner creates a ProcessRunner wired to the standard streams.
func NewProcessRunner() ProcessRunner {
	return ProcessRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LookPath searches PATH for file.
func (r ProcessRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run starts command, waits for it and returns its exit code. A child killed
// by a signal reports 128 plus the signal number, as a shell would.
func (r ProcessRunner) Run(ctx context.Context, command Command) (int, error) {
	if len(command) == 0 {
		return 0, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %q: %w", command[0], err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigChan:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	return exitCode(cmd.Wait())
}

// Output runs command to completion and returns what it wrote to stdout.
func (r ProcessRunner) Output(ctx context.Context, command Command) ([]byte, error) {
	if len(command) == 0 {
		return nil, errors.New("empty command")
	}

	out, err := exec.CommandContext(ctx, command[0], command[1:]...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s failed: %w: %s", strings.Join(command, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s failed: %w", strings.Join(command, " "), err)
	}
	return out, nil
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return code, nil
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), nil
	}
	return 1, nil
}
