package internal

import "fmt"

// ExitError carries a child process exit code up to main, which exits with
// it verbatim.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
