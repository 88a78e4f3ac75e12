package coproc

import (
	"fmt"
	"os"
)

// MissingArgumentsError reports that a required input was absent.
type MissingArgumentsError struct {
	Argument string
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("missing required argument: %s", e.Argument)
}

// SpawnError reports an OS-level failure starting a stage.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start subprocess `%s`: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// StdoutNotCapturedError reports that a non-final stage's output could not
// be attached to a pipe.
type StdoutNotCapturedError struct {
	Command string
	Err     error
}

func (e *StdoutNotCapturedError) Error() string {
	return fmt.Sprintf("stdout not captured for `%s`", e.Command)
}

func (e *StdoutNotCapturedError) Unwrap() error { return e.Err }

// WaitError reports an OS-level failure while waiting on a stage. A stage
// exiting non-zero is an ExitError, not a WaitError.
type WaitError struct {
	Command string
	Err     error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("failed to wait for subprocess `%s`: %v", e.Command, e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }

// ExitError reports a stage that terminated with a failure status.
type ExitError struct {
	Command string
	State   *os.ProcessState
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("subprocess `%s` failed with %s", e.Command, e.State)
}

// ExitCode returns the stage's exit code, or -1 if it was killed by a signal.
func (e *ExitError) ExitCode() int {
	return e.State.ExitCode()
}
