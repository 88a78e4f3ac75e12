// Package coproc runs an ordered chain of shell commands as a pipeline,
// connecting each command's stdout to the next command's stdin.
//
// All stages are started before any of them is waited on, so they run
// concurrently as OS processes and data moves between them through kernel
// pipes. Stages are then waited on in the order they were started; the
// first failure observed in that order is the outcome of the run.
package coproc

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// defaultInterpreter treats a command string as a single shell command that
// aborts on the first error or unset variable.
var defaultInterpreter = []string{"sh", "-eu", "-c"}

// Runner holds the endpoints a pipeline is attached to. The first stage
// reads Stdin, the last stage writes Stdout and every stage shares Stderr.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	interpreter []string

	// command overrides how a command string becomes a process.
	command func(string) *exec.Cmd
	// pipe overrides how the pipe between two stages is created.
	pipe func() (*os.File, *os.File, error)
}

// NewRunner creates a Runner attached to the current process's standard
// streams.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts every command and waits for all of them.
func (r *Runner) Run(commands []string) error {
	p, err := r.Start(commands)
	if err != nil {
		return err
	}
	return p.Wait()
}

// Start spawns one stage per command, in order. On error, stages that were
// already started keep running and are not returned.
func (r *Runner) Start(commands []string) (*Pipeline, error) {
	if len(commands) == 0 {
		return nil, &MissingArgumentsError{Argument: "coproc"}
	}

	p := &Pipeline{stages: make([]*Stage, 0, len(commands))}

	// Read end of the previous stage's pipe. The runner owns it only until
	// the next stage has been started with it.
	var upstream *os.File

	for i, command := range commands {
		cmd := r.newCommand(command)
		cmd.Stderr = r.Stderr
		if upstream != nil {
			cmd.Stdin = upstream
		} else {
			cmd.Stdin = r.Stdin
		}

		var downstream, writeEnd *os.File
		if i == len(commands)-1 {
			cmd.Stdout = r.Stdout
		} else {
			var err error
			downstream, writeEnd, err = r.newPipe()
			if err != nil {
				closeFile(upstream)
				return nil, &StdoutNotCapturedError{Command: command, Err: err}
			}
			cmd.Stdout = writeEnd
		}

		err := cmd.Start()

		// The child holds its own descriptors now.
		closeFile(upstream)
		closeFile(writeEnd)
		upstream = downstream

		if err != nil {
			closeFile(upstream)
			return nil, &SpawnError{Command: command, Err: err}
		}

		slog.Debug("started stage", "index", i, "command", command, "pid", cmd.Process.Pid)
		p.stages = append(p.stages, &Stage{Command: command, cmd: cmd})
	}

	return p, nil
}

func (r *Runner) newCommand(command string) *exec.Cmd {
	if r.command != nil {
		return r.command(command)
	}

	interpreter := r.interpreter
	if len(interpreter) == 0 {
		interpreter = defaultInterpreter
	}

	args := append(interpreter[1:len(interpreter):len(interpreter)], command)
	return exec.Command(interpreter[0], args...)
}

func (r *Runner) newPipe() (*os.File, *os.File, error) {
	if r.pipe != nil {
		return r.pipe()
	}
	return os.Pipe()
}

func closeFile(f *os.File) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		slog.Warn("failed to close pipe", "name", f.Name(), "error", err)
	}
}

// Stage is one running command of a Pipeline.
type Stage struct {
	Command string
	cmd     *exec.Cmd
}

func (s *Stage) wait() error {
	err := s.cmd.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: s.Command, State: exitErr.ProcessState}
	}
	return &WaitError{Command: s.Command, Err: err}
}

// Pipeline is a fully started chain of stages.
type Pipeline struct {
	stages []*Stage
}

// Wait blocks on each stage in spawn order and returns the first failure.
// Stages after a failed one are neither waited on nor killed.
func (p *Pipeline) Wait() error {
	for i, s := range p.stages {
		if err := s.wait(); err != nil {
			slog.Debug("stage failed", "index", i, "command", s.Command, "error", err)
			return err
		}
		slog.Debug("stage exited", "index", i, "command", s.Command)
	}
	return nil
}
