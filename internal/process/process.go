// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package process wraps exec.Cmd for one monitored ffmpeg run. Stdin and
// stdout are inherited so the user can answer ffmpeg's prompts directly;
// stderr is handed to the caller.

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync"
	"time"
)

// ErrBinaryNotFound is returned by Start when the binary does not exist or is
// not on PATH.
var ErrBinaryNotFound = errors.New("binary not found")

// Config for a process
type Config struct {
	Binary  string
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Sampler Sampler
	Logger  Logger
}

// Logger interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Status of a process
type Status struct {
	State    string
	PID      int
	Duration time.Duration
	Time     time.Time
	ExitCode int
	CPU      struct {
		Current float64
	}
	Memory struct {
		Current uint64
		Peak    uint64
	}
}

// Result of a finished process
type Result struct {
	State    string
	ExitCode int
}

// Success reports whether ffmpeg exited with status 0.
func (r Result) Success() bool {
	return r.State == stateFinished.String()
}

type stateType string

const (
	stateStarting stateType = "starting"
	stateRunning  stateType = "running"
	stateFinished stateType = "finished"
	stateFailed   stateType = "failed"
	stateKilled   stateType = "killed"
)

func (s stateType) String() string { return string(s) }

// Process is one started ffmpeg.
type Process struct {
	cmd     *exec.Cmd
	stderr  io.ReadCloser
	sampler Sampler
	logger  Logger

	state struct {
		state    stateType
		time     time.Time
		exitCode int
		lock     sync.Mutex
	}
}

// Start launches the binary. The returned Process must be waited on after
// Stderr has been drained.
func Start(ctx context.Context, config Config) (*Process, error) {
	if len(config.Binary) == 0 {
		return nil, fmt.Errorf("no valid binary given")
	}

	p := &Process{
		sampler: config.Sampler,
		logger:  config.Logger,
	}
	if p.sampler == nil {
		p.sampler = NewNullSampler()
	}
	if p.logger == nil {
		p.logger = &nopLogger{}
	}
	p.setState(stateStarting)

	p.cmd = exec.CommandContext(ctx, config.Binary, config.Args...)
	p.cmd.Stdin = config.Stdin
	if p.cmd.Stdin == nil {
		p.cmd.Stdin = os.Stdin
	}
	p.cmd.Stdout = config.Stdout
	if p.cmd.Stdout == nil {
		p.cmd.Stdout = os.Stdout
	}

	var err error
	p.stderr, err = p.cmd.StderrPipe()
	if err != nil {
		p.setState(stateFailed)
		return nil, err
	}

	if err := p.cmd.Start(); err != nil {
		p.setState(stateFailed)
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrBinaryNotFound, config.Binary, err)
		}
		return nil, err
	}

	if err := p.sampler.Start(p.cmd.Process.Pid); err != nil {
		p.logger.Debug("resource sampling disabled: %v", err)
	}
	p.setState(stateRunning)
	p.logger.Info("started %s (pid %d)", config.Binary, p.cmd.Process.Pid)

	return p, nil
}

// Stderr is ffmpeg's diagnostic stream.
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Wait waits for ffmpeg to exit and classifies how it ended. Only errors that
// are not an exit status are returned.
func (p *Process) Wait() (Result, error) {
	err := p.cmd.Wait()
	p.sampler.Stop()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		p.setExit(stateFinished, 0)
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		if code == -1 {
			p.setExit(stateKilled, code)
		} else {
			p.setExit(stateFailed, code)
		}
		err = nil
	default:
		p.setExit(stateFailed, -1)
	}

	p.state.lock.Lock()
	r := Result{State: p.state.state.String(), ExitCode: p.state.exitCode}
	p.state.lock.Unlock()

	p.logger.Info("ffmpeg %s (exit code %d)", r.State, r.ExitCode)
	return r, err
}

// Status returns a snapshot, safe to call from other goroutines.
func (p *Process) Status() Status {
	cpu, memory := p.sampler.Current()

	p.state.lock.Lock()
	s := Status{
		State:    p.state.state.String(),
		Duration: time.Since(p.state.time),
		Time:     p.state.time,
		ExitCode: p.state.exitCode,
	}
	p.state.lock.Unlock()

	if p.cmd != nil && p.cmd.Process != nil {
		s.PID = p.cmd.Process.Pid
	}
	s.CPU.Current = cpu
	s.Memory.Current = memory
	s.Memory.Peak = p.sampler.Peak()
	return s
}

func (p *Process) setState(state stateType) {
	p.state.lock.Lock()
	defer p.state.lock.Unlock()
	p.state.state = state
	p.state.time = time.Now()
}

func (p *Process) setExit(state stateType, code int) {
	p.state.lock.Lock()
	defer p.state.lock.Unlock()
	p.state.state = state
	p.state.time = time.Now()
	p.state.exitCode = code
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, args ...interface{})  {}
func (l *nopLogger) Error(format string, args ...interface{}) {}
func (l *nopLogger) Debug(format string, args ...interface{}) {}
