// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package api

import (
	"sync"

	"github.com/ZSC714725/ffprogress/internal/ffmpeg"
	"github.com/ZSC714725/ffprogress/internal/process"
	"github.com/ZSC714725/ffprogress/internal/progress"
)

// Status holds what the monitor last published. The monitor writes, the
// HTTP handlers read from their own goroutines.
type Status struct {
	runID string
	tail  *process.Tail

	lock     sync.RWMutex
	state    progress.State
	hasState bool
	proc     *process.Process
	command  []string
	info     *ffmpeg.Info
}

// NewStatus creates the holder for one run. tail may be nil.
func NewStatus(runID string, tail *process.Tail) *Status {
	return &Status{runID: runID, tail: tail}
}

// RunID of the monitored run
func (s *Status) RunID() string {
	return s.runID
}

// Publish stores a progress snapshot.
func (s *Status) Publish(state progress.State) {
	s.lock.Lock()
	s.state = state
	s.hasState = true
	s.lock.Unlock()
}

// Attach stores the started process.
func (s *Status) Attach(p *process.Process) {
	s.lock.Lock()
	s.proc = p
	s.lock.Unlock()
}

// SetCommand stores the full ffmpeg argument list.
func (s *Status) SetCommand(args []string) {
	s.lock.Lock()
	s.command = append([]string(nil), args...)
	s.lock.Unlock()
}

// SetFFmpeg stores the probed ffmpeg version.
func (s *Status) SetFFmpeg(info ffmpeg.Info) {
	s.lock.Lock()
	s.info = &info
	s.lock.Unlock()
}

// State returns the last snapshot and whether one was published yet.
func (s *Status) State() (progress.State, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state, s.hasState
}

func (s *Status) attached() (*process.Process, []string) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.proc, s.command
}

func (s *Status) probed() *ffmpeg.Info {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.info
}

func (s *Status) lines() []process.Line {
	if s.tail == nil {
		return nil
	}
	return s.tail.Lines()
}
