// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package process

import (
	"sync"
	"time"

	gopsutilprocess "github.com/shirou/gopsutil/v3/process"
)

// Sampler reports CPU and memory usage of the running ffmpeg. NullSampler
// does nothing.
type Sampler interface {
	Start(pid int) error
	Stop()
	Current() (cpu float64, memory uint64)
	Peak() (memory uint64)
}

type nullSampler struct{}

// NewNullSampler returns a no-op sampler
func NewNullSampler() Sampler {
	return nullSampler{}
}

func (nullSampler) Start(pid int) error        { return nil }
func (nullSampler) Stop()                      {}
func (nullSampler) Current() (float64, uint64) { return 0, 0 }
func (nullSampler) Peak() uint64               { return 0 }

// sysSampler 使用 gopsutil 定时采集进程 CPU 和内存
type sysSampler struct {
	interval time.Duration

	mu     sync.RWMutex
	proc   *gopsutilprocess.Process
	cpu    float64
	memory uint64
	peak   uint64
	stop   chan struct{}
	done   chan struct{}
}

// DefaultSampleInterval is how often NewSysSampler reads the child's usage.
const DefaultSampleInterval = 250 * time.Millisecond

// NewSysSampler 创建基于系统调用的采样器，interval <= 0 使用 DefaultSampleInterval
func NewSysSampler(interval time.Duration) Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &sysSampler{interval: interval}
}

// Start takes a first sample right away, then one per interval until Stop.
func (s *sysSampler) Start(pid int) error {
	proc, err := gopsutilprocess.NewProcess(int32(pid))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.proc = proc
	s.cpu, s.memory, s.peak = 0, 0, 0
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	s.sample(proc)
	go s.loop(proc, stop, done)
	return nil
}

func (s *sysSampler) loop(proc *gopsutilprocess.Process, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.sample(proc)
		}
	}
}

func (s *sysSampler) sample(proc *gopsutilprocess.Process) {
	var cpu float64
	var memory uint64
	if cpuPct, err := proc.CPUPercent(); err == nil {
		cpu = cpuPct
	}
	if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
		memory = memInfo.RSS
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc != proc {
		return
	}
	s.cpu, s.memory = cpu, memory
	if memory > s.peak {
		s.peak = memory
	}
}

// Stop ends sampling. The peak survives until the next Start.
func (s *sysSampler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.proc = nil
	s.cpu, s.memory = 0, 0
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (s *sysSampler) Current() (cpu float64, memory uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cpu, s.memory
}

func (s *sysSampler) Peak() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.peak
}
