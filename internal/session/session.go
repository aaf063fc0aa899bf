// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package session drives one monitored ffmpeg run: it reads stderr unit by
// unit, feeds the metrics engine and keeps the progress line up to date.
// All of its state belongs to the goroutine calling Run.

package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ZSC714725/ffprogress/internal/display"
	"github.com/ZSC714725/ffprogress/internal/ffmpeg"
	"github.com/ZSC714725/ffprogress/internal/ffmpeg/parse"
	"github.com/ZSC714725/ffprogress/internal/logger"
	"github.com/ZSC714725/ffprogress/internal/process"
	"github.com/ZSC714725/ffprogress/internal/progress"
	"github.com/ZSC714725/ffprogress/internal/stream"
)

// Starter starts ffmpeg. *ffmpeg.FFmpeg implements it.
type Starter interface {
	Start(ctx context.Context, config ffmpeg.ProcessConfig) (*process.Process, error)
}

// Observer receives every new snapshot, e.g. the status API.
type Observer interface {
	Publish(state progress.State)
	Attach(p *process.Process)
}

// Config for a Session
type Config struct {
	Renderer  *display.Renderer
	Segmenter stream.Kind
	Logger    logger.Logger
	Sampler   process.Sampler
	Tail      *process.Tail
	Observer  Observer
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Session is one run of ffmpeg under the progress display.
type Session struct {
	state     progress.State
	renderer  *display.Renderer
	segmenter stream.Kind
	logger    logger.Logger
	sampler   process.Sampler
	tail      *process.Tail
	observer  Observer
	clock     func() time.Time
}

// New creates a Session. The run start anchor is taken now.
func New(config Config) *Session {
	s := &Session{
		renderer:  config.Renderer,
		segmenter: config.Segmenter,
		logger:    config.Logger,
		sampler:   config.Sampler,
		tail:      config.Tail,
		observer:  config.Observer,
		clock:     config.Clock,
	}
	if s.renderer == nil {
		s.renderer = display.NewRenderer(display.Config{})
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.tail == nil {
		s.tail = process.NewTail(0)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	s.state = progress.New(s.clock())
	return s
}

// State returns the current snapshot.
func (s *Session) State() progress.State {
	return s.state
}

// Run starts ffmpeg with args, monitors it until it exits and prints the
// summary line. A failed ffmpeg is not an error: it is reported through the
// returned Result.
func (s *Session) Run(ctx context.Context, starter Starter, args []string) (process.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, err := starter.Start(ctx, ffmpeg.ProcessConfig{Args: args, Sampler: s.sampler})
	if err != nil {
		return process.Result{}, err
	}
	if s.observer != nil {
		s.observer.Attach(p)
	}

	if err := s.Monitor(p.Stderr()); err != nil {
		// Abort: ffmpeg printed something the monitor cannot trust.
		cancel()
		_, _ = io.Copy(io.Discard, p.Stderr())
		_, _ = p.Wait()
		s.renderer.Clear()
		s.logTail()
		return process.Result{}, err
	}

	r, err := p.Wait()
	if err != nil {
		s.logger.Error("wait: %v", err)
	}
	if !r.Success() {
		s.logTail()
	}

	totals := s.Finish(r.Success())
	s.logger.Info("done: %s in %.1fs, %.1fkB/s, peak rss %d bytes",
		progress.HumanReadable(totals.Bytes), totals.ElapsedSecs, totals.Throughput, p.Status().Memory.Peak)
	return r, nil
}

// Monitor shows the placeholder line and processes r until it ends.
func (s *Session) Monitor(r io.Reader) error {
	seg, err := stream.New(s.segmenter, r)
	if err != nil {
		return err
	}

	s.renderer.Placeholder()
	s.state.RenderedLine = s.renderer.Line()
	s.publish()

	for {
		unit, ok := seg.Next()
		if !ok {
			break
		}
		if err := s.Handle(unit); err != nil {
			return err
		}
	}

	if err := seg.Err(); err != nil {
		return fmt.Errorf("read ffmpeg output: %w", err)
	}
	return nil
}

// Handle processes one unit of ffmpeg stderr.
func (s *Session) Handle(unit string) error {
	now := s.clock()
	s.tail.Add(now, unit)

	if stream.IsPrompt(unit) {
		s.renderer.Prompt(stream.PromptFragment(unit))
		s.state = progress.Prompt(s.state)
		s.logger.Info("waiting for the overwrite prompt to be answered")
		s.publish()
		return nil
	}

	if s.state.Mode == progress.AwaitingPromptAnswer {
		s.state = progress.Resume(s.state, now)
		s.logger.Debug("prompt answered, timing restarted")
	}

	f, err := parse.Extract(unit)
	if err != nil {
		return fmt.Errorf("unit %q: %w", unit, err)
	}
	if !f.Empty() {
		s.logger.Debug("fields %+v", f)
	}

	next, sampled := progress.Step(s.state, f, now)
	if next.TotalDurationSecs != s.state.TotalDurationSecs {
		s.logger.Info("input duration %ds", next.TotalDurationSecs)
	}
	s.state = next

	if sampled {
		s.renderer.Progress(s.state)
		s.state.RenderedLine = s.renderer.Line()
	}
	s.publish()
	return nil
}

// Finish replaces the progress line with the summary and returns the totals.
func (s *Session) Finish(success bool) progress.Totals {
	totals := progress.Summary(s.state, s.clock())
	s.renderer.Finish(success, totals)
	s.state.RenderedLine = s.renderer.Line()
	s.publish()
	return totals
}

func (s *Session) publish() {
	if s.observer != nil {
		s.observer.Publish(s.state)
	}
}

func (s *Session) logTail() {
	for _, l := range s.tail.Lines() {
		s.logger.Error("ffmpeg: %s", l.Data)
	}
}
