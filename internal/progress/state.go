// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package progress turns the fields parsed from ffmpeg stderr into progress
// metrics. State is a value: every function returns a new snapshot.

package progress

import (
	"time"

	"github.com/ZSC714725/ffprogress/internal/ffmpeg/parse"
)

// Mode is where the monitor stands with respect to the overwrite prompt.
type Mode int

const (
	// Parsing is the normal mode: units are parsed for progress fields.
	Parsing Mode = iota
	// AwaitingPromptAnswer means ffmpeg printed the overwrite prompt and is
	// blocked on the user.
	AwaitingPromptAnswer
	// JustResumed is the first unit after the prompt was answered. The wall
	// clock anchors are rebased before the unit is parsed.
	JustResumed
)

func (m Mode) String() string {
	switch m {
	case Parsing:
		return "parsing"
	case AwaitingPromptAnswer:
		return "awaiting_prompt_answer"
	case JustResumed:
		return "just_resumed"
	}
	return "unknown"
}

// State is the progress snapshot of one run. Sizes are in kB as reported by
// ffmpeg.
type State struct {
	// TotalDurationSecs is sticky: set once from the first non-zero duration.
	TotalDurationSecs int
	// CurrentTimeSecs is reset for every unit. Zero means the unit carried no
	// elapsed time.
	CurrentTimeSecs int
	CurrentBytes    float64
	PreviousBytes   float64
	SpeedMultiplier float64

	Percent             float64
	EstimatedTotalBytes float64
	HasEstimate         bool
	Bitrate             float64
	ETASecs             float64
	HasETA              bool
	Samples             int

	LastSampleTime time.Time
	RunStartTime   time.Time

	Mode         Mode
	RenderedLine string
}

// New returns the zeroed state of a run starting at now.
func New(now time.Time) State {
	return State{
		LastSampleTime: now,
		RunStartTime:   now,
		Mode:           Parsing,
	}
}

// Ready reports whether percent and the other derived metrics can be
// computed. The zero-duration case is checked here, never left to division.
func (s State) Ready() bool {
	return s.TotalDurationSecs != 0 && s.CurrentTimeSecs != 0
}

// Step applies the fields of one unit and, when a duration and a non-zero
// elapsed time are known, derives a new sample. The second return value
// reports whether a sample was produced.
func Step(s State, f parse.Fields, now time.Time) (State, bool) {
	n := s
	n.Mode = Parsing

	if n.TotalDurationSecs == 0 && f.Duration != nil {
		n.TotalDurationSecs = *f.Duration
	}

	n.CurrentTimeSecs = 0
	if f.Time != nil {
		n.CurrentTimeSecs = *f.Time
	}
	if f.Speed != nil {
		n.SpeedMultiplier = *f.Speed
	}
	if f.Size != nil {
		n.CurrentBytes = *f.Size
	}

	if !n.Ready() {
		return n, false
	}

	n.Percent = float64(n.CurrentTimeSecs) * 100 / float64(n.TotalDurationSecs)

	n.HasEstimate = n.Percent != 0
	if n.HasEstimate {
		n.EstimatedTotalBytes = n.CurrentBytes * 100 / n.Percent
	}

	// Throughput per wall-clock second between two samples.
	elapsed := now.Sub(s.LastSampleTime).Seconds()
	n.Bitrate = 0
	if elapsed > 0 {
		n.Bitrate = (n.CurrentBytes - s.PreviousBytes) / elapsed
	}

	n.HasETA = n.SpeedMultiplier != 0
	if n.HasETA {
		n.ETASecs = float64(n.TotalDurationSecs-n.CurrentTimeSecs) / n.SpeedMultiplier
	}

	n.PreviousBytes = n.CurrentBytes
	n.LastSampleTime = now
	n.Samples++
	return n, true
}

// Prompt marks the state as blocked on the overwrite prompt. The visible line
// was replaced by the prompt text, so nothing is left to erase.
func Prompt(s State) State {
	n := s
	n.Mode = AwaitingPromptAnswer
	n.RenderedLine = ""
	return n
}

// Resume rebases the wall-clock anchors once the prompt was answered, so the
// time spent waiting for the user does not count towards throughput or the
// total elapsed time. The next Step returns the state to Parsing.
func Resume(s State, now time.Time) State {
	n := s
	n.Mode = JustResumed
	n.RunStartTime = now
	n.LastSampleTime = now
	return n
}

// Totals is the aggregate of a finished run.
type Totals struct {
	ElapsedSecs float64
	Throughput  float64
	Bytes       float64
}

// Summary computes the final elapsed wall-clock time from the (possibly
// rebased) run start and the average throughput.
func Summary(s State, now time.Time) Totals {
	t := Totals{
		ElapsedSecs: now.Sub(s.RunStartTime).Seconds(),
		Bytes:       s.CurrentBytes,
	}
	if t.ElapsedSecs > 0 {
		t.Throughput = s.CurrentBytes / t.ElapsedSecs
	}
	return t
}
