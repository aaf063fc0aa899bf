// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZSC714725/ffprogress/internal/ffmpeg/parse"
)

func TestHumanReadable(t *testing.T) {
	tests := []struct {
		name string
		kb   float64
		want string
	}{
		{"kilobytes", 500, "500.0KB"},
		{"exactly 1000 stays KB", 1000, "1000.0KB"},
		{"megabytes", 1500, "1.5MB"},
		{"exactly 1e6 stays MB", 1_000_000, "1000.0MB"},
		{"gigabytes", 2_000_000, "2.0GB"},
		{"zero", 0, "0.0KB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanReadable(tt.kb))
		})
	}
}

func TestSecsToTime(t *testing.T) {
	tests := []struct {
		name string
		secs float64
		want string
	}{
		{"seconds", 30, "30s"},
		{"exactly 60", 60, "60s"},
		{"minutes", 90, "1m 30s"},
		{"minutes truncated", 119.7, "1m 59s"},
		{"exactly 3600", 3600, "60m 0s"},
		// (3661 mod 3600) * 60 = 3660, clamped to 59.
		{"hours clamp", 3661, "1h 59m"},
		// (3600.5 mod 3600) * 60 = 30.
		{"hours small remainder", 3600.5, "1h 30m"},
		{"two hours", 7300, "2h 59m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecsToTime(tt.secs))
		})
	}
}

func fields(duration, tm *int, speed, size *float64) parse.Fields {
	return parse.Fields{Duration: duration, Time: tm, Speed: speed, Size: size}
}

func ip(v int) *int { return &v }
func fp(v float64) *float64 { return &v }

func TestStepStickyDuration(t *testing.T) {
	start := time.Unix(1000, 0)
	s := New(start)

	s, ok := Step(s, fields(ip(90), nil, nil, nil), start)
	assert.False(t, ok)
	assert.Equal(t, 90, s.TotalDurationSecs)

	// A second duration (e.g. of another input) never overwrites the first.
	s, _ = Step(s, fields(ip(30), nil, nil, nil), start)
	assert.Equal(t, 90, s.TotalDurationSecs)

	// A unit without a duration leaves it unchanged.
	s, _ = Step(s, parse.Fields{}, start)
	assert.Equal(t, 90, s.TotalDurationSecs)
}

func TestStepZeroDurationIsNotSticky(t *testing.T) {
	start := time.Unix(1000, 0)
	s, _ := Step(New(start), fields(ip(0), nil, nil, nil), start)
	assert.Equal(t, 0, s.TotalDurationSecs)

	s, _ = Step(s, fields(ip(42), nil, nil, nil), start)
	assert.Equal(t, 42, s.TotalDurationSecs)
}

func TestStepRequiresDurationAndTime(t *testing.T) {
	start := time.Unix(1000, 0)

	// Time without duration: no sample, no division.
	s, ok := Step(New(start), fields(nil, ip(10), fp(1.5), fp(100)), start.Add(time.Second))
	assert.False(t, ok)
	assert.Zero(t, s.Percent)
	assert.Equal(t, 100.0, s.CurrentBytes)

	// Duration known, but this unit has no time.
	s, ok = Step(s, fields(ip(100), nil, nil, nil), start.Add(2*time.Second))
	assert.False(t, ok)
	assert.Zero(t, s.CurrentTimeSecs)

	s, ok = Step(s, fields(nil, ip(25), nil, nil), start.Add(3*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 25.0, s.Percent)
}

func TestStepCurrentTimeResetsPerUnit(t *testing.T) {
	start := time.Unix(1000, 0)
	s, ok := Step(New(start), fields(ip(100), ip(50), fp(1), fp(10)), start.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, 50, s.CurrentTimeSecs)

	s, ok = Step(s, parse.Fields{}, start.Add(2*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 0, s.CurrentTimeSecs)
	// Derived values of the last sample are kept.
	assert.Equal(t, 50.0, s.Percent)
}

func TestStepMetrics(t *testing.T) {
	start := time.Unix(1000, 0)

	s, ok := Step(New(start), fields(ip(200), ip(20), fp(2.0), fp(1000)), start.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, 10.0, s.Percent)
	assert.True(t, s.HasEstimate)
	assert.Equal(t, 10000.0, s.EstimatedTotalBytes)
	assert.Equal(t, 500.0, s.Bitrate)
	assert.True(t, s.HasETA)
	assert.Equal(t, 90.0, s.ETASecs)
	assert.Equal(t, 1000.0, s.PreviousBytes)
	assert.Equal(t, start.Add(2*time.Second), s.LastSampleTime)
	assert.Equal(t, 1, s.Samples)

	s, ok = Step(s, fields(nil, ip(50), fp(3.0), fp(2500)), start.Add(5*time.Second))
	require.True(t, ok)
	assert.Equal(t, 25.0, s.Percent)
	assert.Equal(t, 10000.0, s.EstimatedTotalBytes)
	// (2500 - 1000) / 3s
	assert.Equal(t, 500.0, s.Bitrate)
	assert.Equal(t, 50.0, s.ETASecs)
	assert.Equal(t, 2, s.Samples)
}

func TestStepZeroSpeedSkipsETA(t *testing.T) {
	start := time.Unix(1000, 0)
	s, ok := Step(New(start), fields(ip(100), ip(10), nil, fp(10)), start.Add(time.Second))
	require.True(t, ok)
	assert.False(t, s.HasETA)
	assert.Zero(t, s.ETASecs)
}

func TestStepZeroWallClockDelta(t *testing.T) {
	start := time.Unix(1000, 0)
	s, ok := Step(New(start), fields(ip(100), ip(10), fp(1), fp(10)), start)
	require.True(t, ok)
	assert.Zero(t, s.Bitrate)
}

func TestPromptAndResume(t *testing.T) {
	start := time.Unix(1000, 0)
	s := New(start)
	s.RenderedLine = "[          ] 0%"

	s = Prompt(s)
	assert.Equal(t, AwaitingPromptAnswer, s.Mode)
	assert.Empty(t, s.RenderedLine)

	resumed := start.Add(30 * time.Second)
	s = Resume(s, resumed)
	assert.Equal(t, JustResumed, s.Mode)
	assert.Equal(t, resumed, s.RunStartTime)
	assert.Equal(t, resumed, s.LastSampleTime)

	s, ok := Step(s, fields(ip(100), ip(10), fp(1), fp(100)), resumed.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, Parsing, s.Mode)
	// Only the 2s since the answer count, not the 30s spent at the prompt.
	assert.Equal(t, 50.0, s.Bitrate)
}

func TestSummary(t *testing.T) {
	start := time.Unix(1000, 0)
	s := New(start)
	s.CurrentBytes = 3000

	tot := Summary(s, start.Add(4*time.Second))
	assert.Equal(t, 4.0, tot.ElapsedSecs)
	assert.Equal(t, 750.0, tot.Throughput)
	assert.Equal(t, 3000.0, tot.Bytes)

	tot = Summary(s, start)
	assert.Zero(t, tot.Throughput)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "parsing", Parsing.String())
	assert.Equal(t, "awaiting_prompt_answer", AwaitingPromptAnswer.String())
	assert.Equal(t, "just_resumed", JustResumed.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
