// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZSC714725/ffprogress/internal/progress"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		width   int
		want    string
	}{
		{"half", 50, 20, "[" + strings.Repeat("#", 10) + strings.Repeat(" ", 10) + "]"},
		{"empty", 0, 10, "[          ]"},
		{"full", 100, 10, "[##########]"},
		{"floor", 19.9, 10, "[#         ]"},
		{"over 100 clamps", 130, 4, "[####]"},
		{"negative clamps", -5, 4, "[    ]"},
		{"no bar", 50, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressBar(tt.percent, tt.width))
		})
	}
}

func TestPlaceholderLine(t *testing.T) {
	assert.Equal(t, "[          ] 0%", PlaceholderLine(10))
	assert.Equal(t, "0%", PlaceholderLine(0))
}

func sample() progress.State {
	return progress.State{
		Percent:             50,
		CurrentBytes:        1500,
		EstimatedTotalBytes: 3000,
		HasEstimate:         true,
		Bitrate:             250,
		ETASecs:             90,
		HasETA:              true,
	}
}

func TestProgressLine(t *testing.T) {
	s := sample()
	assert.Equal(t, "[#####     ] 50.0%/1.5MB of ~3.0MB at 250.0KB/s ETA 1m 30s", ProgressLine(s, 10, false))
	assert.Equal(t, "50.0%/1.5MB of ~3.0MB at 250.0KB/s ETA 1m 30s", ProgressLine(s, 0, false))
	assert.Equal(t, "[#####     ] 50.0%", ProgressLine(s, 10, true))
	assert.Equal(t, "50.0%", ProgressLine(s, 0, true))

	s.HasETA = false
	s.HasEstimate = false
	assert.Equal(t, "50.0%/1.5MB of ~? at 250.0KB/s ETA ?", ProgressLine(s, 0, false))
}

func TestSummaryLine(t *testing.T) {
	tot := progress.Totals{ElapsedSecs: 30, Throughput: 100, Bytes: 3000}
	assert.Equal(t, "[##########] 100% of 3.0MB in 30s at 100.0KB/s", SummaryLine(tot, 10))
	assert.Equal(t, "100% of 3.0MB in 30s at 100.0KB/s", SummaryLine(tot, 0))
}

func newTestRenderer(buf *bytes.Buffer, width int, noStats bool) *Renderer {
	return NewRenderer(Config{Output: buf, BarWidth: width, NoStats: noStats, Color: ColorNever})
}

func TestRendererOverwrite(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 4, false)

	r.Placeholder()
	assert.Equal(t, "[    ] 0%", buf.String())
	assert.Equal(t, "[    ] 0%", r.Line())

	buf.Reset()
	r.Progress(sample())
	want := strings.Repeat("\b \b", len("[    ] 0%")) + "[##  ] 50.0%/1.5MB of ~3.0MB at 250.0KB/s ETA 1m 30s"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "[##  ] 50.0%/1.5MB of ~3.0MB at 250.0KB/s ETA 1m 30s", r.Line())
}

func TestRendererPrompt(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 0, true)
	r.Placeholder()

	buf.Reset()
	r.Prompt("File 'a.mp4' already exists. Overwrite? [y/N] ")
	assert.Equal(t, strings.Repeat("\b \b", 2)+"File 'a.mp4' already exists. Overwrite? [y/N] ", buf.String())
	assert.Empty(t, r.Line())

	// Nothing to erase after the prompt.
	buf.Reset()
	r.Placeholder()
	assert.Equal(t, "0%", buf.String())
}

func TestRendererFinish(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 2, false)
	r.Placeholder()

	buf.Reset()
	r.Finish(true, progress.Totals{ElapsedSecs: 2, Throughput: 5, Bytes: 10})
	assert.Equal(t, strings.Repeat("\b \b", len("[  ] 0%"))+"[##] 100% of 10.0KB in 2s at 5.0KB/s\n", buf.String())
	assert.Empty(t, r.Line())

	buf.Reset()
	r.Placeholder()
	buf.Reset()
	r.Finish(false, progress.Totals{})
	assert.Equal(t, strings.Repeat("\b \b", len("[  ] 0%"))+"Process failed!\n", buf.String())
}

func TestRendererClear(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, 0, false)
	r.Placeholder()
	buf.Reset()
	r.Clear()
	assert.Equal(t, "\b \b\b \b", buf.String())
	assert.Empty(t, r.Line())
}

func TestTerminalWidthNonTerminal(t *testing.T) {
	assert.Zero(t, TerminalWidth(&bytes.Buffer{}))
}
