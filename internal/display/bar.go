// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/ZSC714725/ffprogress/internal/progress"
)

const (
	fillChar  = "#"
	emptyChar = " "
)

// ProgressBar returns "[###   ]" with width cells, or "" when width is 0.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Floor(percent * float64(width) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat(fillChar, filled) + strings.Repeat(emptyChar, width-filled) + "]"
}

// withBar prefixes text with the bar and a separating space.
func withBar(bar, text string) string {
	if bar == "" {
		return text
	}
	return bar + " " + text
}

// PlaceholderLine is shown before ffmpeg reported anything.
func PlaceholderLine(width int) string {
	return withBar(ProgressBar(0, width), "0%")
}

// ProgressLine formats a sample. With noStats only the percent follows the
// bar.
func ProgressLine(s progress.State, width int, noStats bool) string {
	bar := ProgressBar(s.Percent, width)
	if noStats {
		return withBar(bar, fmt.Sprintf("%.1f%%", s.Percent))
	}

	total := "?"
	if s.HasEstimate {
		total = progress.HumanReadable(s.EstimatedTotalBytes)
	}
	eta := "?"
	if s.HasETA {
		eta = progress.SecsToTime(s.ETASecs)
	}
	return withBar(bar, fmt.Sprintf("%.1f%%/%s of ~%s at %s/s ETA %s",
		s.Percent,
		progress.HumanReadable(s.CurrentBytes),
		total,
		progress.HumanReadable(s.Bitrate),
		eta,
	))
}

// SummaryLine is printed once ffmpeg exited successfully.
func SummaryLine(t progress.Totals, width int) string {
	return withBar(ProgressBar(100, width), fmt.Sprintf("100%% of %s in %s at %s/s",
		progress.HumanReadable(t.Bytes),
		progress.SecsToTime(t.ElapsedSecs),
		progress.HumanReadable(t.Throughput),
	))
}

// FailureLine is printed when ffmpeg exited with an error.
const FailureLine = "Process failed!"
