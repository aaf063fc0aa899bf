// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package progress

import (
	"fmt"
	"math"
)

// HumanReadable formats a size given in kB using decimal thresholds.
// Thresholds are strict: exactly 1000 is still KB.
func HumanReadable(kb float64) string {
	switch {
	case kb > 1_000_000:
		return fmt.Sprintf("%.1fGB", kb/1_000_000)
	case kb > 1000:
		return fmt.Sprintf("%.1fMB", kb/1000)
	default:
		return fmt.Sprintf("%.1fKB", kb)
	}
}

// SecsToTime formats a number of seconds for the ETA and elapsed fields.
//
// Above one hour the minute part is (secs mod 3600)*60 clamped to 59. This is
// the established output of the tool and is kept as is.
// The leading unit is truncated in both branches, so 90 is "1m 30s".
func SecsToTime(secs float64) string {
	switch {
	case secs > 3600:
		minSec := math.Min(math.Mod(secs, 3600)*60, 59)
		return fmt.Sprintf("%.0fh %.0fm", math.Trunc(secs/3600), minSec)
	case secs > 60:
		minSec := math.Min(math.Mod(secs, 60), 59)
		return fmt.Sprintf("%.0fm %.0fs", math.Trunc(secs/60), minSec)
	default:
		return fmt.Sprintf("%.0fs", secs)
	}
}
