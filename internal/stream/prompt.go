// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package stream

import "strings"

// PromptMarker is printed by ffmpeg when the output file exists and neither
// -y nor -n was given. The closing bracket is the unit delimiter and is never
// part of a unit.
const PromptMarker = "already exists. Overwrite? [y/N"

// IsPrompt reports whether unit carries the overwrite prompt.
func IsPrompt(unit string) bool {
	return strings.Contains(unit, PromptMarker)
}

// PromptFragment returns the prompt as the user would have seen it: the text
// after the last newline of the unit, followed by the delimiter and the space
// ffmpeg prints after it.
func PromptFragment(unit string) string {
	if i := strings.LastIndexByte(unit, '\n'); i >= 0 {
		unit = unit[i+1:]
	}
	return unit + string(Delimiter) + " "
}
