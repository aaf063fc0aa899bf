// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package cli resolves the command line. Only a handful of long flags belong
// to ffprogress; every other argument is handed to ffmpeg untouched.

package cli

import (
	"fmt"
	"strconv"
)

// Action is what the command line asks for.
type Action int

const (
	ActionRun Action = iota
	ActionHelp
	ActionVersion
)

// Args is the resolved command line.
type Args struct {
	Action     Action
	Forwarded  []string
	NoStats    bool
	BarWidth   int
	HasWidth   bool
	ConfigPath string
}

// Parse resolves argv (without the program name).
func Parse(argv []string) (Args, error) {
	if len(argv) == 0 {
		return Args{}, ErrNoArguments
	}

	if len(argv) == 1 {
		switch argv[0] {
		case "-h", "--help":
			return Args{Action: ActionHelp}, nil
		case "-v", "--version":
			return Args{Action: ActionVersion}, nil
		default:
			return Args{}, ErrInvalidArguments
		}
	}

	a := Args{Action: ActionRun}
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--no-stats":
			a.NoStats = true
		case "--bar-width":
			i++
			if i >= len(argv) {
				return Args{}, fmt.Errorf("%w: --bar-width needs a value", ErrInvalidArguments)
			}
			n, err := strconv.Atoi(argv[i])
			if err != nil || n < 0 {
				return Args{}, fmt.Errorf("%w: --bar-width %q", ErrInvalidArguments, argv[i])
			}
			a.BarWidth = n
			a.HasWidth = true
		case "--config":
			i++
			if i >= len(argv) {
				return Args{}, fmt.Errorf("%w: --config needs a value", ErrInvalidArguments)
			}
			a.ConfigPath = argv[i]
		default:
			a.Forwarded = append(a.Forwarded, argv[i])
		}
	}

	if len(a.Forwarded) == 0 {
		return Args{}, fmt.Errorf("%w: nothing to pass to ffmpeg", ErrInvalidArguments)
	}
	return a, nil
}

// Usage returns the help text.
func Usage(prog string) string {
	return fmt.Sprintf(`usage: %s [options] [ffmpeg options]
options:
-h, --help            show help
-v, --version         print version
--no-stats            only show the bar and percent
--bar-width <cells>   width of the progress bar, 0 hides it (default 20)
--config <file>       read settings from a YAML file
All other options are passed directly to ffmpeg.`, prog)
}
