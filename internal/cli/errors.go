// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package cli

import "errors"

// The messages are printed verbatim before exiting with status 1.
var (
	ErrNoArguments      = errors.New("No arguments supplied!")
	ErrInvalidArguments = errors.New("Invalid arguments!")
)
