// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package api

import (
	"github.com/ZSC714725/ffprogress/internal/ffmpeg"
)

// Progress is the latest progress snapshot
type Progress struct {
	RunID           string   `json:"run_id"`
	Mode            string   `json:"mode"`
	DurationSeconds int      `json:"duration_seconds"`
	TimeSeconds     int      `json:"time_seconds"`
	Percent         float64  `json:"percent"`
	SizeKB          float64  `json:"size_kbytes"`
	EstimatedKB     *float64 `json:"estimated_kbytes"`
	BitrateKB       float64  `json:"bitrate_kbytes"`
	Speed           float64  `json:"speed"`
	ETASeconds      *float64 `json:"eta_seconds"`
	Samples         int      `json:"samples"`
	ElapsedSeconds  float64  `json:"elapsed_seconds"`
	Line            string   `json:"line"`
}

// ProcessState of the monitored ffmpeg
type ProcessState struct {
	RunID      string      `json:"run_id"`
	State      string      `json:"exec"`
	PID        int         `json:"pid"`
	Runtime    int64       `json:"runtime_seconds"`
	ExitCode   int         `json:"exit_code"`
	Memory     uint64      `json:"memory_bytes"`
	MemoryPeak uint64      `json:"memory_peak_bytes"`
	CPU        float64     `json:"cpu_usage"`
	Command    []string    `json:"command"`
	LastLog    string      `json:"last_logline"`
	Log        [][2]string `json:"log"`
}

// About describes this ffprogress and the ffmpeg it drives
type About struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	RunID   string       `json:"run_id"`
	FFmpeg  *ffmpeg.Info `json:"ffmpeg"`
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
