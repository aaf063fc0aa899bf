// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler holds dependencies
type Handler struct {
	status  *Status
	version string
	now     func() time.Time
}

// NewHandler creates API handler
func NewHandler(status *Status, version string) *Handler {
	return &Handler{status: status, version: version, now: time.Now}
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// GetProgress GET /api/v3/progress
func (h *Handler) GetProgress(c *gin.Context) {
	s, ok := h.status.State()
	if !ok {
		errResp(c, http.StatusNotFound, "No progress yet", "ffmpeg has not been started")
		return
	}

	p := Progress{
		RunID:           h.status.RunID(),
		Mode:            s.Mode.String(),
		DurationSeconds: s.TotalDurationSecs,
		TimeSeconds:     s.CurrentTimeSecs,
		Percent:         s.Percent,
		SizeKB:          s.CurrentBytes,
		BitrateKB:       s.Bitrate,
		Speed:           s.SpeedMultiplier,
		Samples:         s.Samples,
		ElapsedSeconds:  h.now().Sub(s.RunStartTime).Seconds(),
		Line:            s.RenderedLine,
	}
	if s.HasEstimate {
		est := s.EstimatedTotalBytes
		p.EstimatedKB = &est
	}
	if s.HasETA {
		eta := s.ETASecs
		p.ETASeconds = &eta
	}

	c.JSON(http.StatusOK, p)
}

// GetProcess GET /api/v3/process
func (h *Handler) GetProcess(c *gin.Context) {
	proc, command := h.status.attached()
	if proc == nil {
		errResp(c, http.StatusNotFound, "Process not started", "")
		return
	}

	status := proc.Status()
	state := ProcessState{
		RunID:      h.status.RunID(),
		State:      status.State,
		PID:        status.PID,
		Runtime:    int64(status.Duration.Seconds()),
		ExitCode:   status.ExitCode,
		Memory:     status.Memory.Current,
		MemoryPeak: status.Memory.Peak,
		CPU:        status.CPU.Current,
		Command:    command,
	}

	lines := h.status.lines()
	state.Log = make([][2]string, len(lines))
	for i, line := range lines {
		state.Log[i] = [2]string{
			line.Timestamp.Format("2006-01-02 15:04:05.000"),
			line.Data,
		}
	}
	if len(lines) > 0 {
		state.LastLog = lines[len(lines)-1].Data
	}

	c.JSON(http.StatusOK, state)
}

// About GET /api/v3/about
func (h *Handler) About(c *gin.Context) {
	c.JSON(http.StatusOK, About{
		Name:    "ffprogress",
		Version: h.version,
		RunID:   h.status.RunID(),
		FFmpeg:  h.status.probed(),
	})
}
