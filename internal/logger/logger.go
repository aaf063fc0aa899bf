// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package logger

import (
	"io"
	"log"
	"os"

	"github.com/lithammer/shortuuid/v4"
)

// Logger provides a simple logging interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Config for a logger
type Config struct {
	// Output receives the log lines. Stdout and stderr belong to the progress
	// display, so nil discards everything.
	Output io.Writer
	Debug  bool
	// RunID tags every line. Empty generates one.
	RunID string
}

type defaultLogger struct {
	log    *log.Logger
	prefix string
	debug  bool
}

// New creates a Logger tagged with prefix and the run ID.
func New(prefix string, config Config) Logger {
	out := config.Output
	if out == nil {
		out = io.Discard
	}
	id := config.RunID
	if id == "" {
		id = NewRunID()
	}
	return &defaultLogger{
		log:    log.New(out, "", log.LstdFlags|log.Lmicroseconds),
		prefix: prefix + "[" + id + "] ",
		debug:  config.Debug,
	}
}

// NewRunID returns a short unique ID for one ffmpeg run.
func NewRunID() string {
	return shortuuid.New()
}

// OpenFile opens path for appending log lines. An empty path returns nil,
// which New treats as discard.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	l.log.Printf("[INFO] "+l.prefix+format, args...)
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	l.log.Printf("[ERROR] "+l.prefix+format, args...)
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.log.Printf("[DEBUG] "+l.prefix+format, args...)
}

// Nop returns a Logger that drops everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(format string, args ...interface{})  {}
func (nopLogger) Error(format string, args ...interface{}) {}
func (nopLogger) Debug(format string, args ...interface{}) {}
