// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/ZSC714725/ffprogress/internal/logger"
	"github.com/ZSC714725/ffprogress/internal/process"
)

// ErrNotInstalled means the ffmpeg binary could not be found.
var ErrNotInstalled = errors.New("ffmpeg not installed or not in PATH")

// DefaultBinary is looked up on PATH.
const DefaultBinary = "ffmpeg"

// LogLevelArgs are always prepended: "level" prefixes every log line with
// its "[level]" tag, whose closing bracket delimits the units the monitor
// reads.
var LogLevelArgs = []string{"-loglevel", "level"}

// Config for FFmpeg
type Config struct {
	Binary   string
	WarnArgs []string
	Logger   logger.Logger
}

// ProcessConfig for starting ffmpeg
type ProcessConfig struct {
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Sampler process.Sampler
}

// FFmpeg resolves the binary and starts monitored runs.
type FFmpeg struct {
	binary    string
	validator Validator
	logger    logger.Logger
}

// New creates FFmpeg. An unresolvable binary yields ErrNotInstalled.
func New(config Config) (*FFmpeg, error) {
	name := config.Binary
	if name == "" {
		name = DefaultBinary
	}
	binary, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}

	f := &FFmpeg{
		binary: binary,
		logger: config.Logger,
	}
	if f.logger == nil {
		f.logger = logger.Nop()
	}

	warn := config.WarnArgs
	if warn == nil {
		warn = DefaultWarnArgs
	}
	f.validator, err = NewValidator(warn)
	if err != nil {
		return nil, fmt.Errorf("invalid warn_args: %w", err)
	}

	return f, nil
}

// Binary returns the resolved path of ffmpeg.
func (f *FFmpeg) Binary() string {
	return f.binary
}

// Command returns the full argument list: the log level pair followed by the
// forwarded arguments, verbatim.
func (f *FFmpeg) Command(args []string) []string {
	for _, arg := range args {
		if !f.validator.IsValid(arg) {
			f.logger.Info("argument %q may suppress progress output", arg)
		}
	}
	return BuildArgs(args)
}

// BuildArgs prepends LogLevelArgs to args.
func BuildArgs(args []string) []string {
	cmd := make([]string, 0, len(LogLevelArgs)+len(args))
	cmd = append(cmd, LogLevelArgs...)
	return append(cmd, args...)
}

// Start launches ffmpeg with the forwarded arguments.
func (f *FFmpeg) Start(ctx context.Context, config ProcessConfig) (*process.Process, error) {
	args := f.Command(config.Args)
	f.logger.Debug("exec %s %q", f.binary, args)

	p, err := process.Start(ctx, process.Config{
		Binary:  f.binary,
		Args:    args,
		Stdin:   config.Stdin,
		Stdout:  config.Stdout,
		Sampler: config.Sampler,
		Logger:  f.logger,
	})
	if err != nil {
		if errors.Is(err, process.ErrBinaryNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
		}
		return nil, err
	}
	return p, nil
}

// Probe reports the version banner of the resolved binary.
func (f *FFmpeg) Probe(ctx context.Context) (Info, error) {
	return Probe(ctx, f.binary)
}
