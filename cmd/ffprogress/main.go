// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ZSC714725/ffprogress/internal/api"
	"github.com/ZSC714725/ffprogress/internal/cli"
	"github.com/ZSC714725/ffprogress/internal/config"
	"github.com/ZSC714725/ffprogress/internal/display"
	"github.com/ZSC714725/ffprogress/internal/ffmpeg"
	"github.com/ZSC714725/ffprogress/internal/logger"
	"github.com/ZSC714725/ffprogress/internal/process"
	"github.com/ZSC714725/ffprogress/internal/session"
	"github.com/ZSC714725/ffprogress/internal/stream"
)

// Version information - set via ldflags during build
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

func newRootCmd(code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "ffprogress [options] [ffmpeg options]",
		Short: "Run ffmpeg with a single progress line instead of its log",
		// Every flag except our own few belongs to ffmpeg.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			*code = execute(cmd.Context(), args, cmd.OutOrStdout())
		},
	}
}

func main() {
	// The terminal belongs to the progress line.
	gin.SetMode(gin.ReleaseMode)

	code := 0
	if err := newRootCmd(&code).ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(code)
}

// execute runs one ffprogress invocation and returns the exit status.
func execute(ctx context.Context, argv []string, out io.Writer) int {
	a, err := cli.Parse(argv)
	if err != nil {
		switch {
		case errors.Is(err, cli.ErrNoArguments):
			fmt.Fprintln(out, cli.ErrNoArguments)
		default:
			fmt.Fprintln(out, cli.ErrInvalidArguments)
		}
		return 1
	}

	switch a.Action {
	case cli.ActionHelp:
		fmt.Fprintln(out, cli.Usage("ffprogress"))
		return 0
	case cli.ActionVersion:
		fmt.Fprintln(out, "v"+Version)
		return 0
	}

	path := a.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(out, "Load config: %v\n", err)
		return 1
	}
	if a.HasWidth {
		cfg.Display.BarWidth = a.BarWidth
	}
	if a.NoStats {
		cfg.Display.NoStats = true
	}

	f, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(out, "Open log: %v\n", err)
		return 1
	}
	var logOut io.Writer
	if f != nil {
		defer f.Close()
		logOut = f
	}
	runID := logger.NewRunID()
	log := logger.New("ffprogress", logger.Config{Output: logOut, Debug: cfg.Log.Debug, RunID: runID})
	log.Debug("config %s, build %s", path, BuildTime)

	ff, err := ffmpeg.New(ffmpeg.Config{
		Binary:   cfg.FFmpeg.Path,
		WarnArgs: cfg.FFmpeg.WarnArgs,
		Logger:   log,
	})
	if err != nil {
		return reportStartError(out, err)
	}
	log.Info("using ffmpeg at %s", ff.Binary())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tail := process.NewTail(cfg.Stream.TailLines)

	var sampler process.Sampler = process.NewNullSampler()
	var observer session.Observer
	if cfg.Status.Bind != "" {
		sampler = process.NewSysSampler(0)
		status := api.NewStatus(runID, tail)
		status.SetCommand(ffmpeg.BuildArgs(a.Forwarded))
		if info, err := ff.Probe(ctx); err == nil {
			status.SetFFmpeg(info)
		} else {
			log.Error("probe: %v", err)
		}

		srv, err := api.Listen(cfg.Status.Bind, api.NewHandler(status, Version), log)
		if err != nil {
			log.Error("status API disabled: %v", err)
		} else {
			go srv.Serve(ctx)
			observer = status
		}
	} else if cfg.Log.Debug {
		sampler = process.NewSysSampler(0)
		if info, err := ff.Probe(ctx); err == nil {
			log.Debug("ffmpeg %s at %s", info.Version, ff.Binary())
		}
	}

	renderer := display.NewRenderer(display.Config{
		Output:   out,
		BarWidth: cfg.Display.BarWidth,
		NoStats:  cfg.Display.NoStats,
		Color:    display.ColorMode(cfg.Display.Color),
		Logger:   log,
	})

	s := session.New(session.Config{
		Renderer:  renderer,
		Segmenter: stream.Kind(cfg.Stream.Segmenter),
		Logger:    log,
		Sampler:   sampler,
		Tail:      tail,
		Observer:  observer,
	})

	r, err := s.Run(ctx, ff, a.Forwarded)
	if err != nil {
		return reportStartError(out, err)
	}

	if !r.Success() && cfg.PropagateExitCode {
		if r.ExitCode > 0 {
			return r.ExitCode
		}
		return 1
	}
	return 0
}

func reportStartError(out io.Writer, err error) int {
	if errors.Is(err, ffmpeg.ErrNotInstalled) {
		fmt.Fprintln(out, ffmpeg.ErrNotInstalled)
	} else {
		fmt.Fprintln(out, err)
	}
	return 1
}
