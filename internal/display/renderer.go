// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package display keeps exactly one progress line visible and rewrites it in
// place by backspacing over it.

package display

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/ZSC714725/ffprogress/internal/logger"
	"github.com/ZSC714725/ffprogress/internal/progress"
)

// ColorMode controls the styling of the summary line.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// erase moves back over one cell, blanks it and moves back again.
const erase = "\b \b"

// Config for a Renderer
type Config struct {
	Output   io.Writer
	BarWidth int
	NoStats  bool
	Color    ColorMode
	Logger   logger.Logger
}

// Renderer owns the visible progress line.
type Renderer struct {
	out       *bufio.Writer
	barWidth  int
	noStats   bool
	termWidth int
	line      string
	warned    bool
	logger    logger.Logger

	success lipgloss.Style
	failure lipgloss.Style
}

// NewRenderer creates a Renderer. A nil Output means os.Stdout.
func NewRenderer(config Config) *Renderer {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	r := &Renderer{
		out:       bufio.NewWriter(out),
		barWidth:  config.BarWidth,
		noStats:   config.NoStats,
		termWidth: TerminalWidth(out),
		logger:    config.Logger,
	}
	if r.logger == nil {
		r.logger = logger.Nop()
	}

	var opts []termenv.OutputOption
	switch config.Color {
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	lr := lipgloss.NewRenderer(out, opts...)
	r.success = lr.NewStyle().Foreground(lipgloss.Color("2"))
	r.failure = lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	return r
}

// TerminalWidth returns the column count of w, or 0 when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Line returns the text currently visible.
func (r *Renderer) Line() string {
	return r.line
}

// Placeholder shows the initial 0% line.
func (r *Renderer) Placeholder() {
	r.show(PlaceholderLine(r.barWidth))
}

// Progress replaces the visible line with the sample in s.
func (r *Renderer) Progress(s progress.State) {
	r.show(ProgressLine(s, r.barWidth, r.noStats))
}

// Prompt replaces the visible line with the overwrite prompt. The prompt
// stays on screen; the next line is printed after the user's answer.
func (r *Renderer) Prompt(fragment string) {
	r.out.WriteString(r.eraseSeq())
	r.out.WriteString(fragment)
	r.line = ""
	r.flush()
}

// Finish replaces the visible line with the final summary and ends the line.
func (r *Renderer) Finish(success bool, totals progress.Totals) {
	r.out.WriteString(r.eraseSeq())
	if success {
		r.out.WriteString(r.success.Render(SummaryLine(totals, r.barWidth)))
	} else {
		r.out.WriteString(r.failure.Render(FailureLine))
	}
	r.out.WriteString("\n")
	r.line = ""
	r.flush()
}

// Clear erases the visible line.
func (r *Renderer) Clear() {
	r.out.WriteString(r.eraseSeq())
	r.line = ""
	r.flush()
}

func (r *Renderer) show(line string) {
	r.out.WriteString(r.eraseSeq())
	r.out.WriteString(line)
	r.line = line
	r.flush()

	if !r.warned && r.termWidth > 0 && utf8.RuneCountInString(line) >= r.termWidth {
		r.warned = true
		r.logger.Debug("progress line (%d columns) does not fit the terminal (%d columns), output will wrap",
			utf8.RuneCountInString(line), r.termWidth)
	}
}

func (r *Renderer) eraseSeq() string {
	return strings.Repeat(erase, utf8.RuneCountInString(r.line))
}

func (r *Renderer) flush() {
	if err := r.out.Flush(); err != nil {
		r.logger.Error("flush display: %v", err)
	}
}
