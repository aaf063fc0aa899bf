// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具
//
// Package stream cuts ffmpeg's stderr into units and recognizes the
// interactive overwrite prompt.

package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Delimiter closes every "[level]" tag ffmpeg prints with -loglevel level, and
// the "[y/N" of the overwrite prompt.
const Delimiter = ']'

const maxUnitSize = 4 * 1024 * 1024

// Segmenter yields units of ffmpeg stderr. Next blocks until a unit is
// complete or the stream ends.
type Segmenter interface {
	Next() (string, bool)
	Err() error
}

// Kind selects a Segmenter implementation.
type Kind string

const (
	KindBracket Kind = "bracket"
	KindLine    Kind = "line"
)

// New returns the Segmenter of the given kind reading from r.
func New(kind Kind, r io.Reader) (Segmenter, error) {
	switch kind {
	case KindBracket, "":
		return NewBracketSegmenter(r), nil
	case KindLine:
		return NewLineSegmenter(r), nil
	}
	return nil, fmt.Errorf("unknown segmenter %q", kind)
}

type scannerSegmenter struct {
	scanner *bufio.Scanner
}

// NewBracketSegmenter splits on ']'. A unit may hold none, one or several
// stats fields; the delimiter itself is dropped.
func NewBracketSegmenter(r io.Reader) Segmenter {
	return newScannerSegmenter(r, scanBracket)
}

// NewLineSegmenter splits on '\n' and '\r', and cuts the overwrite prompt
// before its closing bracket so prompt units look the same as with
// NewBracketSegmenter.
func NewLineSegmenter(r io.Reader) Segmenter {
	return newScannerSegmenter(r, scanLine)
}

func newScannerSegmenter(r io.Reader, split bufio.SplitFunc) *scannerSegmenter {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxUnitSize)
	s.Split(split)
	return &scannerSegmenter{scanner: s}
}

func (s *scannerSegmenter) Next() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *scannerSegmenter) Err() error {
	return s.scanner.Err()
}

func scanBracket(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, Delimiter); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var promptTail = []byte("[y/N")

func scanLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && (data[start] == '\n' || data[start] == '\r') {
		start++
	}

	for i := start; i < len(data); i++ {
		if data[i] == '\n' || data[i] == '\r' {
			return i + 1, data[start:i], nil
		}
	}

	// ffmpeg leaves the prompt open on the line, waiting for input.
	if i := bytes.Index(data[start:], promptTail); i >= 0 {
		end := start + i + len(promptTail)
		if end < len(data) && data[end] == Delimiter {
			return end + 1, data[start:end], nil
		}
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
