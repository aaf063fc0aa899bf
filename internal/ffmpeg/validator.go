// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultWarnArgs match forwarded arguments that silence the stats lines or
// fight the injected -loglevel, which leaves the progress bar at 0%.
var DefaultWarnArgs = []string{
	`^-nostats$`,
	`^-(loglevel|v)$`,
	`^-hide_banner$`,
}

// Validator validates if an argument may be forwarded without hurting the
// progress display
type Validator interface {
	IsValid(text string) bool
}

type validator struct {
	block []*regexp.Regexp
}

// NewValidator creates a Validator rejecting every argument that matches one
// of the block expressions. Empty expressions are ignored.
func NewValidator(block []string) (Validator, error) {
	v := &validator{}
	for _, exp := range block {
		exp = strings.TrimSpace(exp)
		if exp == "" {
			continue
		}
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, fmt.Errorf("invalid expression '%s': %w", exp, err)
		}
		v.block = append(v.block, re)
	}
	return v, nil
}

func (v *validator) IsValid(text string) bool {
	for _, e := range v.block {
		if e.MatchString(text) {
			return false
		}
	}
	return true
}
