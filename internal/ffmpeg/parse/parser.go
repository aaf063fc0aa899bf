// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedField is returned when a field matched its pattern but the
// captured number could not be parsed. FFmpeg's stats format is assumed stable,
// so callers treat it as fatal.
var ErrMalformedField = errors.New("malformed ffmpeg field")

var re = struct {
	duration *regexp.Regexp
	time     *regexp.Regexp
	speed    *regexp.Regexp
	size     *regexp.Regexp
}{
	duration: regexp.MustCompile(`Duration: (\d{2}):(\d{2}):(\d{2})\.\d{2}`),
	time:     regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})\.\d{2}`),
	speed:    regexp.MustCompile(`speed=(\d+\.\d+)`),
	size:     regexp.MustCompile(`size=\s*(\d+)`),
}

// Fields holds what a single unit of ffmpeg stderr reported. A nil field was
// not present in the unit, which is different from a reported zero.
type Fields struct {
	Duration *int     `json:"duration_seconds,omitempty"`
	Time     *int     `json:"time_seconds,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	Size     *float64 `json:"size_kb,omitempty"`
}

// Empty reports whether no field was found.
func (f Fields) Empty() bool {
	return f.Duration == nil && f.Time == nil && f.Speed == nil && f.Size == nil
}

// Extract runs every field parser against unit.
func Extract(unit string) (Fields, error) {
	var f Fields
	var err error

	if f.Duration, err = ParseDuration(unit); err != nil {
		return Fields{}, err
	}
	if f.Time, err = ParseTime(unit); err != nil {
		return Fields{}, err
	}
	if f.Speed, err = ParseSpeed(unit); err != nil {
		return Fields{}, err
	}
	if f.Size, err = ParseSize(unit); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// ParseDuration extracts the input duration ("Duration: 00:01:30.00") in seconds.
func ParseDuration(unit string) (*int, error) {
	return parseClock(re.duration, unit, "duration")
}

// ParseTime extracts the elapsed media time ("time=00:00:42.17") in seconds.
func ParseTime(unit string) (*int, error) {
	return parseClock(re.time, unit, "time")
}

// ParseSpeed extracts the speed multiplier ("speed=1.25x").
func ParseSpeed(unit string) (*float64, error) {
	return parseFloat(re.speed, unit, "speed")
}

// ParseSize extracts the output size in kB ("size=    1024kB").
func ParseSize(unit string) (*float64, error) {
	return parseFloat(re.size, unit, "size")
}

func parseClock(exp *regexp.Regexp, unit, name string) (*int, error) {
	m := exp.FindStringSubmatch(unit)
	if m == nil {
		return nil, nil
	}

	secs := 0
	mult := 3600
	for i := 1; i <= 3; i++ {
		x, err := strconv.Atoi(m[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %v", ErrMalformedField, name, m[0], err)
		}
		secs += mult * x
		mult /= 60
	}
	return &secs, nil
}

func parseFloat(exp *regexp.Regexp, unit, name string) (*float64, error) {
	m := exp.FindStringSubmatch(unit)
	if m == nil {
		return nil, nil
	}

	x, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrMalformedField, name, m[0], err)
	}
	return &x, nil
}
