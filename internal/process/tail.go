// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package process

import (
	"container/ring"
	"sync"
	"time"
)

// Line is a timestamped unit of process output
type Line struct {
	Timestamp time.Time `json:"ts"`
	Data      string    `json:"data"`
}

// Tail keeps the last n units of ffmpeg stderr so a failed run can be
// diagnosed from the log.
type Tail struct {
	log  *ring.Ring
	lock sync.RWMutex
}

// NewTail creates a Tail holding up to size lines
func NewTail(size int) *Tail {
	if size <= 0 {
		size = 100
	}
	return &Tail{log: ring.New(size)}
}

// Add records a unit
func (t *Tail) Add(ts time.Time, data string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.log.Value = Line{Timestamp: ts, Data: data}
	t.log = t.log.Next()
}

// Lines returns the recorded units, oldest first
func (t *Tail) Lines() []Line {
	var out []Line
	t.lock.RLock()
	t.log.Do(func(v interface{}) {
		if v != nil {
			out = append(out, v.(Line))
		}
	})
	t.lock.RUnlock()
	return out
}
