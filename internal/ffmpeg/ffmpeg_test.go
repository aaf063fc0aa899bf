// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package ffmpeg

import (
	"bytes"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZSC714725/ffprogress/internal/logger"
)

const versionBanner = `ffmpeg version 6.1.1-3ubuntu5 Copyright (c) 2000-2023 the FFmpeg developers
built with gcc 13 (Ubuntu 13.2.0-23ubuntu3)
configuration: --prefix=/usr --enable-gpl --enable-libx264
libavutil      58. 29.100 / 58. 29.100
libavcodec     60. 31.102 / 60. 31.102
libavformat    60. 16.100 / 60. 16.100
`

func TestParseVersion(t *testing.T) {
	info := parseVersion([]byte(versionBanner))
	assert.Equal(t, "6.1.1", info.Version)
	assert.Equal(t, "gcc 13 (Ubuntu 13.2.0-23ubuntu3)", info.Compiler)
	assert.Equal(t, "--prefix=/usr --enable-gpl --enable-libx264", info.Configuration)
	require.Len(t, info.Libraries, 3)
	assert.Equal(t, Library{Name: "libavutil", Compiled: "58. 29.100", Linked: "58. 29.100"}, info.Libraries[0])
}

func TestParseVersionShort(t *testing.T) {
	info := parseVersion([]byte("ffmpeg version n7.0 Copyright (c) 2000-2024\n"))
	assert.Equal(t, "7.0.0", info.Version)

	info = parseVersion([]byte("ffmpeg version N-113364-g1b4a9d5b2c\n"))
	assert.Empty(t, info.Version)
}

func TestBuildArgs(t *testing.T) {
	assert.Equal(t, []string{"-loglevel", "level", "-i", "in.mkv", "out.mp4"}, BuildArgs([]string{"-i", "in.mkv", "out.mp4"}))
	assert.Equal(t, []string{"-loglevel", "level"}, BuildArgs(nil))
}

func TestValidator(t *testing.T) {
	v, err := NewValidator(DefaultWarnArgs)
	require.NoError(t, err)

	assert.False(t, v.IsValid("-nostats"))
	assert.False(t, v.IsValid("-loglevel"))
	assert.False(t, v.IsValid("-v"))
	assert.True(t, v.IsValid("-vf"))
	assert.True(t, v.IsValid("-i"))
	assert.True(t, v.IsValid("out.mp4"))

	v, err = NewValidator([]string{`\.mkv$`, "  "})
	require.NoError(t, err)
	assert.True(t, v.IsValid("out.mp4"))
	assert.False(t, v.IsValid("out.mkv"))

	v, err = NewValidator(nil)
	require.NoError(t, err)
	assert.True(t, v.IsValid("-nostats"))

	_, err = NewValidator([]string{"("})
	assert.Error(t, err)
}

func TestNewNotInstalled(t *testing.T) {
	_, err := New(Config{Binary: "ffprogress-no-such-ffmpeg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestCommandWarns(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var buf bytes.Buffer
	f, err := New(Config{Binary: "sh", Logger: logger.New("", logger.Config{Output: &buf, RunID: "t"})})
	require.NoError(t, err)

	args := f.Command([]string{"-nostats", "-i", "a.mkv", "b.mp4"})
	assert.Equal(t, []string{"-loglevel", "level", "-nostats", "-i", "a.mkv", "b.mp4"}, args)
	assert.Contains(t, buf.String(), `argument "-nostats" may suppress progress output`)
	assert.NotContains(t, buf.String(), `"-i"`)
}

func TestNewInvalidWarnArgs(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, err := New(Config{Binary: "sh", WarnArgs: []string{"["}})
	assert.Error(t, err)
}
