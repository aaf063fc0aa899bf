// Copyright (c) 2026 Kevin Zang (kevinzang). All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFProgress - FFmpeg 进度条包装工具

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the default config file location.
const EnvPath = "FFPROGRESS_CONFIG"

// DefaultBarWidth is the number of cells of the progress bar.
const DefaultBarWidth = 20

// Config 应用配置
type Config struct {
	FFmpeg            FFmpegConfig  `yaml:"ffmpeg"`
	Display           DisplayConfig `yaml:"display"`
	Stream            StreamConfig  `yaml:"stream"`
	Log               LogConfig     `yaml:"log"`
	Status            StatusConfig  `yaml:"status"`
	PropagateExitCode bool          `yaml:"propagate_exit_code"`
}

// FFmpegConfig FFmpeg 配置
type FFmpegConfig struct {
	Path string `yaml:"path"`
	// WarnArgs 匹配会抑制进度输出的参数，nil 使用内置列表
	WarnArgs []string `yaml:"warn_args"`
}

// DisplayConfig 进度条显示配置
type DisplayConfig struct {
	BarWidth int    `yaml:"bar_width"`
	NoStats  bool   `yaml:"no_stats"`
	Color    string `yaml:"color"`
}

// StreamConfig stderr 分段配置
type StreamConfig struct {
	Segmenter string `yaml:"segmenter"`
	TailLines int    `yaml:"tail_lines"`
}

// LogConfig 日志配置，File 为空时不写日志
type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// StatusConfig 状态接口配置，Bind 为空时不启动
type StatusConfig struct {
	Bind string `yaml:"bind"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		FFmpeg:  FFmpegConfig{Path: "ffmpeg"},
		Display: DisplayConfig{BarWidth: DefaultBarWidth, Color: "auto"},
		Stream:  StreamConfig{Segmenter: "bracket", TailLines: 100},
	}
}

// DefaultPath returns $FFPROGRESS_CONFIG, or config.yaml under the user
// config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ffprogress", "config.yaml")
}

// Load 从 YAML 文件加载配置，文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// 填充空值
	if cfg.FFmpeg.Path == "" {
		cfg.FFmpeg.Path = "ffmpeg"
	}
	if cfg.Display.BarWidth < 0 {
		cfg.Display.BarWidth = DefaultBarWidth
	}
	if cfg.Display.Color == "" {
		cfg.Display.Color = "auto"
	}
	if cfg.Stream.Segmenter == "" {
		cfg.Stream.Segmenter = "bracket"
	}
	if cfg.Stream.TailLines <= 0 {
		cfg.Stream.TailLines = 100
	}

	return cfg, nil
}
