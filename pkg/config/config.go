// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/framecollate/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Store backend names accepted in the store_backend field.
const (
	StoreBackendFS    = "fs"
	StoreBackendMinIO = "minio"
)

// Config represents the full configuration for framecollate.
type Config struct {
	// Input/Output
	ManifestPath string `yaml:"manifest"`
	OutputPath   string `yaml:"output"`

	// Frame store. MinIO credentials come from the environment,
	// never from this file.
	StoreBackend string `yaml:"store_backend"`
	StoreRoot    string `yaml:"store_root"`

	// Encoding
	Codec   string  `yaml:"codec"`
	Quality int     `yaml:"quality"`
	Bitrate int     `yaml:"bitrate"`
	FPS     float64 `yaml:"fps"`

	// Tool paths
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Summary
	SummaryPath string `yaml:"summary"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		StoreBackend: StoreBackendFS,
		StoreRoot:    "./frames",

		Codec:   "x264",
		Quality: 23,
		FPS:     30.0,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		OutputPath: c.OutputPath,
		FrameRate:  c.FPS,
		Codec:      c.Codec,
		Quality:    c.Quality,
		Bitrate:    c.Bitrate,
	}
}
