// Package framecollate provides a high-level API for assembling frame
// collections into videos.
package framecollate

import (
	"github.com/user/framecollate/pkg/orchestrator"
	"github.com/user/framecollate/pkg/ports"
)

// QualityPreset represents a video quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// CRFForPreset returns the CRF value for the given preset.
// Lower values produce better quality.
func CRFForPreset(preset QualityPreset) int {
	switch preset {
	case QualityLow:
		return 35
	case QualityHigh:
		return 15
	default: // medium
		return 23
	}
}

// Config represents the configuration for video assembly.
type Config struct {
	// Encoding
	FrameRate float64 // Output frame rate (default: 30)
	Codec     string  // Codec code: mp4v, avc1/h264/x264, hev1/hvc1, vp09, av01
	Quality   int     // CRF value (0-63, lower is better)
	Bitrate   int     // Target bitrate in kbps (0 = CRF mode)

	// Frame store
	StoreBackend string // "fs" or "minio" (default: fs)
	StoreRoot    string // Base directory for the filesystem store

	// Tool paths
	FFmpegPath  string // Path to ffmpeg (falls back to FFMPEG_PATH env, then system default)
	FFprobePath string // Path to ffprobe (falls back to FFPROBE_PATH env, then system default)

	// Debug
	Debug    bool   // Enable debug output
	DebugDir string // Directory for debug output

	// Logging
	LogLevel ports.LogLevel // Minimum level for console output
	Quiet    bool           // Suppress all log output
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			FrameRate: 30.0,
			Codec:     "x264",
			Quality:   CRFForPreset(QualityMedium),
			Bitrate:   0,

			StoreBackend: "fs",
			StoreRoot:    "./frames",

			DebugDir: "./debug",

			LogLevel: ports.LevelInfo,
		},
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30.0
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = "fs"
	}

	return cfg
}

// WithFrameRate sets the output frame rate.
func (b *ConfigBuilder) WithFrameRate(fps float64) *ConfigBuilder {
	b.config.FrameRate = fps
	return b
}

// WithCodec sets the codec code (mp4v, avc1, hev1, vp09, av01).
func (b *ConfigBuilder) WithCodec(codec string) *ConfigBuilder {
	b.config.Codec = codec
	return b
}

// WithQuality sets the CRF value (0-63, lower is better).
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	b.config.Quality = CRFForPreset(preset)
	return b
}

// WithBitrate sets the target bitrate in kbps. Use 0 for CRF mode.
func (b *ConfigBuilder) WithBitrate(bitrate int) *ConfigBuilder {
	b.config.Bitrate = bitrate
	return b
}

// WithStoreBackend selects the frame store backend ("fs" or "minio").
func (b *ConfigBuilder) WithStoreBackend(backend string) *ConfigBuilder {
	b.config.StoreBackend = backend
	return b
}

// WithStoreRoot sets the base directory for the filesystem store.
func (b *ConfigBuilder) WithStoreRoot(root string) *ConfigBuilder {
	b.config.StoreRoot = root
	return b
}

// WithFFmpegPath sets the path to the ffmpeg executable.
func (b *ConfigBuilder) WithFFmpegPath(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// WithFFprobePath sets the path to the ffprobe executable.
func (b *ConfigBuilder) WithFFprobePath(path string) *ConfigBuilder {
	b.config.FFprobePath = path
	return b
}

// WithDebug enables debug output in the given directory.
func (b *ConfigBuilder) WithDebug(dir string) *ConfigBuilder {
	b.config.Debug = true
	if dir != "" {
		b.config.DebugDir = dir
	}
	return b
}

// WithLogLevel sets the minimum level for console output.
func (b *ConfigBuilder) WithLogLevel(level ports.LogLevel) *ConfigBuilder {
	b.config.LogLevel = level
	return b
}

// WithQuiet suppresses all log output.
func (b *ConfigBuilder) WithQuiet(quiet bool) *ConfigBuilder {
	b.config.Quiet = quiet
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(outputPath string) orchestrator.Config {
	return orchestrator.Config{
		OutputPath: outputPath,
		FrameRate:  c.FrameRate,
		Codec:      c.Codec,
		Quality:    c.Quality,
		Bitrate:    c.Bitrate,
	}
}
