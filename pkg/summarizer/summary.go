// Package summarizer provides summary generation for assembly results.
package summarizer

import "time"

// Summary contains all data collected during an assembly run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input batch information
	Input InputInfo

	// Encoding settings
	Settings Settings

	// Video output details
	Video VideoInfo

	// Timing results
	Timing TimingInfo
}

// InputInfo describes the collated record batch.
type InputInfo struct {
	RecordCount    int
	DuplicateCount int
}

// Settings contains the encoding configuration.
type Settings struct {
	Codec     string
	Quality   int
	Bitrate   int
	FrameRate float64
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	OutputPath string
	FrameCount int
	DurationMs int
	FileSize   int64
	Width      int
	Height     int
}

// TimingInfo contains wall-clock measurements.
type TimingInfo struct {
	TotalDurationMs int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input batch information.
func (b *Builder) WithInput(recordCount, duplicateCount int) *Builder {
	b.summary.Input = InputInfo{
		RecordCount:    recordCount,
		DuplicateCount: duplicateCount,
	}
	return b
}

// WithSettings sets encoding settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithTiming sets timing information.
func (b *Builder) WithTiming(totalDurationMs int64) *Builder {
	b.summary.Timing = TimingInfo{
		TotalDurationMs: totalDurationMs,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
