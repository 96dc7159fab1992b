package ports

import (
	"context"
)

// MediaInfo holds container-declared metadata for a video file. The values
// are what the container reports, not what decoding would measure; a
// malformed or sloppy container may under- or over-report them.
type MediaInfo struct {
	FrameCount int64   // Declared number of video frames, 0 if not declared
	FrameRate  float64 // Declared frames per second, 0 if not declared
	Codec      string  // Codec identifier as named by the container
	DurationMs int64   // Declared duration in milliseconds
}

// MediaProber reads container metadata without decoding frames.
type MediaProber interface {
	// Probe inspects the video at path. Failures to open or parse the
	// container are reported as SourceOpenError.
	Probe(ctx context.Context, path string) (MediaInfo, error)
}
