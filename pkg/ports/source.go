package ports

import (
	"context"
	"image"
)

// FrameSource abstracts read access to the frames of an existing video.
type FrameSource interface {
	// Open prepares the source at path for reading. Failures are reported
	// as SourceOpenError.
	Open(ctx context.Context, path string) error

	// ReadFrame decodes frame n of an open source. Frame numbering is
	// 1-based: frame n is reached by skipping n-1 frames. Numbers below 1
	// or past the end of the video are reported as FrameReadError.
	ReadFrame(ctx context.Context, n int64) (image.Image, error)

	// Close releases the source. Safe to call after a failed Open.
	Close() error
}
