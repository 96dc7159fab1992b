package ports

import (
	"image"
)

// SinkConfig describes the video sink an encoding session writes to.
type SinkConfig struct {
	OutputPath string  // Destination file; an existing file is overwritten
	FrameRate  float64 // Frames per second, must be positive
	Codec      string  // Four-character codec code: mp4v, avc1, hev1, vp09, av01
	Quality    int     // CRF value: 0-63 (lower is higher quality)
	Bitrate    int     // Target bitrate in kbps, 0 disables rate control
}

// VideoEncoder abstracts a single video encoding session.
type VideoEncoder interface {
	// Begin opens the sink and fixes the frame dimensions for the session.
	Begin(width, height int, sink SinkConfig) error

	// EncodeFrame appends one frame. Dimensions must match those given to
	// Begin; mismatched frames are rejected.
	EncodeFrame(img image.Image) error

	// End finalizes the container and releases the session. It returns the
	// number of bytes written to the sink.
	End() (int64, error)
}
