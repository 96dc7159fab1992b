package ffmpegencoder

import "errors"

var (
	// ErrNotOpened is returned when encoder methods are called before Begin
	// or after End.
	ErrNotOpened = errors.New("ffmpegencoder: encoding session not open")

	// ErrFrameSizeMismatch is returned when a frame does not match the
	// dimensions fixed at Begin.
	ErrFrameSizeMismatch = errors.New("ffmpegencoder: frame size mismatch")

	// ErrUnknownCodec is returned for a four-character code with no ffmpeg
	// encoder mapping.
	ErrUnknownCodec = errors.New("ffmpegencoder: unknown codec code")

	// ErrCodecContainerMismatch is returned when the output extension
	// implies a container that cannot carry the requested codec.
	ErrCodecContainerMismatch = errors.New("ffmpegencoder: codec not supported by container")

	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found in PATH")
)
