package ports

import (
	"fmt"
)

// SourceOpenError reports a video source that could not be opened: the file
// is missing, unreadable, or not a parseable container. Open failures are
// always this type, never FrameReadError.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("open video source %s: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error {
	return e.Err
}

// FrameReadError reports a frame that could not be read from an open
// source: the frame number is below 1, past the end, or decoding failed.
type FrameReadError struct {
	Path  string
	Frame int64
	Err   error
}

func (e *FrameReadError) Error() string {
	return fmt.Sprintf("read frame %d of %s: %v", e.Frame, e.Path, e.Err)
}

func (e *FrameReadError) Unwrap() error {
	return e.Err
}

// EncoderOpenError reports an encoding session that could not open its
// sink: unknown codec code, a codec/container pairing the backend rejects,
// an unwritable output path, or a missing backend binary.
type EncoderOpenError struct {
	Path  string
	Codec string
	Err   error
}

func (e *EncoderOpenError) Error() string {
	return fmt.Sprintf("open encoder (%s) for %s: %v", e.Codec, e.Path, e.Err)
}

func (e *EncoderOpenError) Unwrap() error {
	return e.Err
}
