// Package ffmpegsource reads individual frames out of a video file by
// running an external ffmpeg process per frame. Frames are numbered
// from 1 in presentation order.
package ffmpegsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/user/framecollate/pkg/adapters/ffmpegencoder"
	"github.com/user/framecollate/pkg/ports"
)

// ErrNotOpened is returned when ReadFrame is called before Open.
var ErrNotOpened = errors.New("ffmpegsource: source not opened")

// Source implements ports.FrameSource on top of the ffmpeg binary.
type Source struct {
	prober ports.MediaProber
	path   string
	opened bool
}

// New creates a frame source. When prober is non-nil, Open validates the
// file through it before accepting the path.
func New(prober ports.MediaProber) *Source {
	return &Source{prober: prober}
}

// Open checks that the file at path exists and reads as a video
// container. It does not decode any frame.
func (s *Source) Open(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return &ports.SourceOpenError{Path: path, Err: err}
	}
	if _, err := ffmpegencoder.FindFFmpeg(); err != nil {
		return &ports.SourceOpenError{Path: path, Err: err}
	}
	if s.prober != nil {
		if _, err := s.prober.Probe(ctx, path); err != nil {
			var openErr *ports.SourceOpenError
			if errors.As(err, &openErr) {
				return err
			}
			return &ports.SourceOpenError{Path: path, Err: err}
		}
	}
	s.path = path
	s.opened = true
	return nil
}

// ReadFrame decodes frame n of the opened source. The first frame is 1.
// Frame numbers before the start or past the end of the stream report as
// ports.FrameReadError.
func (s *Source) ReadFrame(ctx context.Context, n int64) (image.Image, error) {
	if !s.opened {
		return nil, ErrNotOpened
	}
	if n < 1 {
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: fmt.Errorf("frame numbers start at 1")}
	}

	bin, err := ffmpegencoder.FindFFmpeg()
	if err != nil {
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: err}
	}

	tmpDir, err := os.MkdirTemp("", "framecollate-extract-")
	if err != nil {
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: err}
	}
	defer os.RemoveAll(tmpDir)
	outPath := filepath.Join(tmpDir, "frame.png")

	// The select filter counts decoded frames from zero.
	filter := fmt.Sprintf(`select=eq(n\,%d)`, n-1)
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-i", s.path,
		"-vf", filter,
		"-frames:v", "1",
		"-y", outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: fmt.Errorf("ffmpeg: %v: %s", err, out)}
	}

	f, err := os.Open(outPath)
	if err != nil {
		// ffmpeg exits cleanly without writing anything when the selected
		// frame is past the end of the stream.
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: fmt.Errorf("no frame %d in stream", n)}
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &ports.FrameReadError{Path: s.path, Frame: n, Err: fmt.Errorf("decode frame: %w", err)}
	}
	return img, nil
}

// Close releases the source. The source can be reused with another Open.
func (s *Source) Close() error {
	s.path = ""
	s.opened = false
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
