// Package smartprobe provides a media prober that detects the container
// format and selects the appropriate probing backend.
package smartprobe

import (
	"context"
	"io"
	"os"

	"github.com/user/framecollate/pkg/adapters/ffprobe"
	"github.com/user/framecollate/pkg/adapters/mp4probe"
	"github.com/user/framecollate/pkg/ports"
)

// Backend represents the probing backend used.
type Backend string

const (
	// BackendMP4 walks the MP4 box structure in process.
	BackendMP4 Backend = "mp4"
	// BackendFFprobe shells out to the ffprobe binary.
	BackendFFprobe Backend = "ffprobe"
)

// Options configures the smart prober behavior.
type Options struct {
	// FFprobePath is an optional custom path to the ffprobe binary.
	FFprobePath string
}

// Prober routes each probe to the backend that can read the container.
//
// The selection flow:
//   - MP4 family (ftyp or styp marker): in-process box walk
//   - everything else: ffprobe
type Prober struct {
	mp4     ports.MediaProber
	ffprobe ports.MediaProber
}

// New creates a prober with default options.
func New() *Prober {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a prober with explicit options.
func NewWithOptions(opts Options) *Prober {
	if opts.FFprobePath != "" {
		ffprobe.SetFFprobePath(opts.FFprobePath)
	}
	return &Prober{
		mp4:     mp4probe.New(),
		ffprobe: ffprobe.New(),
	}
}

// BackendFor reports which backend the file at path would be probed with.
func BackendFor(path string) (Backend, error) {
	isMP4, err := sniffMP4(path)
	if err != nil {
		return "", err
	}
	if isMP4 {
		return BackendMP4, nil
	}
	return BackendFFprobe, nil
}

// Probe inspects the file header and delegates to the matching backend.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	isMP4, err := sniffMP4(path)
	if err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: err}
	}
	if isMP4 {
		return p.mp4.Probe(ctx, path)
	}
	return p.ffprobe.Probe(ctx, path)
}

// sniffMP4 checks for an MP4 family box marker at byte offset 4.
func sniffMP4(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, 8)
	if _, err := io.ReadFull(f, header); err != nil {
		// Too short to carry a box header.
		return false, nil
	}

	switch string(header[4:8]) {
	case "ftyp", "styp":
		return true, nil
	}
	return false, nil
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
