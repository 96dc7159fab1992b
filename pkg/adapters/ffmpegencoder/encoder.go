// Package ffmpegencoder implements the video encoding session on top of an
// external ffmpeg process. Raw RGBA frames are piped to ffmpeg stdin and
// the selected encoder writes straight to the sink path, overwriting any
// existing file. The codec is chosen by its four-character code; the
// container follows from the output file extension.
package ffmpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/user/framecollate/pkg/ports"
)

var customFFmpegPath string

// SetFFmpegPath overrides ffmpeg discovery with an explicit binary path.
// An empty path restores automatic discovery.
func SetFFmpegPath(path string) {
	customFFmpegPath = path
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg in PATH and common locations.
// Priority: 1) customFFmpegPath (set via SetFFmpegPath), 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	// Check custom path first (set via SetFFmpegPath)
	if customFFmpegPath != "" {
		if _, err := os.Stat(customFFmpegPath); err == nil {
			return customFFmpegPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customFFmpegPath)
	}

	// Check FFMPEG_PATH environment variable
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	// Check PATH
	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	// Check common locations
	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// Encoder implements ports.VideoEncoder using an ffmpeg external process.
type Encoder struct {
	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	width      int
	height     int
	sink       ports.SinkConfig
	frameCount int
	closed     bool
}

// New creates a new ffmpeg-based encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin opens the encoding session. All open failures report as
// ports.EncoderOpenError: unknown codec, codec/container mismatch,
// unwritable output path, missing ffmpeg binary. An existing file at the
// sink path is truncated here.
func (e *Encoder) Begin(width, height int, sink ports.SinkConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	openErr := func(err error) error {
		return &ports.EncoderOpenError{Path: sink.OutputPath, Codec: sink.Codec, Err: err}
	}

	if width <= 0 || height <= 0 {
		return openErr(fmt.Errorf("invalid frame size %dx%d", width, height))
	}
	if sink.FrameRate <= 0 {
		return openErr(fmt.Errorf("frame rate %v is not positive", sink.FrameRate))
	}

	encoderName, err := EncoderName(sink.Codec)
	if err != nil {
		return openErr(err)
	}
	if err := ValidatePairing(sink.OutputPath, sink.Codec); err != nil {
		return openErr(err)
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return openErr(err)
	}

	// Probe writability and apply the overwrite semantics in one step.
	f, err := os.Create(sink.OutputPath)
	if err != nil {
		return openErr(fmt.Errorf("output path not writable: %w", err))
	}
	f.Close()

	args := []string{
		"-y",             // Overwrite output
		"-f", "rawvideo", // Input format
		"-pix_fmt", "rgba", // Input pixel format
		"-s", fmt.Sprintf("%dx%d", width, height), // Input size
		"-r", fmt.Sprintf("%.2f", sink.FrameRate), // Input frame rate
		"-i", "pipe:0", // Read from stdin
		"-c:v", encoderName,
		"-pix_fmt", "yuv420p", // Output pixel format
	}
	args = append(args, qualityArgs(encoderName, sink.Quality, sink.Bitrate)...)
	args = append(args, containerArgs(sink.OutputPath)...)
	args = append(args, sink.OutputPath)

	e.cmd = exec.Command(ffmpegPath, args...)
	e.stderr.Reset()
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return openErr(fmt.Errorf("failed to get stdin pipe: %w", err))
	}

	if err := e.cmd.Start(); err != nil {
		return openErr(fmt.Errorf("failed to start ffmpeg: %w", err))
	}

	e.stdin = stdin
	e.width = width
	e.height = height
	e.sink = sink
	e.frameCount = 0
	e.closed = false

	return nil
}

// EncodeFrame appends a single frame. Frames whose bounds do not match
// the session dimensions are rejected.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return ErrNotOpened
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.width || bounds.Dy() != e.height {
		return fmt.Errorf("%w: frame is %dx%d, session is %dx%d",
			ErrFrameSizeMismatch, bounds.Dx(), bounds.Dy(), e.width, e.height)
	}

	// Convert image to RGBA
	rgba := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	// Write raw RGBA data to ffmpeg stdin
	if _, err := e.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	e.frameCount++
	return nil
}

// End closes the input stream, waits for ffmpeg to finalize the container
// and returns the number of bytes written to the sink. The session is
// released whether or not finalization succeeds; a partial output file is
// left in place.
func (e *Encoder) End() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil || e.closed {
		return 0, ErrNotOpened
	}

	// Close stdin to signal end of input
	e.stdin.Close()
	e.stdin = nil
	e.closed = true

	if err := e.cmd.Wait(); err != nil {
		return 0, fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}

	info, err := os.Stat(e.sink.OutputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output: %w", err)
	}

	return info.Size(), nil
}

// FrameCount returns the number of frames accepted so far.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
