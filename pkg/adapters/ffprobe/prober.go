// Package ffprobe probes media metadata through the ffprobe command line
// tool. It covers the containers the box-level MP4 prober cannot read, at
// the cost of spawning a child process per probe.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/user/framecollate/pkg/ports"
)

// ErrFFprobeNotFound is returned when no ffprobe binary can be located.
var ErrFFprobeNotFound = fmt.Errorf("ffprobe: ffprobe binary not found")

var customFFprobePath string

// SetFFprobePath overrides ffprobe discovery with an explicit binary path.
// An empty path restores automatic discovery.
func SetFFprobePath(path string) {
	customFFprobePath = path
}

// IsFFprobeAvailable checks if ffprobe is available on the system.
func IsFFprobeAvailable() bool {
	_, err := FindFFprobe()
	return err == nil
}

// FindFFprobe searches for ffprobe in PATH and common locations.
// Priority: 1) customFFprobePath (set via SetFFprobePath), 2) FFPROBE_PATH env, 3) PATH, 4) common locations
func FindFFprobe() (string, error) {
	// Check custom path first (set via SetFFprobePath)
	if customFFprobePath != "" {
		if _, err := os.Stat(customFFprobePath); err == nil {
			return customFFprobePath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFprobeNotFound, customFFprobePath)
	}

	// Check FFPROBE_PATH environment variable
	if envPath := os.Getenv("FFPROBE_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFPROBE_PATH %s not found", ErrFFprobeNotFound, envPath)
	}

	// Check PATH
	execName := "ffprobe"
	if runtime.GOOS == "windows" {
		execName = "ffprobe.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	// Check common locations
	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffprobe.exe`,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/ffprobe",
			"/usr/local/bin/ffprobe",
			"/usr/bin/ffprobe",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffprobe",
			"/usr/local/bin/ffprobe",
			"/snap/bin/ffprobe",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFprobeNotFound
}

// Prober implements ports.MediaProber by running ffprobe.
type Prober struct{}

// New creates a new ffprobe-backed prober.
func New() *Prober {
	return &Prober{}
}

// probeOutput mirrors the JSON ffprobe emits with -of json. Numeric
// fields arrive as strings.
type probeOutput struct {
	Streams []struct {
		CodecName  string `json:"codec_name"`
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe against the file at path and reports what the
// container declares for its first video stream.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	bin, err := FindFFprobe()
	if err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: err}
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("ffprobe: %w", err)}
	}

	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("parse ffprobe output: %w", err)}
	}
	if len(parsed.Streams) == 0 {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("no video stream found")}
	}

	stream := parsed.Streams[0]
	info := ports.MediaInfo{
		Codec:     stream.CodecName,
		FrameRate: parseRate(stream.RFrameRate),
	}

	if d, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
		info.DurationMs = int64(d * 1000)
	}

	if n, err := strconv.ParseInt(stream.NbFrames, 10, 64); err == nil && n > 0 {
		info.FrameCount = n
	} else if info.DurationMs > 0 && info.FrameRate > 0 {
		// Containers without an nb_frames entry get an estimate from the
		// declared duration and rate.
		info.FrameCount = int64(math.Round(float64(info.DurationMs) / 1000.0 * info.FrameRate))
	}

	return info, nil
}

// parseRate converts an ffprobe rational such as "30000/1001" to a float.
func parseRate(s string) float64 {
	if s == "" {
		return 0
	}
	num, den, found := strings.Cut(s, "/")
	if !found {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
