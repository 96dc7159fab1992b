package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/user/framecollate/pkg/ports"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer fraction", "30/1", 30.0},
		{"ntsc fraction", "30000/1001", 30000.0 / 1001.0},
		{"plain number", "25", 25.0},
		{"empty", "", 0},
		{"zero denominator", "30/0", 0},
		{"garbage", "abc/def", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRate(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProbeOutputParsing(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{
				"codec_name": "h264",
				"r_frame_rate": "30/1",
				"nb_frames": "300"
			}
		],
		"format": {
			"duration": "10.000000"
		}
	}`)

	var parsed probeOutput
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(parsed.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(parsed.Streams))
	}
	if parsed.Streams[0].CodecName != "h264" {
		t.Errorf("codec = %q, want %q", parsed.Streams[0].CodecName, "h264")
	}
	if parsed.Streams[0].NbFrames != "300" {
		t.Errorf("nb_frames = %q, want %q", parsed.Streams[0].NbFrames, "300")
	}
	if parsed.Format.Duration != "10.000000" {
		t.Errorf("duration = %q, want %q", parsed.Format.Duration, "10.000000")
	}
}

func TestProbeMissingFile(t *testing.T) {
	if !IsFFprobeAvailable() {
		t.Skip("ffprobe not available")
	}

	prober := New()
	_, err := prober.Probe(context.Background(), "/nonexistent/path/video.webm")
	if err == nil {
		t.Fatal("Probe() expected error for missing file")
	}

	var openErr *ports.SourceOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("error = %T, want *ports.SourceOpenError", err)
	}
}
