package smartprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/framecollate/pkg/mocks"
	"github.com/user/framecollate/pkg/ports"
)

func writeHeaderFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestBackendFor(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Backend
	}{
		{"mp4 header", []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}, BackendMP4},
		{"segment header", []byte{0x00, 0x00, 0x00, 0x18, 's', 't', 'y', 'p', 'm', 's', 'd', 'h'}, BackendMP4},
		{"webm header", []byte{0x1a, 0x45, 0xdf, 0xa3, 0x01, 0x00, 0x00, 0x00}, BackendFFprobe},
		{"short file", []byte{0x00, 0x01}, BackendFFprobe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeHeaderFile(t, "probe.bin", tt.data)
			got, err := BackendFor(path)
			if err != nil {
				t.Fatalf("BackendFor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BackendFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBackendForMissingFile(t *testing.T) {
	_, err := BackendFor("/nonexistent/file.mp4")
	if err == nil {
		t.Fatal("BackendFor() expected error for missing file")
	}
}

func TestProbeRouting(t *testing.T) {
	mp4Mock := &mocks.MediaProber{Info: ports.MediaInfo{FrameCount: 100, Codec: "avc1"}}
	ffMock := &mocks.MediaProber{Info: ports.MediaInfo{FrameCount: 200, Codec: "vp9"}}

	prober := &Prober{mp4: mp4Mock, ffprobe: ffMock}

	mp4Path := writeHeaderFile(t, "video.mp4", []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'})
	info, err := prober.Probe(context.Background(), mp4Path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Codec != "avc1" {
		t.Errorf("Codec = %q, want %q", info.Codec, "avc1")
	}
	if len(mp4Mock.ProbeCalls) != 1 || len(ffMock.ProbeCalls) != 0 {
		t.Errorf("calls = mp4:%d ffprobe:%d, want mp4:1 ffprobe:0", len(mp4Mock.ProbeCalls), len(ffMock.ProbeCalls))
	}

	webmPath := writeHeaderFile(t, "video.webm", []byte{0x1a, 0x45, 0xdf, 0xa3, 0x01, 0x00, 0x00, 0x00})
	info, err = prober.Probe(context.Background(), webmPath)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Codec != "vp9" {
		t.Errorf("Codec = %q, want %q", info.Codec, "vp9")
	}
	if len(ffMock.ProbeCalls) != 1 {
		t.Errorf("ffprobe calls = %d, want 1", len(ffMock.ProbeCalls))
	}
}
