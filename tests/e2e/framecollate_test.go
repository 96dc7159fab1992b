// Package e2e contains end-to-end tests that exercise the framecollate
// binary the way a user would. They are disabled by default because they
// build the binary and shell out to ffmpeg.
//
// Run with: FRAMECOLLATE_E2E=1 go test ./tests/e2e/
package e2e

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getBinaryName returns the platform-specific test binary name.
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "framecollate-test.exe"
	}
	return "framecollate-test"
}

// getBinaryPath returns the binary under test. Set FRAMECOLLATE_BINARY to
// test an existing build instead of compiling one.
func getBinaryPath(t *testing.T) string {
	if path := os.Getenv("FRAMECOLLATE_BINARY"); path != "" {
		return path
	}
	return filepath.Join(getProjectRoot(t), getBinaryName())
}

// getProjectRoot walks up from the working directory to the go.mod.
func getProjectRoot(t *testing.T) string {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// ensureBinary builds the CLI unless FRAMECOLLATE_BINARY points at one.
func ensureBinary(t *testing.T) string {
	t.Helper()

	binaryPath := getBinaryPath(t)
	if os.Getenv("FRAMECOLLATE_BINARY") != "" {
		return binaryPath
	}
	if _, err := os.Stat(binaryPath); err == nil && os.Getenv("FRAMECOLLATE_FORCE_BUILD") != "1" {
		return binaryPath
	}

	buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/framecollate")
	buildCmd.Dir = getProjectRoot(t)
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\nOutput: %s", err, output)
	}
	return binaryPath
}

// runBinary runs the CLI with a pinned locale so text assertions see the
// English strings.
func runBinary(t *testing.T, binaryPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C", "LANGUAGE=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// seedManifest writes three solid-color frames and a scrambled manifest
// under dir. Returns the manifest path and the store directory.
func seedManifest(t *testing.T, dir string) (string, string) {
	t.Helper()

	storeDir := filepath.Join(dir, "store")
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		t.Fatalf("Failed to create store directory: %v", err)
	}

	frames := []struct {
		name string
		c    color.RGBA
	}{
		{"red.png", color.RGBA{R: 230, A: 255}},
		{"green.png", color.RGBA{G: 230, A: 255}},
		{"blue.png", color.RGBA{B: 230, A: 255}},
	}
	for _, f := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for y := 0; y < 48; y++ {
			for x := 0; x < 64; x++ {
				img.SetRGBA(x, y, f.c)
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("Failed to encode %s: %v", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(storeDir, f.name), buf.Bytes(), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f.name, err)
		}
	}

	// Records arrive out of order on purpose
	manifest := strings.Join([]string{
		`[2, "blue.png"]`,
		`[0, "red.png"]`,
		`[1, "green.png"]`,
	}, "\n") + "\n"
	manifestPath := filepath.Join(dir, "manifest.jsonl")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return manifestPath, storeDir
}

// assembleVideo runs the assemble subcommand and returns the output path.
func assembleVideo(t *testing.T, binaryPath, tmpDir string) (string, string) {
	t.Helper()

	manifestPath, storeDir := seedManifest(t, tmpDir)
	outputPath := filepath.Join(tmpDir, "output.mp4")
	stdout, stderr, err := runBinary(t, binaryPath,
		"assemble", manifestPath, "-o", outputPath, "--store-root", storeDir, "-Q")
	if err != nil {
		t.Fatalf("assemble failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}
	return outputPath, storeDir
}

func TestE2EAssemble(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPath, _ := assembleVideo(t, binaryPath, tmpDir)

	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("Expected output video at %s: %v", outputPath, err)
	}
	if info.Size() < 256 {
		t.Errorf("Output video suspiciously small: %d bytes", info.Size())
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output video: %v", err)
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		t.Error("Output is not a valid MP4 file (missing ftyp box)")
	}

	t.Logf("Assembled video: %d bytes", info.Size())
}

func TestE2EAssembleFromStdin(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	manifestPath, storeDir := seedManifest(t, tmpDir)
	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	outputPath := filepath.Join(tmpDir, "stdin.mp4")
	cmd := exec.Command(binaryPath, "assemble", "-", "-o", outputPath, "--store-root", storeDir, "-Q")
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C", "LANGUAGE=C")
	cmd.Stdin = bytes.NewReader(manifestData)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("assemble from stdin failed: %v\nOutput: %s", err, output)
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("Expected output video at %s: %v", outputPath, err)
	}
}

func TestE2EAssembleWithSummary(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	manifestPath, storeDir := seedManifest(t, tmpDir)
	outputPath := filepath.Join(tmpDir, "output.mp4")
	summaryPath := filepath.Join(tmpDir, "summary.md")

	stdout, stderr, err := runBinary(t, binaryPath,
		"assemble", manifestPath, "-o", outputPath, "--store-root", storeDir,
		"-s", summaryPath, "-Q")
	if err != nil {
		t.Fatalf("assemble failed: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}

	content, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("Expected summary at %s: %v", summaryPath, err)
	}
	for _, want := range []string{"# Assembly Summary", "Records: 3", "Frames: 3", "64x48"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Summary missing %q:\n%s", want, content)
		}
	}
}

func TestE2EProbe(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPath, _ := assembleVideo(t, binaryPath, tmpDir)

	stdout, stderr, err := runBinary(t, binaryPath, "probe", outputPath, "--json")
	if err != nil {
		t.Fatalf("probe failed: %v\nstderr: %s", err, stderr)
	}

	var probed struct {
		Codec      string  `json:"codec"`
		FrameCount int64   `json:"frame_count"`
		DurationMs int64   `json:"duration_ms"`
		FrameRate  float64 `json:"frame_rate"`
	}
	if err := json.Unmarshal([]byte(stdout), &probed); err != nil {
		t.Fatalf("Failed to parse probe output: %v\nstdout: %s", err, stdout)
	}

	if probed.FrameCount != 3 {
		t.Errorf("Expected 3 frames, got %d", probed.FrameCount)
	}
	if probed.Codec == "" {
		t.Error("Expected a codec name")
	}
	if probed.FrameRate < 29.0 || probed.FrameRate > 31.0 {
		t.Errorf("Expected frame rate near 30, got %f", probed.FrameRate)
	}

	t.Logf("Probe: codec=%s frames=%d duration=%dms rate=%.2f",
		probed.Codec, probed.FrameCount, probed.DurationMs, probed.FrameRate)
}

func TestE2EExtract(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPath, _ := assembleVideo(t, binaryPath, tmpDir)

	extractDir := filepath.Join(tmpDir, "extracted")
	stdout, stderr, err := runBinary(t, binaryPath,
		"extract", outputPath, "1", "--store-root", extractDir, "-Q")
	if err != nil {
		t.Fatalf("extract failed: %v\nstderr: %s", err, stderr)
	}

	ref := strings.TrimSpace(stdout)
	if ref == "" {
		t.Fatal("Expected extracted frame ref on stdout")
	}

	framePath := filepath.Join(extractDir, ref)
	f, err := os.Open(framePath)
	if err != nil {
		t.Fatalf("Expected extracted frame at %s: %v", framePath, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Extracted frame is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 48 {
		t.Errorf("Expected 64x48 frame, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// The manifest was scrambled; frame 1 must be the index-0 record (red)
	r, g, b, _ := img.At(32, 24).RGBA()
	if !(r > g && r > b) {
		t.Errorf("Expected red-dominant first frame, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestE2EVersion(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	stdout, stderr, err := runBinary(t, binaryPath, "version")
	if err != nil {
		t.Fatalf("version failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "framecollate version") {
		t.Errorf("Unexpected version output: %q", stdout)
	}
}

func TestE2EMissingManifest(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_E2E") != "1" {
		t.Skip("E2E tests are disabled. Set FRAMECOLLATE_E2E=1 to enable.")
	}
	binaryPath := ensureBinary(t)

	tmpDir, err := os.MkdirTemp("", "framecollate-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	_, stderr, err := runBinary(t, binaryPath,
		"assemble", filepath.Join(tmpDir, "missing.jsonl"),
		"-o", filepath.Join(tmpDir, "out.mp4"), "-Q")
	if err == nil {
		t.Fatal("Expected assemble to fail for a missing manifest")
	}
	if !strings.Contains(stderr, "manifest") {
		t.Errorf("Expected manifest error on stderr, got: %s", stderr)
	}
}
