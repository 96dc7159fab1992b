package miniostore

import (
	"context"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/user/framecollate/pkg/adapters/ggrenderer"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "store.example.com:9000")
	t.Setenv("MINIO_ACCESS_KEY", "frames-rw")
	t.Setenv("MINIO_SECRET_KEY", "s3cret")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_FRAME_BUCKET", "extracted-frames")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}

	if cfg.Endpoint != "store.example.com:9000" {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, "store.example.com:9000")
	}
	if cfg.AccessKey != "frames-rw" {
		t.Errorf("AccessKey = %q, want %q", cfg.AccessKey, "frames-rw")
	}
	if !cfg.UseSSL {
		t.Error("UseSSL = false, want true")
	}
	if cfg.Bucket != "extracted-frames" {
		t.Errorf("Bucket = %q, want %q", cfg.Bucket, "extracted-frames")
	}
}

// TestRoundTrip needs a reachable MinIO server. Point MINIO_ENDPOINT at
// one and set FRAMECOLLATE_MINIO_TEST=1 to run it.
func TestRoundTrip(t *testing.T) {
	if os.Getenv("FRAMECOLLATE_MINIO_TEST") != "1" {
		t.Skip("set FRAMECOLLATE_MINIO_TEST=1 to run MinIO tests")
	}

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}

	ctx := context.Background()
	store, err := New(ctx, cfg, ggrenderer.New())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	ref, err := store.Save(ctx, img)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, ref)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 8 {
		t.Errorf("size = %dx%d, want 8x8", got.Bounds().Dx(), got.Bounds().Dy())
	}

	r, g, b, _ := got.At(3, 3).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}
