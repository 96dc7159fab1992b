// Package miniostore stores frame images as PNG objects in an S3
// compatible bucket through the MinIO client. It serves deployments
// where extracted frames are shared between machines.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/user/framecollate/pkg/ports"
)

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string `env:"MINIO_ENDPOINT"     envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"   envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY"   envDefault:"minioadmin"`
	UseSSL    bool   `env:"MINIO_USE_SSL"      envDefault:"false"`
	Bucket    string `env:"MINIO_FRAME_BUCKET" envDefault:"frames"`
}

// ConfigFromEnv reads the connection settings from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Store implements ports.ImageStore on an object bucket.
type Store struct {
	client   *miniogo.Client
	bucket   string
	renderer ports.Renderer
}

// New connects to the endpoint in cfg. The bucket is created when it
// does not exist yet.
func New(ctx context.Context, cfg Config, renderer ports.Renderer) (*Store, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	store := &Store{
		client:   client,
		bucket:   cfg.Bucket,
		renderer: renderer,
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Save encodes img as PNG and uploads it under a new reference.
func (s *Store) Save(ctx context.Context, img image.Image) (string, error) {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	ref := uuid.NewString() + ".png"
	_, err = s.client.PutObject(ctx, s.bucket, ref, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return ref, nil
}

// Get downloads and decodes the image stored under ref.
func (s *Store) Get(ctx context.Context, ref string) (image.Image, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get image %s: %w", ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", ref, err)
	}

	img, err := s.renderer.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", ref, err)
	}
	return img, nil
}

// Ensure Store implements ports.ImageStore
var _ ports.ImageStore = (*Store)(nil)
