// Package fsimagestore stores frame images as PNG files in a directory.
// Save issues a fresh UUID-based reference for every image, so two saves
// of the same frame never collide.
package fsimagestore

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/user/framecollate/pkg/ports"
)

// Store implements ports.ImageStore on a directory of PNG files.
type Store struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a store rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Store {
	return &Store{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Save encodes img as PNG and writes it under a new reference.
func (s *Store) Save(ctx context.Context, img image.Image) (string, error) {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return "", fmt.Errorf("create store directory: %w", err)
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	ref := uuid.NewString() + ".png"
	if err := s.fs.WriteFile(filepath.Join(s.baseDir, ref), data); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return ref, nil
}

// Get reads back the image stored under ref.
func (s *Store) Get(ctx context.Context, ref string) (image.Image, error) {
	data, err := s.fs.ReadFile(filepath.Join(s.baseDir, ref))
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
