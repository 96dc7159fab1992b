package mocks

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/user/framecollate/pkg/ports"
)

// ImageStore is a mock implementation of ports.ImageStore.
type ImageStore struct {
	mu     sync.Mutex
	images map[string]image.Image
	nextID int

	SaveFunc func(ctx context.Context, img image.Image) (string, error)
	GetFunc  func(ctx context.Context, ref string) (image.Image, error)

	// Recorded calls for verification
	SaveCalls []image.Image
	GetCalls  []string
}

// NewImageStore creates a new mock ImageStore.
func NewImageStore() *ImageStore {
	return &ImageStore{
		images: make(map[string]image.Image),
	}
}

// Add seeds the store with an image under a fixed ref.
func (m *ImageStore) Add(ref string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[ref] = img
}

func (m *ImageStore) Save(ctx context.Context, img image.Image) (string, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, img)
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ref := fmt.Sprintf("img-%04d.png", m.nextID)
	m.images[ref] = img
	return ref, nil
}

func (m *ImageStore) Get(ctx context.Context, ref string) (image.Image, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, ref)
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ref)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if img, ok := m.images[ref]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("image not found: %s", ref)
}

var _ ports.ImageStore = (*ImageStore)(nil)
