package mocks

import (
	"context"
	"errors"
	"image"

	"github.com/user/framecollate/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource. Frames holds
// the decodable frames keyed by 1-based frame number; numbers outside the
// map fail with FrameReadError like a real source.
type FrameSource struct {
	Frames map[int64]image.Image

	OpenFunc      func(ctx context.Context, path string) error
	ReadFrameFunc func(ctx context.Context, n int64) (image.Image, error)
	CloseFunc     func() error

	// Recorded calls for verification
	OpenPath       string
	OpenCalled     bool
	ReadFrameCalls []int64
	CloseCalled    bool
}

// NewFrameSource creates a new mock FrameSource.
func NewFrameSource() *FrameSource {
	return &FrameSource{
		Frames: make(map[int64]image.Image),
	}
}

func (m *FrameSource) Open(ctx context.Context, path string) error {
	m.OpenCalled = true
	m.OpenPath = path
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return nil
}

func (m *FrameSource) ReadFrame(ctx context.Context, n int64) (image.Image, error) {
	m.ReadFrameCalls = append(m.ReadFrameCalls, n)
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc(ctx, n)
	}
	if img, ok := m.Frames[n]; ok {
		return img, nil
	}
	return nil, &ports.FrameReadError{Path: m.OpenPath, Frame: n, Err: errors.New("no such frame")}
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)
