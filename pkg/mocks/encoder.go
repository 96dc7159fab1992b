package mocks

import (
	"image"

	"github.com/user/framecollate/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(width, height int, sink ports.SinkConfig) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() (int64, error)

	// Recorded calls for verification
	BeginCalled      bool
	BeginWidth       int
	BeginHeight      int
	BeginSink        ports.SinkConfig
	EncodeFrameCalls []image.Image
	EndCalled        bool
}

func (m *VideoEncoder) Begin(width, height int, sink ports.SinkConfig) error {
	m.BeginCalled = true
	m.BeginWidth = width
	m.BeginHeight = height
	m.BeginSink = sink
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, sink)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, img)
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img)
	}
	return nil
}

func (m *VideoEncoder) End() (int64, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return int64(len(m.EncodeFrameCalls) * 1024), nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
