package mocks

import (
	"context"

	"github.com/user/framecollate/pkg/ports"
)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Info ports.MediaInfo

	ProbeFunc func(ctx context.Context, path string) (ports.MediaInfo, error)

	// Recorded calls for verification
	ProbeCalls []string
}

func (m *MediaProber) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return m.Info, nil
}

var _ ports.MediaProber = (*MediaProber)(nil)
