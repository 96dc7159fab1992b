// Package extract implements the single frame extraction stage.
package extract

import (
	"context"
	"fmt"

	"github.com/user/framecollate/pkg/pipeline"
	"github.com/user/framecollate/pkg/ports"
)

// Stage reads one frame out of a video file and stores it as an image.
type Stage struct {
	source ports.FrameSource
	store  ports.ImageStore
	logger ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(source ports.FrameSource, store ports.ImageStore, logger ports.Logger) *Stage {
	return &Stage{
		source: source,
		store:  store,
		logger: logger.WithComponent("extract"),
	}
}

// Execute opens the source, decodes frame FrameNumber and saves it to
// the image store. Frames are numbered from 1: frame n means skip n-1
// frames and decode the next one.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{}

	if input.FrameNumber < 1 {
		return result, &ports.FrameReadError{
			Path:  input.SourcePath,
			Frame: input.FrameNumber,
			Err:   fmt.Errorf("frame numbers start at 1"),
		}
	}

	s.logger.Debug("Opening source %s", input.SourcePath)
	if err := s.source.Open(ctx, input.SourcePath); err != nil {
		return result, err
	}
	defer s.source.Close()

	img, err := s.source.ReadFrame(ctx, input.FrameNumber)
	if err != nil {
		return result, err
	}

	bounds := img.Bounds()
	s.logger.Debug("Extracted frame %d: %dx%d", input.FrameNumber, bounds.Dx(), bounds.Dy())

	ref, err := s.store.Save(ctx, img)
	if err != nil {
		return result, fmt.Errorf("save frame: %w", err)
	}
	s.logger.Debug("Frame saved as %s", ref)

	result.Ref = ref
	result.Image = img
	result.Frame = pipeline.Dimension{Width: bounds.Dx(), Height: bounds.Dy()}
	return result, nil
}
