// Package assemble implements the video assembly stage. It feeds
// collated frame records into an encoder session in order.
package assemble

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/user/framecollate/pkg/pipeline"
	"github.com/user/framecollate/pkg/ports"
)

const (
	thumbWidth       = 160
	contactSheetCols = 5
	labelWidth       = 36
	labelHeight      = 16
)

// Stage encodes ordered frame records into a video file.
type Stage struct {
	encoder  ports.VideoEncoder
	store    ports.ImageStore
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new assemble stage.
func NewStage(encoder ports.VideoEncoder, store ports.ImageStore, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		encoder:  encoder,
		store:    store,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("assemble"),
	}
}

// Execute encodes all records into the sink in their given order.
// The first record's image fixes the video dimensions; later frames of a
// different size are rejected by the encoder, never resampled. An empty
// record list fails before the encoder session is opened, so no output
// file is touched.
func (s *Stage) Execute(ctx context.Context, input pipeline.AssembleInput) (pipeline.AssembleResult, error) {
	result := pipeline.AssembleResult{}

	if len(input.Records) == 0 {
		return result, fmt.Errorf("no records to assemble")
	}

	first, err := s.store.Get(ctx, input.Records[0].Ref)
	if err != nil {
		return result, fmt.Errorf("resolve record %d (%s): %w", input.Records[0].Index, input.Records[0].Ref, err)
	}

	bounds := first.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	s.logger.Debug("Frame size fixed at %dx%d", width, height)

	if err := s.encoder.Begin(width, height, input.Sink); err != nil {
		return result, fmt.Errorf("begin encoding: %w", err)
	}

	// The session holds an open child process once Begin succeeds, so
	// End must run on every exit path. A failure partway through leaves
	// whatever was already written at the sink path.
	ended := false
	defer func() {
		if !ended {
			_, _ = s.encoder.End()
		}
	}()

	total := len(input.Records)
	s.logger.Debug("Encoding %d frames at %.1f fps", total, input.Sink.FrameRate)

	var thumbs []thumbnail
	thumbHeight := thumbWidth * height / width

	img := first
	for i, rec := range input.Records {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if i > 0 {
			img, err = s.store.Get(ctx, rec.Ref)
			if err != nil {
				return result, fmt.Errorf("resolve record %d (%s): %w", rec.Index, rec.Ref, err)
			}
		}

		s.logger.Debug("Encoding frame %d/%d", i+1, total)
		if err := s.encoder.EncodeFrame(img); err != nil {
			return result, fmt.Errorf("encode frame %d: %w", i+1, err)
		}

		if s.sink.Enabled() {
			s.sink.SaveFrame(i, img)
			thumbs = append(thumbs, thumbnail{
				image: s.renderer.ResizeImage(img, thumbWidth, thumbHeight),
				index: rec.Index,
			})
		}
	}

	ended = true
	written, err := s.encoder.End()
	if err != nil {
		return result, fmt.Errorf("end encoding: %w", err)
	}
	s.logger.Debug("Video encoded: %d bytes", written)

	if s.sink.Enabled() && len(thumbs) > 0 {
		s.sink.SaveContactSheet(s.renderContactSheet(thumbs, thumbHeight))
	}

	result.FramesEncoded = total
	result.BytesWritten = written
	if input.Sink.FrameRate > 0 {
		result.DurationMs = int(float64(total) / input.Sink.FrameRate * 1000)
	}
	result.Frame = pipeline.Dimension{Width: width, Height: height}

	return result, nil
}

// thumbnail pairs a scaled-down frame with its source index for the
// contact sheet.
type thumbnail struct {
	image image.Image
	index int64
}

// renderContactSheet lays the frame thumbnails out on a grid, row by row.
// Each cell is outlined and tagged with the record's source index, so
// gaps and duplicate indices stand out at a glance.
func (s *Stage) renderContactSheet(thumbs []thumbnail, thumbHeight int) image.Image {
	cols := contactSheetCols
	if len(thumbs) < cols {
		cols = len(thumbs)
	}
	rows := (len(thumbs) + cols - 1) / cols

	canvas := s.renderer.CreateCanvas(cols*thumbWidth, rows*thumbHeight, color.White)
	for i, thumb := range thumbs {
		x := (i % cols) * thumbWidth
		y := (i / cols) * thumbHeight
		canvas.DrawImage(thumb.image, x, y)

		canvas.DrawRect(x, y+thumbHeight-labelHeight, labelWidth, labelHeight, color.RGBA{A: 160})
		canvas.DrawText(strconv.FormatInt(thumb.index, 10), x+labelWidth/2, y+thumbHeight-labelHeight/2, ports.TextStyle{
			FontSize: 12,
			Color:    color.White,
			Align:    ports.AlignCenter,
		})
		canvas.DrawRectStroke(x, y, thumbWidth, thumbHeight, color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}, 1)
	}
	return canvas.ToImage()
}
