package pipeline

import (
	"image"

	"github.com/user/framecollate/pkg/frames"
	"github.com/user/framecollate/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// =============================================================================
// Collate Stage Types
// =============================================================================

// CollateInput contains the raw frame record blobs to order.
type CollateInput struct {
	RawRecords [][]byte
}

// CollateResult contains the parsed records in ascending index order.
type CollateResult struct {
	Records []frames.Record

	// Duplicates counts records whose index also appears on another
	// record. All of them are kept.
	Duplicates int
}

// =============================================================================
// Assemble Stage Types
// =============================================================================

// AssembleInput contains the ordered records and the sink to encode into.
type AssembleInput struct {
	Records []frames.Record
	Sink    ports.SinkConfig
}

// DefaultAssembleInput returns AssembleInput with default sink values.
func DefaultAssembleInput() AssembleInput {
	return AssembleInput{
		Sink: ports.SinkConfig{
			FrameRate: 30.0,
			Codec:     "x264",
			Quality:   23,
			Bitrate:   0,
		},
	}
}

// AssembleResult contains the assembly outcome.
type AssembleResult struct {
	FramesEncoded int
	BytesWritten  int64
	DurationMs    int
	Frame         Dimension
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput identifies one frame of an existing video.
type ExtractInput struct {
	SourcePath  string
	FrameNumber int64 // 1-based
}

// ExtractResult contains the extracted frame and its store ref.
type ExtractResult struct {
	Ref   string
	Image image.Image
	Frame Dimension
}
