package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveManifestJSON saves the collated record manifest as JSON.
	SaveManifestJSON(data []byte) error

	// SaveFrame saves one frame as it was handed to the encoder.
	SaveFrame(index int, img image.Image) error

	// SaveContactSheet saves the assembled contact sheet image.
	SaveContactSheet(img image.Image) error
}
