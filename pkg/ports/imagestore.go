package ports

import (
	"context"
	"image"
)

// ImageStore is the collaborator that owns images behind frame record refs.
type ImageStore interface {
	// Save persists an image and returns the ref it is retrievable under.
	Save(ctx context.Context, img image.Image) (string, error)

	// Get resolves a ref back to its image.
	Get(ctx context.Context, ref string) (image.Image, error)
}
