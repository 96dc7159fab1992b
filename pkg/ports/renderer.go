package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the image operations used by the stores and the
// debug sink: codec round-trips, resizing, and canvas compositing.
type Renderer interface {
	// CreateCanvas returns a blank canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage parses encoded image data.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage serializes an image. The quality argument applies to
	// lossy formats and is ignored for PNG.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales an image to the given dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas is a mutable drawing surface for compositing the contact sheet.
type Canvas interface {
	// DrawImage draws an image with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// DrawRect fills a rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRectStroke outlines a rectangle.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws a text run anchored at (x, y) per the style's alignment.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage snapshots the canvas.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat selects the codec for encode and decode.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
