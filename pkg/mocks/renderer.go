package mocks

import (
	"image"
	"image/color"

	"github.com/user/framecollate/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. The zero value
// hands out blank images and empty encodings.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, format ports.ImageFormat) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	ResizeImageCalls int
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, format)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeImageCalls++
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that counts drawing
// calls instead of rasterizing them.
type Canvas struct {
	width  int
	height int

	DrawImageCalls      int
	DrawRectCalls       int
	DrawRectStrokeCalls int
	DrawTextCalls       []string
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.DrawImageCalls++
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.DrawRectCalls++
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.DrawRectStrokeCalls++
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.DrawTextCalls = append(m.DrawTextCalls, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
