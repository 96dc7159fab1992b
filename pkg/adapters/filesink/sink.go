// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framecollate/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveManifestJSON saves the sorted frame manifest as JSON.
func (s *Sink) SaveManifestJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "manifest.json")
	return s.fs.WriteFile(path, data)
}

// SaveFrame saves one assembled frame image.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// contactSheetQuality is the JPEG quality used for the contact sheet.
const contactSheetQuality = 90

// SaveContactSheet saves the contact sheet rendered from the assembled frames.
func (s *Sink) SaveContactSheet(img image.Image) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatJPEG, contactSheetQuality)
	if err != nil {
		return fmt.Errorf("encode contact sheet: %w", err)
	}
	path := filepath.Join(s.baseDir, "contact-sheet.jpg")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
