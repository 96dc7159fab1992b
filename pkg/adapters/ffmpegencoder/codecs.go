package ffmpegencoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// encoderNames maps four-character codec codes to ffmpeg encoder names.
// avc1/h264/x264 are aliases for the same H.264 encoder, as are
// hev1/hvc1 for H.265.
var encoderNames = map[string]string{
	"mp4v": "mpeg4",
	"avc1": "libx264",
	"h264": "libx264",
	"x264": "libx264",
	"hev1": "libx265",
	"hvc1": "libx265",
	"vp09": "libvpx-vp9",
	"av01": "libaom-av1",
}

// containerCodecs maps output file extensions to the codec codes the
// container can carry. The container is implied by the output extension;
// a pairing the container cannot carry fails at session open.
var containerCodecs = map[string]map[string]bool{
	".mp4": {
		"mp4v": true, "avc1": true, "h264": true, "x264": true,
		"hev1": true, "hvc1": true, "vp09": true, "av01": true,
	},
	".m4v": {
		"mp4v": true, "avc1": true, "h264": true, "x264": true,
		"hev1": true, "hvc1": true,
	},
	".mov": {
		"mp4v": true, "avc1": true, "h264": true, "x264": true,
		"hev1": true, "hvc1": true,
	},
	".mkv": {
		"mp4v": true, "avc1": true, "h264": true, "x264": true,
		"hev1": true, "hvc1": true, "vp09": true, "av01": true,
	},
	".webm": {
		"vp09": true, "av01": true,
	},
	".avi": {
		"mp4v": true, "avc1": true, "h264": true, "x264": true,
	},
}

// EncoderName resolves a four-character codec code to the ffmpeg encoder
// that implements it.
func EncoderName(codec string) (string, error) {
	name, ok := encoderNames[strings.ToLower(codec)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, codec)
	}
	return name, nil
}

// ValidatePairing checks that the container implied by the output path
// extension can carry the codec.
func ValidatePairing(outputPath, codec string) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	allowed, ok := containerCodecs[ext]
	if !ok {
		return fmt.Errorf("%w: unrecognized container extension %q", ErrCodecContainerMismatch, ext)
	}
	if !allowed[strings.ToLower(codec)] {
		return fmt.Errorf("%w: %q in %s", ErrCodecContainerMismatch, codec, ext)
	}
	return nil
}

// qualityArgs returns the rate control arguments for an encoder. The
// Quality knob is a 0-63 scale; x264 and x265 take it squeezed onto their
// 0-51 CRF range, the mpeg4 encoder onto its 1-31 qscale range.
func qualityArgs(encoderName string, quality, bitrate int) []string {
	var args []string

	switch encoderName {
	case "libx264", "libx265":
		crf := 23
		if quality > 0 && quality <= 63 {
			crf = quality * 51 / 63
			if crf > 51 {
				crf = 51
			}
		}
		args = append(args, "-preset", "fast", "-crf", fmt.Sprintf("%d", crf))
	case "libvpx-vp9", "libaom-av1":
		crf := 31
		if quality > 0 && quality <= 63 {
			crf = quality
		}
		// These encoders need -b:v 0 for constant quality mode.
		args = append(args, "-crf", fmt.Sprintf("%d", crf))
		if bitrate <= 0 {
			args = append(args, "-b:v", "0")
		}
	case "mpeg4":
		q := 5
		if quality > 0 && quality <= 63 {
			q = 1 + quality*30/63
		}
		args = append(args, "-q:v", fmt.Sprintf("%d", q))
	}

	if bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	}

	return args
}

// containerArgs returns container-specific muxer arguments.
func containerArgs(outputPath string) []string {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".mp4", ".m4v", ".mov":
		return []string{"-movflags", "+faststart"}
	default:
		return nil
	}
}
