// Package mp4probe reads container-declared metadata from MP4 family
// files by walking their boxes directly. No frame is ever decoded; the
// reported values are whatever the sample tables declare, accurate or not.
package mp4probe

import (
	"context"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/framecollate/pkg/ports"
)

// Prober implements ports.MediaProber for MP4 family containers.
type Prober struct{}

// New creates a new MP4 prober.
func New() *Prober {
	return &Prober{}
}

// Probe parses the MP4 box structure of the file at path. Files that
// cannot be opened or parsed report as ports.SourceOpenError.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: err}
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("decode mp4: %w", err)}
	}

	if mp4File.IsFragmented() {
		return probeFragmented(path, mp4File)
	}
	return probeProgressive(path, mp4File)
}

func probeProgressive(path string, mp4File *mp4.File) (ports.MediaInfo, error) {
	if mp4File.Moov == nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("no moov box found")}
	}

	var videoTrack *mp4.TrakBox
	for _, trak := range mp4File.Moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			videoTrack = trak
			break
		}
	}
	if videoTrack == nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("no video track found")}
	}

	var timescale uint32 = 1000
	if videoTrack.Mdia.Mdhd != nil {
		timescale = videoTrack.Mdia.Mdhd.Timescale
	}

	info := ports.MediaInfo{Codec: sampleEntryType(videoTrack)}

	if videoTrack.Mdia.Minf == nil || videoTrack.Mdia.Minf.Stbl == nil {
		return info, nil
	}
	stbl := videoTrack.Mdia.Minf.Stbl

	if stbl.Stsz != nil {
		info.FrameCount = int64(stbl.Stsz.SampleNumber)
	}

	// Declared track duration: decode time of the last sample plus its
	// duration, straight from the stts box.
	if stbl.Stts != nil && info.FrameCount > 0 {
		decodeTime, dur := stbl.Stts.GetDecodeTime(uint32(info.FrameCount))
		totalTicks := decodeTime + uint64(dur)
		if totalTicks > 0 && timescale > 0 {
			info.DurationMs = int64(totalTicks * 1000 / uint64(timescale))
			info.FrameRate = float64(info.FrameCount) * float64(timescale) / float64(totalTicks)
		}
	}

	return info, nil
}

func probeFragmented(path string, mp4File *mp4.File) (ports.MediaInfo, error) {
	moov := mp4File.Moov
	if mp4File.Init != nil && mp4File.Init.Moov != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("no moov box found")}
	}

	var videoTrackID uint32
	var trex *mp4.TrexBox
	var timescale uint32 = 1000
	var info ports.MediaInfo

	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			videoTrackID = trak.Tkhd.TrackID
			info.Codec = sampleEntryType(trak)
			if trak.Mdia.Mdhd != nil {
				timescale = trak.Mdia.Mdhd.Timescale
			}
			break
		}
	}
	if videoTrackID == 0 {
		return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("no video track found")}
	}

	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == videoTrackID {
				trex = t
				break
			}
		}
	}

	var totalTicks uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != videoTrackID {
					continue
				}
				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return ports.MediaInfo{}, &ports.SourceOpenError{Path: path, Err: fmt.Errorf("get samples: %w", err)}
				}
				for _, sample := range samples {
					info.FrameCount++
					totalTicks += uint64(sample.Dur)
				}
			}
		}
	}

	if totalTicks > 0 && timescale > 0 {
		info.DurationMs = int64(totalTicks * 1000 / uint64(timescale))
		info.FrameRate = float64(info.FrameCount) * float64(timescale) / float64(totalTicks)
	}

	return info, nil
}

// sampleEntryType returns the codec identifier declared in the stsd box.
func sampleEntryType(trak *mp4.TrakBox) string {
	if trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	stsd := trak.Mdia.Minf.Stbl.Stsd

	for _, child := range stsd.Children {
		if _, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return child.Type()
		}
	}
	if len(stsd.Children) > 0 {
		return stsd.Children[0].Type()
	}
	return ""
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
