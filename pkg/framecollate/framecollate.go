package framecollate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/user/framecollate/pkg/adapters/ffmpegencoder"
	"github.com/user/framecollate/pkg/adapters/ffmpegsource"
	"github.com/user/framecollate/pkg/adapters/filesink"
	"github.com/user/framecollate/pkg/adapters/fsimagestore"
	"github.com/user/framecollate/pkg/adapters/ggrenderer"
	"github.com/user/framecollate/pkg/adapters/logger"
	"github.com/user/framecollate/pkg/adapters/miniostore"
	"github.com/user/framecollate/pkg/adapters/nullsink"
	"github.com/user/framecollate/pkg/adapters/osfilesystem"
	"github.com/user/framecollate/pkg/adapters/smartprobe"
	"github.com/user/framecollate/pkg/orchestrator"
	"github.com/user/framecollate/pkg/pipeline"
	"github.com/user/framecollate/pkg/ports"
	"github.com/user/framecollate/pkg/stages/assemble"
	"github.com/user/framecollate/pkg/stages/collate"
	"github.com/user/framecollate/pkg/stages/extract"
)

// Assemble collates rawRecords and encodes the referenced frames into a
// video at outputPath using the default adapters.
func Assemble(ctx context.Context, rawRecords [][]byte, outputPath string, cfg Config) (orchestrator.RunResult, error) {
	log := newLogger(cfg)
	applyToolPaths(cfg)

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	encoder := ffmpegencoder.New()

	store, err := buildStore(ctx, cfg, fs, renderer)
	if err != nil {
		return orchestrator.RunResult{}, err
	}

	sink, err := buildSink(cfg, fs, renderer)
	if err != nil {
		return orchestrator.RunResult{}, err
	}

	collateStage := collate.NewStage(log)
	assembleStage := assemble.NewStage(encoder, store, renderer, sink, log)

	orch := orchestrator.New(collateStage, assembleStage, sink, log)
	return orch.Run(ctx, rawRecords, cfg.ToOrchestratorConfig(outputPath))
}

// AssembleFile reads a JSON lines manifest and assembles the referenced
// frames into a video at outputPath.
func AssembleFile(ctx context.Context, manifestPath, outputPath string, cfg Config) (orchestrator.RunResult, error) {
	rawRecords, err := ReadManifest(manifestPath)
	if err != nil {
		return orchestrator.RunResult{}, err
	}
	return Assemble(ctx, rawRecords, outputPath, cfg)
}

// ExtractFrame pulls one frame of an existing video into the frame store.
// Frame numbers start at 1.
func ExtractFrame(ctx context.Context, sourcePath string, frameNumber int64, cfg Config) (pipeline.ExtractResult, error) {
	log := newLogger(cfg)
	applyToolPaths(cfg)

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	prober := smartprobe.NewWithOptions(smartprobe.Options{FFprobePath: cfg.FFprobePath})

	store, err := buildStore(ctx, cfg, fs, renderer)
	if err != nil {
		return pipeline.ExtractResult{}, err
	}

	stage := extract.NewStage(ffmpegsource.New(prober), store, log)
	return stage.Execute(ctx, pipeline.ExtractInput{
		SourcePath:  sourcePath,
		FrameNumber: frameNumber,
	})
}

// ProbeFile reports container-declared metadata for a video file.
func ProbeFile(ctx context.Context, sourcePath string, cfg Config) (ports.MediaInfo, error) {
	prober := smartprobe.NewWithOptions(smartprobe.Options{FFprobePath: cfg.FFprobePath})
	return prober.Probe(ctx, sourcePath)
}

// ReadManifest reads a JSON lines manifest file into raw record blobs.
func ReadManifest(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return ParseManifest(f)
}

// ParseManifest reads one raw record per line, skipping blank lines.
func ParseManifest(r io.Reader) ([][]byte, error) {
	var records [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		records = append(records, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return records, nil
}

func newLogger(cfg Config) ports.Logger {
	if cfg.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(cfg.LogLevel)
}

func applyToolPaths(cfg Config) {
	if cfg.FFmpegPath != "" {
		ffmpegencoder.SetFFmpegPath(cfg.FFmpegPath)
	}
}

func buildStore(ctx context.Context, cfg Config, fs ports.FileSystem, renderer ports.Renderer) (ports.ImageStore, error) {
	if cfg.StoreBackend == "minio" {
		mcfg, err := miniostore.ConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("minio config: %w", err)
		}
		return miniostore.New(ctx, mcfg, renderer)
	}
	return fsimagestore.New(cfg.StoreRoot, fs, renderer), nil
}

func buildSink(cfg Config, fs ports.FileSystem, renderer ports.Renderer) (ports.DebugSink, error) {
	if !cfg.Debug {
		return nullsink.New(), nil
	}
	if err := fs.MkdirAll(cfg.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(cfg.DebugDir, fs, renderer), nil
}
