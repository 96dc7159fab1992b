// Package main provides the CLI entry point for framecollate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/framecollate/pkg/adapters/logger"
	"github.com/user/framecollate/pkg/adapters/osfilesystem"
	"github.com/user/framecollate/pkg/config"
	"github.com/user/framecollate/pkg/framecollate"
	"github.com/user/framecollate/pkg/orchestrator"
	"github.com/user/framecollate/pkg/ports"
	"github.com/user/framecollate/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Assemble AssembleCmd `cmd:"" help:"Collate frame records and encode them into a video."`
	Extract  ExtractCmd  `cmd:"" help:"Extract a single frame from a video into the frame store."`
	Probe    ProbeCmd    `cmd:"" help:"Print container-declared metadata for a video."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// AssembleCmd defines the assemble subcommand.
type AssembleCmd struct {
	// Required arguments
	Manifest string `arg:"" help:"Records manifest file (JSON lines), or - for stdin."`
	Output   string `short:"o" required:"" help:"Output video file path."`

	// Configuration file
	Config string `short:"C" help:"YAML configuration file."`

	// Encoding options (override config file)
	FPS     *float64 `help:"Output frame rate (default: 30)."`
	Codec   *string  `help:"Codec code (mp4v, avc1, hev1, vp09, av01; default: x264)."`
	Quality *int     `short:"q" help:"Video quality (CRF 0-63, lower is better)."`
	Bitrate *int     `help:"Target bitrate in kbps (0 = CRF mode)."`

	// Frame store options
	StoreBackend *string `help:"Frame store backend (fs or minio)."`
	StoreRoot    *string `help:"Base directory for the filesystem frame store."`

	// Tool paths
	FFmpegPath string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Summary options
	Summary *string `short:"s" help:"Output execution summary to file (Markdown format)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ExtractCmd defines the extract subcommand.
type ExtractCmd struct {
	// Required arguments
	Source string `arg:"" help:"Video file path."`
	Frame  int64  `arg:"" help:"Frame number (1-based)."`

	// Frame store options
	StoreBackend string `default:"fs" enum:"fs,minio" help:"Frame store backend (fs or minio)."`
	StoreRoot    string `default:"./frames" help:"Base directory for the filesystem frame store."`

	// Tool paths
	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then system default)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Source string `arg:"" help:"Video file path."`

	JSON bool `short:"j" help:"Output as JSON."`

	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then system default)."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("framecollate"),
		kong.Description("Assemble ordered frame collections into videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the assemble command.
func (cmd *AssembleCmd) Run() error {
	// Load the config file, then apply CLI overrides
	fileCfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		fileCfg, err = config.LoadFromFile(cmd.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	cfg := cmd.buildConfig(fileCfg)

	summaryPath := fileCfg.SummaryPath
	if cmd.Summary != nil {
		summaryPath = *cmd.Summary
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	// Read records
	var rawRecords [][]byte
	var err error
	if cmd.Manifest == "-" {
		rawRecords, err = framecollate.ParseManifest(os.Stdin)
	} else {
		rawRecords, err = framecollate.ReadManifest(cmd.Manifest)
	}
	if err != nil {
		return err
	}

	log.Info("Assembling %d records into %s...", len(rawRecords), cmd.Output)

	// Run pipeline
	result, err := framecollate.Assemble(ctx, rawRecords, cmd.Output, cfg)
	if err != nil {
		return err
	}

	if summaryPath != "" {
		writeSummary(log, summaryPath, result, cfg)
	}

	log.Info("Output saved to %s", cmd.Output)
	return nil
}

// buildConfig creates a Config from the config file and CLI overrides.
func (cmd *AssembleCmd) buildConfig(fileCfg config.Config) framecollate.Config {
	builder := framecollate.NewConfigBuilder().
		WithFrameRate(fileCfg.FPS).
		WithCodec(fileCfg.Codec).
		WithQuality(fileCfg.Quality).
		WithBitrate(fileCfg.Bitrate).
		WithStoreBackend(fileCfg.StoreBackend).
		WithStoreRoot(fileCfg.StoreRoot).
		WithFFmpegPath(fileCfg.FFmpegPath).
		WithFFprobePath(fileCfg.FFprobePath)

	if fileCfg.Debug {
		builder.WithDebug(fileCfg.DebugDir)
	}

	// Apply overrides
	if cmd.FPS != nil {
		builder.WithFrameRate(*cmd.FPS)
	}
	if cmd.Codec != nil {
		builder.WithCodec(*cmd.Codec)
	}
	if cmd.Quality != nil {
		builder.WithQuality(*cmd.Quality)
	}
	if cmd.Bitrate != nil {
		builder.WithBitrate(*cmd.Bitrate)
	}
	if cmd.StoreBackend != nil {
		builder.WithStoreBackend(*cmd.StoreBackend)
	}
	if cmd.StoreRoot != nil {
		builder.WithStoreRoot(*cmd.StoreRoot)
	}
	if cmd.FFmpegPath != "" {
		builder.WithFFmpegPath(cmd.FFmpegPath)
	}
	if cmd.Debug {
		builder.WithDebug(cmd.DebugDir)
	}

	builder.WithLogLevel(ports.ParseLogLevel(cmd.LogLevel))
	builder.WithQuiet(cmd.Quiet)

	return builder.Build()
}

// writeSummary renders the run result as a markdown report.
func writeSummary(log ports.Logger, path string, result orchestrator.RunResult, cfg framecollate.Config) {
	var fileSize int64
	if info, err := os.Stat(result.OutputPath); err == nil {
		fileSize = info.Size()
	}

	sum := summarizer.NewBuilder().
		WithInput(result.RecordCount, result.Duplicates).
		WithSettings(summarizer.Settings{
			Codec:     cfg.Codec,
			Quality:   cfg.Quality,
			Bitrate:   cfg.Bitrate,
			FrameRate: cfg.FrameRate,
		}).
		WithVideo(summarizer.VideoInfo{
			OutputPath: result.OutputPath,
			FrameCount: result.FramesEncoded,
			DurationMs: result.VideoDurationMs,
			FileSize:   fileSize,
			Width:      result.Frame.Width,
			Height:     result.Frame.Height,
		}).
		WithTiming(result.DurationMs).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	writer := summarizer.NewWriter(formatter, osfilesystem.New())
	if err := writer.Write(path, sum); err != nil {
		log.Error("Failed to write summary: %s", err)
		return
	}
	log.Info("Summary saved to %s", path)
}

// Run executes the extract command.
func (cmd *ExtractCmd) Run() error {
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	cfg := framecollate.NewConfigBuilder().
		WithStoreBackend(cmd.StoreBackend).
		WithStoreRoot(cmd.StoreRoot).
		WithFFmpegPath(cmd.FFmpegPath).
		WithFFprobePath(cmd.FFprobePath).
		WithLogLevel(ports.ParseLogLevel(cmd.LogLevel)).
		WithQuiet(cmd.Quiet).
		Build()

	log.Info("Extracting frame %d of %s...", cmd.Frame, cmd.Source)

	result, err := framecollate.ExtractFrame(ctx, cmd.Source, cmd.Frame, cfg)
	if err != nil {
		return err
	}

	fmt.Println(result.Ref)
	return nil
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	cfg := framecollate.NewConfigBuilder().
		WithFFprobePath(cmd.FFprobePath).
		Build()

	info, err := framecollate.ProbeFile(context.Background(), cmd.Source, cfg)
	if err != nil {
		return err
	}

	if cmd.JSON {
		out := struct {
			Codec      string  `json:"codec"`
			FrameCount int64   `json:"frame_count"`
			DurationMs int64   `json:"duration_ms"`
			FrameRate  float64 `json:"frame_rate"`
		}{info.Codec, info.FrameCount, info.DurationMs, info.FrameRate}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(l10n.F("Codec: %s", info.Codec))
	fmt.Println(l10n.F("Frames: %d", info.FrameCount))
	fmt.Println(l10n.F("Duration: %d ms", info.DurationMs))
	fmt.Println(l10n.F("Frame rate: %.2f fps", info.FrameRate))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("framecollate version %s", version))
	return nil
}
