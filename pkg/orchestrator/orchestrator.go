// Package orchestrator coordinates the collate and assemble stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/user/framecollate/pkg/frames"
	"github.com/user/framecollate/pkg/pipeline"
	"github.com/user/framecollate/pkg/ports"
)

// Config contains all configuration for an assembly run.
type Config struct {
	// Output
	OutputPath string

	// Encoding
	FrameRate float64
	Codec     string
	Quality   int
	Bitrate   int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FrameRate: 30.0,
		Codec:     "x264",
		Quality:   23,
		Bitrate:   0,
	}
}

// Orchestrator coordinates the execution of the pipeline stages.
type Orchestrator struct {
	collateStage  pipeline.Stage[pipeline.CollateInput, pipeline.CollateResult]
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult]
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	collateStage pipeline.Stage[pipeline.CollateInput, pipeline.CollateResult],
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		collateStage:  collateStage,
		assembleStage: assembleStage,
		sink:          sink,
		logger:        logger,
	}
}

// Run collates rawRecords and assembles them into the configured output.
func (o *Orchestrator) Run(ctx context.Context, rawRecords [][]byte, config Config) (RunResult, error) {
	started := time.Now()
	o.logger.Info("Starting assembly of %d records", len(rawRecords))

	// 1. Collate records
	collated, err := o.collateStage.Execute(ctx, pipeline.CollateInput{RawRecords: rawRecords})
	if err != nil {
		o.logger.Error("Failed to collate records: %s", err)
		return RunResult{}, fmt.Errorf("collate stage: %w", err)
	}
	o.logger.Info("Collate stage completed: %d records", len(collated.Records))

	// Save collated manifest debug output
	if o.sink.Enabled() {
		if data, err := manifestJSON(collated.Records); err == nil {
			o.sink.SaveManifestJSON(data)
		}
	}

	// 2. Assemble video
	assembleInput := o.buildAssembleInput(config, collated)
	assembled, err := o.assembleStage.Execute(ctx, assembleInput)
	if err != nil {
		o.logger.Error("Failed to encode video: %s", err)
		return RunResult{}, fmt.Errorf("assemble stage: %w", err)
	}

	elapsed := time.Since(started).Milliseconds()
	o.logger.Info("Assembly completed in %d ms", elapsed)

	result := RunResult{
		RecordCount:     len(collated.Records),
		Duplicates:      collated.Duplicates,
		FramesEncoded:   assembled.FramesEncoded,
		BytesWritten:    assembled.BytesWritten,
		DurationMs:      elapsed,
		VideoDurationMs: assembled.DurationMs,
		OutputPath:      config.OutputPath,
		Frame:           assembled.Frame,
	}

	return result, nil
}

func (o *Orchestrator) buildAssembleInput(config Config, collated pipeline.CollateResult) pipeline.AssembleInput {
	return pipeline.AssembleInput{
		Records: collated.Records,
		Sink: ports.SinkConfig{
			OutputPath: config.OutputPath,
			FrameRate:  config.FrameRate,
			Codec:      config.Codec,
			Quality:    config.Quality,
			Bitrate:    config.Bitrate,
		},
	}
}

// manifestJSON renders the collated records back to their wire form, as
// one JSON array of [index, ref] pairs.
func manifestJSON(records []frames.Record) ([]byte, error) {
	entries := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, err := frames.EncodeRecord(rec.Index, rec.Ref)
		if err != nil {
			return nil, err
		}
		entries = append(entries, data)
	}
	return json.MarshalIndent(entries, "", "  ")
}

// RunResult contains the results of an assembly run for summary generation.
type RunResult struct {
	// Input information
	RecordCount int
	Duplicates  int

	// Video information
	FramesEncoded   int
	BytesWritten    int64
	VideoDurationMs int
	Frame           pipeline.Dimension

	// Run information
	DurationMs int64
	OutputPath string
}
