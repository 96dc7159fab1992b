// Package collate implements the record parsing and ordering stage.
package collate

import (
	"context"

	"github.com/user/framecollate/pkg/frames"
	"github.com/user/framecollate/pkg/pipeline"
	"github.com/user/framecollate/pkg/ports"
)

// Stage parses raw frame records and orders them by index.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new collate stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("collate"),
	}
}

// Execute parses every raw record and returns the batch sorted by index.
// Records sharing an index keep their input order. The first malformed
// record aborts the whole batch.
func (s *Stage) Execute(ctx context.Context, input pipeline.CollateInput) (pipeline.CollateResult, error) {
	result := pipeline.CollateResult{Records: []frames.Record{}}

	if len(input.RawRecords) == 0 {
		return result, nil
	}

	s.logger.Debug("Parsing %d records", len(input.RawRecords))

	records := make([]frames.Record, 0, len(input.RawRecords))
	for _, raw := range input.RawRecords {
		rec, err := frames.ParseRecord(raw)
		if err != nil {
			return result, err
		}
		records = append(records, rec)
	}

	frames.SortRecords(records)

	duplicates := 0
	for i := 0; i < len(records); {
		j := i + 1
		for j < len(records) && records[j].Index == records[i].Index {
			j++
		}
		if j-i > 1 {
			s.logger.Debug("Duplicate index %d appears %d times", records[i].Index, j-i)
			duplicates += j - i
		}
		i = j
	}

	s.logger.Debug("Records sorted: %d entries", len(records))

	result.Records = records
	result.Duplicates = duplicates
	return result, nil
}
