/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Schema generation entry point for the Lyra Schema engine. Pulls up to
a sample cap of records from a source reader, merges them through the structure
merger, resolves every field path, and assembles the final schema document. Each
call owns its own state, so independent generations can run concurrently.
*/

package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/lyra-schema/pkg/logging"
	"github.com/kleascm/lyra-schema/pkg/readers"
	"github.com/kleascm/lyra-schema/pkg/schema"
)

// DefaultSampleRows caps the records consumed when the caller does not choose.
const DefaultSampleRows = 100

// DefaultBusinessConsensus requires every sampled string occurrence to match
// the dominant business type before it is reported.
const DefaultBusinessConsensus = 1.0

// Options configures one schema generation call.
type Options struct {
	// SampleRows caps records consumed from the source. Zero means
	// DefaultSampleRows.
	SampleRows int

	// UseBusinessTypes enables semantic classification of string fields.
	UseBusinessTypes bool

	// SourceKind selects the reader explicitly. Empty means auto-detect.
	SourceKind string

	// BusinessConsensus is the fraction of string occurrences that must match
	// the dominant business type. Zero means DefaultBusinessConsensus.
	BusinessConsensus float64

	// SkipBadRecords drops records that fail to decode instead of aborting.
	// Off by default: a partial schema built from a silently filtered sample
	// can mislead callers.
	SkipBadRecords bool

	// Logger receives generation progress. Nil disables logging.
	Logger *logging.Logger
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		SampleRows:        DefaultSampleRows,
		UseBusinessTypes:  true,
		BusinessConsensus: DefaultBusinessConsensus,
	}
}

func (o *Options) normalize() error {
	if o.SampleRows == 0 {
		o.SampleRows = DefaultSampleRows
	}
	if o.SampleRows < 0 {
		return fmt.Errorf("sample rows must be positive, got %d", o.SampleRows)
	}
	if o.BusinessConsensus == 0 {
		o.BusinessConsensus = DefaultBusinessConsensus
	}
	if o.BusinessConsensus < 0 || o.BusinessConsensus > 1 {
		return fmt.Errorf("business consensus must be in (0, 1], got %g", o.BusinessConsensus)
	}
	return nil
}

// GenerateSchema infers a schema document from a bounded sample of records.
// The source kind is auto-detected unless opts.SourceKind selects one. Errors
// from the reader propagate unchanged; inference ambiguity never fails.
func GenerateSchema(ctx context.Context, source string, opts Options) (*schema.Document, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	kind := opts.SourceKind
	if kind == "" {
		detected, err := readers.DetectKind(source)
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	reader, err := readers.Open(ctx, kind, source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	started := time.Now()
	runID := uuid.New().String()
	if opts.Logger != nil {
		opts.Logger.Info("Schema generation started", map[string]interface{}{
			"run_id":      runID,
			"source":      source,
			"source_kind": kind,
			"sample_rows": opts.SampleRows,
		})
	}

	merger := NewMerger(opts.UseBusinessTypes)
	skipped := 0
	for merger.Rows() < opts.SampleRows {
		rec, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if opts.SkipBadRecords && readers.IsDecodeError(err) {
				skipped++
				if opts.Logger != nil {
					record := merger.Rows() + skipped
					var de *readers.DecodeError
					if errors.As(err, &de) {
						record = de.Record
					}
					opts.Logger.LogRecordError(runID, source, record, err)
				}
				continue
			}
			return nil, err
		}
		merger.MergeRecord(rec)
	}

	resolved := merger.Resolve(opts.BusinessConsensus)
	doc := Assemble(resolved, schema.Metadata{
		NumRows:    merger.Rows(),
		SourceKind: kind,
	})

	if opts.Logger != nil {
		opts.Logger.LogGeneration(runID, source, kind,
			doc.Metadata.NumRows, doc.Metadata.NumColumns, time.Since(started))
	}
	return doc, nil
}
