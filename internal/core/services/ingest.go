package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
	"github.com/custodia-labs/antipat/internal/core/ports/driving"
	"github.com/custodia-labs/antipat/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestOrchestrator = (*IngestOrchestrator)(nil)

// DefaultWorkers is the fan-out width when none is configured.
const DefaultWorkers = 4

// IngestOrchestrator coordinates the one-shot batch pipeline: bulk read,
// parallel per-document parse and reconcile, serial build and validate.
type IngestOrchestrator struct {
	reader     driven.SourceReader
	parser     driven.DocumentParser
	reconciler *Reconciler
	builder    *Builder
	validator  *Validator
	workers    int
}

// NewIngestOrchestrator creates the pipeline orchestrator.
// workers <= 0 selects DefaultWorkers.
func NewIngestOrchestrator(
	reader driven.SourceReader,
	parser driven.DocumentParser,
	reconciler *Reconciler,
	builder *Builder,
	validator *Validator,
	workers int,
) *IngestOrchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &IngestOrchestrator{
		reader:     reader,
		parser:     parser,
		reconciler: reconciler,
		builder:    builder,
		validator:  validator,
		workers:    workers,
	}
}

// outcome is one document's slot in the order-preserving result list.
type outcome struct {
	doc *domain.Document
	err error
}

// Ingest processes every document under dir.
//
// Documents are independent, so parse/extract/reconcile fans out across
// workers; results land in a fixed slice indexed by the reader's stable
// order, never merged incrementally, so output is independent of
// completion order. Structural failures are downgraded to report
// entries. The only fatal error is domain.ErrNoContentFound.
func (o *IngestOrchestrator) Ingest(ctx context.Context, dir string) (*driving.IngestResult, error) {
	logger.Section("Ingest")

	raws, err := o.reader.ReadAll(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("read source tree: %w", err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoContentFound, dir)
	}
	logger.Info("Read %d documents from %s", len(raws), dir)

	outcomes := make([]outcome, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = o.processDocument(raws[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	report := &domain.ValidationReport{RunID: runID}

	var docs []*domain.Document
	for i := range outcomes {
		if outcomes[i].err != nil {
			logger.Error("Document %s failed: %v", raws[i].Path, outcomes[i].err)
			report.AddFailed(raws[i].Path, outcomes[i].err.Error())
			report.Add(domain.Finding{
				Severity:   domain.SeverityError,
				Code:       domain.FindingParseFailure,
				SourcePath: raws[i].Path,
				Message:    outcomes[i].err.Error(),
			})
			continue
		}
		docs = append(docs, outcomes[i].doc)
	}

	catalog := o.builder.Build(docs, runID, report)
	o.validator.Validate(catalog, report)

	logger.Info("Validation: %d errors, %d warnings, %d failed documents",
		report.Count(domain.SeverityError), report.Count(domain.SeverityWarning), len(report.Failed))

	return &driving.IngestResult{Catalog: catalog, Report: report}, nil
}

// processDocument runs parse and per-example reconciliation for one raw
// document. Failures here are per-document and non-fatal to the run.
func (o *IngestOrchestrator) processDocument(raw domain.RawDocument) outcome {
	doc, err := o.parser.Parse(raw)
	if err != nil {
		return outcome{err: err}
	}

	for i := range doc.Examples {
		ex := &doc.Examples[i]
		ex.Diff, ex.Warnings = o.reconciler.Reconcile(ex.Avoid, ex.Good, ex.Diff)
	}

	return outcome{doc: doc}
}
