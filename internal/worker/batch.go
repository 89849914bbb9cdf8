package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/model"
)

// Processor turns one document into a case record
type Processor interface {
	Process(ctx context.Context, doc model.Document) (*model.CaseRecord, error)
}

// DocumentJob represents one document extraction
type DocumentJob struct {
	Index     int
	Doc       model.Document
	Processor Processor
}

// Execute executes the extraction
func (j *DocumentJob) Execute(ctx context.Context) Result {
	record, err := j.Processor.Process(ctx, j.Doc)
	return &DocumentResult{
		Index:  j.Index,
		ID:     j.Doc.ID,
		Record: record,
		Error:  err,
	}
}

// DocumentResult represents the result of one extraction
type DocumentResult struct {
	Index  int
	ID     string
	Record *model.CaseRecord
	Error  error
}

// GetError returns the extraction error
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int, logger *zap.Logger) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		logger:      logging.OrNop(logger),
	}
}

// Process extracts every document and returns results in input order.
// Documents not started before ctx is cancelled carry ctx's error.
func (b *BatchProcessor) Process(ctx context.Context, docs []model.Document) []*DocumentResult {
	out := make([]*DocumentResult, len(docs))
	if len(docs) == 0 {
		return out
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	go func() {
		defer pool.Close()
		for i, doc := range docs {
			if !pool.Submit(&DocumentJob{Index: i, Doc: doc, Processor: b.processor}) {
				return
			}
		}
	}()

	start := time.Now()
	done, failed := 0, 0
	for r := range pool.Results() {
		res := r.(*DocumentResult)
		out[res.Index] = res
		done++
		if res.Error != nil {
			failed++
			b.logger.Warn("document failed", zap.String("id", res.ID), zap.Error(res.Error))
		}
	}

	for i, res := range out {
		if res == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &DocumentResult{Index: i, ID: docs[i].ID, Error: err}
		}
	}

	b.logger.Info("batch finished",
		zap.Int("documents", len(docs)),
		zap.Int("completed", done),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return out
}
