package search

import (
	"context"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// Batch sizes for the two bulk write paths. A full reindex is a background
// rebuild and favors batch efficiency; live bulk mutations run inline with a
// user-facing request and flush earlier. Kept as separate knobs on purpose.
const (
	ReindexBatchSize = 1000
	LiveBatchSize    = 750
)

// MaxReportedErrors caps how many per-item failures are surfaced to the
// caller; the true failure count is always tracked separately.
const MaxReportedErrors = 10

// BulkIndexer buffers documents and flushes them to the engine in batches.
// Per-document failures are tallied without aborting or retrying the batch;
// transport failures propagate to the caller. Not safe for concurrent use:
// each orchestrated operation owns its own indexer.
type BulkIndexer struct {
	engine    Engine
	batchSize int

	buf     []domain.Document
	indexed int
	failed  int
	flushes int
	errors  []ItemError
}

// NewBulkIndexer creates a bulk indexer flushing every batchSize documents.
func NewBulkIndexer(engine Engine, batchSize int) *BulkIndexer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &BulkIndexer{
		engine:    engine,
		batchSize: batchSize,
		buf:       make([]domain.Document, 0, batchSize),
	}
}

// Add buffers one document, flushing when the batch is full. The returned
// error is transport-level only; per-document failures are recorded in Stats.
func (b *BulkIndexer) Add(ctx context.Context, doc domain.Document) error {
	b.buf = append(b.buf, doc)
	if len(b.buf) >= b.batchSize {
		return b.Flush(ctx)
	}
	return nil
}

// Flush forces the buffered tail out. Flushing an empty buffer issues no
// bulk call.
func (b *BulkIndexer) Flush(ctx context.Context) error {
	if len(b.buf) == 0 {
		return nil
	}

	batch := b.buf
	b.buf = b.buf[:0]

	res, err := b.engine.Bulk(ctx, batch)
	if err != nil {
		return err
	}
	b.flushes++

	b.failed += len(res.Errors)
	b.indexed += len(batch) - len(res.Errors)
	for _, itemErr := range res.Errors {
		if len(b.errors) >= MaxReportedErrors {
			break
		}
		b.errors = append(b.errors, itemErr)
	}

	return nil
}

// BulkStats summarizes an indexer's work across all flushes.
type BulkStats struct {
	Indexed int
	Failed  int
	Flushes int
	// Errors holds at most MaxReportedErrors failures; Failed is the true count.
	Errors []ItemError
}

// Stats reports totals accumulated so far.
func (b *BulkIndexer) Stats() BulkStats {
	return BulkStats{
		Indexed: b.indexed,
		Failed:  b.failed,
		Flushes: b.flushes,
		Errors:  b.errors,
	}
}
