package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docstruct/internal/chunker"
	"github.com/dgallion1/docstruct/internal/cleaner"
	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/metrics"
	"github.com/dgallion1/docstruct/internal/outlinestore"
	"github.com/dgallion1/docstruct/internal/structure"
)

// Worker processes a single document job.
type Worker struct {
	store    *outlinestore.Client
	log      *slog.Logger
	stats    *metrics.BuildStats
	chunkCfg chunker.Config

	cleanText bool
}

func NewWorker(store *outlinestore.Client, log *slog.Logger, stats *metrics.BuildStats, chunkCfg chunker.Config, cleanText bool) *Worker {
	return &Worker{
		store:     store,
		log:       log,
		stats:     stats,
		chunkCfg:  chunkCfg,
		cleanText: cleanText,
	}
}

// Process runs the full build pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "user_id", job.UserID)

	// Phase 1: Extract raw text.
	job.SetStatus(StatusExtracting, "extracting")
	started := time.Now()
	ex, err := extractor.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	res, err := ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	w.stats.Observe("extract", time.Since(started))

	job.ContentHash = ContentHashHex([]byte(res.RawText))
	job.SetConfidence(res.ConfidenceScore)
	log.Info("extracted text",
		"file_type", res.FileType,
		"chars", len(res.RawText),
		"confidence", res.ConfidenceScore,
	)

	// Phase 2: Clean. Skipped when the extractor carried formatting notes,
	// since those are keyed by line index and cleaning shifts lines.
	if w.cleanText && len(res.FormattingNotes) == 0 {
		job.SetStatus(StatusCleaning, "cleaning")
		started = time.Now()
		cleaned := cleaner.Clean(res.RawText, cleaner.DefaultOptions())
		res.RawText = cleaned.CleanedText
		w.stats.Observe("clean", time.Since(started))
		if len(cleaned.IssuesFixed) > 0 {
			log.Info("cleaned text", "issues", cleaned.IssuesFixed)
		}
	}

	// Phase 3: Build the structure tree.
	job.SetStatus(StatusStructuring, "structuring")
	started = time.Now()
	doc := structure.Build(res.StructureInput())
	w.stats.Observe("structure", time.Since(started))

	outline := doc.ToDict()
	job.SetOutline(outline)
	job.SetTreeCounts(len(doc.Chapters), countTopics(doc))
	log.Info("built structure", "chapters", len(doc.Chapters), "topics", countTopics(doc))

	if len(doc.Chapters) == 0 {
		log.Warn("no structure detected")
		job.AddError("no headings detected in document")
		job.SetStatus(StatusFailed, "structuring")
		return
	}

	// Phase 4: Chunk.
	job.SetStatus(StatusChunking, "chunking")
	started = time.Now()
	chunks := chunker.ChunkDocument(doc, w.chunkCfg)
	w.stats.Observe("chunk", time.Since(started))
	job.SetChunkCounts(len(chunks), 0)
	log.Info("chunked document", "chunks", len(chunks))

	// Phase 5: Store outline and chunks.
	job.SetStatus(StatusStoring, "storing")
	started = time.Now()
	hadErrors := false

	err = w.withRetry(ctx, log, "outline", func() error {
		return w.store.PutOutline(ctx, job.DocID, outlinestore.OutlineRecord{
			UserID:   job.UserID,
			Filename: job.Filename,
			Title:    job.Title,
			Outline:  outline,
			Source:   "docstruct:" + job.ContentHash,
		})
	})
	if err != nil {
		log.Error("outline store failed", "error", err)
		job.AddError(fmt.Sprintf("store outline: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	if len(chunks) > 0 {
		err = w.withRetry(ctx, log, "chunks", func() error {
			return w.store.PutChunks(ctx, job.DocID, outlinestore.ChunkRecord{
				UserID: job.UserID,
				Chunks: chunks,
			})
		})
		if err != nil {
			log.Error("chunk store failed", "error", err)
			job.AddError(fmt.Sprintf("store chunks: %s", err))
			hadErrors = true
		} else {
			job.SetChunkCounts(len(chunks), len(chunks))
		}
	}
	w.stats.Observe("store", time.Since(started))

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job finished", "status", job.Snapshot().Status)
}

// withRetry runs fn up to MaxRetries times, backing off between retryable
// failures.
func (w *Worker) withRetry(ctx context.Context, log *slog.Logger, what string, fn func() error) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable store error", "what", what, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

// countTopics counts every topic node in the tree, headings included.
func countTopics(doc *structure.StructuredDocument) int {
	var count int
	var walk func(topics []*structure.Topic)
	walk = func(topics []*structure.Topic) {
		for _, t := range topics {
			count++
			walk(t.Subsections)
		}
	}
	for _, ch := range doc.Chapters {
		walk(ch.Sections)
	}
	return count
}
