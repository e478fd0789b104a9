// Package scanner - parallel extraction batch
package scanner

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"esocial-informe/core/event"
	"esocial-informe/core/store"
	"esocial-informe/internal/logging"
)

// Batch extracts a document set into a fact store. Extraction fans out over
// a bounded worker pool; each document is extracted whole and merged into
// the store as a single reduce step, so cancellation lands between
// documents, never mid-item. A document that fails to parse is skipped
// permanently; there are no retries.
type Batch struct {
	// Workers bounds the extraction pool; values below 1 mean 1
	Workers int
}

// Result summarizes one batch run and owns the populated fact store.
type Result struct {
	// RunID uniquely identifies the run
	RunID string

	// Documents is how many .xml documents were read
	Documents int

	// Extracted is how many contributed at least one fact
	Extracted int

	// Skipped is how many were malformed or unrecognized
	Skipped int

	// Store holds the merged facts
	Store *store.FactStore
}

// Run extracts every document from the given sources. The returned error is
// non-nil only for container-level failures or cancellation; per-document
// parse failures are counted in Skipped and logged at debug.
func (b *Batch) Run(ctx context.Context, sources []Source) (*Result, error) {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	result := &Result{
		RunID: uuid.NewString(),
		Store: store.New(),
	}
	logging.Info("starting extraction batch",
		zap.String("run_id", result.RunID),
		zap.Int("sources", len(sources)),
		zap.Int("workers", workers))

	group, ctx := errgroup.WithContext(ctx)
	docs := make(chan Document)

	group.Go(func() error {
		defer close(docs)
		for _, source := range sources {
			err := source.Each(ctx, func(doc Document) error {
				select {
				case docs <- doc:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for doc := range docs {
				facts := event.Extract(doc.Data)

				mu.Lock()
				result.Documents++
				if facts == nil {
					result.Skipped++
					mu.Unlock()
					logging.Debug("document skipped", zap.String("name", doc.Name))
					continue
				}
				result.Extracted++
				result.Store.Merge(facts)
				mu.Unlock()

				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	logging.Info("extraction batch finished",
		zap.String("run_id", result.RunID),
		zap.Int("documents", result.Documents),
		zap.Int("extracted", result.Extracted),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
