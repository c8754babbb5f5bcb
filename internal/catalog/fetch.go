// Package catalog builds the canonical weapon skin catalog from the remote
// item API: it pages through every item, classifies the weapons, reduces them
// to one record per skin, and caches the result.
package catalog

import (
	"context"
	"fmt"
	"iter"

	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

// MaxBatchSize is the largest id list the remote API accepts in one call.
const MaxBatchSize = 200

// Source is the remote item catalog.
type Source interface {
	ItemIDs(ctx context.Context) ([]int, error)
	Items(ctx context.Context, ids []int) ([]model.RawItem, error)
}

// ProgressFunc is called after each batch with the ids covered so far.
type ProgressFunc func(fetched, total int)

// FetchOptions tunes FetchAll.
type FetchOptions struct {
	OnProgress ProgressFunc
	BatchSize  int
}

// Pages yields the items for ids in sequential batches of at most size ids.
// Nothing is requested until the sequence is ranged, and ranging it again
// starts over from the first batch. Iteration stops after the first error.
func Pages(ctx context.Context, src Source, ids []int, size int) iter.Seq2[[]model.RawItem, error] {
	size = clampBatchSize(size)

	return func(yield func([]model.RawItem, error) bool) {
		for start := 0; start < len(ids); start += size {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			end := min(start+size, len(ids))
			items, err := src.Items(ctx, ids[start:end])
			if err != nil {
				yield(nil, fmt.Errorf("batch %d-%d: %w", start, end, err))
				return
			}
			if !yield(items, nil) {
				return
			}
		}
	}
}

// FetchAll retrieves every raw item in discovery order. Any failure discards
// what was fetched so far and returns an error wrapping common.ErrFetchFailed.
func FetchAll(ctx context.Context, src Source, opts FetchOptions) ([]model.RawItem, error) {
	ids, err := src.ItemIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing item ids: %w", common.ErrFetchFailed, err)
	}

	size := clampBatchSize(opts.BatchSize)
	items := make([]model.RawItem, 0, len(ids))
	fetched, batches := 0, 0

	for page, err := range Pages(ctx, src, ids, size) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
		}
		items = append(items, page...)

		fetched = min(fetched+size, len(ids))
		batches++
		if opts.OnProgress != nil {
			opts.OnProgress(fetched, len(ids))
		}
		if batches%10 == 0 {
			common.LogInfo("Fetching items", common.Fields{"fetched": fetched, "total": len(ids)})
		}
	}

	return items, nil
}

func clampBatchSize(size int) int {
	if size <= 0 || size > MaxBatchSize {
		return MaxBatchSize
	}
	return size
}
