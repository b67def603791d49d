package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const DefaultBatchSize = 50

// batchFunc translates one batch of cues with a single API request.
type batchFunc func(ctx context.Context, batch []Cue) ([]Result, error)

func splitBatches(cues []Cue, size int) [][]Cue {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var batches [][]Cue
	for i := 0; i < len(cues); i += size {
		end := i + size
		if end > len(cues) {
			end = len(cues)
		}
		batches = append(batches, cues[i:end])
	}
	return batches
}

// translateSequential runs batches one after another and returns all results
// sorted by cue index.
func translateSequential(
	ctx context.Context,
	cues []Cue,
	batchSize int,
	fn batchFunc,
) ([]Result, error) {
	if len(cues) == 0 {
		return []Result{}, nil
	}

	batches := splitBatches(cues, batchSize)
	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	var all []Result
	for i, batch := range batches {
		results, err := fn(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		all = append(all, results...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})

	return all, nil
}

// translateConcurrent runs batches on a worker pool. The first failing batch
// cancels the rest.
func translateConcurrent(
	ctx context.Context,
	cues []Cue,
	batchSize int,
	concurrency int,
	fn batchFunc,
) ([]Result, error) {
	if len(cues) == 0 {
		return []Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	batches := splitBatches(cues, batchSize)
	if len(batches) == 1 {
		return fn(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := fn(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var all []Result
	var firstErr error
	for result := range resultChan {
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf(
				"batch %d failed: %w",
				result.Index,
				result.Error,
			)
			cancel()
		}
		if result.Error == nil {
			all = append(all, result.Results...)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})

	return all, nil
}
