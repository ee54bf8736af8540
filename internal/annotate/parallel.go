package annotate

import (
	"context"
	"runtime"
	"sync"

	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// WorkItem holds a parsed variant ready for annotation.
type WorkItem struct {
	Seq     int
	Variant *vcf.Variant
}

// WorkResult holds the annotation output for a single variant.
type WorkResult struct {
	Seq     int
	Variant *vcf.Variant
	Anns    []*Annotation
	Err     error
}

// ParallelAnnotate annotates work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
//
// Once ctx is done, workers keep draining items without annotating them so
// the producer is never blocked; the producer should stop sending and close
// items.
func (a *Annotator) ParallelAnnotate(ctx context.Context, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				if ctx.Err() != nil {
					continue
				}
				anns, err := a.Annotate(item.Variant)
				select {
				case results <- WorkResult{Seq: item.Seq, Variant: item.Variant, Anns: anns, Err: err}:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering results that arrive early. It returns when results is closed,
// fn fails, or ctx is done; in the last two cases the remaining results are
// drained before returning.
func OrderedCollect(ctx context.Context, results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	drain := func(err error) error {
		for range results {
		}
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return drain(ctx.Err())
		case r, ok := <-results:
			if !ok {
				return nil
			}
			pending[r.Seq] = r
			for {
				rr, ok := pending[nextSeq]
				if !ok {
					break
				}
				delete(pending, nextSeq)
				nextSeq++
				if err := fn(rr); err != nil {
					return drain(err)
				}
			}
		}
	}
}
