package annotate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// mockLookup returns no transcripts (intergenic) for all positions.
type mockLookup struct{}

func (m *mockLookup) FindTranscriptsInRange(string, int64, int64) []*cache.Transcript { return nil }

func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		ch <- WorkItem{
			Seq: i,
			Variant: &vcf.Variant{
				Chrom: "1",
				Pos:   int64(100 + i),
				Ref:   "A",
				Alt:   "T",
			},
		}
	}
	close(ch)
	return ch
}

func TestParallelAnnotate_OrderPreservation(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	items := makeItems(200)
	results := ann.ParallelAnnotate(context.Background(), items, 8)

	var collected []int
	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelAnnotate_SingleWorker(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	items := makeItems(50)
	results := ann.ParallelAnnotate(context.Background(), items, 1)

	var collected []int
	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 50)
	for i, seq := range collected {
		assert.Equal(t, i, seq)
	}
}

func TestParallelAnnotate_VariantPreserved(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	items := makeItems(10)
	results := ann.ParallelAnnotate(context.Background(), items, 4)

	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		assert.Equal(t, int64(100+r.Seq), r.Variant.Pos)
		return nil
	})
	require.NoError(t, err)
}

func TestParallelAnnotate_EmptyInput(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	ch := make(chan WorkItem)
	close(ch)
	results := ann.ParallelAnnotate(context.Background(), ch, 4)

	count := 0
	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOrderedCollect_EarlyError(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	items := makeItems(100)
	results := ann.ParallelAnnotate(context.Background(), items, 4)

	count := 0
	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		count++
		if count == 5 {
			return fmt.Errorf("stop at 5")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 5, count)
}

func TestParallelAnnotate_ProducesAnnotations(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})

	items := makeItems(5)
	results := ann.ParallelAnnotate(context.Background(), items, 2)

	err := OrderedCollect(context.Background(), results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		// mockLookup returns no transcripts → intergenic annotation
		require.Len(t, r.Anns, 1)
		assert.Equal(t, ConsequenceIntergenicVariant, r.Anns[0].Consequence)
		return nil
	})
	require.NoError(t, err)
}

func TestOrderedCollect_Cancelled(t *testing.T) {
	ann := NewAnnotator(&mockLookup{})
	ctx, cancel := context.WithCancel(context.Background())

	items := makeItems(100)
	results := ann.ParallelAnnotate(ctx, items, 4)

	count := 0
	err := OrderedCollect(ctx, results, func(r WorkResult) error {
		count++
		if count == 3 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, count, 100)
}
