package duckdb

import (
	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// ResultWriter collects annotations and stores them on Flush. It satisfies
// annotate.AnnotationWriter.
type ResultWriter struct {
	store   *Store
	pending []VariantResult
}

// NewResultWriter creates a writer that stores into s.
func NewResultWriter(s *Store) *ResultWriter {
	return &ResultWriter{store: s}
}

// WriteHeader is a no-op.
func (w *ResultWriter) WriteHeader() error {
	return nil
}

// Write buffers one annotation. Intergenic annotations are not stored.
func (w *ResultWriter) Write(v *vcf.Variant, ann *annotate.Annotation) error {
	if ann.TranscriptID == "" {
		return nil
	}
	w.pending = append(w.pending, VariantResult{
		Chrom: v.Chrom, Pos: v.Pos, Ref: v.Ref, Alt: v.Alt, Ann: ann,
	})
	return nil
}

// Flush writes the buffered results.
func (w *ResultWriter) Flush() error {
	if err := w.store.WriteVariantResults(w.pending); err != nil {
		return err
	}
	w.pending = w.pending[:0]
	return nil
}
