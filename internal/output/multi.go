package output

import (
	"errors"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// MultiWriter sends every annotation to each of its writers in order.
type MultiWriter struct {
	writers []annotate.AnnotationWriter
}

// NewMultiWriter combines writers. Nil writers are skipped.
func NewMultiWriter(writers ...annotate.AnnotationWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// WriteHeader writes the header of every writer, stopping at the first error.
func (m *MultiWriter) WriteHeader() error {
	for _, w := range m.writers {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

// Write passes the annotation to every writer, stopping at the first error.
func (m *MultiWriter) Write(v *vcf.Variant, ann *annotate.Annotation) error {
	for _, w := range m.writers {
		if err := w.Write(v, ann); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer and joins their errors.
func (m *MultiWriter) Flush() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
