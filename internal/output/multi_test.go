package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

type failingWriter struct {
	flushErr error
	writes   int
}

func (f *failingWriter) WriteHeader() error { return nil }

func (f *failingWriter) Write(*vcf.Variant, *annotate.Annotation) error {
	f.writes++
	return nil
}

func (f *failingWriter) Flush() error { return f.flushErr }

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiWriter(NewTabWriter(&a), nil, NewTabWriter(&b))

	v := &vcf.Variant{Chrom: "1", Pos: 11539430, Ref: "G", Alt: "A"}
	require.NoError(t, m.WriteHeader())
	require.NoError(t, m.Write(v, donorAnnotation()))
	require.NoError(t, m.Flush())

	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "PTCHD2:NM_020780.2:exon1:c.100+1G>A")
}

func TestMultiWriter_FlushErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	fa, fb := &failingWriter{flushErr: errA}, &failingWriter{flushErr: errB}
	m := NewMultiWriter(fa, fb)

	require.NoError(t, m.Write(&vcf.Variant{Chrom: "1", Pos: 1, Ref: "A", Alt: "C"}, donorAnnotation()))
	assert.Equal(t, 1, fa.writes)
	assert.Equal(t, 1, fb.writes)

	err := m.Flush()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}
