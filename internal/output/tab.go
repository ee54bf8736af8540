// Package output provides annotation output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// TabWriter writes annotations in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Uploaded_variation",
			"Location",
			"Allele",
			"Gene",
			"Feature",
			"Classification",
			"Consequence",
			"IMPACT",
			"EXON",
			"INTRON",
			"HGVSc",
			"Splice_annotation",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single annotation.
func (tw *TabWriter) Write(v *vcf.Variant, ann *annotate.Annotation) error {
	id := v.ID
	if id == "" || id == "." {
		id = ann.VariantID
	}

	values := []string{
		id,
		fmt.Sprintf("%s:%d", v.Chrom, v.Pos),
		ann.Allele,
		dash(ann.GeneName),
		dash(ann.TranscriptID),
		ann.Classification.String(),
		ann.Consequence,
		ann.Impact,
		dash(ann.ExonNumber),
		dash(ann.IntronNumber),
		dash(ann.HGVSc),
		dash(ann.SpliceString()),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// dash returns "-" for empty values.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
