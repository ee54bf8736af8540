package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// CSQ sub-field names.
var csqFields = []string{
	"Allele",
	"Consequence",
	"IMPACT",
	"SYMBOL",
	"Feature",
	"EXON",
	"INTRON",
	"HGVSc",
	"SPLICE_CLASS",
	"SPLICE",
}

// csqEscaper replaces characters that are not allowed inside a CSQ value.
var csqEscaper = strings.NewReplacer(" ", "_", ",", "&", ";", "&", "|", "&", "=", "&")

// VCFWriter writes annotations in VCF format with a CSQ INFO field.
// Annotations are buffered per record and flushed when the record changes.
type VCFWriter struct {
	w           *bufio.Writer
	headerLines []string // original VCF header lines (## and #CHROM)

	// Buffered state for the current record.
	currentChrom string
	currentPos   int64
	hasVariant   bool
	currentVars  []*vcf.Variant
	annotations  []*annotate.Annotation
	alts         []string // unique alt alleles seen
}

// NewVCFWriter creates a new VCF output writer. Without header lines a
// minimal header is written.
func NewVCFWriter(w io.Writer, headerLines []string) *VCFWriter {
	if len(headerLines) == 0 {
		headerLines = []string{
			"##fileformat=VCFv4.2",
			"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
		}
	}
	return &VCFWriter{
		w:           bufio.NewWriter(w),
		headerLines: headerLines,
	}
}

// WriteHeader writes the original VCF header lines with an inserted CSQ INFO line.
func (vw *VCFWriter) WriteHeader() error {
	csqLine := fmt.Sprintf(
		"##INFO=<ID=CSQ,Number=.,Type=String,Description=\"Splice annotations from vibe-hgvs. Format: %s\">",
		strings.Join(csqFields, "|"),
	)

	for _, line := range vw.headerLines {
		if strings.HasPrefix(line, "##INFO=<ID=CSQ,") {
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			if _, err := vw.w.WriteString(csqLine + "\n"); err != nil {
				return err
			}
			// Sample columns are not written back.
			line = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"
		}
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write buffers an annotation for the given variant. When a new record is
// encountered (different chrom/pos), the previous record is written.
func (vw *VCFWriter) Write(v *vcf.Variant, ann *annotate.Annotation) error {
	if vw.hasVariant && (vw.currentChrom != v.Chrom || vw.currentPos != v.Pos) {
		if err := vw.flushVariant(); err != nil {
			return err
		}
	}

	if !vw.hasVariant {
		vw.currentChrom = v.Chrom
		vw.currentPos = v.Pos
		vw.hasVariant = true
	}

	vw.currentVars = append(vw.currentVars, v)
	vw.annotations = append(vw.annotations, ann)

	found := false
	for _, a := range vw.alts {
		if a == v.Alt {
			found = true
			break
		}
	}
	if !found {
		vw.alts = append(vw.alts, v.Alt)
	}

	return nil
}

// Flush writes any buffered record and flushes the underlying writer.
func (vw *VCFWriter) Flush() error {
	if vw.hasVariant {
		if err := vw.flushVariant(); err != nil {
			return err
		}
	}
	return vw.w.Flush()
}

// flushVariant writes the buffered record as a VCF line with CSQ annotations.
func (vw *VCFWriter) flushVariant() error {
	v := vw.currentVars[0]
	info := stripCSQ(v.Info)

	var lb strings.Builder
	lb.Grow(256)

	lb.WriteString(v.Chrom)
	lb.WriteByte('\t')
	lb.WriteString(strconv.FormatInt(v.Pos, 10))
	lb.WriteByte('\t')
	lb.WriteString(orDot(v.ID))
	lb.WriteByte('\t')
	lb.WriteString(v.Ref)
	lb.WriteByte('\t')
	lb.WriteString(strings.Join(vw.alts, ","))
	lb.WriteByte('\t')
	lb.WriteString(orDot(v.Qual))
	lb.WriteByte('\t')
	lb.WriteString(orDot(v.Filter))
	lb.WriteByte('\t')
	if info != "." {
		lb.WriteString(info)
		lb.WriteByte(';')
	}
	lb.WriteString("CSQ=")
	for i, ann := range vw.annotations {
		if i > 0 {
			lb.WriteByte(',')
		}
		writeCSQEntry(&lb, ann)
	}
	lb.WriteByte('\n')

	if _, err := vw.w.WriteString(lb.String()); err != nil {
		return err
	}

	vw.hasVariant = false
	vw.currentVars = nil
	vw.annotations = nil
	vw.alts = nil
	return nil
}

// stripCSQ removes any existing CSQ field from a raw INFO string.
func stripCSQ(rawInfo string) string {
	if rawInfo == "" || rawInfo == "." {
		return "."
	}
	if !strings.Contains(rawInfo, "CSQ") {
		return rawInfo
	}

	var b strings.Builder
	for _, field := range strings.Split(rawInfo, ";") {
		if strings.HasPrefix(field, "CSQ=") || field == "CSQ" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(field)
	}

	if b.Len() == 0 {
		return "."
	}
	return b.String()
}

// writeCSQEntry writes a single annotation as a pipe-delimited CSQ entry.
func writeCSQEntry(b *strings.Builder, ann *annotate.Annotation) {
	values := []string{
		ann.Allele,
		ann.Consequence,
		ann.Impact,
		ann.GeneName,
		ann.TranscriptID,
		ann.ExonNumber,
		ann.IntronNumber,
		ann.HGVSc,
		ann.Classification.String(),
		ann.SpliceString(),
	}
	for i, val := range values {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(csqEscaper.Replace(val))
	}
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
