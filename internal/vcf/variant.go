// Package vcf reads variant loci from VCF files.
package vcf

import (
	"github.com/inodb/vibe-hgvs/internal/hgvs"
)

// Variant represents a single genomic variant from a VCF file or the command line.
type Variant struct {
	Chrom string // Chromosome name (e.g., "12", "chr12")
	Pos   int64  // 1-based genomic position
	ID    string // Variant identifier (e.g., rs ID)
	Ref   string // Reference allele
	Alt   string // Alternate allele (single allele after splitting)

	// Passed through to VCF output; empty when absent.
	Qual   string
	Filter string
	Info   string
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// IsInsertion returns true if the variant is an insertion.
func (v *Variant) IsInsertion() bool {
	return len(v.Alt) > len(v.Ref)
}

// IsDeletion returns true if the variant is a deletion.
func (v *Variant) IsDeletion() bool {
	return len(v.Ref) > len(v.Alt)
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}

// Locus is a variant reduced to its changed bases. Start and End are
// one-based and inclusive. For an insertion Ref is empty and Start, End are
// the two flanking reference bases.
type Locus struct {
	Chrom string
	Start int64
	End   int64
	Ref   string
	Alt   string
}

// Locus trims the bases shared by Ref and Alt (the VCF anchor base, then any
// common suffix) and returns the affected interval.
func (v *Variant) Locus() Locus {
	ref, alt, pos := v.Ref, v.Alt, v.Pos
	if ref == "-" {
		ref = ""
	}
	if alt == "-" {
		alt = ""
	}

	for len(ref) > 0 && len(alt) > 0 && ref[0] == alt[0] {
		ref, alt = ref[1:], alt[1:]
		pos++
	}
	for len(ref) > 0 && len(alt) > 0 && ref[len(ref)-1] == alt[len(alt)-1] {
		ref, alt = ref[:len(ref)-1], alt[:len(alt)-1]
	}

	l := Locus{Chrom: v.NormalizeChrom(), Start: pos, Ref: ref, Alt: alt}
	if ref == "" {
		// Between pos-1 and pos.
		l.Start, l.End = pos-1, pos
	} else {
		l.End = pos + int64(len(ref)) - 1
	}
	return l
}

// IsInsertion reports whether the locus inserts bases without deleting any.
func (l Locus) IsInsertion() bool { return l.Ref == "" && l.Alt != "" }

// IsSingleBase reports whether exactly one reference base is replaced by one base.
func (l Locus) IsSingleBase() bool { return len(l.Ref) == 1 && len(l.Alt) == 1 }

// GenomeStart returns the first affected base as a one-based genome position.
func (l Locus) GenomeStart() hgvs.GenomePosition {
	return hgvs.NewGenomePosition(l.Chrom, l.Start, hgvs.OneBased)
}

// GenomeEnd returns the last affected base as a one-based genome position.
func (l Locus) GenomeEnd() hgvs.GenomePosition {
	return hgvs.NewGenomePosition(l.Chrom, l.End, hgvs.OneBased)
}
