// Package annotate maps genomic variants onto transcript models: coding
// (c.) coordinates, HGVSc descriptions and splice boundary classification.
package annotate

import (
	"strconv"
	"strings"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// Impact levels for variant consequences.
const (
	ImpactHigh     = "HIGH"
	ImpactModerate = "MODERATE"
	ImpactLow      = "LOW"
	ImpactModifier = "MODIFIER"
)

// Consequence types (Sequence Ontology terms).
const (
	// HIGH impact
	ConsequenceSpliceAcceptor = "splice_acceptor_variant"
	ConsequenceSpliceDonor    = "splice_donor_variant"

	// LOW impact
	ConsequenceSpliceRegion          = "splice_region_variant"
	ConsequenceCodingSequenceVariant = "coding_sequence_variant"

	// MODIFIER impact
	ConsequenceIntronVariant     = "intron_variant"
	Consequence5PrimeUTR         = "5_prime_UTR_variant"
	Consequence3PrimeUTR         = "3_prime_UTR_variant"
	ConsequenceIntergenicVariant = "intergenic_variant"
	ConsequenceNonCodingExon     = "non_coding_transcript_exon_variant"
)

// Annotation represents the effect of a variant on a transcript.
type Annotation struct {
	VariantID      string            // Source variant identifier (chrom_pos_ref/alt)
	TranscriptID   string            // Affected transcript
	GeneName       string            // Gene symbol
	Consequence    string            // SO consequence term
	Impact         string            // HIGH, MODERATE, LOW, MODIFIER
	Classification Classification    // Splice boundary outcome
	Allele         string            // The alternate allele
	ExonNumber     string            // Exon number (e.g., "2/5")
	IntronNumber   string            // Intron number (e.g., "1/4")
	HGVSc          string            // HGVS coding DNA notation (e.g., "c.100+1G>A")
	Splice         *SpliceAnnotation // Set when Classification is Splice
}

// SpliceString returns the splice annotation text, or "" when not splice.
func (a *Annotation) SpliceString() string {
	if a.Splice == nil {
		return ""
	}
	return a.Splice.String()
}

// GetImpact returns the impact level for a given consequence type.
// For comma-separated consequences, returns the highest impact among all terms.
func GetImpact(consequence string) string {
	best := ImpactModifier
	for rest := consequence; rest != ""; {
		term := rest
		if i := strings.IndexByte(rest, ','); i >= 0 {
			term = rest[:i]
			rest = rest[i+1:]
		} else {
			rest = ""
		}
		var impact string
		switch term {
		case ConsequenceSpliceAcceptor, ConsequenceSpliceDonor:
			impact = ImpactHigh
		case ConsequenceSpliceRegion, ConsequenceCodingSequenceVariant:
			impact = ImpactLow
		default:
			impact = ImpactModifier
		}
		if ImpactRank(impact) > ImpactRank(best) {
			best = impact
		}
	}
	return best
}

// ImpactRank returns numeric rank for impact comparison (higher = more severe).
func ImpactRank(impact string) int {
	switch impact {
	case ImpactHigh:
		return 3
	case ImpactModerate:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}

// FormatVariantID creates a variant identifier from components.
func FormatVariantID(chrom string, pos int64, ref, alt string) string {
	return chrom + "_" + strconv.FormatInt(pos, 10) + "_" + ref + "/" + alt
}

// locusConsequence determines the SO term of a locus on a transcript
// when no splice window was hit.
func locusConsequence(l vcf.Locus, t *cache.Transcript) string {
	exonic := false
	for _, exon := range t.Exons {
		if l.Start <= exon.End && l.End >= exon.Start {
			exonic = true
			break
		}
	}
	if !exonic {
		return ConsequenceIntronVariant
	}
	if !t.IsProteinCoding() {
		return ConsequenceNonCodingExon
	}

	switch {
	case l.End >= t.CDSStart && l.Start <= t.CDSEnd:
		return ConsequenceCodingSequenceVariant
	case l.End < t.CDSStart:
		if t.IsReverseStrand() {
			return Consequence3PrimeUTR
		}
		return Consequence5PrimeUTR
	default:
		if t.IsReverseStrand() {
			return Consequence5PrimeUTR
		}
		return Consequence3PrimeUTR
	}
}

// exonIntronNumbers returns the "k/N" exon or intron number of the first
// base of a locus, in transcript order.
func exonIntronNumbers(l vcf.Locus, t *cache.Transcript) (exon, intron string) {
	n := len(t.Exons)
	pos := l.Start
	if l.IsInsertion() {
		pos = l.End
	}
	if idx := t.FindExonIdx(pos); idx >= 0 {
		return strconv.Itoa(exonNumber(t, idx)) + "/" + strconv.Itoa(n), ""
	}

	// Introns lie between consecutive exons in transcript order.
	for i := 0; i < n-1; i++ {
		lo, hi := t.Exons[i].End, t.Exons[i+1].Start
		if t.IsReverseStrand() {
			lo, hi = t.Exons[i+1].End, t.Exons[i].Start
		}
		if pos > lo && pos < hi {
			return "", strconv.Itoa(i+1) + "/" + strconv.Itoa(n-1)
		}
	}
	return "", ""
}
