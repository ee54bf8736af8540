package annotate

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// ErrUnmappable is returned for HGVS variants that cannot be placed on the
// genome: anything other than a single nucleotide substitution on a
// coding (c.) or chromosome (g.) reference.
var ErrUnmappable = errors.New("only single-nucleotide c. and g. substitutions can be mapped to the genome")

// Resolve returns the genomic variants a specification refers to.
func (s *VariantSpec) Resolve(c *cache.Cache) ([]*vcf.Variant, error) {
	if s.Type == SpecGenomic {
		return []*vcf.Variant{s.Variant()}, nil
	}
	return ReverseMapHGVS(c, s.HGVS)
}

// ReverseMapHGVS maps a substitution such as "NM_020780.2:c.100+1G>A",
// "PTCHD2:c.100+1G>A" or "1:g.11539430G>A" to genomic variants. A c.
// reference is looked up as a transcript ID, then as a gene name; every
// matching forward-strand coding transcript contributes one variant.
func ReverseMapHGVS(c *cache.Cache, v *hgvs.SingleAlleleVariant) ([]*vcf.Variant, error) {
	if v.Allele().Len() != 1 {
		return nil, fmt.Errorf("%s: %w", v, ErrUnmappable)
	}
	sub, ok := v.Allele().Change(0).(hgvs.NucleotideSubstitution)
	if !ok {
		return nil, fmt.Errorf("%s: %w", v, ErrUnmappable)
	}

	switch v.SequenceType() {
	case hgvs.GenomicDNA:
		loc := sub.Position
		if v.RefID() == "" || loc.IsIntronic() || loc.DownstreamOfCDS || loc.BasePos < 0 {
			return nil, fmt.Errorf("%s: %w", v, ErrUnmappable)
		}
		chrom := (&vcf.Variant{Chrom: v.RefID()}).NormalizeChrom()
		return []*vcf.Variant{{Chrom: chrom, Pos: loc.BasePos + 1, Ref: sub.FromNT, Alt: sub.ToNT}}, nil
	case hgvs.CodingDNA:
		return reverseMapCoding(c, v.RefID(), sub)
	default:
		return nil, fmt.Errorf("%s: %w", v, ErrUnmappable)
	}
}

func reverseMapCoding(c *cache.Cache, geneOrTranscript string, sub hgvs.NucleotideSubstitution) ([]*vcf.Variant, error) {
	var transcripts []*cache.Transcript
	if t := c.GetTranscript(geneOrTranscript); t != nil {
		transcripts = []*cache.Transcript{t}
	} else {
		transcripts = c.FindTranscriptsByGene(geneOrTranscript)
	}
	if len(transcripts) == 0 {
		return nil, fmt.Errorf("transcript or gene %q not found in transcript cache", geneOrTranscript)
	}

	var variants []*vcf.Variant
	var lastErr error
	for _, t := range transcripts {
		pos, err := LocationToGenomic(sub.Position, t)
		if err != nil {
			lastErr = err
			continue
		}
		variants = append(variants, &vcf.Variant{
			Chrom: t.Chrom,
			Pos:   pos.Pos,
			Ref:   sub.FromNT,
			Alt:   sub.ToNT,
		})
	}
	if len(variants) == 0 {
		return nil, lastErr
	}
	return variants, nil
}

// CDSToGenomic converts a 1-based CDS position to a genomic position on a
// forward-strand transcript. Returns 0 if the position is outside the CDS.
func CDSToGenomic(cdsPos int64, t *cache.Transcript) int64 {
	if cdsPos < 1 || !t.IsForwardStrand() || !t.IsProteinCoding() {
		return 0
	}
	pos, ok := exonicStep(t.CDSStart, cdsPos-1, t)
	if !ok || pos > t.CDSEnd {
		return 0
	}
	return pos
}
