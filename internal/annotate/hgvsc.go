package annotate

import (
	"errors"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// ErrNoChange is returned for a locus whose alleles are identical.
var ErrNoChange = errors.New("reference and alternate alleles are identical")

// FormatHGVSc returns the coding DNA description of a locus on a
// forward-strand transcript, e.g. "c.100+1G>A", "c.5_6del" or
// "c.12_13insTT". Non-coding transcripts give "".
//
// Alleles are described at the position given; no 3' shifting is applied.
func FormatHGVSc(l vcf.Locus, t *cache.Transcript) (string, error) {
	if t.IsReverseStrand() {
		return "", &hgvs.UnsupportedStrandError{TranscriptID: t.ID, Strand: t.Strand}
	}
	if !t.IsProteinCoding() {
		return "", nil
	}
	change, err := HGVScChange(l, t)
	if err != nil {
		return "", err
	}
	return hgvs.CodingDNA.Prefix() + hgvs.SerializeChange(change, hgvs.ThreeLetter), nil
}

// HGVScChange builds the coding change for a locus.
func HGVScChange(l vcf.Locus, t *cache.Transcript) (hgvs.NucleotideChange, error) {
	if l.Ref == "" && l.Alt == "" {
		return nil, ErrNoChange
	}

	first, err := CDSLocation(l.GenomeStart(), t)
	if err != nil {
		return nil, err
	}
	if l.IsSingleBase() {
		return hgvs.NewNucleotideSubstitution(first, l.Ref, l.Alt), nil
	}

	last, err := CDSLocation(l.GenomeEnd(), t)
	if err != nil {
		return nil, err
	}
	r, err := hgvs.NewNucleotideRange(first, last)
	if err != nil {
		return nil, err
	}

	switch {
	case l.IsInsertion():
		return hgvs.NewNucleotideInsertion(r, hgvs.NucleotideSeq(l.Alt)), nil
	case l.Alt == "":
		return hgvs.NewNucleotideDeletion(r, hgvs.NucleotideSeqDescription{}), nil
	default:
		return hgvs.NewNucleotideIndel(r, hgvs.NucleotideSeqDescription{}, hgvs.NucleotideSeq(l.Alt)), nil
	}
}
