package annotate

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
)

// ErrNonCoding is returned when a coding coordinate is requested on a
// transcript without a CDS.
var ErrNonCoding = errors.New("transcript has no coding sequence")

// ErrOutsideTranscript is returned when a coding location cannot be placed
// on the transcript's exons.
var ErrOutsideTranscript = errors.New("location outside transcript")

func checkMappable(t *cache.Transcript) error {
	if t.IsReverseStrand() {
		return &hgvs.UnsupportedStrandError{TranscriptID: t.ID, Strand: t.Strand}
	}
	if !t.IsProteinCoding() || len(t.Exons) == 0 {
		return fmt.Errorf("%s: %w", t.ID, ErrNonCoding)
	}
	return nil
}

// CDSLocation maps a genome position to a coding (c.) location on a
// forward-strand transcript: "76", "88+1", "89-2", "-14" or "*6".
// Intronic positions are anchored on the nearer exon; ties go upstream.
func CDSLocation(pos hgvs.GenomePosition, t *cache.Transcript) (hgvs.NucleotidePointLocation, error) {
	if err := checkMappable(t); err != nil {
		return hgvs.NucleotidePointLocation{}, err
	}
	g := pos.Normalized().Pos
	if t.FindExonIdx(g) >= 0 {
		return exonicLocation(g, t), nil
	}
	return intronicLocation(g, t), nil
}

// exonicLocation returns the coding location of an exonic position.
func exonicLocation(g int64, t *cache.Transcript) hgvs.NucleotidePointLocation {
	switch {
	case g < t.CDSStart:
		return hgvs.UpstreamLocation(exonicDistance(g, t.CDSStart, t), 0)
	case g > t.CDSEnd:
		return hgvs.DownstreamLocation(exonicDistance(t.CDSEnd, g, t), 0)
	}
	cds := hgvs.NewCDSPosition(t.ID, GenomicToCDS(g, t), hgvs.OneBased)
	return hgvs.NucleotidePointLocationFromCDS(cds, 0)
}

// intronicLocation anchors a non-exonic position on the closer flanking
// exon boundary.
func intronicLocation(g int64, t *cache.Transcript) hgvs.NucleotidePointLocation {
	var upstream, downstream *cache.Exon
	for i := range t.Exons {
		exon := &t.Exons[i]
		if exon.End < g && (upstream == nil || exon.End > upstream.End) {
			upstream = exon
		}
		if exon.Start > g && (downstream == nil || exon.Start < downstream.Start) {
			downstream = exon
		}
	}

	useUpstream := upstream != nil
	if upstream != nil && downstream != nil && downstream.Start-g < g-upstream.End {
		useUpstream = false
	}

	if useUpstream {
		return exonicLocation(upstream.End, t).WithOffset(g - upstream.End)
	}
	return exonicLocation(downstream.Start, t).WithOffset(g - downstream.Start)
}

// exonicDistance counts the number of exonic bases between two genomic positions.
// Both positions are inclusive; the anchor base itself is not counted.
func exonicDistance(from, to int64, t *cache.Transcript) int64 {
	if from > to {
		from, to = to, from
	}
	var dist int64
	for _, exon := range t.Exons {
		overlapStart := max(from, exon.Start)
		overlapEnd := min(to, exon.End)
		if overlapStart <= overlapEnd {
			dist += overlapEnd - overlapStart + 1
		}
	}
	if dist > 0 {
		dist--
	}
	return dist
}

// GenomicToCDS converts a genomic position to a 1-based CDS position on a
// forward-strand transcript. Returns 0 if the position is not coding.
func GenomicToCDS(genomicPos int64, t *cache.Transcript) int64 {
	if !t.IsForwardStrand() || !t.ContainsCDS(genomicPos) {
		return 0
	}

	var cdsPos int64
	for _, exon := range t.Exons {
		if !exon.IsCoding() {
			continue
		}
		if genomicPos >= exon.CDSStart && genomicPos <= exon.CDSEnd {
			return cdsPos + genomicPos - exon.CDSStart + 1
		}
		if genomicPos > exon.CDSEnd {
			cdsPos += exon.CDSEnd - exon.CDSStart + 1
		}
	}
	// Between coding exons: intronic.
	return 0
}

// LocationToGenomic maps a coding location back to a 1-based genome
// position on a forward-strand transcript. It is the inverse of CDSLocation.
func LocationToGenomic(loc hgvs.NucleotidePointLocation, t *cache.Transcript) (hgvs.GenomePosition, error) {
	if err := checkMappable(t); err != nil {
		return hgvs.GenomePosition{}, err
	}

	var anchor int64
	var ok bool
	switch {
	case loc.DownstreamOfCDS:
		anchor, ok = exonicStep(t.CDSEnd, loc.BasePos+1, t)
	case loc.IsUpstreamOfCDS():
		anchor, ok = exonicStep(t.CDSStart, loc.BasePos, t)
	default:
		anchor, ok = exonicStep(t.CDSStart, loc.BasePos, t)
		ok = ok && anchor <= t.CDSEnd
	}
	if !ok {
		return hgvs.GenomePosition{}, fmt.Errorf("c.%s on %s: %w", loc, t.ID, ErrOutsideTranscript)
	}
	return hgvs.NewGenomePosition(t.Chrom, anchor+loc.Offset, hgvs.OneBased), nil
}

// exonicStep walks n exonic bases from an exonic anchor, downstream for
// positive n and upstream for negative n.
func exonicStep(anchor, n int64, t *cache.Transcript) (int64, bool) {
	idx := t.FindExonIdx(anchor)
	if idx < 0 {
		return 0, false
	}
	pos := anchor
	for n > 0 {
		e := t.Exons[idx]
		if n <= e.End-pos {
			return pos + n, true
		}
		n -= e.End - pos + 1
		idx++
		if idx >= len(t.Exons) {
			return 0, false
		}
		pos = t.Exons[idx].Start
	}
	for n < 0 {
		e := t.Exons[idx]
		if -n <= pos-e.Start {
			return pos + n, true
		}
		n += pos - e.Start + 1
		idx--
		if idx < 0 {
			return 0, false
		}
		pos = t.Exons[idx].End
	}
	return pos, true
}
