// Package cache holds the read-only transcript model and an in-memory
// transcript index used for annotation.
package cache

// Transcript represents a specific gene isoform.
type Transcript struct {
	ID       string // Transcript accession (e.g., NM_000138.4, uc001aaa.1)
	GeneName string // Gene symbol
	Chrom    string // Chromosome
	Start    int64  // Transcript start (1-based)
	End      int64  // Transcript end (1-based, inclusive)
	Strand   int8   // +1 or -1
	Exons    []Exon // Ordered exons, ascending for forward-strand transcripts
	CDSStart int64  // CDS start (genomic, 1-based), 0 if non-coding
	CDSEnd   int64  // CDS end (genomic, 1-based), 0 if non-coding
}

// Exon represents a single exon within a transcript.
type Exon struct {
	Number   int   // Exon number (1-based)
	Start    int64 // Genomic start (1-based)
	End      int64 // Genomic end (1-based, inclusive)
	CDSStart int64 // CDS portion start, 0 if entirely non-coding
	CDSEnd   int64 // CDS portion end, 0 if entirely non-coding
}

// IsProteinCoding returns true if the transcript has a coding sequence.
func (t *Transcript) IsProteinCoding() bool {
	return t.CDSStart > 0 && t.CDSEnd > 0
}

// IsForwardStrand returns true if the transcript is on the forward strand.
func (t *Transcript) IsForwardStrand() bool {
	return t.Strand == 1
}

// IsReverseStrand returns true if the transcript is on the reverse strand.
func (t *Transcript) IsReverseStrand() bool {
	return t.Strand == -1
}

// Contains returns true if the given position is within the transcript boundaries.
func (t *Transcript) Contains(pos int64) bool {
	return pos >= t.Start && pos <= t.End
}

// Overlaps returns true if [start, end] shares at least one base with the transcript.
func (t *Transcript) Overlaps(start, end int64) bool {
	return start <= t.End && end >= t.Start
}

// ContainsCDS returns true if the given position is within the CDS boundaries.
func (t *Transcript) ContainsCDS(pos int64) bool {
	if !t.IsProteinCoding() {
		return false
	}
	return pos >= t.CDSStart && pos <= t.CDSEnd
}

// AssignExonCDS numbers the exons and derives each exon's coding portion
// from the transcript CDS bounds. Exons must already be in transcript order.
func (t *Transcript) AssignExonCDS() {
	for i := range t.Exons {
		e := &t.Exons[i]
		if e.Number == 0 {
			e.Number = i + 1
		}
		e.CDSStart, e.CDSEnd = 0, 0
		if t.IsProteinCoding() && e.End >= t.CDSStart && e.Start <= t.CDSEnd {
			e.CDSStart = max(e.Start, t.CDSStart)
			e.CDSEnd = min(e.End, t.CDSEnd)
		}
	}
}

// FindExon returns the exon containing the given genomic position, or nil if not in an exon.
// Uses binary search. Handles both forward-strand (ascending Start) and
// reverse-strand (descending Start) exon ordering.
func (t *Transcript) FindExon(pos int64) *Exon {
	if i := t.FindExonIdx(pos); i >= 0 {
		return &t.Exons[i]
	}
	return nil
}

// FindExonIdx returns the index of the exon containing pos, or -1.
func (t *Transcript) FindExonIdx(pos int64) int {
	idx, inside := t.searchExons(pos)
	if !inside {
		return -1
	}
	return idx
}

// FindNearestExonIdx returns the index of the exon nearest to pos using binary search.
// Returns the index of the exon containing pos, or the nearest exon boundary.
// Ties between two flanking exons go to the upstream one.
func (t *Transcript) FindNearestExonIdx(pos int64) int {
	idx, _ := t.searchExons(pos)
	return idx
}

func (t *Transcript) searchExons(pos int64) (int, bool) {
	n := len(t.Exons)
	if n == 0 {
		return -1, false
	}
	ascending := n < 2 || t.Exons[0].Start <= t.Exons[n-1].Start
	lo, hi := 0, n-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		e := &t.Exons[mid]
		if pos >= e.Start && pos <= e.End {
			return mid, true
		}
		if ascending {
			if pos < e.Start {
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		} else {
			if pos > e.End {
				hi = mid - 1
			} else {
				lo = mid + 1
			}
		}
	}
	// pos is between exons. Return the closer one.
	if lo >= n {
		return n - 1, false
	}
	if hi < 0 {
		return 0, false
	}
	distHi := abs(pos - t.Exons[hi].End)
	distLo := abs(t.Exons[lo].Start - pos)
	if !ascending {
		distHi = abs(t.Exons[hi].Start - pos)
		distLo = abs(pos - t.Exons[lo].End)
	}
	if distHi <= distLo {
		return hi, false
	}
	return lo, false
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// IsCoding returns true if the exon contains coding sequence.
func (e *Exon) IsCoding() bool {
	return e.CDSStart > 0 && e.CDSEnd > 0
}

// Len returns the exon length in bases.
func (e *Exon) Len() int64 {
	return e.End - e.Start + 1
}
