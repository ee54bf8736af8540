package hgvs

import "strconv"

// NucleotidePointLocation is a position in nucleotide nomenclature.
//
// BasePos is zero-based. Negative values denote the 5' UTR (BasePos -1 is
// printed as "-1"); with DownstreamOfCDS set, BasePos counts from the first
// base after the stop codon (BasePos 0 is printed as "*1"). Offset is the
// signed intronic distance from the anchor base ("+3", "-3").
type NucleotidePointLocation struct {
	BasePos         int64
	Offset          int64
	DownstreamOfCDS bool
}

// NewNucleotidePointLocation creates a location from a zero-based base position.
func NewNucleotidePointLocation(basePos, offset int64, downstreamOfCDS bool) NucleotidePointLocation {
	return NucleotidePointLocation{BasePos: basePos, Offset: offset, DownstreamOfCDS: downstreamOfCDS}
}

// NucleotidePointLocationFromCDS anchors a location at a CDS position of
// either convention, with an optional intronic offset.
func NucleotidePointLocationFromCDS(p CDSPosition, offset int64) NucleotidePointLocation {
	return NucleotidePointLocation{BasePos: p.WithPositionType(ZeroBased).Pos, Offset: offset}
}

// UpstreamLocation returns the location dist bases 5' of the CDS start ("-dist").
func UpstreamLocation(dist, offset int64) NucleotidePointLocation {
	return NucleotidePointLocation{BasePos: -dist, Offset: offset}
}

// DownstreamLocation returns the location dist bases 3' of the CDS end ("*dist").
func DownstreamLocation(dist, offset int64) NucleotidePointLocation {
	return NucleotidePointLocation{BasePos: dist - 1, Offset: offset, DownstreamOfCDS: true}
}

// IsUpstreamOfCDS reports whether the location is in the 5' UTR.
func (l NucleotidePointLocation) IsUpstreamOfCDS() bool {
	return !l.DownstreamOfCDS && l.BasePos < 0
}

// IsIntronic reports whether the location carries an intronic offset.
func (l NucleotidePointLocation) IsIntronic() bool {
	return l.Offset != 0
}

// WithOffset returns l with its intronic offset replaced.
func (l NucleotidePointLocation) WithOffset(offset int64) NucleotidePointLocation {
	l.Offset = offset
	return l
}

// CDSPosition returns the anchor base as a CDS position. Only meaningful
// for locations inside the CDS.
func (l NucleotidePointLocation) CDSPosition(transcriptID string) CDSPosition {
	return NewCDSPosition(transcriptID, l.BasePos, ZeroBased)
}

// Compare orders locations 5' to 3': upstream, CDS, downstream, then by
// anchor base, then by intronic offset.
func (l NucleotidePointLocation) Compare(o NucleotidePointLocation) int {
	switch {
	case l.DownstreamOfCDS != o.DownstreamOfCDS:
		if l.DownstreamOfCDS {
			return 1
		}
		return -1
	case l.BasePos != o.BasePos:
		if l.BasePos < o.BasePos {
			return -1
		}
		return 1
	case l.Offset != o.Offset:
		if l.Offset < o.Offset {
			return -1
		}
		return 1
	}
	return 0
}

func (l NucleotidePointLocation) String() string {
	var buf []byte
	switch {
	case l.DownstreamOfCDS:
		buf = append(buf, '*')
		buf = strconv.AppendInt(buf, l.BasePos+1, 10)
	case l.BasePos >= 0:
		buf = strconv.AppendInt(buf, l.BasePos+1, 10)
	default:
		buf = strconv.AppendInt(buf, l.BasePos, 10)
	}
	if l.Offset > 0 {
		buf = append(buf, '+')
	}
	if l.Offset != 0 {
		buf = strconv.AppendInt(buf, l.Offset, 10)
	}
	return string(buf)
}

// NucleotideRange is an inclusive range of nucleotide locations.
type NucleotideRange struct {
	First NucleotidePointLocation
	Last  NucleotidePointLocation
}

// NewNucleotideRange creates a range, failing with *InvalidRangeError if
// first lies after last.
func NewNucleotideRange(first, last NucleotidePointLocation) (NucleotideRange, error) {
	if first.Compare(last) > 0 {
		return NucleotideRange{}, &InvalidRangeError{First: first.String(), Last: last.String()}
	}
	return NucleotideRange{First: first, Last: last}, nil
}

// NewNucleotideRangeFromPoint creates the single-position range [p, p].
func NewNucleotideRangeFromPoint(p NucleotidePointLocation) NucleotideRange {
	return NucleotideRange{First: p, Last: p}
}

// IsSingle reports whether the range denotes one position.
func (r NucleotideRange) IsSingle() bool {
	return r.First == r.Last
}

// Length returns the number of positions in the range, if it can be derived
// from the locations alone (no intronic offsets, or a common anchor base).
func (r NucleotideRange) Length() (int64, bool) {
	if r.First.DownstreamOfCDS != r.Last.DownstreamOfCDS {
		return 0, false
	}
	if r.First.Offset == 0 && r.Last.Offset == 0 {
		return r.Last.BasePos - r.First.BasePos + 1, true
	}
	if r.First.BasePos == r.Last.BasePos {
		return r.Last.Offset - r.First.Offset + 1, true
	}
	return 0, false
}

func (r NucleotideRange) String() string {
	if r.IsSingle() {
		return r.First.String()
	}
	return r.First.String() + "_" + r.Last.String()
}

// ProteinPointLocation is a residue in protein nomenclature. AminoAcid is a
// one-letter code ("*" for stop); Pos is zero-based.
type ProteinPointLocation struct {
	AminoAcid string
	Pos       int64
}

// NewProteinPointLocation creates a location from a zero-based residue position.
func NewProteinPointLocation(pos int64, aminoAcid string) ProteinPointLocation {
	return ProteinPointLocation{AminoAcid: aminoAcid, Pos: pos}
}

// ProteinPointLocationFromPosition anchors a location at a protein position
// of either convention.
func ProteinPointLocationFromPosition(p ProteinPosition, aminoAcid string) ProteinPointLocation {
	return ProteinPointLocation{AminoAcid: aminoAcid, Pos: p.WithPositionType(ZeroBased).Pos}
}

// Format renders the location, e.g. "124A" or "124Ala".
func (l ProteinPointLocation) Format(code AminoAcidCode) string {
	return strconv.FormatInt(l.Pos+1, 10) + formatAminoAcids(l.AminoAcid, code)
}

// changeFormat renders the location as it appears in a change body,
// residue first: "A124" or "Ala124".
func (l ProteinPointLocation) changeFormat(code AminoAcidCode) string {
	return formatAminoAcids(l.AminoAcid, code) + strconv.FormatInt(l.Pos+1, 10)
}

func (l ProteinPointLocation) String() string { return l.Format(ThreeLetter) }

// ProteinRange is an inclusive range of residues.
type ProteinRange struct {
	First ProteinPointLocation
	Last  ProteinPointLocation
}

// NewProteinRange creates a range, failing with *InvalidRangeError if
// first lies after last.
func NewProteinRange(first, last ProteinPointLocation) (ProteinRange, error) {
	if first.Pos > last.Pos {
		return ProteinRange{}, &InvalidRangeError{First: first.String(), Last: last.String()}
	}
	return ProteinRange{First: first, Last: last}, nil
}

// NewProteinRangeFromPoint creates the single-residue range [p, p].
func NewProteinRangeFromPoint(p ProteinPointLocation) ProteinRange {
	return ProteinRange{First: p, Last: p}
}

// IsSingle reports whether the range denotes one residue.
func (r ProteinRange) IsSingle() bool {
	return r.First == r.Last
}

// Length returns the number of residues in the range.
func (r ProteinRange) Length() int64 {
	return r.Last.Pos - r.First.Pos + 1
}

// Format renders the range; a single-residue range renders as the bare location.
func (r ProteinRange) Format(code AminoAcidCode) string {
	if r.IsSingle() {
		return r.First.Format(code)
	}
	return r.First.Format(code) + "_" + r.Last.Format(code)
}

func (r ProteinRange) String() string { return r.Format(ThreeLetter) }

// changeFormat renders the range residue first, as in "Lys23_Val25del".
func (r ProteinRange) changeFormat(code AminoAcidCode) string {
	if r.IsSingle() {
		return r.First.changeFormat(code)
	}
	return r.First.changeFormat(code) + "_" + r.Last.changeFormat(code)
}
