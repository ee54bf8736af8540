// Package hgvs models HGVS-style variant nomenclature: positions and ranges,
// sequence changes, alleles and variants, with a parser and a canonical
// serializer for the textual form.
package hgvs

import "fmt"

// PositionType is the numbering convention of a position.
type PositionType int

const (
	ZeroBased PositionType = iota
	OneBased
)

func (t PositionType) String() string {
	switch t {
	case ZeroBased:
		return "ZERO_BASED"
	case OneBased:
		return "ONE_BASED"
	default:
		return fmt.Sprintf("PositionType(%d)", int(t))
	}
}

// shift returns the delta to add to a coordinate in convention from to
// express it in convention to.
func shift(from, to PositionType) int64 {
	switch {
	case from == ZeroBased && to == OneBased:
		return 1
	case from == OneBased && to == ZeroBased:
		return -1
	default:
		return 0
	}
}

// GenomePosition is a position on a chromosome.
type GenomePosition struct {
	Chrom string
	Pos   int64
	Type  PositionType
}

// NewGenomePosition creates a genomic position with an explicit convention.
func NewGenomePosition(chrom string, pos int64, typ PositionType) GenomePosition {
	return GenomePosition{Chrom: chrom, Pos: pos, Type: typ}
}

// WithPositionType returns the same base expressed in convention t.
func (p GenomePosition) WithPositionType(t PositionType) GenomePosition {
	return GenomePosition{Chrom: p.Chrom, Pos: p.Pos + shift(p.Type, t), Type: t}
}

// Normalized returns the one-based form of p.
func (p GenomePosition) Normalized() GenomePosition {
	return p.WithPositionType(OneBased)
}

// Shifted returns p moved by delta bases, keeping its convention.
func (p GenomePosition) Shifted(delta int64) GenomePosition {
	return GenomePosition{Chrom: p.Chrom, Pos: p.Pos + delta, Type: p.Type}
}

// DifferenceTo returns the number of bases from p to o (o - p), independent
// of the conventions each was built with.
func (p GenomePosition) DifferenceTo(o GenomePosition) int64 {
	return o.Normalized().Pos - p.Normalized().Pos
}

func (p GenomePosition) String() string {
	return fmt.Sprintf("%s:g.%d", p.Chrom, p.Normalized().Pos)
}

// CDSPosition is a position in the coding sequence of a transcript.
type CDSPosition struct {
	TranscriptID string
	Pos          int64
	Type         PositionType
}

// NewCDSPosition creates a CDS position with an explicit convention.
func NewCDSPosition(transcriptID string, pos int64, typ PositionType) CDSPosition {
	return CDSPosition{TranscriptID: transcriptID, Pos: pos, Type: typ}
}

// WithPositionType returns the same base expressed in convention t.
func (p CDSPosition) WithPositionType(t PositionType) CDSPosition {
	return CDSPosition{TranscriptID: p.TranscriptID, Pos: p.Pos + shift(p.Type, t), Type: t}
}

// Normalized returns the one-based form of p.
func (p CDSPosition) Normalized() CDSPosition {
	return p.WithPositionType(OneBased)
}

// Shifted returns p moved by delta bases, keeping its convention.
func (p CDSPosition) Shifted(delta int64) CDSPosition {
	return CDSPosition{TranscriptID: p.TranscriptID, Pos: p.Pos + delta, Type: p.Type}
}

func (p CDSPosition) String() string {
	return fmt.Sprintf("%s:c.%d", p.TranscriptID, p.Normalized().Pos)
}

// ProteinPosition is a residue position in a protein.
type ProteinPosition struct {
	ProteinID string
	Pos       int64
	Type      PositionType
}

// NewProteinPosition creates a protein position with an explicit convention.
func NewProteinPosition(proteinID string, pos int64, typ PositionType) ProteinPosition {
	return ProteinPosition{ProteinID: proteinID, Pos: pos, Type: typ}
}

// WithPositionType returns the same residue expressed in convention t.
func (p ProteinPosition) WithPositionType(t PositionType) ProteinPosition {
	return ProteinPosition{ProteinID: p.ProteinID, Pos: p.Pos + shift(p.Type, t), Type: t}
}

// Normalized returns the one-based form of p.
func (p ProteinPosition) Normalized() ProteinPosition {
	return p.WithPositionType(OneBased)
}

func (p ProteinPosition) String() string {
	return fmt.Sprintf("%s:p.%d", p.ProteinID, p.Normalized().Pos)
}

// Position is implemented by every convention-carrying position type.
type Position[P any] interface {
	WithPositionType(PositionType) P
}

// Convert expresses p in convention t. Converting back to the original
// convention returns a value equal to p.
func Convert[P Position[P]](p P, t PositionType) P {
	return p.WithPositionType(t)
}
