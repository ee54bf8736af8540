package hgvs

import "fmt"

// SequenceType is the coordinate-space marker preceding the change body.
type SequenceType int

const (
	CodingDNA    SequenceType = iota // c.
	GenomicDNA                       // g.
	Mitochondria                     // m.
	NonCodingDNA                     // n.
	Protein                          // p.
)

var sequenceTypePrefixes = [...]string{
	CodingDNA:    "c.",
	GenomicDNA:   "g.",
	Mitochondria: "m.",
	NonCodingDNA: "n.",
	Protein:      "p.",
}

// Prefix returns the marker, e.g. "c.".
func (t SequenceType) Prefix() string {
	if int(t) >= 0 && int(t) < len(sequenceTypePrefixes) {
		return sequenceTypePrefixes[t]
	}
	return fmt.Sprintf("SequenceType(%d).", int(t))
}

func (t SequenceType) String() string { return t.Prefix() }

// Space returns the change space the marker admits.
func (t SequenceType) Space() ChangeSpace {
	if t == Protein {
		return ProteinSpace
	}
	return NucleotideSpace
}

// Allele is an ordered, non-empty list of changes in one coordinate space.
// Author order is preserved.
type Allele struct {
	changes []Change
}

// NewAllele creates an allele. It fails with ErrEmptyAllele when no change
// is given and with *MixedSequenceTypeError when spaces differ.
func NewAllele(changes ...Change) (Allele, error) {
	if len(changes) == 0 {
		return Allele{}, ErrEmptyAllele
	}
	space := changes[0].Space()
	for _, c := range changes[1:] {
		if c.Space() != space {
			return Allele{}, &MixedSequenceTypeError{Want: space, Got: c.Space()}
		}
	}
	owned := make([]Change, len(changes))
	copy(owned, changes)
	return Allele{changes: owned}, nil
}

// Changes returns a copy of the allele's changes.
func (a Allele) Changes() []Change {
	out := make([]Change, len(a.changes))
	copy(out, a.changes)
	return out
}

// Len returns the number of changes.
func (a Allele) Len() int { return len(a.changes) }

// Change returns the i-th change.
func (a Allele) Change(i int) Change { return a.changes[i] }

// Space returns the coordinate space of the allele's changes.
func (a Allele) Space() ChangeSpace {
	if len(a.changes) == 0 {
		return NucleotideSpace
	}
	return a.changes[0].Space()
}

// Variant is a parsed or constructed variant description: either a
// *SingleAlleleVariant or a *MultiAlleleVariant.
type Variant interface {
	RefID() string
	SequenceType() SequenceType
	Alleles() []Allele
	isVariant()
}

// SingleAlleleVariant is a variant with one allele, e.g. "NM_000109.3:c.123A>C".
type SingleAlleleVariant struct {
	refID   string
	seqType SequenceType
	allele  Allele
}

// NewSingleAlleleVariant creates a single-allele variant.
func NewSingleAlleleVariant(refID string, seqType SequenceType, allele Allele) (*SingleAlleleVariant, error) {
	if allele.Len() == 0 {
		return nil, ErrEmptyAllele
	}
	if allele.Space() != seqType.Space() {
		return nil, &MixedSequenceTypeError{Want: seqType.Space(), Got: allele.Space()}
	}
	return &SingleAlleleVariant{refID: refID, seqType: seqType, allele: allele}, nil
}

func (v *SingleAlleleVariant) RefID() string              { return v.refID }
func (v *SingleAlleleVariant) SequenceType() SequenceType { return v.seqType }
func (v *SingleAlleleVariant) Alleles() []Allele          { return []Allele{v.allele} }
func (v *SingleAlleleVariant) isVariant()                 {}

// Allele returns the variant's only allele.
func (v *SingleAlleleVariant) Allele() Allele { return v.allele }

func (v *SingleAlleleVariant) String() string { return Serialize(v, ThreeLetter) }

// MultiAlleleVariant is a variant with two or more alleles, e.g.
// "NM_000109.3:c.[123A>C];[123A>C]".
type MultiAlleleVariant struct {
	refID   string
	seqType SequenceType
	alleles []Allele
}

// NewMultiAlleleVariant creates a multi-allele variant. It fails with
// *InvalidAlleleCountError when fewer than two alleles are given.
func NewMultiAlleleVariant(refID string, seqType SequenceType, alleles ...Allele) (*MultiAlleleVariant, error) {
	if len(alleles) < 2 {
		return nil, &InvalidAlleleCountError{Count: len(alleles)}
	}
	for _, a := range alleles {
		if a.Len() == 0 {
			return nil, ErrEmptyAllele
		}
		if a.Space() != seqType.Space() {
			return nil, &MixedSequenceTypeError{Want: seqType.Space(), Got: a.Space()}
		}
	}
	owned := make([]Allele, len(alleles))
	copy(owned, alleles)
	return &MultiAlleleVariant{refID: refID, seqType: seqType, alleles: owned}, nil
}

func (v *MultiAlleleVariant) RefID() string              { return v.refID }
func (v *MultiAlleleVariant) SequenceType() SequenceType { return v.seqType }
func (v *MultiAlleleVariant) isVariant()                 {}

// Alleles returns a copy of the variant's alleles.
func (v *MultiAlleleVariant) Alleles() []Allele {
	out := make([]Allele, len(v.alleles))
	copy(out, v.alleles)
	return out
}

func (v *MultiAlleleVariant) String() string { return Serialize(v, ThreeLetter) }
