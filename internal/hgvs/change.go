package hgvs

import "fmt"

// ChangeSpace is the kind of sequence a change applies to.
type ChangeSpace int

const (
	NucleotideSpace ChangeSpace = iota
	ProteinSpace
)

func (s ChangeSpace) String() string {
	if s == ProteinSpace {
		return "protein"
	}
	return "nucleotide"
}

// ChangeKind tags the elementary edit a change describes.
type ChangeKind int

const (
	KindSubstitution ChangeKind = iota
	KindDeletion
	KindInsertion
	KindIndel
	KindDuplication
	KindInversion
	KindRepeat
	KindConversion
	KindUnchanged
	KindFrameshift
)

var changeKindNames = [...]string{
	KindSubstitution: "substitution",
	KindDeletion:     "deletion",
	KindInsertion:    "insertion",
	KindIndel:        "deletion-insertion",
	KindDuplication:  "duplication",
	KindInversion:    "inversion",
	KindRepeat:       "repeat",
	KindConversion:   "conversion",
	KindUnchanged:    "unchanged",
	KindFrameshift:   "frameshift",
}

func (k ChangeKind) String() string {
	if int(k) >= 0 && int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change is an elementary sequence edit. The set of implementations is
// closed; see Serialize for the exhaustive list.
type Change interface {
	Kind() ChangeKind
	Space() ChangeSpace
	isChange()
}

// NucleotideChange is a change on a nucleotide sequence.
type NucleotideChange interface {
	Change
	Anchor() NucleotideRange
}

// ProteinChange is a change on a protein sequence.
type ProteinChange interface {
	Change
	Anchor() ProteinRange
}

type nucleotideChange struct{}

func (nucleotideChange) Space() ChangeSpace { return NucleotideSpace }
func (nucleotideChange) isChange()          {}

type proteinChange struct{}

func (proteinChange) Space() ChangeSpace { return ProteinSpace }
func (proteinChange) isChange()          {}

// deletedLength falls back to the anchor length when the deleted bases are
// not described. It fails for a blank description on a range between
// different intronic anchors, which needs a transcript to measure.
func deletedLength(r NucleotideRange, d NucleotideSeqDescription) (int, bool) {
	if n := d.Len(); n > 0 {
		return n, true
	}
	if n, ok := r.Length(); ok {
		return int(n), true
	}
	return 0, false
}

// NucleotideSubstitution replaces one base: "123A>C".
type NucleotideSubstitution struct {
	nucleotideChange
	Position NucleotidePointLocation
	FromNT   string
	ToNT     string
}

// NewNucleotideSubstitution creates a substitution.
func NewNucleotideSubstitution(pos NucleotidePointLocation, fromNT, toNT string) NucleotideSubstitution {
	return NucleotideSubstitution{Position: pos, FromNT: fromNT, ToNT: toNT}
}

func (c NucleotideSubstitution) Kind() ChangeKind { return KindSubstitution }
func (c NucleotideSubstitution) Anchor() NucleotideRange {
	return NewNucleotideRangeFromPoint(c.Position)
}

// NucleotideDeletion deletes bases: "123del", "123_124delAT", "123_124del2".
type NucleotideDeletion struct {
	nucleotideChange
	Range   NucleotideRange
	Deleted NucleotideSeqDescription
}

// NewNucleotideDeletion creates a deletion.
func NewNucleotideDeletion(r NucleotideRange, deleted NucleotideSeqDescription) NucleotideDeletion {
	return NucleotideDeletion{Range: r, Deleted: deleted}
}

func (c NucleotideDeletion) Kind() ChangeKind        { return KindDeletion }
func (c NucleotideDeletion) Anchor() NucleotideRange { return c.Range }

// DeletedLength returns the number of deleted bases and whether it could be
// derived without a transcript.
func (c NucleotideDeletion) DeletedLength() (int, bool) { return deletedLength(c.Range, c.Deleted) }

// NucleotideDuplication duplicates bases: "123dup", "123_125dupATG".
type NucleotideDuplication struct {
	nucleotideChange
	Range      NucleotideRange
	Duplicated NucleotideSeqDescription
}

// NewNucleotideDuplication creates a duplication.
func NewNucleotideDuplication(r NucleotideRange, duplicated NucleotideSeqDescription) NucleotideDuplication {
	return NucleotideDuplication{Range: r, Duplicated: duplicated}
}

func (c NucleotideDuplication) Kind() ChangeKind        { return KindDuplication }
func (c NucleotideDuplication) Anchor() NucleotideRange { return c.Range }

// NucleotideInsertion inserts bases between two flanking positions: "123_124insAT".
type NucleotideInsertion struct {
	nucleotideChange
	Range    NucleotideRange
	Inserted NucleotideSeqDescription
}

// NewNucleotideInsertion creates an insertion.
func NewNucleotideInsertion(r NucleotideRange, inserted NucleotideSeqDescription) NucleotideInsertion {
	return NucleotideInsertion{Range: r, Inserted: inserted}
}

func (c NucleotideInsertion) Kind() ChangeKind        { return KindInsertion }
func (c NucleotideInsertion) Anchor() NucleotideRange { return c.Range }

// NucleotideIndel deletes bases and inserts others: "123delCinsTCG", "123del1ins23".
type NucleotideIndel struct {
	nucleotideChange
	Range    NucleotideRange
	Deleted  NucleotideSeqDescription
	Inserted NucleotideSeqDescription
}

// NewNucleotideIndel creates a deletion-insertion.
func NewNucleotideIndel(r NucleotideRange, deleted, inserted NucleotideSeqDescription) NucleotideIndel {
	return NucleotideIndel{Range: r, Deleted: deleted, Inserted: inserted}
}

func (c NucleotideIndel) Kind() ChangeKind        { return KindIndel }
func (c NucleotideIndel) Anchor() NucleotideRange { return c.Range }

// DeletedLength returns the number of deleted bases and whether it could be
// derived without a transcript.
func (c NucleotideIndel) DeletedLength() (int, bool) { return deletedLength(c.Range, c.Deleted) }

// InsertedLength returns the number of inserted bases, 0 if unknown.
func (c NucleotideIndel) InsertedLength() int { return c.Inserted.Len() }

// NucleotideInversion reverse-complements a range: "123_456inv".
type NucleotideInversion struct {
	nucleotideChange
	Range    NucleotideRange
	Inverted NucleotideSeqDescription
}

// NewNucleotideInversion creates an inversion.
func NewNucleotideInversion(r NucleotideRange, inverted NucleotideSeqDescription) NucleotideInversion {
	return NucleotideInversion{Range: r, Inverted: inverted}
}

func (c NucleotideInversion) Kind() ChangeKind        { return KindInversion }
func (c NucleotideInversion) Anchor() NucleotideRange { return c.Range }

// NucleotideRepeat is a short sequence repeat variability: "123CAG[23]"
// (exact count) or "123_125(10_12)" (count range).
type NucleotideRepeat struct {
	nucleotideChange
	Range    NucleotideRange
	Seq      string
	MinCount int
	MaxCount int
}

// NewNucleotideRepeat creates a repeat with an exact count.
func NewNucleotideRepeat(r NucleotideRange, seq string, count int) NucleotideRepeat {
	return NucleotideRepeat{Range: r, Seq: seq, MinCount: count, MaxCount: count}
}

func (c NucleotideRepeat) Kind() ChangeKind        { return KindRepeat }
func (c NucleotideRepeat) Anchor() NucleotideRange { return c.Range }

// NucleotideConversion replaces a range with a copy of another: "123_456con888_999".
type NucleotideConversion struct {
	nucleotideChange
	Range  NucleotideRange
	Source NucleotideRange
}

// NewNucleotideConversion creates a conversion.
func NewNucleotideConversion(r, source NucleotideRange) NucleotideConversion {
	return NucleotideConversion{Range: r, Source: source}
}

func (c NucleotideConversion) Kind() ChangeKind        { return KindConversion }
func (c NucleotideConversion) Anchor() NucleotideRange { return c.Range }

// NucleotideUnchanged states that the reference is retained: "123=", "123A=".
type NucleotideUnchanged struct {
	nucleotideChange
	Range NucleotideRange
	Seq   string
}

// NewNucleotideUnchanged creates an unchanged description.
func NewNucleotideUnchanged(r NucleotideRange, seq string) NucleotideUnchanged {
	return NucleotideUnchanged{Range: r, Seq: seq}
}

func (c NucleotideUnchanged) Kind() ChangeKind        { return KindUnchanged }
func (c NucleotideUnchanged) Anchor() NucleotideRange { return c.Range }

// ProteinSubstitution replaces one residue: "Gly12Cys", "G12C", "Trp24Ter".
type ProteinSubstitution struct {
	proteinChange
	Location ProteinPointLocation
	Target   string // one-letter code
}

// NewProteinSubstitution creates a substitution.
func NewProteinSubstitution(loc ProteinPointLocation, target string) ProteinSubstitution {
	return ProteinSubstitution{Location: loc, Target: target}
}

func (c ProteinSubstitution) Kind() ChangeKind     { return KindSubstitution }
func (c ProteinSubstitution) Anchor() ProteinRange { return NewProteinRangeFromPoint(c.Location) }

// ProteinUnchanged is a synonymous change: "Gly12=".
type ProteinUnchanged struct {
	proteinChange
	Location ProteinPointLocation
}

// NewProteinUnchanged creates a synonymous change.
func NewProteinUnchanged(loc ProteinPointLocation) ProteinUnchanged {
	return ProteinUnchanged{Location: loc}
}

func (c ProteinUnchanged) Kind() ChangeKind     { return KindUnchanged }
func (c ProteinUnchanged) Anchor() ProteinRange { return NewProteinRangeFromPoint(c.Location) }

// ProteinDeletion deletes residues: "Lys23del", "Lys23_Val25del".
type ProteinDeletion struct {
	proteinChange
	Range   ProteinRange
	Deleted ProteinSeqDescription
}

// NewProteinDeletion creates a deletion.
func NewProteinDeletion(r ProteinRange, deleted ProteinSeqDescription) ProteinDeletion {
	return ProteinDeletion{Range: r, Deleted: deleted}
}

func (c ProteinDeletion) Kind() ChangeKind     { return KindDeletion }
func (c ProteinDeletion) Anchor() ProteinRange { return c.Range }

// DeletedLength returns the number of deleted residues.
func (c ProteinDeletion) DeletedLength() int {
	if n := c.Deleted.Len(); n > 0 {
		return n
	}
	return int(c.Range.Length())
}

// ProteinDuplication duplicates residues: "Ala3dup", "Ala3_Ser5dup".
type ProteinDuplication struct {
	proteinChange
	Range      ProteinRange
	Duplicated ProteinSeqDescription
}

// NewProteinDuplication creates a duplication.
func NewProteinDuplication(r ProteinRange, duplicated ProteinSeqDescription) ProteinDuplication {
	return ProteinDuplication{Range: r, Duplicated: duplicated}
}

func (c ProteinDuplication) Kind() ChangeKind     { return KindDuplication }
func (c ProteinDuplication) Anchor() ProteinRange { return c.Range }

// ProteinInsertion inserts residues between two flanking residues: "Lys2_Met3insGlnSerLys".
type ProteinInsertion struct {
	proteinChange
	Range    ProteinRange
	Inserted ProteinSeqDescription
}

// NewProteinInsertion creates an insertion.
func NewProteinInsertion(r ProteinRange, inserted ProteinSeqDescription) ProteinInsertion {
	return ProteinInsertion{Range: r, Inserted: inserted}
}

func (c ProteinInsertion) Kind() ChangeKind     { return KindInsertion }
func (c ProteinInsertion) Anchor() ProteinRange { return c.Range }

// ProteinIndel replaces residues: "Cys28delinsTrpVal".
type ProteinIndel struct {
	proteinChange
	Range    ProteinRange
	Inserted ProteinSeqDescription
}

// NewProteinIndel creates a deletion-insertion.
func NewProteinIndel(r ProteinRange, inserted ProteinSeqDescription) ProteinIndel {
	return ProteinIndel{Range: r, Inserted: inserted}
}

func (c ProteinIndel) Kind() ChangeKind     { return KindIndel }
func (c ProteinIndel) Anchor() ProteinRange { return c.Range }

// ProteinFrameshift shifts the reading frame: "Arg97ProfsTer23", "Arg97fs".
type ProteinFrameshift struct {
	proteinChange
	Location     ProteinPointLocation
	Target       string // first altered residue, "" if not given
	StopDistance int    // position of the new stop codon, 0 if not given
}

// NewProteinFrameshift creates a frameshift.
func NewProteinFrameshift(loc ProteinPointLocation, target string, stopDistance int) ProteinFrameshift {
	return ProteinFrameshift{Location: loc, Target: target, StopDistance: stopDistance}
}

func (c ProteinFrameshift) Kind() ChangeKind     { return KindFrameshift }
func (c ProteinFrameshift) Anchor() ProteinRange { return NewProteinRangeFromPoint(c.Location) }
