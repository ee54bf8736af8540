package hgvs

import "strconv"

// NucleotideSeqDescription describes the bases affected by a change: either
// a literal sequence ("delAT"), a length only ("del2"), or nothing ("del").
type NucleotideSeqDescription struct {
	seq    string
	length int
}

// NewNucleotideSeqDescription creates a description. If both seq and length
// are given they must agree.
func NewNucleotideSeqDescription(seq string, length int) (NucleotideSeqDescription, error) {
	if seq != "" && length != 0 && len(seq) != length {
		return NucleotideSeqDescription{}, &SequenceLengthMismatchError{Sequence: seq, Length: length}
	}
	return NucleotideSeqDescription{seq: seq, length: length}, nil
}

// NucleotideSeq is shorthand for a literal description.
func NucleotideSeq(seq string) NucleotideSeqDescription {
	return NucleotideSeqDescription{seq: seq}
}

// NucleotideSeqLength is shorthand for a length-only description.
func NucleotideSeqLength(length int) NucleotideSeqDescription {
	return NucleotideSeqDescription{length: length}
}

// IsBlank reports whether neither sequence nor length is given.
func (d NucleotideSeqDescription) IsBlank() bool { return d.seq == "" && d.length == 0 }

// HasSequence reports whether a literal sequence is available.
func (d NucleotideSeqDescription) HasSequence() bool { return d.seq != "" }

// IsLengthOnly reports whether only a length is given.
func (d NucleotideSeqDescription) IsLengthOnly() bool { return d.seq == "" && d.length > 0 }

// Sequence returns the literal sequence or *NoSequenceAvailableError.
func (d NucleotideSeqDescription) Sequence() (string, error) {
	if d.seq == "" {
		return "", &NoSequenceAvailableError{Length: d.length}
	}
	return d.seq, nil
}

// Len returns the literal length, else the stated length, else 0.
func (d NucleotideSeqDescription) Len() int {
	if d.seq != "" {
		return len(d.seq)
	}
	return d.length
}

func (d NucleotideSeqDescription) String() string {
	switch {
	case d.seq != "":
		return d.seq
	case d.length > 0:
		return strconv.Itoa(d.length)
	default:
		return ""
	}
}

// ProteinSeqDescription describes affected residues. The literal sequence is
// kept in one-letter code.
type ProteinSeqDescription struct {
	seq    string
	length int
}

// NewProteinSeqDescription creates a description. If both seq and length
// are given they must agree.
func NewProteinSeqDescription(seq string, length int) (ProteinSeqDescription, error) {
	if seq != "" && length != 0 && len(seq) != length {
		return ProteinSeqDescription{}, &SequenceLengthMismatchError{Sequence: seq, Length: length}
	}
	return ProteinSeqDescription{seq: seq, length: length}, nil
}

// ProteinSeq is shorthand for a literal one-letter description.
func ProteinSeq(seq string) ProteinSeqDescription {
	return ProteinSeqDescription{seq: seq}
}

// ProteinSeqLength is shorthand for a length-only description.
func ProteinSeqLength(length int) ProteinSeqDescription {
	return ProteinSeqDescription{length: length}
}

// IsBlank reports whether neither sequence nor length is given.
func (d ProteinSeqDescription) IsBlank() bool { return d.seq == "" && d.length == 0 }

// HasSequence reports whether a literal sequence is available.
func (d ProteinSeqDescription) HasSequence() bool { return d.seq != "" }

// Sequence returns the one-letter sequence or *NoSequenceAvailableError.
func (d ProteinSeqDescription) Sequence() (string, error) {
	if d.seq == "" {
		return "", &NoSequenceAvailableError{Length: d.length}
	}
	return d.seq, nil
}

// Len returns the literal length, else the stated length, else 0.
func (d ProteinSeqDescription) Len() int {
	if d.seq != "" {
		return len(d.seq)
	}
	return d.length
}

// Format renders the description in the given amino acid code.
func (d ProteinSeqDescription) Format(code AminoAcidCode) string {
	switch {
	case d.seq != "":
		return formatAminoAcids(d.seq, code)
	case d.length > 0:
		return strconv.Itoa(d.length)
	default:
		return ""
	}
}
