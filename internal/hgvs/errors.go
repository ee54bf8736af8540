package hgvs

import (
	"errors"
	"fmt"
)

// ErrEmptyAllele is returned when an allele is built without any change.
var ErrEmptyAllele = errors.New("allele must contain at least one change")

// ErrSingleAlleleRequired is returned by ParseSingleAllele when the input
// describes more than one allele.
var ErrSingleAlleleRequired = errors.New("single-allele variant required")

// InvalidRangeError reports a range whose first position lies after its last.
type InvalidRangeError struct {
	First string
	Last  string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: first position %s is after last position %s", e.First, e.Last)
}

// InvalidAlleleCountError reports a multi-allele variant built from fewer than two alleles.
type InvalidAlleleCountError struct {
	Count int
}

func (e *InvalidAlleleCountError) Error() string {
	return fmt.Sprintf("multi-allele variant needs at least 2 alleles, got %d", e.Count)
}

// NoSequenceAvailableError is returned when the literal sequence of a
// length-only or blank sequence description is requested.
type NoSequenceAvailableError struct {
	Length int // stated length, 0 if none
}

func (e *NoSequenceAvailableError) Error() string {
	if e.Length > 0 {
		return fmt.Sprintf("no literal sequence available (length-only description of %d)", e.Length)
	}
	return "no literal sequence available"
}

// SequenceLengthMismatchError reports a literal sequence that disagrees with
// an explicitly stated length.
type SequenceLengthMismatchError struct {
	Sequence string
	Length   int
}

func (e *SequenceLengthMismatchError) Error() string {
	return fmt.Sprintf("sequence %q has length %d, stated length is %d", e.Sequence, len(e.Sequence), e.Length)
}

// MixedSequenceTypeError reports changes of different coordinate spaces in
// one allele, or an allele that does not fit the variant's sequence type.
type MixedSequenceTypeError struct {
	Want ChangeSpace
	Got  ChangeSpace
}

func (e *MixedSequenceTypeError) Error() string {
	return fmt.Sprintf("mixed coordinate spaces: expected %s change, got %s change", e.Want, e.Got)
}

// MalformedVariantError is returned by the parser for any input that does
// not match the variant grammar. Offset is the byte offset of the failure.
type MalformedVariantError struct {
	Input  string
	Offset int
	Reason string
	Err    error // underlying cause, if any (e.g. *InvalidRangeError)
}

// Span returns the offending substring, starting at the failure offset.
func (e *MalformedVariantError) Span() string {
	if e.Offset >= len(e.Input) {
		return ""
	}
	span := e.Input[e.Offset:]
	if len(span) > 16 {
		span = span[:16]
	}
	return span
}

func (e *MalformedVariantError) Error() string {
	if e.Input == "" {
		return "malformed variant: empty input"
	}
	if span := e.Span(); span != "" {
		return fmt.Sprintf("malformed variant %q at offset %d near %q: %s", e.Input, e.Offset, span, e.Reason)
	}
	return fmt.Sprintf("malformed variant %q at end of input: %s", e.Input, e.Reason)
}

func (e *MalformedVariantError) Unwrap() error { return e.Err }

// UnsupportedStrandError is returned when a computation that is only
// implemented for forward-strand transcripts is asked about a reverse-strand one.
type UnsupportedStrandError struct {
	TranscriptID string
	Strand       int8
}

func (e *UnsupportedStrandError) Error() string {
	return fmt.Sprintf("transcript %s: strand %+d not supported (forward strand only)", e.TranscriptID, e.Strand)
}
