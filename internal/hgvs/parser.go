package hgvs

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses a full variant description such as "NM_000109.3:c.123A>C",
// "c.[123A>C,156C>T]" or "NP_000100.2:p.[Gly12Cys];[Gly13Asp]".
//
// The whole input must match the grammar; any failure is reported as a
// *MalformedVariantError and no partial variant is returned.
func Parse(text string) (Variant, error) {
	s, err := newScanner(text)
	if err != nil {
		return nil, err
	}

	refID, err := s.parseReference()
	if err != nil {
		return nil, err
	}
	seqType, err := s.parseSequenceType()
	if err != nil {
		return nil, err
	}
	space := seqType.Space()

	var v Variant
	if s.peek() == '[' {
		first, err := s.parseBracketedAllele(space)
		if err != nil {
			return nil, err
		}
		if s.peek() != ';' {
			v, err = NewSingleAlleleVariant(refID, seqType, first)
			if err != nil {
				return nil, s.wrap(err)
			}
		} else {
			alleles := []Allele{first}
			for s.consume(";") {
				a, err := s.parseBracketedAllele(space)
				if err != nil {
					return nil, err
				}
				alleles = append(alleles, a)
			}
			v, err = NewMultiAlleleVariant(refID, seqType, alleles...)
			if err != nil {
				return nil, s.wrap(err)
			}
		}
	} else {
		c, err := s.parseChange(space)
		if err != nil {
			return nil, err
		}
		a, err := NewAllele(c)
		if err != nil {
			return nil, s.wrap(err)
		}
		v, err = NewSingleAlleleVariant(refID, seqType, a)
		if err != nil {
			return nil, s.wrap(err)
		}
	}

	if err := s.expectEOF(); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseSingleAllele parses text that must describe a single allele. A
// well-formed multi-allele description fails with ErrSingleAlleleRequired.
func ParseSingleAllele(text string) (*SingleAlleleVariant, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	single, ok := v.(*SingleAlleleVariant)
	if !ok {
		return nil, fmt.Errorf("%q has %d alleles: %w", text, len(v.Alleles()), ErrSingleAlleleRequired)
	}
	return single, nil
}

// ParseNucleotideChange parses a bare nucleotide change body, e.g. "123delCinsTCG".
func ParseNucleotideChange(text string) (NucleotideChange, error) {
	s, err := newScanner(text)
	if err != nil {
		return nil, err
	}
	c, err := s.parseNucleotideChange()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOF(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseProteinChange parses a bare protein change body, e.g. "Gly12Cys" or "G12C".
func ParseProteinChange(text string) (ProteinChange, error) {
	s, err := newScanner(text)
	if err != nil {
		return nil, err
	}
	c, err := s.parseProteinChange()
	if err != nil {
		return nil, err
	}
	if err := s.expectEOF(); err != nil {
		return nil, err
	}
	return c, nil
}

// scanner is a cursor over the input with one-byte lookahead.
type scanner struct {
	input string
	pos   int
}

func newScanner(text string) (*scanner, error) {
	s := &scanner{input: text}
	if text == "" {
		return nil, s.fail("empty input")
	}
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		s.pos = i
		return nil, s.fail("whitespace is not permitted")
	}
	return s, nil
}

func (s *scanner) fail(reason string) error {
	return &MalformedVariantError{Input: s.input, Offset: s.pos, Reason: reason}
}

func (s *scanner) failAt(offset int, err error) error {
	return &MalformedVariantError{Input: s.input, Offset: offset, Reason: err.Error(), Err: err}
}

func (s *scanner) wrap(err error) error {
	return s.failAt(s.pos, err)
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *scanner) consume(token string) bool {
	if strings.HasPrefix(s.input[s.pos:], token) {
		s.pos += len(token)
		return true
	}
	return false
}

func (s *scanner) expect(token string) error {
	if !s.consume(token) {
		return s.fail(fmt.Sprintf("expected %q", token))
	}
	return nil
}

func (s *scanner) expectEOF() error {
	if !s.eof() {
		return s.fail("unexpected trailing input")
	}
	return nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// readNumber reads a positive decimal number.
func (s *scanner) readNumber() (int64, error) {
	start := s.pos
	var n int64
	for !s.eof() && isDigit(s.peek()) {
		n = n*10 + int64(s.peek()-'0')
		if n > 1<<40 {
			return 0, s.fail("number too large")
		}
		s.pos++
	}
	if s.pos == start {
		return 0, s.fail("expected number")
	}
	if n == 0 {
		s.pos = start
		return 0, s.fail("zero is not a valid position, length or count")
	}
	return n, nil
}

func isReferenceChar(r rune) bool {
	return r == '_' || r == '.' || r == '-' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func (s *scanner) parseReference() (string, error) {
	i := strings.IndexByte(s.input, ':')
	if i < 0 {
		return "", nil
	}
	ref := s.input[:i]
	if ref == "" {
		return "", s.fail("empty reference sequence identifier")
	}
	for j, r := range ref {
		if !isReferenceChar(r) {
			s.pos = j
			return "", s.fail("invalid character in reference sequence identifier")
		}
	}
	s.pos = i + 1
	return ref, nil
}

func (s *scanner) parseSequenceType() (SequenceType, error) {
	if s.peekAt(1) == '.' {
		var t SequenceType
		switch s.peek() {
		case 'c':
			t = CodingDNA
		case 'g':
			t = GenomicDNA
		case 'm':
			t = Mitochondria
		case 'n':
			t = NonCodingDNA
		case 'p':
			t = Protein
		default:
			return 0, s.fail("unknown coordinate marker")
		}
		s.pos += 2
		return t, nil
	}
	return 0, s.fail("expected coordinate marker (c., g., m., n. or p.)")
}

func (s *scanner) parseBracketedAllele(space ChangeSpace) (Allele, error) {
	if err := s.expect("["); err != nil {
		return Allele{}, err
	}
	var changes []Change
	for {
		c, err := s.parseChange(space)
		if err != nil {
			return Allele{}, err
		}
		changes = append(changes, c)
		if !s.consume(",") {
			break
		}
	}
	if err := s.expect("]"); err != nil {
		return Allele{}, err
	}
	a, err := NewAllele(changes...)
	if err != nil {
		return Allele{}, s.wrap(err)
	}
	return a, nil
}

func (s *scanner) parseChange(space ChangeSpace) (Change, error) {
	if space == ProteinSpace {
		return s.parseProteinChange()
	}
	return s.parseNucleotideChange()
}

// --- nucleotide grammar ---

func isNucleotide(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'N':
		return true
	}
	return false
}

func (s *scanner) readNucleotides() string {
	start := s.pos
	for !s.eof() && isNucleotide(s.peek()) {
		s.pos++
	}
	return s.input[start:s.pos]
}

// parseNucleotideLocation reads ('-'|'*')? NUMBER (('+'|'-') NUMBER)?.
func (s *scanner) parseNucleotideLocation() (NucleotidePointLocation, error) {
	var upstream, downstream bool
	switch {
	case s.consume("*"):
		downstream = true
	case s.consume("-"):
		upstream = true
	}
	n, err := s.readNumber()
	if err != nil {
		return NucleotidePointLocation{}, err
	}

	var offset int64
	if c := s.peek(); (c == '+' || c == '-') && isDigit(s.peekAt(1)) {
		s.pos++
		d, err := s.readNumber()
		if err != nil {
			return NucleotidePointLocation{}, err
		}
		offset = d
		if c == '-' {
			offset = -d
		}
	}

	switch {
	case downstream:
		return DownstreamLocation(n, offset), nil
	case upstream:
		return UpstreamLocation(n, offset), nil
	default:
		return NewNucleotidePointLocation(n-1, offset, false), nil
	}
}

// parseNucleotideAnchor reads a location or a range "loc_loc".
func (s *scanner) parseNucleotideAnchor() (NucleotideRange, bool, error) {
	start := s.pos
	first, err := s.parseNucleotideLocation()
	if err != nil {
		return NucleotideRange{}, false, err
	}
	if !s.consume("_") {
		return NewNucleotideRangeFromPoint(first), false, nil
	}
	last, err := s.parseNucleotideLocation()
	if err != nil {
		return NucleotideRange{}, false, err
	}
	r, err := NewNucleotideRange(first, last)
	if err != nil {
		return NucleotideRange{}, false, s.failAt(start, err)
	}
	return r, true, nil
}

// parseNucleotideSeqDescription reads a literal sequence, a length, or
// nothing. The alternatives are decided by the next token class.
func (s *scanner) parseNucleotideSeqDescription() (NucleotideSeqDescription, error) {
	switch c := s.peek(); {
	case isDigit(c):
		n, err := s.readNumber()
		if err != nil {
			return NucleotideSeqDescription{}, err
		}
		return NucleotideSeqLength(int(n)), nil
	case isNucleotide(c):
		return NucleotideSeq(s.readNucleotides()), nil
	default:
		return NucleotideSeqDescription{}, nil
	}
}

func (s *scanner) parseRepeatCount() (int, int, error) {
	switch {
	case s.consume("["):
		n, err := s.readNumber()
		if err != nil {
			return 0, 0, err
		}
		if err := s.expect("]"); err != nil {
			return 0, 0, err
		}
		return int(n), int(n), nil
	case s.consume("("):
		lo, err := s.readNumber()
		if err != nil {
			return 0, 0, err
		}
		if err := s.expect("_"); err != nil {
			return 0, 0, err
		}
		start := s.pos
		hi, err := s.readNumber()
		if err != nil {
			return 0, 0, err
		}
		if hi < lo {
			s.pos = start
			return 0, 0, s.fail("repeat count range is inverted")
		}
		if err := s.expect(")"); err != nil {
			return 0, 0, err
		}
		return int(lo), int(hi), nil
	}
	return 0, 0, s.fail("expected repeat count")
}

func (s *scanner) parseNucleotideChange() (NucleotideChange, error) {
	anchorStart := s.pos
	r, isRange, err := s.parseNucleotideAnchor()
	if err != nil {
		return nil, err
	}

	switch {
	case s.consume("del"):
		deleted, err := s.parseNucleotideSeqDescription()
		if err != nil {
			return nil, err
		}
		if s.consume("ins") {
			inserted, err := s.parseNucleotideSeqDescription()
			if err != nil {
				return nil, err
			}
			return NewNucleotideIndel(r, deleted, inserted), nil
		}
		return NewNucleotideDeletion(r, deleted), nil

	case s.consume("dup"):
		dup, err := s.parseNucleotideSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewNucleotideDuplication(r, dup), nil

	case s.consume("ins"):
		if !isRange {
			s.pos = anchorStart
			return nil, s.fail("insertion requires the two flanking positions")
		}
		inserted, err := s.parseNucleotideSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewNucleotideInsertion(r, inserted), nil

	case s.consume("inv"):
		if !isRange {
			s.pos = anchorStart
			return nil, s.fail("inversion requires a range")
		}
		inv, err := s.parseNucleotideSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewNucleotideInversion(r, inv), nil

	case s.consume("con"):
		source, _, err := s.parseNucleotideAnchor()
		if err != nil {
			return nil, err
		}
		return NewNucleotideConversion(r, source), nil

	case s.consume("="):
		return NewNucleotideUnchanged(r, ""), nil

	case s.peek() == '[' || s.peek() == '(':
		lo, hi, err := s.parseRepeatCount()
		if err != nil {
			return nil, err
		}
		return NucleotideRepeat{Range: r, MinCount: lo, MaxCount: hi}, nil

	case isNucleotide(s.peek()):
		seqStart := s.pos
		seq := s.readNucleotides()
		switch {
		case s.consume(">"):
			if isRange {
				s.pos = anchorStart
				return nil, s.fail("substitution requires a single position")
			}
			if len(seq) != 1 {
				s.pos = seqStart
				return nil, s.fail("substitution replaces exactly one base")
			}
			toStart := s.pos
			to := s.readNucleotides()
			if len(to) != 1 {
				s.pos = toStart
				return nil, s.fail("substitution replaces exactly one base")
			}
			return NewNucleotideSubstitution(r.First, seq, to), nil
		case s.consume("="):
			return NewNucleotideUnchanged(r, seq), nil
		case s.peek() == '[' || s.peek() == '(':
			lo, hi, err := s.parseRepeatCount()
			if err != nil {
				return nil, err
			}
			return NucleotideRepeat{Range: r, Seq: seq, MinCount: lo, MaxCount: hi}, nil
		}
		return nil, s.fail("expected '>', '=' or repeat count after sequence")
	}

	return nil, s.fail("expected change type (>, del, ins, dup, inv, con, =, or repeat)")
}

// --- protein grammar ---

// parseAminoAcid reads one amino acid in three-letter or one-letter code and
// returns its one-letter form. Three-letter codes are tried first.
func (s *scanner) parseAminoAcid() (byte, bool) {
	if s.pos+3 <= len(s.input) {
		if aa, ok := AminoAcidThreeToSingle[s.input[s.pos:s.pos+3]]; ok {
			s.pos += 3
			return aa, true
		}
	}
	if c := s.peek(); c == '*' || (c >= 'A' && c <= 'Z' && isAminoAcid(c)) {
		s.pos++
		return c, true
	}
	return 0, false
}

func (s *scanner) readAminoAcids() string {
	var buf []byte
	for {
		aa, ok := s.parseAminoAcid()
		if !ok {
			return string(buf)
		}
		buf = append(buf, aa)
	}
}

func (s *scanner) parseProteinLocation() (ProteinPointLocation, error) {
	aa, ok := s.parseAminoAcid()
	if !ok {
		return ProteinPointLocation{}, s.fail("expected amino acid")
	}
	n, err := s.readNumber()
	if err != nil {
		return ProteinPointLocation{}, err
	}
	return NewProteinPointLocation(n-1, string(aa)), nil
}

func (s *scanner) parseProteinAnchor() (ProteinRange, bool, error) {
	start := s.pos
	first, err := s.parseProteinLocation()
	if err != nil {
		return ProteinRange{}, false, err
	}
	if !s.consume("_") {
		return NewProteinRangeFromPoint(first), false, nil
	}
	last, err := s.parseProteinLocation()
	if err != nil {
		return ProteinRange{}, false, err
	}
	r, err := NewProteinRange(first, last)
	if err != nil {
		return ProteinRange{}, false, s.failAt(start, err)
	}
	return r, true, nil
}

func (s *scanner) parseProteinSeqDescription() (ProteinSeqDescription, error) {
	if isDigit(s.peek()) {
		n, err := s.readNumber()
		if err != nil {
			return ProteinSeqDescription{}, err
		}
		return ProteinSeqLength(int(n)), nil
	}
	if seq := s.readAminoAcids(); seq != "" {
		return ProteinSeq(seq), nil
	}
	return ProteinSeqDescription{}, nil
}

func (s *scanner) parseFrameshiftTail() (int, error) {
	if s.consume("Ter") || s.consume("*") {
		n, err := s.readNumber()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	}
	return 0, nil
}

func (s *scanner) parseProteinChange() (ProteinChange, error) {
	anchorStart := s.pos
	r, isRange, err := s.parseProteinAnchor()
	if err != nil {
		return nil, err
	}
	requirePoint := func(what string) error {
		if isRange {
			s.pos = anchorStart
			return s.fail(what + " requires a single position")
		}
		return nil
	}

	switch {
	case s.consume("delins"):
		inserted, err := s.parseProteinSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewProteinIndel(r, inserted), nil

	case s.consume("del"):
		deleted, err := s.parseProteinSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewProteinDeletion(r, deleted), nil

	case s.consume("dup"):
		dup, err := s.parseProteinSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewProteinDuplication(r, dup), nil

	case s.consume("ins"):
		if !isRange {
			s.pos = anchorStart
			return nil, s.fail("insertion requires the two flanking positions")
		}
		inserted, err := s.parseProteinSeqDescription()
		if err != nil {
			return nil, err
		}
		return NewProteinInsertion(r, inserted), nil

	case s.consume("fs"):
		if err := requirePoint("frameshift"); err != nil {
			return nil, err
		}
		stop, err := s.parseFrameshiftTail()
		if err != nil {
			return nil, err
		}
		return NewProteinFrameshift(r.First, "", stop), nil

	case s.consume("="):
		if err := requirePoint("synonymous change"); err != nil {
			return nil, err
		}
		return NewProteinUnchanged(r.First), nil
	}

	if err := requirePoint("substitution"); err != nil {
		return nil, err
	}
	target, ok := s.parseAminoAcid()
	if !ok {
		return nil, s.fail("expected change type (amino acid, del, delins, ins, dup, fs or =)")
	}
	if s.consume("fs") {
		stop, err := s.parseFrameshiftTail()
		if err != nil {
			return nil, err
		}
		return NewProteinFrameshift(r.First, string(target), stop), nil
	}
	return NewProteinSubstitution(r.First, string(target)), nil
}
