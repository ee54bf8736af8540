package annotate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

// VariantSpecType identifies the kind of variant specification.
type VariantSpecType int

const (
	SpecGenomic VariantSpecType = iota
	SpecHGVS
)

// VariantSpec holds a parsed variant specification.
type VariantSpec struct {
	Type VariantSpecType
	// Genomic fields
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
	// HGVS fields
	HGVS *hgvs.SingleAlleleVariant
}

// Regexes for variant spec parsing.
var (
	// Genomic: chr12:25245350:C:A  or  12-25245350-C-A  or  1:11539430G>A
	reGenomic = regexp.MustCompile(`^(chr)?(\w+)[:\-](\d+)[:\-]?([ACGTNacgtn]+)[>:\-/]([ACGTNacgtn]+)$`)
	// HGVS with a space separator: PTCHD2 c.100+1G>A
	reHGVSSpaced = regexp.MustCompile(`^(\S+)\s+([cgmnp]\..+)$`)
)

// ParseVariantSpec parses a variant specification string into a VariantSpec.
// It tries the genomic format first, then HGVS. HGVS syntax errors wrap
// *hgvs.MalformedVariantError.
func ParseVariantSpec(input string) (*VariantSpec, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty variant specification")
	}

	if spec, ok := parseGenomic(input); ok {
		return spec, nil
	}

	if m := reHGVSSpaced.FindStringSubmatch(input); m != nil {
		input = m[1] + ":" + m[2]
	}
	v, err := hgvs.ParseSingleAllele(input)
	if err != nil {
		return nil, fmt.Errorf("cannot parse variant specification %q: %w", input, err)
	}
	return &VariantSpec{Type: SpecHGVS, HGVS: v}, nil
}

func parseGenomic(input string) (*VariantSpec, bool) {
	m := reGenomic.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	pos, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil || pos <= 0 {
		return nil, false
	}
	return &VariantSpec{
		Type:  SpecGenomic,
		Chrom: m[2],
		Pos:   pos,
		Ref:   strings.ToUpper(m[4]),
		Alt:   strings.ToUpper(m[5]),
	}, true
}

// Variant returns the genomic variant of a SpecGenomic specification.
func (s *VariantSpec) Variant() *vcf.Variant {
	return &vcf.Variant{Chrom: s.Chrom, Pos: s.Pos, Ref: s.Ref, Alt: s.Alt}
}

func (s *VariantSpec) String() string {
	if s.Type == SpecHGVS {
		return s.HGVS.String()
	}
	return s.Chrom + ":" + strconv.FormatInt(s.Pos, 10) + s.Ref + ">" + s.Alt
}
