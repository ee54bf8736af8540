package hgvs

import "fmt"

// AminoAcidCode selects how amino acids are rendered.
type AminoAcidCode int

const (
	ThreeLetter AminoAcidCode = iota
	OneLetter
)

func (c AminoAcidCode) String() string {
	if c == OneLetter {
		return "one"
	}
	return "three"
}

// ParseAminoAcidCode parses "one"/"1" or "three"/"3".
func ParseAminoAcidCode(s string) (AminoAcidCode, error) {
	switch s {
	case "one", "1", "one-letter":
		return OneLetter, nil
	case "three", "3", "three-letter", "":
		return ThreeLetter, nil
	default:
		return ThreeLetter, fmt.Errorf("unknown amino acid code %q (expected one or three)", s)
	}
}

// AminoAcidSingleToThree maps single-letter amino acid codes to three-letter codes.
var AminoAcidSingleToThree = map[byte]string{
	'A': "Ala", 'R': "Arg", 'N': "Asn", 'D': "Asp",
	'C': "Cys", 'E': "Glu", 'Q': "Gln", 'G': "Gly",
	'H': "His", 'I': "Ile", 'L': "Leu", 'K': "Lys",
	'M': "Met", 'F': "Phe", 'P': "Pro", 'S': "Ser",
	'T': "Thr", 'W': "Trp", 'Y': "Tyr", 'V': "Val",
	'U': "Sec", 'X': "Xaa", '*': "Ter",
}

// AminoAcidThreeToSingle maps three-letter amino acid codes to single-letter.
var AminoAcidThreeToSingle map[string]byte

func init() {
	AminoAcidThreeToSingle = make(map[string]byte, len(AminoAcidSingleToThree))
	for single, three := range AminoAcidSingleToThree {
		AminoAcidThreeToSingle[three] = single
	}
}

// isAminoAcid reports whether aa is a known single-letter code.
func isAminoAcid(aa byte) bool {
	_, ok := AminoAcidSingleToThree[aa]
	return ok
}

// formatAminoAcids renders a one-letter amino acid sequence in the given code.
func formatAminoAcids(seq string, code AminoAcidCode) string {
	if code == OneLetter {
		return seq
	}
	buf := make([]byte, 0, 3*len(seq))
	for i := 0; i < len(seq); i++ {
		three, ok := AminoAcidSingleToThree[seq[i]]
		if !ok {
			three = "Xaa"
		}
		buf = append(buf, three...)
	}
	return string(buf)
}
