package hgvs

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize renders a variant in canonical form. Amino acids are rendered
// in the given code; nucleotide variants ignore it.
//
// A single allele with one change is written bare, with several changes it is
// bracketed and comma-separated. Every allele of a multi-allele variant is
// bracketed; alleles are separated by ';'.
func Serialize(v Variant, code AminoAcidCode) string {
	var b strings.Builder
	if v.RefID() != "" {
		b.WriteString(v.RefID())
		b.WriteByte(':')
	}
	b.WriteString(v.SequenceType().Prefix())

	switch v := v.(type) {
	case *SingleAlleleVariant:
		a := v.Allele()
		if a.Len() == 1 {
			b.WriteString(SerializeChange(a.Change(0), code))
		} else {
			writeAllele(&b, a, code)
		}
	case *MultiAlleleVariant:
		for i, a := range v.alleles {
			if i > 0 {
				b.WriteByte(';')
			}
			writeAllele(&b, a, code)
		}
	default:
		panic(fmt.Sprintf("hgvs: unhandled variant type %T", v))
	}
	return b.String()
}

func writeAllele(b *strings.Builder, a Allele, code AminoAcidCode) {
	b.WriteByte('[')
	for i, c := range a.changes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(SerializeChange(c, code))
	}
	b.WriteByte(']')
}

// SerializeChange renders a single change body (no reference or marker).
func SerializeChange(c Change, code AminoAcidCode) string {
	switch c := c.(type) {
	case NucleotideSubstitution:
		return c.Position.String() + c.FromNT + ">" + c.ToNT
	case NucleotideDeletion:
		return c.Range.String() + "del" + c.Deleted.String()
	case NucleotideDuplication:
		return c.Range.String() + "dup" + c.Duplicated.String()
	case NucleotideInsertion:
		return c.Range.String() + "ins" + c.Inserted.String()
	case NucleotideIndel:
		return c.Range.String() + "del" + c.Deleted.String() + "ins" + c.Inserted.String()
	case NucleotideInversion:
		return c.Range.String() + "inv" + c.Inverted.String()
	case NucleotideRepeat:
		s := c.Range.String() + c.Seq
		if c.MinCount == c.MaxCount {
			return s + "[" + strconv.Itoa(c.MinCount) + "]"
		}
		return s + "(" + strconv.Itoa(c.MinCount) + "_" + strconv.Itoa(c.MaxCount) + ")"
	case NucleotideConversion:
		return c.Range.String() + "con" + c.Source.String()
	case NucleotideUnchanged:
		return c.Range.String() + c.Seq + "="

	case ProteinSubstitution:
		return c.Location.changeFormat(code) + formatAminoAcids(c.Target, code)
	case ProteinUnchanged:
		return c.Location.changeFormat(code) + "="
	case ProteinDeletion:
		return c.Range.changeFormat(code) + "del" + c.Deleted.Format(code)
	case ProteinDuplication:
		return c.Range.changeFormat(code) + "dup" + c.Duplicated.Format(code)
	case ProteinInsertion:
		return c.Range.changeFormat(code) + "ins" + c.Inserted.Format(code)
	case ProteinIndel:
		return c.Range.changeFormat(code) + "delins" + c.Inserted.Format(code)
	case ProteinFrameshift:
		s := c.Location.changeFormat(code) + formatAminoAcids(c.Target, code) + "fs"
		if c.StopDistance > 0 {
			s += formatAminoAcids("*", code) + strconv.Itoa(c.StopDistance)
		}
		return s

	default:
		panic(fmt.Sprintf("hgvs: unhandled change type %T", c))
	}
}
