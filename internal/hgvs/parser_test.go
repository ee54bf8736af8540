package hgvs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"c.123A>C",
		"NM_000109.3:c.123A>C",
		"NM_000109.3:c.[123A>C];[123A>C]",
		"NM_000109.3:c.[123A>C,156C>T];[123A>C,156C>T]",
		"NM_000109.3:c.[123A>C,156C>T]",
		"NM_000138.4:c.247_248delins",
		"NM_000138.4:c.247+1_247+3delins",
		"NM_000138.4:c.247-3_247-1delins",
		"NM_000138.4:c.*247_*247+3delins",
		"NM_000138.4:c.247_248delATinsCAT",
		"NM_000138.4:c.247+1_247+3delATAinsCAT",
		"NM_000138.4:c.247-3_247-1delATAinsCAT",
		"NM_000138.4:c.*247_*247+3delATATinsCAT",
		"NM_000138.4:c.247_248del2ins3",
		"NM_000138.4:c.247+1_247+3del3ins3",
		"NM_000138.4:c.247-3_247-1del3ins3",
		"NM_000138.4:c.*247_*247+3del4ins3",
		"c.-5_-1del",
		"c.-1_1dup",
		"c.88+1G>T",
		"c.89-2A>G",
		"c.123_124insAT",
		"c.123_456inv",
		"c.123_456con888_999",
		"c.123=",
		"c.123A=",
		"c.123CAG[23]",
		"c.123_125(10_12)",
		"g.11539430C>T",
		"m.8993T>G",
		"n.76A>T",
		"NP_000100.2:p.Gly12Cys",
		"p.Trp24Ter",
		"p.Gly12=",
		"p.Lys23_Val25del",
		"p.Lys23del3",
		"p.Ala3dup",
		"p.Lys2_Met3insGlnSerLys",
		"p.Cys28delinsTrpVal",
		"p.Arg97ProfsTer23",
		"p.Arg97fs",
		"NP_000100.2:p.[Gly12Cys];[Gly13Asp]",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			v, err := Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, Serialize(v, ThreeLetter))
		})
	}
}

func TestParseBareChangeRoundTrip(t *testing.T) {
	for _, text := range []string{"123delCinsTCG", "123_124delATinsGGTAT", "123del", "123_124delAT"} {
		c, err := ParseNucleotideChange(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, SerializeChange(c, ThreeLetter))
	}
}

func TestParseIndelFields(t *testing.T) {
	c, err := ParseNucleotideChange("123_124delATinsGGTAT")
	require.NoError(t, err)

	indel, ok := c.(NucleotideIndel)
	require.True(t, ok, "got %T", c)
	assert.Equal(t, KindIndel, indel.Kind())
	assert.Equal(t, NucleotideSpace, indel.Space())
	assert.Equal(t, int64(122), indel.Range.First.BasePos)
	assert.Equal(t, int64(123), indel.Range.Last.BasePos)
	n, ok := indel.DeletedLength()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, 5, indel.InsertedLength())

	seq, err := indel.Inserted.Sequence()
	require.NoError(t, err)
	assert.Equal(t, "GGTAT", seq)
}

func TestParseLengthOnlyHasNoSequence(t *testing.T) {
	c, err := ParseNucleotideChange("247_248del2ins3")
	require.NoError(t, err)
	indel := c.(NucleotideIndel)

	assert.True(t, indel.Deleted.IsLengthOnly())
	_, err = indel.Deleted.Sequence()
	var noSeq *NoSequenceAvailableError
	require.ErrorAs(t, err, &noSeq)
	assert.Equal(t, 2, noSeq.Length)
}

func TestDeletedLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"123_125del", 3, true},
		{"123_124delAT", 2, true},
		{"247+1_247+5del", 5, true},
		{"247+1_300-3del4", 4, true},
		{"247+1_300-3del", 0, false},
		{"-5_*3del", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseNucleotideChange(tt.in)
			require.NoError(t, err)
			del, ok := c.(NucleotideDeletion)
			require.True(t, ok, "got %T", c)

			n, ok := del.DeletedLength()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestParseLocations(t *testing.T) {
	c, err := ParseNucleotideChange("*247_*247+3delins")
	require.NoError(t, err)
	r := c.Anchor()
	assert.True(t, r.First.DownstreamOfCDS)
	assert.Equal(t, int64(246), r.First.BasePos)
	assert.Equal(t, int64(3), r.Last.Offset)

	c, err = ParseNucleotideChange("-247G>A")
	require.NoError(t, err)
	sub := c.(NucleotideSubstitution)
	assert.True(t, sub.Position.IsUpstreamOfCDS())
	assert.Equal(t, int64(-247), sub.Position.BasePos)
}

func TestParseProteinCodes(t *testing.T) {
	three, err := Parse("p.Gly12Cys")
	require.NoError(t, err)
	one, err := Parse("p.G12C")
	require.NoError(t, err)

	// Value-equal, string-distinct by code.
	assert.Equal(t, three, one)
	assert.Equal(t, "p.Gly12Cys", Serialize(one, ThreeLetter))
	assert.Equal(t, "p.G12C", Serialize(three, OneLetter))

	for _, text := range []string{"p.G12C", "p.W24*", "p.R97Pfs*23", "p.C28delinsWV", "p.K2_M3insQSK"} {
		v, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, Serialize(v, OneLetter))
	}
}

func TestParseProteinChangeFields(t *testing.T) {
	c, err := ParseProteinChange("Arg97ProfsTer23")
	require.NoError(t, err)
	fs, ok := c.(ProteinFrameshift)
	require.True(t, ok)
	assert.Equal(t, NewProteinPointLocation(96, "R"), fs.Location)
	assert.Equal(t, "P", fs.Target)
	assert.Equal(t, 23, fs.StopDistance)
	assert.Equal(t, ProteinSpace, fs.Space())
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad delins payload", "123delinsXYZ!"},
		{"empty", ""},
		{"whitespace", "c.123 A>C"},
		{"missing marker", "NM_000109.3:123A>C"},
		{"unknown marker", "x.123A>C"},
		{"trailing input", "c.123A>Cfoo"},
		{"position zero", "c.0A>C"},
		{"range substitution", "c.123_124A>C"},
		{"multi-base substitution", "c.123AT>C"},
		{"insertion at point", "c.123insA"},
		{"unclosed allele", "c.[123A>C"},
		{"empty allele", "c.[]"},
		{"dangling separator", "c.[123A>C];"},
		{"protein change on cds", "c.Gly12Cys"},
		{"nucleotide change on protein", "p.123A>C"},
		{"protein range substitution", "p.Gly12_Gly13Cys"},
		{"inverted repeat range", "c.123CAG(12_10)"},
		{"bad reference", "NM 1:c.1A>C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, v)

			var malformed *MalformedVariantError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.input, malformed.Input)
		})
	}
}

func TestParseMalformedOffset(t *testing.T) {
	_, err := ParseNucleotideChange("123delinsXYZ!")
	var malformed *MalformedVariantError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 9, malformed.Offset)
	assert.Equal(t, "XYZ!", malformed.Span())
}

func TestParseInvertedRange(t *testing.T) {
	_, err := Parse("NM_000138.4:c.-247_-247-3delins")
	require.Error(t, err)

	var malformed *MalformedVariantError
	require.ErrorAs(t, err, &malformed)
	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "-247", rangeErr.First)
	assert.Equal(t, "-247-3", rangeErr.Last)
}

func TestParseSingleAllele(t *testing.T) {
	v, err := ParseSingleAllele("NM_000109.3:c.123A>C")
	require.NoError(t, err)
	assert.Equal(t, "NM_000109.3", v.RefID())
	assert.Equal(t, CodingDNA, v.SequenceType())
	assert.Equal(t, 1, v.Allele().Len())

	_, err = ParseSingleAllele("NM_000109.3:c.[123A>C];[123A>C]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingleAlleleRequired))
}

func TestParseMultiAllele(t *testing.T) {
	v, err := Parse("NM_000109.3:c.[123A>C,156C>T];[123A>C,156C>T]")
	require.NoError(t, err)

	multi, ok := v.(*MultiAlleleVariant)
	require.True(t, ok)
	alleles := multi.Alleles()
	require.Len(t, alleles, 2)
	assert.Equal(t, 2, alleles[0].Len())
	assert.Equal(t, alleles[0], alleles[1])

	sub := alleles[0].Change(1).(NucleotideSubstitution)
	assert.Equal(t, "C", sub.FromNT)
	assert.Equal(t, "T", sub.ToNT)
	assert.Equal(t, int64(155), sub.Position.BasePos)
}
