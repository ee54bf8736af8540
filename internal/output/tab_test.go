package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

func donorAnnotation() *annotate.Annotation {
	return &annotate.Annotation{
		VariantID:      "1_11539430_G/A",
		TranscriptID:   "NM_020780.2",
		GeneName:       "PTCHD2",
		Consequence:    annotate.ConsequenceSpliceDonor,
		Impact:         annotate.ImpactHigh,
		Classification: annotate.Splice,
		Allele:         "A",
		IntronNumber:   "1/2",
		HGVSc:          "c.100+1G>A",
		Splice: &annotate.SpliceAnnotation{
			Kind:       annotate.SpliceDonor,
			Gene:       "PTCHD2",
			Transcript: "NM_020780.2",
			ExonNumber: 1,
			Location:   hgvs.NewNucleotidePointLocation(99, 1, false),
			Ref:        "G",
			Alt:        "A",
		},
	}
}

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t, "#Uploaded_variation\tLocation\tAllele\tGene\tFeature\tClassification\t"+
		"Consequence\tIMPACT\tEXON\tINTRON\tHGVSc\tSplice_annotation\n", buf.String())
}

func TestTabWriter_Write_Donor(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	v := &vcf.Variant{Chrom: "1", Pos: 11539430, ID: "donor1", Ref: "G", Alt: "A"}

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(v, donorAnnotation()))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 12)
	assert.Equal(t, []string{
		"donor1",
		"1:11539430",
		"A",
		"PTCHD2",
		"NM_020780.2",
		"splice",
		"splice_donor_variant",
		"HIGH",
		"-",
		"1/2",
		"c.100+1G>A",
		"PTCHD2:NM_020780.2:exon1:c.100+1G>A",
	}, fields)
}

func TestTabWriter_Write_Intergenic(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	v := &vcf.Variant{Chrom: "1", Pos: 5, ID: ".", Ref: "A", Alt: "G"}
	ann := &annotate.Annotation{
		VariantID:   "1_5_A/G",
		Consequence: annotate.ConsequenceIntergenicVariant,
		Impact:      annotate.ImpactModifier,
		Allele:      "G",
	}

	require.NoError(t, w.Write(v, ann))
	require.NoError(t, w.Flush())

	assert.Equal(t, "1_5_A/G\t1:5\tG\t-\t-\tnone\tintergenic_variant\tMODIFIER\t-\t-\t-\t-\n", buf.String())
}
