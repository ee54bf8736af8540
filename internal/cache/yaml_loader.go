package cache

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// transcriptFile is the on-disk layout of a YAML transcript file:
//
//	transcripts:
//	  - id: NM_000138.4
//	    gene: FBN1
//	    chrom: "15"
//	    strand: "+"
//	    cds_start: 48408313
//	    cds_end: 48645709
//	    exons:
//	      - [48408306, 48408560]
//	      - [48410889, 48411017]
type transcriptFile struct {
	Transcripts []transcriptRecord `yaml:"transcripts" json:"transcripts"`
}

type transcriptRecord struct {
	ID       string     `yaml:"id" json:"id"`
	Gene     string     `yaml:"gene" json:"gene"`
	Chrom    string     `yaml:"chrom" json:"chrom"`
	Strand   string     `yaml:"strand" json:"strand"`
	Start    int64      `yaml:"start" json:"start"`
	End      int64      `yaml:"end" json:"end"`
	CDSStart int64      `yaml:"cds_start" json:"cds_start"`
	CDSEnd   int64      `yaml:"cds_end" json:"cds_end"`
	Exons    [][2]int64 `yaml:"exons" json:"exons"`
}

// ParseTranscripts decodes and validates YAML transcript records.
func ParseTranscripts(r io.Reader) ([]*Transcript, error) {
	var file transcriptFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode transcripts: %w", err)
	}

	return convertRecords(file.Transcripts)
}

// convertRecords validates decoded records and rejects duplicate IDs.
func convertRecords(records []transcriptRecord) ([]*Transcript, error) {
	transcripts := make([]*Transcript, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		t, err := rec.toTranscript()
		if err != nil {
			return nil, fmt.Errorf("transcript %d (%s): %w", i+1, rec.ID, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("transcript %d: duplicate id %s", i+1, t.ID)
		}
		seen[t.ID] = true
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}

func (rec transcriptRecord) toTranscript() (*Transcript, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if rec.Chrom == "" {
		return nil, fmt.Errorf("missing chrom")
	}
	strand, err := parseStrand(rec.Strand)
	if err != nil {
		return nil, err
	}
	if len(rec.Exons) == 0 {
		return nil, fmt.Errorf("no exons")
	}

	t := &Transcript{
		ID:       rec.ID,
		GeneName: rec.Gene,
		Chrom:    normalizeChrom(rec.Chrom),
		Strand:   strand,
		CDSStart: rec.CDSStart,
		CDSEnd:   rec.CDSEnd,
	}

	t.Exons = make([]Exon, len(rec.Exons))
	for i, e := range rec.Exons {
		if e[0] <= 0 || e[1] < e[0] {
			return nil, fmt.Errorf("exon %d: invalid interval [%d, %d]", i+1, e[0], e[1])
		}
		t.Exons[i] = Exon{Start: e[0], End: e[1]}
	}

	// Exons are listed in transcript order; a reverse-strand transcript
	// lists them by descending genomic position.
	ordered := sort.SliceIsSorted(t.Exons, func(i, j int) bool { return t.Exons[i].Start < t.Exons[j].Start })
	if strand == -1 {
		ordered = sort.SliceIsSorted(t.Exons, func(i, j int) bool { return t.Exons[i].Start > t.Exons[j].Start })
	}
	if !ordered {
		return nil, fmt.Errorf("exons are not in transcript order")
	}
	for i := 1; i < len(t.Exons); i++ {
		a, b := t.Exons[i-1], t.Exons[i]
		if b.Start <= a.End && a.Start <= b.End {
			return nil, fmt.Errorf("exons %d and %d overlap", i, i+1)
		}
	}

	first, last := t.Exons[0], t.Exons[len(t.Exons)-1]
	t.Start, t.End = min(first.Start, last.Start), max(first.End, last.End)
	if rec.Start != 0 {
		t.Start = rec.Start
	}
	if rec.End != 0 {
		t.End = rec.End
	}

	if (t.CDSStart == 0) != (t.CDSEnd == 0) {
		return nil, fmt.Errorf("cds_start and cds_end must both be set or both be omitted")
	}
	if t.IsProteinCoding() && (t.CDSStart > t.CDSEnd || t.CDSStart < t.Start || t.CDSEnd > t.End) {
		return nil, fmt.Errorf("CDS [%d, %d] outside transcript [%d, %d]", t.CDSStart, t.CDSEnd, t.Start, t.End)
	}

	t.AssignExonCDS()
	return t, nil
}

func parseStrand(s string) (int8, error) {
	switch s {
	case "+", "1", "+1", "":
		return 1, nil
	case "-", "-1":
		return -1, nil
	}
	return 0, fmt.Errorf("invalid strand %q", s)
}

// normalizeChrom strips a leading "chr" so "chr1" and "1" index together.
func normalizeChrom(chrom string) string {
	return strings.TrimPrefix(chrom, "chr")
}
