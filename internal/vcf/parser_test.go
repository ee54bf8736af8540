package vcf

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testVCF = `##fileformat=VCFv4.2
##contig=<ID=1>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
1	11539430	rs1	g	a	.	PASS	.
1	11539500	.	A	C,T	50	PASS	DP=10

chr15	48408560	.	GT	G	.	.	.
`

func readAll(t *testing.T, p VariantParser) []*Variant {
	t.Helper()
	var out []*Variant
	for {
		v, err := p.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if v == nil {
			return out
		}
		out = append(out, v)
	}
}

func TestParser_FromReader(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader(testVCF))
	if err != nil {
		t.Fatalf("NewParserFromReader() error: %v", err)
	}
	defer p.Close()

	if got := len(p.Header()); got != 3 {
		t.Errorf("header lines = %d, want 3", got)
	}

	variants := readAll(t, p)
	if len(variants) != 4 {
		t.Fatalf("got %d variants, want 4 (multi-allelic split)", len(variants))
	}

	first := variants[0]
	if first.Chrom != "1" || first.Pos != 11539430 || first.ID != "rs1" || first.Ref != "G" || first.Alt != "A" {
		t.Errorf("first variant = %+v", first)
	}
	if variants[1].Alt != "C" || variants[2].Alt != "T" || variants[2].Pos != 11539500 {
		t.Errorf("split alleles = %+v, %+v", variants[1], variants[2])
	}
	if variants[2].Qual != "50" || variants[2].Filter != "PASS" || variants[2].Info != "DP=10" {
		t.Errorf("split allele lost QUAL/FILTER/INFO: %+v", variants[2])
	}
	if variants[3].NormalizeChrom() != "15" || !variants[3].IsDeletion() {
		t.Errorf("last variant = %+v", variants[3])
	}
	if p.LineNumber() != 7 {
		t.Errorf("LineNumber() = %d, want 7", p.LineNumber())
	}
}

func TestParser_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(testVCF)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "test.vcf.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(path)
	if err != nil {
		t.Fatalf("NewParser() error: %v", err)
	}
	defer p.Close()

	if got := len(readAll(t, p)); got != 4 {
		t.Errorf("got %d variants, want 4", got)
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"no header", "1\t100\t.\tA\tC\n", 1},
		{"header only meta", "##fileformat=VCFv4.2\n", 1},
		{"too few columns", "#CHROM\tPOS\tID\tREF\tALT\n1\t100\tA\n", 2},
		{"bad position", "#CHROM\tPOS\tID\tREF\tALT\n1\tx\t.\tA\tC\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParserFromReader(strings.NewReader(tt.input))
			if err == nil {
				_, err = p.Next()
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Line != tt.line {
				t.Errorf("ParseError.Line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestSliceParser(t *testing.T) {
	p := NewSliceParser([]*Variant{{Chrom: "1", Pos: 1, Ref: "A", Alt: "C"}, {Chrom: "1", Pos: 2, Ref: "A", Alt: "G"}})
	defer p.Close()

	if got := len(readAll(t, p)); got != 2 {
		t.Errorf("got %d variants, want 2", got)
	}
	if p.LineNumber() != 2 {
		t.Errorf("LineNumber() = %d, want 2", p.LineNumber())
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Line: 42, Message: "expected at least 5 columns, found 3"}

	want := "vcf parse error at line 42: expected at least 5 columns, found 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
