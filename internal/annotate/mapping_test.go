package annotate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/hgvs"
)

// testTranscript mirrors NM_020780.2 in testdata/transcripts.yaml:
// c.1 = 11539330, exon 1 ends at c.100, exon 2 is c.101..c.201, exon 3
// starts at c.202 and the CDS ends at c.302 (11541100).
func testTranscript() *cache.Transcript {
	t := &cache.Transcript{
		ID: "NM_020780.2", GeneName: "PTCHD2", Chrom: "1", Strand: 1,
		Start: 11539300, End: 11541200, CDSStart: 11539330, CDSEnd: 11541100,
		Exons: []cache.Exon{
			{Start: 11539300, End: 11539429},
			{Start: 11540000, End: 11540100},
			{Start: 11541000, End: 11541200},
		},
	}
	t.AssignExonCDS()
	return t
}

func testSingleExonTranscript() *cache.Transcript {
	t := &cache.Transcript{
		ID: "NM_000002.1", GeneName: "SNGL", Chrom: "1", Strand: 1,
		Start: 11600000, End: 11601000, CDSStart: 11600100, CDSEnd: 11600900,
		Exons: []cache.Exon{{Start: 11600000, End: 11601000}},
	}
	t.AssignExonCDS()
	return t
}

func testReverseTranscript() *cache.Transcript {
	t := &cache.Transcript{
		ID: "NM_000003.1", GeneName: "REVS", Chrom: "1", Strand: -1,
		Start: 11700000, End: 11703000, CDSStart: 11700100, CDSEnd: 11702900,
		Exons: []cache.Exon{
			{Start: 11702000, End: 11703000},
			{Start: 11700000, End: 11700500},
		},
	}
	t.AssignExonCDS()
	return t
}

func testNonCodingTranscript() *cache.Transcript {
	t := &cache.Transcript{
		ID: "NR_000004.1", GeneName: "NCRNA", Chrom: "2", Strand: 1,
		Start: 5000, End: 6100,
		Exons: []cache.Exon{
			{Start: 5000, End: 5100},
			{Start: 6000, End: 6100},
		},
	}
	t.AssignExonCDS()
	return t
}

// loadTestCache loads testdata/transcripts.yaml.
func loadTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c := cache.New()
	require.NoError(t, cache.NewLoader(findTestFile(t, "transcripts.yaml")).Load(c))
	return c
}

// findTestFile locates a file in the repository testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	paths := []string{
		filepath.Join("testdata", name),
		filepath.Join("..", "..", "testdata", name),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	t.Fatalf("test file not found: %s", name)
	return ""
}

func TestCDSLocation(t *testing.T) {
	tx := testTranscript()

	tests := []struct {
		pos  int64
		want string
	}{
		{11539330, "1"},
		{11539429, "100"},
		{11540000, "101"},
		{11540100, "201"},
		{11541000, "202"},
		{11541100, "302"},
		{11539329, "-1"},
		{11539300, "-30"},
		{11541101, "*1"},
		{11541200, "*100"},
		{11539430, "100+1"},
		{11539431, "100+2"},
		{11539999, "101-1"},
		{11539998, "101-2"},
		{11539714, "100+285"},
		{11539715, "101-285"},
		{11540550, "201+450"}, // equidistant: upstream exon wins
		{11540551, "202-449"},
		{11539290, "-30-10"},
		{11541210, "*100+10"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := CDSLocation(hgvs.NewGenomePosition("1", tt.pos, hgvs.OneBased), tx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCDSLocation_ZeroBasedInput(t *testing.T) {
	got, err := CDSLocation(hgvs.NewGenomePosition("1", 11539429, hgvs.ZeroBased), testTranscript())
	require.NoError(t, err)
	assert.Equal(t, "100+1", got.String())
}

func TestCDSLocation_Unsupported(t *testing.T) {
	pos := hgvs.NewGenomePosition("1", 11700200, hgvs.OneBased)

	_, err := CDSLocation(pos, testReverseTranscript())
	var strandErr *hgvs.UnsupportedStrandError
	require.True(t, errors.As(err, &strandErr))
	assert.Equal(t, "NM_000003.1", strandErr.TranscriptID)
	assert.Equal(t, int8(-1), strandErr.Strand)

	_, err = CDSLocation(hgvs.NewGenomePosition("2", 5050, hgvs.OneBased), testNonCodingTranscript())
	assert.ErrorIs(t, err, ErrNonCoding)
}

func TestLocationToGenomic_RoundTrip(t *testing.T) {
	tx := testTranscript()

	for g := int64(11539280); g <= 11541220; g++ {
		loc, err := CDSLocation(hgvs.NewGenomePosition("1", g, hgvs.OneBased), tx)
		require.NoError(t, err)
		back, err := LocationToGenomic(loc, tx)
		require.NoError(t, err, "c.%s", loc)
		if back.Pos != g {
			t.Fatalf("genomic %d -> c.%s -> %d", g, loc, back.Pos)
		}
	}
}

func TestLocationToGenomic_OutOfRange(t *testing.T) {
	tx := testTranscript()

	for _, loc := range []hgvs.NucleotidePointLocation{
		hgvs.NewNucleotidePointLocation(302, 0, false), // c.303
		hgvs.UpstreamLocation(31, 0),
		hgvs.DownstreamLocation(101, 0),
	} {
		_, err := LocationToGenomic(loc, tx)
		assert.ErrorIs(t, err, ErrOutsideTranscript, "c.%s", loc)
	}
}

func TestGenomicToCDS(t *testing.T) {
	tx := testTranscript()

	tests := []struct {
		pos  int64
		want int64
	}{
		{11539330, 1},
		{11539429, 100},
		{11540000, 101},
		{11541100, 302},
		{11539329, 0},
		{11539500, 0},
		{11541101, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenomicToCDS(tt.pos, tx), "GenomicToCDS(%d)", tt.pos)
	}

	assert.Zero(t, GenomicToCDS(11700200, testReverseTranscript()))
}

func TestExonicDistance(t *testing.T) {
	tx := testTranscript()

	assert.Equal(t, int64(1), exonicDistance(11539329, 11539330, tx))
	assert.Equal(t, int64(101), exonicDistance(11539429, 11540100, tx))
	assert.Equal(t, int64(0), exonicDistance(11539500, 11539600, tx))
}
