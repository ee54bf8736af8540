package cache

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJSON = `{"transcripts": [
  {"id": "NM_000010.1", "gene": "JSN", "chrom": "chr3", "strand": "+",
   "cds_start": 150, "cds_end": 350, "exons": [[100, 200], [300, 400]]}
]}`

const testYAML = `transcripts:
  - id: NM_000011.1
    gene: YML
    chrom: "3"
    exons:
      - [1000, 1100]
`

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestLoader_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tx.json", []byte(testJSON))

	c := New()
	require.NoError(t, NewLoader(path).Load(c))

	tx := c.GetTranscript("NM_000010.1")
	require.NotNil(t, tx)
	assert.Equal(t, "3", tx.Chrom)
	assert.Equal(t, int64(100), tx.Start)
	assert.Equal(t, int64(400), tx.End)
	assert.Equal(t, int64(200), tx.Exons[0].CDSEnd)
	assert.Len(t, c.FindTranscripts("3", 350), 1)
}

func TestLoader_Gzip(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "tx.yaml.gz", gzipBytes(t, testYAML))
	jsonPath := writeFile(t, dir, "tx.json.gz", gzipBytes(t, testJSON))

	c := New()
	require.NoError(t, NewLoader(yamlPath).Load(c))
	require.NoError(t, NewLoader(jsonPath).Load(c))
	assert.Equal(t, 2, c.TranscriptCount())
}

func TestLoader_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", []byte(testJSON))
	writeFile(t, dir, "b.yml", []byte(testYAML))
	writeFile(t, dir, "README.txt", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	c := New()
	require.NoError(t, NewLoader(dir).Load(c))
	assert.Equal(t, 2, c.TranscriptCount())
	assert.Equal(t, []string{"3"}, c.Chromosomes())
	assert.Len(t, c.FindTranscriptsByGene("YML"), 1)
}

func TestLoader_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", []byte(testYAML))
	writeFile(t, dir, "b.yaml", []byte(testYAML))

	err := NewLoader(dir).Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NM_000011.1")
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	err := NewLoader(dir).Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript files")

	txt := writeFile(t, dir, "tx.txt", []byte(testYAML))
	err = NewLoader(txt).Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	bad := writeFile(t, dir, "bad.json", []byte(`{"transcripts": [{"id": "A", "chrom": "1", "colour": "red"}]}`))
	err = NewLoader(bad).Load(New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParseTranscriptsJSON_Empty(t *testing.T) {
	txs, err := ParseTranscriptsJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "yaml", formatOf("a.YAML"))
	assert.Equal(t, "yaml", formatOf("a.yml.gz"))
	assert.Equal(t, "json", formatOf("a.json.gz"))
	assert.Equal(t, "", formatOf("a.gtf.gz"))
	assert.Equal(t, "", formatOf("a"))
}
