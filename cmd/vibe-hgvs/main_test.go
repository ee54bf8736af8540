package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transcriptsFile = "../../testdata/transcripts.yaml"

// execute runs the CLI against a private config file and returns the exit
// code with captured stdout and stderr.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--config", cfg}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "vibe-hgvs version dev")
}

func TestParse(t *testing.T) {
	code, out, _ := execute(t, "parse", "NM_004006.2:c.4375C>T", "NP_003997.1:p.Trp24Cys")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "NM_004006.2:c.4375C>T\tNM_004006.2:c.4375C>T\n"+
		"NP_003997.1:p.Trp24Cys\tNP_003997.1:p.Trp24Cys\n", out)
}

func TestParse_OneLetter(t *testing.T) {
	code, out, _ := execute(t, "parse", "--aa-code", "one", "p.Gly12Cys")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "p.Gly12Cys\tp.G12C\n", out)
}

func TestParse_Errors(t *testing.T) {
	code, out, stderr := execute(t, "parse", "NM_000138.4:c.-247_-247-3delins", "c.123A>C", "c.12 3A>C")
	assert.Equal(t, ExitError, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "\tERROR\tinvalid_range: ")
	assert.Equal(t, "c.123A>C\tc.123A>C", lines[1])
	assert.Contains(t, lines[2], "\tERROR\tmalformed_variant: ")
	assert.Contains(t, stderr, "2 of 3 descriptions failed to parse")
}

func TestParse_Usage(t *testing.T) {
	code, _, stderr := execute(t, "parse")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "requires at least 1 argument")

	code, _, _ = execute(t, "parse", "--aa-code", "two", "c.1A>C")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = execute(t, "parse", "--no-such-flag", "c.1A>C")
	assert.Equal(t, ExitUsage, code)
}

func TestAnnotate_Loci(t *testing.T) {
	code, out, stderr := execute(t, "--transcripts", transcriptsFile,
		"annotate", "1:11539430:G:A", "PTCHD2:c.101-1C>T", "1-11539350-A-G")
	require.Equal(t, ExitSuccess, code, stderr)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#Uploaded_variation"))
	assert.Contains(t, lines[1], "\tsplice\t")
	assert.Contains(t, lines[1], "PTCHD2:NM_020780.2:exon1:c.100+1G>A")
	assert.Contains(t, lines[2], "PTCHD2:NM_020780.2:exon2:c.101-1C>T")
	assert.Contains(t, lines[3], "\tnone\t")
	assert.Contains(t, lines[3], "c.21A>G")
	assert.Contains(t, stderr, "loaded transcripts")
}

func TestAnnotate_Threshold(t *testing.T) {
	// 11539433 is c.100+4: outside the default window, inside a window of 5.
	code, out, _ := execute(t, "--transcripts", transcriptsFile, "annotate", "1:11539433:T:C")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "\tnone\t")

	code, out, _ = execute(t, "--transcripts", transcriptsFile, "annotate", "--threshold", "5", "1:11539433:T:C")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "PTCHD2:NM_020780.2:exon1:c.100+4T>C")
}

func TestAnnotate_VCF(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.vcf")
	code, _, stderr := execute(t, "--transcripts", transcriptsFile,
		"annotate", "--vcf", "../../testdata/splice.vcf", "-f", "vcf", "-o", outFile)
	require.Equal(t, ExitSuccess, code, stderr)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "##INFO=<ID=CSQ")
	assert.Contains(t, out, "donor1")
	assert.Contains(t, out, "PTCHD2:NM_020780.2:exon1:c.100+1G>A")
}

func TestAnnotate_Usage(t *testing.T) {
	code, _, stderr := execute(t, "annotate", "1:11539430:G:A")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "no transcript models")

	code, _, _ = execute(t, "--transcripts", transcriptsFile, "annotate")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = execute(t, "--transcripts", transcriptsFile, "annotate", "-f", "maf", "1:11539430:G:A")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = execute(t, "--transcripts", transcriptsFile, "annotate", "not a variant")
	assert.Equal(t, ExitUsage, code)
}

func TestAnnotate_DBRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.duckdb")

	code, _, stderr := execute(t, "--transcripts", transcriptsFile, "--db", db,
		"annotate", "--vcf", "../../testdata/splice.vcf")
	require.Equal(t, ExitSuccess, code, stderr)

	code, out, _ := execute(t, "--db", db, "db", "lookup", "1:11539430:G:A")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "PTCHD2:NM_020780.2:exon1:c.100+1G>A")

	code, out, _ = execute(t, "--transcripts", transcriptsFile, "--db", db, "db", "lookup", "NM_020780.2:c.101-1C>T")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "PTCHD2:NM_020780.2:exon2:c.101-1C>T")

	code, out, _ = execute(t, "--db", db, "db", "splice")
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, out, "c.21A>G")
	assert.Contains(t, out, "complicated splice mutation")

	code, out, _ = execute(t, "--db", db, "db", "gene", "SNGL")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "NM_000002.1")

	code, out, _ = execute(t, "--db", db, "db", "info")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Results:     5")
	assert.Contains(t, out, "transcripts.yaml")

	code, _, _ = execute(t, "--db", db, "db", "clear")
	require.Equal(t, ExitSuccess, code)
	code, out, _ = execute(t, "--db", db, "db", "info")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Results:     0")
}

func TestDB_Usage(t *testing.T) {
	code, _, stderr := execute(t, "db", "info")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "no database")
}

func TestConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	var out, errOut bytes.Buffer
	code := run([]string{"--config", cfg, "config", "set", "splice.threshold", "5"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code, errOut.String())
	assert.Contains(t, out.String(), "Set splice.threshold = 5")

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold: 5")

	viper.Reset()
	out.Reset()
	code = run([]string{"--config", cfg, "config", "get", "splice.threshold"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "5\n", out.String())

	viper.Reset()
	out.Reset()
	code = run([]string{"--config", cfg, "config", "set", "hgvs.amino_acid_code", "1"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out.String(), "Set hgvs.amino_acid_code = one")

	viper.Reset()
	out.Reset()
	code = run([]string{"--config", cfg, "config"}, &out, &errOut)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out.String(), "amino_acid_code: one")
}

func TestConfig_Invalid(t *testing.T) {
	code, _, stderr := execute(t, "config", "set", "colour", "red")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "unknown key")

	code, _, _ = execute(t, "config", "set", "splice.threshold", "0")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = execute(t, "config", "set", "workers", "-1")
	assert.Equal(t, ExitUsage, code)
}
