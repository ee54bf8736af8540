package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-hgvs/internal/annotate"
)

// VariantResult holds the data needed to write a variant result to DuckDB.
type VariantResult struct {
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
	Ann   *annotate.Annotation
}

// resultKey is the composite key for deduplicating variant results before writing.
type resultKey struct {
	chrom, ref, alt, transcriptID string
	pos                           int64
}

const selectColumns = `chrom, pos, ref, alt, transcript_id, gene_name,
	consequence, impact, classification, allele,
	exon_number, intron_number, hgvsc, splice_annotation`

// WriteVariantResults batch-inserts variant results into DuckDB using the Appender API.
// Duplicate (chrom, pos, ref, alt, transcript_id) entries are deduplicated
// before writing, and rows already stored are replaced.
func (s *Store) WriteVariantResults(results []VariantResult) error {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[resultKey]bool, len(results))
	deduped := make([]VariantResult, 0, len(results))
	for _, r := range results {
		k := resultKey{r.Chrom, r.Ref, r.Alt, r.Ann.TranscriptID, r.Pos}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	for _, r := range deduped {
		if _, err := conn.ExecContext(ctx,
			`DELETE FROM annotations WHERE chrom=? AND pos=? AND ref=? AND alt=? AND transcript_id=?`,
			r.Chrom, r.Pos, r.Ref, r.Alt, r.Ann.TranscriptID); err != nil {
			return fmt.Errorf("replace variant result: %w", err)
		}
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "annotations")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		a := r.Ann
		if err := appender.AppendRow(
			r.Chrom, r.Pos, r.Ref, r.Alt, a.TranscriptID, a.GeneName,
			a.Consequence, a.Impact, a.Classification.String(), a.Allele,
			a.ExonNumber, a.IntronNumber, a.HGVSc, a.SpliceString(),
		); err != nil {
			return fmt.Errorf("append variant result: %w", err)
		}
	}

	return appender.Flush()
}

// ClearVariantResults removes all stored variant results.
func (s *Store) ClearVariantResults() error {
	_, err := s.db.Exec("DELETE FROM annotations")
	return err
}

// CountVariantResults returns the number of stored annotation rows.
func (s *Store) CountVariantResults() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT count(*) FROM annotations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count variant results: %w", err)
	}
	return n, nil
}

// LookupVariant queries DuckDB for previously stored annotations of a specific variant.
func (s *Store) LookupVariant(chrom string, pos int64, ref, alt string) ([]*annotate.Annotation, error) {
	rows, err := s.db.Query(`SELECT `+selectColumns+`
		FROM annotations
		WHERE chrom=? AND pos=? AND ref=? AND alt=?
		ORDER BY transcript_id`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	defer rows.Close()

	results, err := scanVariantResults(rows)
	if err != nil {
		return nil, err
	}
	anns := make([]*annotate.Annotation, len(results))
	for i, r := range results {
		anns[i] = r.Ann
	}
	return anns, nil
}

// SearchByGene queries DuckDB for all stored variant results for a gene.
func (s *Store) SearchByGene(geneName string) ([]VariantResult, error) {
	rows, err := s.db.Query(`SELECT `+selectColumns+`
		FROM annotations
		WHERE gene_name=?
		ORDER BY chrom, pos, ref, alt, transcript_id`, geneName)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanVariantResults(rows)
}

// SearchSplice returns every stored result classified as splice.
func (s *Store) SearchSplice() ([]VariantResult, error) {
	rows, err := s.db.Query(`SELECT `+selectColumns+`
		FROM annotations
		WHERE classification=?
		ORDER BY chrom, pos, ref, alt, transcript_id`, annotate.Splice.String())
	if err != nil {
		return nil, fmt.Errorf("query splice results: %w", err)
	}
	defer rows.Close()

	return scanVariantResults(rows)
}

// scanVariantResults scans rows into VariantResult slices.
func scanVariantResults(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]VariantResult, error) {
	var results []VariantResult
	for rows.Next() {
		var chrom, ref, alt, classification, splice string
		var pos int64
		ann := &annotate.Annotation{}

		if err := rows.Scan(
			&chrom, &pos, &ref, &alt, &ann.TranscriptID, &ann.GeneName,
			&ann.Consequence, &ann.Impact, &classification, &ann.Allele,
			&ann.ExonNumber, &ann.IntronNumber, &ann.HGVSc, &splice,
		); err != nil {
			return nil, fmt.Errorf("scan variant result: %w", err)
		}

		if classification == annotate.Splice.String() {
			ann.Classification = annotate.Splice
		}
		if splice != "" {
			sa, err := annotate.ParseSpliceAnnotation(splice)
			if err != nil {
				return nil, fmt.Errorf("stored result %s:%d: %w", chrom, pos, err)
			}
			ann.Splice = sa
		}
		ann.VariantID = annotate.FormatVariantID(chrom, pos, ref, alt)
		results = append(results, VariantResult{
			Chrom: chrom, Pos: pos, Ref: ref, Alt: alt, Ann: ann,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant results: %w", err)
	}
	return results, nil
}
