package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/duckdb"
	"github.com/inodb/vibe-hgvs/internal/output"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

func newAnnotateCmd(a *app) *cobra.Command {
	var (
		vcfPath      string
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "annotate [<variant>...]",
		Short: "Annotate variants with HGVSc and splice classification",
		Long: `Annotate genomic variants against the loaded transcript models.

Variants are given as arguments or read from a VCF file with --vcf. An argument
is a genomic locus (1:11539430:G:A, chr1-11539430-G-A, 1:11539430G>A) or an HGVS
substitution that is mapped back to the genome (NM_020780.2:c.100+1G>A,
PTCHD2:c.100+1G>A, 1:g.11539430G>A).

With --db the results are also stored in DuckDB.`,
		Example: `  vibe-hgvs annotate --transcripts transcripts.yaml 1:11539430:G:A
  vibe-hgvs annotate --transcripts transcripts.yaml PTCHD2:c.100+1G>A
  vibe-hgvs annotate --vcf input.vcf -f vcf -o output.vcf
  vibe-hgvs annotate --vcf input.vcf --db results.duckdb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if vcfPath == "" && len(args) == 0 {
				return usageErrorf("give variants as arguments or use --vcf")
			}
			if vcfPath != "" && len(args) > 0 {
				return usageErrorf("--vcf cannot be combined with variant arguments")
			}
			if outputFormat != "tab" && outputFormat != "vcf" {
				return usageErrorf("unknown output format %q (expected tab or vcf)", outputFormat)
			}

			c, err := loadTranscripts(a.logger)
			if err != nil {
				return err
			}

			var parser vcf.VariantParser
			var header []string
			if vcfPath != "" {
				p, err := vcf.NewParser(vcfPath)
				if err != nil {
					return err
				}
				header = p.Header()
				parser = p
			} else {
				variants, err := resolveSpecs(c, args)
				if err != nil {
					return err
				}
				parser = vcf.NewSliceParser(variants)
			}
			defer parser.Close()

			out := cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			return runAnnotate(cmd.Context(), a.logger, c, parser, newWriter(out, outputFormat, header))
		},
	}

	cmd.Flags().StringVar(&vcfPath, "vcf", "", "Read variants from a VCF file ('-' for stdin)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "tab", "Output format: tab, vcf")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Int("threshold", annotate.DefaultSpliceThreshold, "Splice window size in bases on each side of a boundary")
	_ = viper.BindPFlag("splice.threshold", cmd.Flags().Lookup("threshold"))

	return cmd
}

func newWriter(w io.Writer, format string, header []string) annotate.AnnotationWriter {
	if format == "vcf" {
		return output.NewVCFWriter(w, header)
	}
	return output.NewTabWriter(w)
}

// loadTranscripts loads the configured transcript models.
func loadTranscripts(logger *zap.Logger) (*cache.Cache, error) {
	path := viper.GetString("transcripts")
	if path == "" {
		return nil, usageErrorf("no transcript models: use --transcripts or 'vibe-hgvs config set transcripts <path>'")
	}
	c := cache.New()
	if err := cache.NewLoader(path).Load(c); err != nil {
		return nil, err
	}
	logger.Info("loaded transcripts",
		zap.String("path", path),
		zap.Int("transcripts", c.TranscriptCount()))
	return c, nil
}

// resolveSpecs turns command-line variant specifications into genomic variants.
func resolveSpecs(c *cache.Cache, specs []string) ([]*vcf.Variant, error) {
	var variants []*vcf.Variant
	for _, s := range specs {
		spec, err := annotate.ParseVariantSpec(s)
		if err != nil {
			return nil, &usageError{err: err}
		}
		vs, err := spec.Resolve(c)
		if err != nil {
			return nil, err
		}
		variants = append(variants, vs...)
	}
	return variants, nil
}

func runAnnotate(ctx context.Context, logger *zap.Logger, c *cache.Cache, parser vcf.VariantParser, writer annotate.AnnotationWriter) error {
	ann := annotate.NewAnnotator(c)
	ann.SetLogger(logger)
	ann.SetSpliceThreshold(viper.GetInt("splice.threshold"))
	ann.SetWorkers(viper.GetInt("workers"))

	if dbPath := viper.GetString("db"); dbPath != "" {
		store, err := openStore(logger, dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		writer = output.NewMultiWriter(writer, duckdb.NewResultWriter(store))
	}

	return ann.AnnotateAll(ctx, parser, writer)
}

// openStore opens the result database and drops results computed from a
// different transcript file.
func openStore(logger *zap.Logger, path string) (*duckdb.Store, error) {
	store, err := duckdb.Open(path)
	if err != nil {
		return nil, err
	}
	fp, err := duckdb.StatFile(viper.GetString("transcripts"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("stat transcript source: %w", err)
	}
	cleared, err := store.SyncTranscriptSource(fp)
	if err != nil {
		store.Close()
		return nil, err
	}
	if cleared {
		logger.Info("transcript models changed, cleared stored results", zap.String("db", path))
	}
	return store, nil
}
