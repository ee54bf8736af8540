package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-hgvs/internal/annotate"
	"github.com/inodb/vibe-hgvs/internal/cache"
	"github.com/inodb/vibe-hgvs/internal/duckdb"
	"github.com/inodb/vibe-hgvs/internal/output"
	"github.com/inodb/vibe-hgvs/internal/vcf"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Query annotation results stored with --db",
		Long:  "Look up, search and manage annotation results stored in the DuckDB file given by --db.",
		Example: `  vibe-hgvs --db results.duckdb db info
  vibe-hgvs --db results.duckdb db lookup 1:11539430:G:A
  vibe-hgvs --db results.duckdb db gene PTCHD2
  vibe-hgvs --db results.duckdb db splice`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup <variant>...",
		Short: "Show stored annotations of variants",
		Long: `Show stored annotations of variants. HGVS arguments are mapped to the genome
with the configured transcript models.`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *duckdb.Store) error {
				var c *cache.Cache
				var variants []*vcf.Variant
				for _, arg := range args {
					spec, err := annotate.ParseVariantSpec(arg)
					if err != nil {
						return &usageError{err: err}
					}
					if spec.Type == annotate.SpecHGVS && c == nil {
						if c, err = loadTranscripts(a.logger); err != nil {
							return err
						}
					}
					vs, err := spec.Resolve(c)
					if err != nil {
						return err
					}
					variants = append(variants, vs...)
				}
				return lookupVariants(cmd.OutOrStdout(), s, variants)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "gene <name>",
		Short: "Show stored annotations on a gene",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *duckdb.Store) error {
				results, err := s.SearchByGene(args[0])
				if err != nil {
					return err
				}
				return writeResults(cmd.OutOrStdout(), results)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "splice",
		Short: "Show stored annotations classified as splice",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *duckdb.Store) error {
				results, err := s.SearchSplice()
				if err != nil {
					return err
				}
				return writeResults(cmd.OutOrStdout(), results)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the transcript source and number of stored results",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *duckdb.Store) error {
				return printInfo(cmd.OutOrStdout(), s)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all stored results",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *duckdb.Store) error {
				if err := s.ClearVariantResults(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared stored results in %s\n", s.Path())
				return nil
			})
		},
	})

	return cmd
}

// withStore opens the configured database for the duration of fn.
func withStore(fn func(*duckdb.Store) error) error {
	path := viper.GetString("db")
	if path == "" {
		return usageErrorf("no database: use --db or 'vibe-hgvs config set db <path>'")
	}
	s, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func lookupVariants(w io.Writer, s *duckdb.Store, variants []*vcf.Variant) error {
	tw := output.NewTabWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, v := range variants {
		anns, err := s.LookupVariant(v.Chrom, v.Pos, v.Ref, v.Alt)
		if err != nil {
			return err
		}
		for _, ann := range anns {
			if err := tw.Write(v, ann); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func writeResults(w io.Writer, results []duckdb.VariantResult) error {
	tw := output.NewTabWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range results {
		v := &vcf.Variant{Chrom: r.Chrom, Pos: r.Pos, Ref: r.Ref, Alt: r.Alt}
		if err := tw.Write(v, r.Ann); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printInfo(w io.Writer, s *duckdb.Store) error {
	n, err := s.CountVariantResults()
	if err != nil {
		return err
	}
	fp, ok, err := s.TranscriptSource()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Database:    %s\n", s.Path())
	fmt.Fprintf(w, "Results:     %d\n", n)
	if ok {
		fmt.Fprintf(w, "Transcripts: %s (%d bytes, modified %s)\n", fp.Path, fp.Size, fp.ModTime.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(w, "Transcripts: none recorded")
	}
	return nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s accepts %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
