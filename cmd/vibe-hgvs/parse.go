package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-hgvs/internal/hgvs"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <hgvs>...",
		Short: "Parse HGVS descriptions and print their canonical form",
		Long: `Parse HGVS variant descriptions and print one line per input:

  <input> <TAB> <canonical form>          on success
  <input> <TAB> ERROR <TAB> <kind>: <msg>  on failure

Protein changes are written with the configured amino acid code.`,
		Example: `  vibe-hgvs parse NM_004006.2:c.4375C>T
  vibe-hgvs parse --aa-code one 'NP_003997.1:p.Trp24Cys'
  vibe-hgvs parse 'NM_004006.2:c.[2376G>C;3103del]'`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := hgvs.ParseAminoAcidCode(viper.GetString("hgvs.amino_acid_code"))
			if err != nil {
				return &usageError{err: err}
			}
			return runParse(cmd.OutOrStdout(), args, code)
		},
	}

	cmd.Flags().String("aa-code", "three", "Amino acid code for protein output: one or three")
	_ = viper.BindPFlag("hgvs.amino_acid_code", cmd.Flags().Lookup("aa-code"))

	return cmd
}

func runParse(w io.Writer, inputs []string, code hgvs.AminoAcidCode) error {
	failed := 0
	for _, in := range inputs {
		v, err := hgvs.Parse(in)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s\tERROR\t%s: %v\n", in, errorKind(err), err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", in, hgvs.Serialize(v, code))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d descriptions failed to parse", failed, len(inputs))
	}
	return nil
}

// errorKind names the most specific hgvs error kind in err's chain.
func errorKind(err error) string {
	var (
		rangeErr  *hgvs.InvalidRangeError
		countErr  *hgvs.InvalidAlleleCountError
		seqErr    *hgvs.NoSequenceAvailableError
		lenErr    *hgvs.SequenceLengthMismatchError
		mixedErr  *hgvs.MixedSequenceTypeError
		strandErr *hgvs.UnsupportedStrandError
		malformed *hgvs.MalformedVariantError
	)
	switch {
	case errors.As(err, &rangeErr):
		return "invalid_range"
	case errors.As(err, &lenErr):
		return "sequence_length_mismatch"
	case errors.As(err, &mixedErr):
		return "mixed_sequence_type"
	case errors.As(err, &countErr):
		return "invalid_allele_count"
	case errors.As(err, &seqErr):
		return "no_sequence_available"
	case errors.As(err, &strandErr):
		return "unsupported_strand"
	case errors.Is(err, hgvs.ErrEmptyAllele):
		return "empty_allele"
	case errors.Is(err, hgvs.ErrSingleAlleleRequired):
		return "single_allele_required"
	case errors.As(err, &malformed):
		return "malformed_variant"
	}
	return "error"
}

// minArgs is cobra.MinimumNArgs reporting a usage error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErrorf("%s requires at least %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
