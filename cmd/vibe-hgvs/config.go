package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-hgvs/internal/hgvs"
)

// configKeys lists the settable keys and how their values are checked.
var configKeys = map[string]func(string) (any, error){
	"transcripts": func(v string) (any, error) { return v, nil },
	"db":          func(v string) (any, error) { return v, nil },
	"splice.threshold": func(v string) (any, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("splice.threshold must be a positive integer, got %q", v)
		}
		return n, nil
	},
	"hgvs.amino_acid_code": func(v string) (any, error) {
		code, err := hgvs.ParseAminoAcidCode(v)
		if err != nil {
			return nil, err
		}
		return code.String(), nil
	},
	"workers": func(v string) (any, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("workers must be a non-negative integer, got %q", v)
		}
		return n, nil
	},
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-hgvs configuration",
		Long: `Show, get, or set configuration values. Config is stored in ~/.vibe-hgvs.yaml.

Keys: ` + strings.Join(knownKeys(), ", "),
		Example: `  vibe-hgvs config                                   # show all config
  vibe-hgvs config set transcripts ~/transcripts.yaml  # default transcript models
  vibe-hgvs config set splice.threshold 5              # wider splice windows
  vibe-hgvs config get hgvs.amino_acid_code            # get a value`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runConfigShow(w io.Writer) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintln(w, "# No configuration set. Config file: ~/"+configName+".yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	check, ok := configKeys[key]
	if !ok {
		return usageErrorf("unknown key %q (known keys: %s)", key, strings.Join(knownKeys(), ", "))
	}
	v, err := check(value)
	if err != nil {
		return &usageError{err: err}
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		if cfgFile, err = defaultConfigPath(); err != nil {
			return err
		}
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
