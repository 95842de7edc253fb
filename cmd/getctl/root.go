package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netconf-go/getkit/schema"
)

var (
	// Global flags
	schemaFiles []string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "getctl",
	Short: "Materialize filtered data trees from schema and record fixtures",
	Long: `getctl assembles the composite data tree a retrieval operation would
return: it loads JSON schema module definitions and a JSON record fixture,
feeds the records through the materialization engine selector by selector,
and prints the resulting tree with its default flags.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringArrayVar(&schemaFiles, "schema", nil,
		"JSON schema module definition file (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging to stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadIndex builds the schema index from the --schema files.
func loadIndex() (*schema.Index, error) {
	if len(schemaFiles) == 0 {
		return nil, fmt.Errorf("at least one --schema file is required")
	}
	idx, err := schema.NewIndex()
	if err != nil {
		return nil, err
	}
	for _, path := range schemaFiles {
		mod, err := schema.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := idx.Add(mod); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return idx, nil
}
