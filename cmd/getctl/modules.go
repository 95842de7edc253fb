package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newModulesCmd())
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the modules defined by the --schema files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex()
			if err != nil {
				return err
			}
			for _, m := range idx.Modules() {
				data := " "
				if m.HasData() {
					data = "d"
				}
				fmt.Printf("%s  %-30s %-12s %s\n", data, m.Name, m.Revision, m.Namespace)
			}
			return nil
		},
	}
}
