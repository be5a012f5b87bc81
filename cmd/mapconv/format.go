package main

import (
	"github.com/spf13/cobra"

	"mapconv/internal/mapping"
)

var formatOutput string

var formatCmd = &cobra.Command{
	Use:   "format <mapping.txt>",
	Short: "Rewrite a proguard mapping in normalized form",
	Long: `format parses a mapping and writes it back with comments and blank lines
dropped and members indented with four spaces. Without -o the input file is
rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mapping.LoadFile(args[0], mapping.AllowRedundant())
		if err != nil {
			return err
		}

		out := formatOutput
		if out == "" {
			out = args[0]
		}

		if out == "-" {
			_, err := cmd.OutOrStdout().Write(mapping.Format(m))
			return err
		}

		return mapping.WriteFile(m, out)
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", `Output file ("-" for stdout)`)
}
