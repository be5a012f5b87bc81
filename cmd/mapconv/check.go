package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapconv/internal/convert"
)

var checkFlags struct {
	hierarchy string
	jar       string
}

var checkCmd = &cobra.Command{
	Use:   "check [mapping.txt]",
	Short: "Parse and merge a mapping without writing output",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := cfg.Input
		if len(args) > 0 {
			input = args[0]
		}

		if input == "" {
			return fmt.Errorf("no input mapping given")
		}

		applyHierarchyFlags(cmd, checkFlags.hierarchy, checkFlags.jar)

		res, err := convert.ResolveFile(cmd.Context(), input, convert.Options{
			HierarchyFile:  cfg.Hierarchy,
			JarFile:        cfg.Jar,
			SkipFields:     !cfg.Fields,
			AllowRedundant: cfg.AllowRedundant,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		report(res.Diagnostics())

		ms := res.Model.Stats()
		ts := res.Table.Stats()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "classes:   %d (%d with ancestors, %d edges attached)\n", ms.Classes, ms.WithAncestors, res.Edges)
		fmt.Fprintf(out, "fields:    %d own, %d inherited\n", ts.OwnFields, ts.InheritedFields)
		fmt.Fprintf(out, "methods:   %d own, %d inherited\n", ts.OwnMethods, ts.InheritedMethods)
		fmt.Fprintf(out, "externals: %d\n", len(res.Diagnostics().Infos))

		return nil
	},
}

func init() {
	addHierarchyFlags(checkCmd, &checkFlags.hierarchy, &checkFlags.jar)
}
