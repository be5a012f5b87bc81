package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mapconv/internal/hierarchy"
	"mapconv/internal/mapping"
	"mapconv/internal/tsrg"
)

var hierarchyOutput string

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <mapping.txt> <client.jar>",
	Short: "Extract a YAML hierarchy sidecar from an obfuscated jar",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mapping.LoadFile(args[0])
		if err != nil {
			return err
		}

		edges, err := hierarchy.FromJar(cmd.Context(), args[1], m)
		if err != nil {
			return err
		}

		data, err := hierarchy.MarshalYAML(edges)
		if err != nil {
			return fmt.Errorf("failed to encode hierarchy: %w", err)
		}

		if hierarchyOutput == "" || hierarchyOutput == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := tsrg.WriteFile(hierarchyOutput, data); err != nil {
			return err
		}

		logger.Info("wrote hierarchy", zap.String("output", hierarchyOutput), zap.Int("classes", len(edges)))

		return nil
	},
}

func init() {
	hierarchyCmd.Flags().StringVarP(&hierarchyOutput, "output", "o", "", "Output YAML file (default: stdout)")
}
