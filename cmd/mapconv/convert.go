package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mapconv/internal/convert"
	"mapconv/internal/diagnostic"
)

var convertFlags struct {
	output    string
	hierarchy string
	jar       string
	direction string
	workers   int
	noFields  bool
	redundant bool
}

var convertCmd = &cobra.Command{
	Use:   "convert [mapping.txt]",
	Short: "Convert a proguard mapping to tsrg",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.output, "output", "o", "", "Output tsrg file (default: input with .tsrg extension)")
	addHierarchyFlags(convertCmd, &convertFlags.hierarchy, &convertFlags.jar)
	f.StringVar(&convertFlags.direction, "direction", "", "obf-to-named or named-to-obf")
	f.IntVar(&convertFlags.workers, "workers", 0, "Serializer workers (0: one per CPU)")
	f.BoolVar(&convertFlags.noFields, "no-fields", false, "Inherit methods only")
	f.BoolVar(&convertFlags.redundant, "allow-redundant", false, "Accept exact repeats of member lines")
}

func addHierarchyFlags(cmd *cobra.Command, hierarchy, jar *string) {
	cmd.Flags().StringVar(hierarchy, "hierarchy", "", "YAML hierarchy sidecar")
	cmd.Flags().StringVar(jar, "jar", "", "Obfuscated jar to read the hierarchy from")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := cmd.Flags()

	input := cfg.Input
	if len(args) > 0 {
		input = args[0]
	}

	if input == "" {
		return fmt.Errorf("no input mapping given")
	}

	if flags.Changed("output") {
		cfg.Output = convertFlags.output
	}

	if flags.Changed("direction") {
		cfg.Direction = convertFlags.direction
	}

	if flags.Changed("workers") {
		cfg.Workers = convertFlags.workers
	}

	if flags.Changed("no-fields") {
		cfg.Fields = !convertFlags.noFields
	}

	if flags.Changed("allow-redundant") {
		cfg.AllowRedundant = convertFlags.redundant
	}

	applyHierarchyFlags(cmd, convertFlags.hierarchy, convertFlags.jar)

	direction, err := cfg.ParsedDirection()
	if err != nil {
		return err
	}

	output := cfg.Output
	if output == "" {
		output = strings.TrimSuffix(input, ".txt") + ".tsrg"
	}

	opts := convert.Options{
		HierarchyFile:  cfg.Hierarchy,
		JarFile:        cfg.Jar,
		Direction:      direction,
		Workers:        cfg.Workers,
		SkipFields:     !cfg.Fields,
		AllowRedundant: cfg.AllowRedundant,
		Logger:         logger,
	}

	res, err := convert.ConvertFile(ctx, input, output, opts)
	if err != nil {
		return err
	}

	report(res.Diagnostics())

	s := res.Table.Stats()
	logger.Info("wrote tsrg",
		zap.String("output", output),
		zap.String("direction", direction.String()),
		zap.Int("classes", s.Classes),
		zap.Int("inherited_methods", s.InheritedMethods),
		zap.Int("inherited_fields", s.InheritedFields),
	)

	return nil
}

func applyHierarchyFlags(cmd *cobra.Command, hierarchy, jar string) {
	if cmd.Flags().Changed("hierarchy") {
		cfg.Hierarchy = hierarchy
	}

	if cmd.Flags().Changed("jar") {
		cfg.Jar = jar
	}
}

// report logs warnings and notes; errors have already failed the run.
func report(d diagnostic.Diagnostics) {
	for _, w := range d.Warnings {
		logger.Warn(w.Message, fields(w)...)
	}

	for _, i := range d.Infos {
		logger.Info(i.Message, fields(i)...)
	}
}

func fields(d diagnostic.Diagnostic) []zap.Field {
	out := []zap.Field{zap.Stringer("kind", d.Kind)}

	if d.Class != "" {
		out = append(out, zap.String("class", d.Class))
	}

	if d.Member != "" {
		out = append(out, zap.String("member", d.Member))
	}

	if len(d.Suggestions) > 0 {
		out = append(out, zap.Strings("did_you_mean", d.Suggestions))
	}

	return out
}
