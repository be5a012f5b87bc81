// Command mapconv converts proguard mapping files to tsrg for bytecode
// remappers, copying inherited member renames down the class hierarchy.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mapconv/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mapconv",
	Short: "Convert proguard mappings to hierarchy-aware tsrg",
	Long: `mapconv reads an obfuscation mapping in proguard format and writes tsrg.

Members renamed in a superclass or interface are repeated under every
subclass that does not rename them itself, because remappers look members
up per concrete class. The hierarchy comes from a YAML sidecar (--hierarchy)
or from the class files of the obfuscated jar (--jar).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.LoadConfig(config.Locate(configPath))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)

		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		if isatty.IsTerminal(os.Stderr.Fd()) {
			zcfg.Encoding = "console"
			zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}

		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(hierarchyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
