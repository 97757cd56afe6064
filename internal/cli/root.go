package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DB      string // snapshot store path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the astrodigest CLI.
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := LoadConfig()

	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "astrodigest",
		Short: "astrodigest - canonical chart digest encoder",
		Long: "Transforms raw astrological chart data into compact, deterministic,\n" +
			"schema-versioned digests with byte-identical canonical serialization.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment configuration", cfgErr)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags; environment supplies defaults (ASTRODIGEST_*).
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", cfg.Verbose, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", cfg.DB, "snapshot store path")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the structured logger for a command invocation. Logs go
// to stderr so stdout stays clean for payload output; verbose mode enables
// debug-level console output, otherwise only warnings surface.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)
	return zap.New(core)
}
