package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/georecon/pkg/constants"
)

// Execute runs the georecon CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "georecon",
		Short:   "Country and territory reconciliation",
		Version: a.version,
		Long: `georecon reconciles country and territory labels from independently
sourced datasets against a canonical reference table.

It attaches continents to border records by exact ISO code match, and
relabels SVG map shapes with ISO codes, routing names it cannot match
exactly to a review report with the closest fuzzy candidate.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Reconciliation Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.georecon.yaml or ./.georecon.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "summary format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("continents", constants.DefaultContinentsFile, "continent reference table (JSON)")
	flags.String("codes", constants.DefaultCodesFile, "name to code reference table (UNSD CSV)")
	flags.String("overlay", "", "exception overlay file layered over the built-in exceptions")
	flags.Bool("fold-accents", false, "ignore diacritics when matching names exactly")
	flags.Int("workers", constants.DefaultWorkers, "goroutines used for matching")

	rootCmd.SetVersionTemplate("georecon {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config when
// --config names a file, applies explicit flags on top and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		config, err := LoadConfig(f.Value.String())
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags())

	logger := NewLogger(a.config)
	a.logger = &logger

	a.mu.Lock()
	a.overlay = nil
	a.mu.Unlock()

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewIngestCommand())
	rootCmd.AddCommand(a.NewContinentsCommand())
	rootCmd.AddCommand(a.NewLabelsCommand())

	rootCmd.AddCommand(a.NewOverlayCommand())

	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
