package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/georecon/cmd/georecon/cmd/continents"
	"github.com/agentstation/georecon/cmd/georecon/cmd/ingest"
	"github.com/agentstation/georecon/cmd/georecon/cmd/labels"
	"github.com/agentstation/georecon/cmd/georecon/cmd/overlay"
)

// NewIngestCommand creates the ingest command with app dependencies.
func (a *App) NewIngestCommand() *cobra.Command {
	return ingest.NewCommand(a)
}

// NewContinentsCommand creates the continents command with app dependencies.
func (a *App) NewContinentsCommand() *cobra.Command {
	return continents.NewCommand(a)
}

// NewLabelsCommand creates the labels command with app dependencies.
func (a *App) NewLabelsCommand() *cobra.Command {
	return labels.NewCommand(a)
}

// NewOverlayCommand creates the overlay command with app dependencies.
func (a *App) NewOverlayCommand() *cobra.Command {
	return overlay.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("georecon %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
