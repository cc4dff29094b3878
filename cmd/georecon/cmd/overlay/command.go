// Package overlay implements the overlay command group for inspecting the
// exception overlay and feeding reviewed report entries back into it.
package overlay

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/georecon/internal/appcontext"
	"github.com/agentstation/georecon/internal/cmd/alerts"
	"github.com/agentstation/georecon/internal/cmd/cmdutil"
	"github.com/agentstation/georecon/internal/cmd/output"
	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/match"
	"github.com/agentstation/georecon/pkg/report"
)

// NewCommand creates the overlay command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "overlay",
		GroupID: "management",
		Short:   "Inspect and extend the exception overlay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewShowCommand(app))
	cmd.AddCommand(NewImportCommand(app))

	return cmd
}

// NewShowCommand creates the overlay show command.
func NewShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective overlay",
		Long: `Show prints the overlay used by reconciliation runs: the built-in
continent exceptions with the configured overlay file layered on top.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overlay, err := app.Overlay()
			if err != nil {
				return err
			}
			return cmdutil.Render(cmd, app, output.NewOverlayView(overlay))
		},
	}
}

// NewImportCommand creates the overlay import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	var into string

	cmd := &cobra.Command{
		Use:   "import REPORT",
		Short: "Copy reviewed report entries into the overlay file",
		Long: `Import reads a review report written by "georecon labels", takes every
entry whose "id" was filled in by a reviewer, and adds it to the "labels"
section of the overlay file. Existing entries for the same label are
replaced. Entries left blank are ignored.`,
		Example: `  georecon overlay import failed_matches.json
  georecon overlay import review.yaml --into overlay.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := into
			if target == "" {
				target = app.Settings().OverlayPath
			}
			if target == "" {
				target = constants.DefaultOverlayFile
			}
			return runImport(cmd, app, args[0], target)
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "overlay file to update (default: the configured overlay, or "+constants.DefaultOverlayFile+")")

	return cmd
}

func runImport(cmd *cobra.Command, app appcontext.Interface, reportPath, target string) error {
	r, err := report.Load(reportPath)
	if err != nil {
		return err
	}
	reviewed := r.Reviewed()
	if len(reviewed) == 0 {
		return cmdutil.Alert(cmd, app, alerts.NewInfo(fmt.Sprintf("no reviewed entries in %s", reportPath)))
	}

	var existing match.OverlayFile
	if _, statErr := os.Stat(target); statErr == nil {
		existing, err = match.ReadOverlayFile(target)
		if err != nil {
			return err
		}
	}

	merged := match.Merge(existing, match.OverlayFile{Labels: reviewed})
	if _, err := match.NewOverlay(merged, app.Settings().Normalizer()); err != nil {
		return err
	}
	if err := match.WriteOverlayFile(target, merged); err != nil {
		return err
	}

	app.Logger().Info().
		Str("report", reportPath).
		Str("overlay", target).
		Int("labels", len(reviewed)).
		Msg("imported reviewed labels")

	return cmdutil.Alert(cmd, app, alerts.NewSuccess(fmt.Sprintf("imported %d labels into %s", len(reviewed), target)))
}
