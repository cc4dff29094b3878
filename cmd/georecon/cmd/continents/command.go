// Package continents implements the continents command, which attaches a
// continent to every border record it can place with certainty.
package continents

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/georecon"
	"github.com/agentstation/georecon/internal/appcontext"
	"github.com/agentstation/georecon/internal/cmd/alerts"
	"github.com/agentstation/georecon/internal/cmd/cmdutil"
	"github.com/agentstation/georecon/internal/cmd/output"
	"github.com/agentstation/georecon/internal/sources"
	"github.com/agentstation/georecon/pkg/constants"
	"github.com/agentstation/georecon/pkg/logging"
)

// NewCommand creates the continents command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "continents [BORDERS]",
		GroupID: "core",
		Short:   "Attach continents to border records",
		Long: `Continents reads a border dataset (a JSON array of objects with
country_code and country_name) and sets "continent" on each record whose
code matches the continent reference exactly, or whose name is listed in
the exception overlay. Nothing is guessed: records without a match are left
as they are and reported.

BORDERS defaults to ` + constants.DefaultBordersFile + `. The dataset is
rewritten in place unless --out is given.`,
		Example: `  georecon continents
  georecon continents country-borders.json --continents data/continents.json --out enriched.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			borders := constants.DefaultBordersFile
			if len(args) == 1 {
				borders = args[0]
			}
			return run(cmd, app, borders, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default: overwrite BORDERS)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, bordersPath, out string) error {
	if out == "" {
		out = bordersPath
	}
	settings := app.Settings()

	reference, err := sources.ReadContinents(settings.ContinentsPath)
	if err != nil {
		return err
	}
	borders, err := sources.ReadBorders(bordersPath)
	if err != nil {
		return err
	}

	client, err := app.Client(georecon.WithContinentReference(reference))
	if err != nil {
		return err
	}

	ctx := logging.WithSource(logging.WithLogger(cmd.Context(), app.Logger()), bordersPath)
	outcome, err := client.ResolveContinents(ctx, borders)
	if err != nil {
		return err
	}
	app.Logger().Info().
		Str("run_id", outcome.RunID).
		Msg(outcome.Summary())

	if err := sources.WriteBorders(out, borders); err != nil {
		return err
	}

	if err := cmdutil.Render(cmd, app, output.NewOutcomeView(outcome)); err != nil {
		return err
	}
	for _, a := range cmdutil.OutcomeAlerts(outcome) {
		if err := cmdutil.Alert(cmd, app, a); err != nil {
			return err
		}
	}
	resolved := outcome.Stats.Exact + outcome.Stats.Overridden
	return cmdutil.Alert(cmd, app, alerts.NewSuccess(fmt.Sprintf("wrote %s (%d of %d records placed)", out, resolved, len(borders))))
}
