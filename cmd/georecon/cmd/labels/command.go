// Package labels implements the labels command, which relabels the shapes of
// an SVG world map with ISO alpha-2 codes.
package labels

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
	"github.com/agentstation/georecon/pkg/report"
)

// NewCommand creates the labels command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "labels MAP",
		GroupID: "core",
		Short:   "Relabel SVG map shapes with ISO codes",
		Long: `Labels reads an SVG map whose shapes carry country names as their id,
and replaces each id with the ISO alpha-2 code of the country it names.

Names matched exactly against the code reference, or listed under "labels"
in the exception overlay, are relabeled. Every other name keeps its id and is
written to the review report together with the closest reference name and a
0-100 similarity score. Fill in the "id" field of report entries and run
"georecon overlay import" to carry the decisions into the next run.`,
		Example: `  georecon labels world-map.svg
  georecon labels world-map.svg --codes UNSD.csv --out relabeled.svg --report review.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], out)
		},
	}

	cmd.Flags().StringVar(&out, "out", constants.DefaultMapOutputFile, "relabeled map file")
	cmd.Flags().String("report", constants.DefaultReportFile, "review report file")
	cmd.Flags().String("report-format", "", "review report format: json, yaml, markdown (default: from the file extension)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, mapPath, out string) error {
	settings := app.Settings()

	format := report.FormatForPath(settings.ReportPath)
	if settings.ReportFormat != "" {
		f, err := report.ParseFormat(settings.ReportFormat)
		if err != nil {
			return err
		}
		format = f
	}

	codes, err := sources.LoadCodeReference(settings.CodesPath)
	if err != nil {
		return err
	}
	m, err := sources.ReadMap(mapPath)
	if err != nil {
		return err
	}

	client, err := app.Client(georecon.WithCodeReference(codes))
	if err != nil {
		return err
	}

	features := m.Features()
	ctx := logging.WithSource(logging.WithLogger(cmd.Context(), app.Logger()), mapPath)
	outcome, err := client.RelabelFeatures(ctx, features)
	if err != nil {
		return err
	}
	app.Logger().Info().
		Str("run_id", outcome.RunID).
		Msg(outcome.Summary())

	changed := m.Apply(features)
	if err := m.Save(out); err != nil {
		return err
	}
	if err := (report.Writer{Path: settings.ReportPath, Format: format}).Write(outcome.Report); err != nil {
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
	if !outcome.Report.IsEmpty() {
		if err := cmdutil.Alert(cmd, app, alerts.NewInfo("review report written to "+settings.ReportPath)); err != nil {
			return err
		}
	}
	return cmdutil.Alert(cmd, app, alerts.NewSuccess(fmt.Sprintf("wrote %s (%d of %d shapes relabeled)", out, changed, len(features))))
}
