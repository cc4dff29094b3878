// Package ingest implements the ingest command, which converts the reference
// workbook into the continents JSON table.
package ingest

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/georecon/internal/appcontext"
	"github.com/agentstation/georecon/internal/cmd/alerts"
	"github.com/agentstation/georecon/internal/cmd/cmdutil"
	"github.com/agentstation/georecon/internal/cmd/output"
	"github.com/agentstation/georecon/internal/matcher"
	"github.com/agentstation/georecon/internal/sources"
	"github.com/agentstation/georecon/pkg/geo"
)

// AppContext defines what the ingest command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	OutputFormat() string
	Settings() appcontext.Settings
}

// NewCommand creates the ingest command.
func NewCommand(app AppContext) *cobra.Command {
	var (
		out    string
		sheets []string
	)

	cmd := &cobra.Command{
		Use:     "ingest WORKBOOK",
		GroupID: "core",
		Short:   "Convert the reference workbook into continents JSON",
		Long: `Ingest reads a workbook with one sheet per continent. Each sheet has a
title row followed by a header row with the columns Country, ISO-3166-2,
ISO-3166-3 and ccTLD. Missing identifiers become "N/A".

Sheets whose name is not a continent, or whose header differs, are skipped
and reported.`,
		Example: `  georecon ingest continents.xlsx
  georecon ingest continents.xlsx --out data/continents.json
  georecon ingest continents.xlsx --sheets 'north*' --sheets 'south*'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], out, sheets)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default: the configured continents reference)")
	cmd.Flags().StringSliceVar(&sheets, "sheets", nil, "only ingest sheets matching these glob or regex patterns")

	return cmd
}

func run(cmd *cobra.Command, app AppContext, workbook, out string, sheets []string) error {
	logger := app.Logger()

	if out == "" {
		out = app.Settings().ContinentsPath
	}

	include, err := matcher.Compile(sheets...)
	if err != nil {
		return fmt.Errorf("--sheets: %w", err)
	}

	tables, err := sources.ReadWorkbook(workbook, include.Match)
	if err != nil {
		return err
	}
	logger.Debug().Str("workbook", workbook).Int("sheets", len(tables)).Msg("read workbook")

	set, err := geo.FromTables(tables)
	if err != nil {
		return err
	}
	for _, issue := range set.Issues() {
		logger.Warn().Err(issue).Str("workbook", workbook).Msg("skipped reference rows")
	}

	if err := sources.WriteContinents(out, set); err != nil {
		return err
	}
	logger.Info().Str("path", out).Int("entities", set.Len()).Msg("wrote continent reference")

	if err := cmdutil.Render(cmd, app, output.NewReferenceView(set)); err != nil {
		return err
	}

	alert := alerts.NewSuccess(fmt.Sprintf("wrote %d entities to %s", set.Len(), out))
	if n := len(set.Issues()); n > 0 {
		alert = alerts.NewWarning(fmt.Sprintf("wrote %d entities to %s, %d issues", set.Len(), out, n))
		for _, issue := range set.Issues() {
			alert.WithDetails(issue.Error())
		}
	}
	return cmdutil.Alert(cmd, app, alert)
}
