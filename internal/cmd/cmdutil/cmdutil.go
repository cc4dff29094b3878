// Package cmdutil provides helpers shared by georecon commands for printing
// run summaries and status alerts.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/georecon/internal/cmd/alerts"
	"github.com/agentstation/georecon/internal/cmd/output"
	"github.com/agentstation/georecon/pkg/reconcile"
)

// Formatted is what commands need to pick an output format.
type Formatted interface {
	OutputFormat() string
}

// Format resolves the summary format for app.
func Format(app Formatted) output.Format {
	return output.DetectFormat(app.OutputFormat())
}

// Render writes data to the command's stdout in the configured format.
func Render(cmd *cobra.Command, app Formatted, data any) error {
	return output.NewFormatter(Format(app)).Format(cmd.OutOrStdout(), data)
}

// Alert writes a status line to the command's stderr.
func Alert(cmd *cobra.Command, app Formatted, alert *alerts.Alert) error {
	return alerts.NewWriter(cmd.ErrOrStderr(), Format(app)).Write(alert)
}

// OutcomeAlerts turns the diagnostics of a run into status alerts: one
// warning per diagnostic class, listing the affected labels as details.
func OutcomeAlerts(outcome *reconcile.Outcome) []*alerts.Alert {
	var out []*alerts.Alert
	for _, code := range []reconcile.Code{
		reconcile.CodeMalformedRecord,
		reconcile.CodeNoContinentFound,
		reconcile.CodeNoCodeFound,
		reconcile.CodeDuplicateKeyOverwrite,
	} {
		diags := outcome.DiagnosticsByCode(code)
		if len(diags) == 0 {
			continue
		}
		a := alerts.NewWarning(fmt.Sprintf("%d %s", len(diags), output.Title(string(code))))
		for _, d := range diags {
			a.WithDetails(d.Message)
		}
		out = append(out, a)
	}
	if n := outcome.Report.Len(); n > 0 {
		out = append(out, alerts.NewWarning(fmt.Sprintf("%d labels need review", n)))
	}
	return out
}
