package report

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/systemd"
)

// ServiceSummary is one exporter's row in the final summary.
type ServiceSummary struct {
	Name       string
	Version    string
	State      string
	BinaryPath string
	Endpoint   string
	User       string
}

// StateQuerier reports a unit's live state; satisfied by *systemd.Manager.
type StateQuerier interface {
	ActiveState(ctx context.Context, unit string) (string, error)
}

var _ StateQuerier = (*systemd.Manager)(nil)

// Resolve fills in the live ActiveState for each summary, queried fresh from
// the supervisor. Query failures degrade to "unknown" rather than failing the
// summary.
func Resolve(ctx context.Context, mgr StateQuerier, summaries []ServiceSummary) []ServiceSummary {
	resolved := make([]ServiceSummary, len(summaries))
	for i, s := range summaries {
		state, err := mgr.ActiveState(ctx, s.Name+".service")
		if err != nil || state == "" {
			state = "unknown"
		}
		s.State = state
		resolved[i] = s
	}
	return resolved
}

// Write prints the fixed-format summary for all exporters, plus a closing note
// when the Slurm client tools were absent.
func Write(out io.Writer, summaries []ServiceSummary, slurmToolsMissing bool) {
	_, _ = fmt.Fprintln(out, messages.ReportHeader)
	_, _ = fmt.Fprintln(out, messages.ReportRule)
	for _, s := range summaries {
		state := s.State
		switch state {
		case "active":
			state = color.GreenString(state)
		default:
			state = color.YellowString(state)
		}
		_, _ = fmt.Fprintf(out, messages.ReportServiceFmt, s.Name, s.Version, state, s.BinaryPath, s.Endpoint, s.User)
	}
	if slurmToolsMissing {
		_, _ = fmt.Fprintln(out, color.YellowString(messages.ReportSlurmToolsNote))
	}
}
