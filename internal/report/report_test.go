package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	states map[string]string
	err    error
}

func (f *fakeQuerier) ActiveState(_ context.Context, unit string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.states[unit], nil
}

func TestResolveQueriesFreshState(t *testing.T) {
	querier := &fakeQuerier{states: map[string]string{
		"node_exporter.service":  "active",
		"slurm_exporter.service": "failed",
	}}

	summaries := Resolve(context.Background(), querier, []ServiceSummary{
		{Name: "node_exporter"},
		{Name: "slurm_exporter"},
	})
	require.Equal(t, "active", summaries[0].State)
	require.Equal(t, "failed", summaries[1].State)
}

func TestResolveDegradesToUnknown(t *testing.T) {
	querier := &fakeQuerier{err: errors.New("no systemd")}

	summaries := Resolve(context.Background(), querier, []ServiceSummary{{Name: "node_exporter"}})
	require.Equal(t, "unknown", summaries[0].State)
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	Write(&out, []ServiceSummary{
		{
			Name:       "node_exporter",
			Version:    "1.8.2",
			State:      "active",
			BinaryPath: "/usr/local/bin/node_exporter",
			Endpoint:   "http://127.0.0.1:9100/metrics",
			User:       "node_exporter",
		},
	}, false)

	text := out.String()
	require.Contains(t, text, "Installation summary")
	require.Contains(t, text, "node_exporter")
	require.Contains(t, text, "1.8.2")
	require.Contains(t, text, "/usr/local/bin/node_exporter")
	require.Contains(t, text, "http://127.0.0.1:9100/metrics")
	require.NotContains(t, text, "Slurm client tools")
}

func TestWriteSummaryWithSlurmNote(t *testing.T) {
	var out bytes.Buffer
	Write(&out, nil, true)
	require.Contains(t, out.String(), "Slurm client tools")
}
