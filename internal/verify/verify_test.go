package verify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleMetrics = `# HELP node_cpu_seconds_total Seconds the CPUs spent in each mode.
# TYPE node_cpu_seconds_total counter
node_cpu_seconds_total{cpu="0",mode="idle"} 1.234
node_cpu_seconds_total{cpu="0",mode="user"} 5.678
`

func TestProbeReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleMetrics))
	}))
	t.Cleanup(server.Close)

	result := Probe(context.Background(), server.Client(), "node_exporter", server.URL)
	require.NoError(t, result.Err)
	require.True(t, result.Reachable)
	require.Equal(t, 4, result.Lines)
}

func TestProbeEmptyBodyIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(server.Close)

	result := Probe(context.Background(), server.Client(), "slurm_exporter", server.URL)
	require.NoError(t, result.Err)
	require.False(t, result.Reachable)
	require.Zero(t, result.Lines)
}

func TestProbeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	result := Probe(context.Background(), http.DefaultClient, "node_exporter", server.URL)
	require.Error(t, result.Err)
	require.False(t, result.Reachable)
}

func TestProbeNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	result := Probe(context.Background(), server.Client(), "node_exporter", server.URL)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "503")
}

func TestReportFormats(t *testing.T) {
	var out bytes.Buffer
	Report(&out, []Result{
		{Name: "node_exporter", Endpoint: "http://127.0.0.1:9100/metrics", Reachable: true, Lines: 120},
		{Name: "slurm_exporter", Endpoint: "http://127.0.0.1:8080/metrics", Err: context.DeadlineExceeded},
	})

	text := out.String()
	require.Contains(t, text, "node_exporter")
	require.Contains(t, text, "120 metric lines")
	require.Contains(t, text, "unreachable")
}

func TestEndpoint(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:9100/metrics", Endpoint(9100))
}
