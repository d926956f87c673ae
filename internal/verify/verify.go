package verify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// Result captures one exporter's endpoint probe outcome.
type Result struct {
	Name      string
	Endpoint  string
	Reachable bool
	Lines     int
	Err       error
}

// Options bound the probe's retries and per-attempt patience.
type Options struct {
	Timeout time.Duration
	Retries int
}

// DefaultClient returns the retrying HTTP client used for probes. Probes hit
// localhost, so waits stay short.
func DefaultClient(opts Options) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = time.Second
	client := retryClient.StandardClient()
	client.Timeout = opts.Timeout
	return client
}

// Endpoint builds the local metrics URL for a port.
func Endpoint(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/metrics", port)
}

// Probe issues a GET against the endpoint and counts non-empty response lines.
// Reachability is a strictly positive line count.
func Probe(ctx context.Context, client *http.Client, name string, endpoint string) Result {
	result := Result{Name: name, Endpoint: endpoint}
	if client == nil {
		client = DefaultClient(Options{Timeout: 5 * time.Second, Retries: 3})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		result.Err = fmt.Errorf(messages.VerifyProbeErrFmt, endpoint, err)
		return result
	}
	resp, err := client.Do(req)
	if err != nil {
		result.Err = fmt.Errorf(messages.VerifyProbeErrFmt, endpoint, err)
		return result
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		result.Err = fmt.Errorf(messages.VerifyStatusErrFmt, endpoint, resp.Status)
		return result
	}

	result.Lines = countLines(resp.Body)
	result.Reachable = result.Lines > 0
	return result
}

// Report prints a colored per-exporter line for each probe result. Diagnostic
// only; the caller never fails the run on unreachable endpoints.
func Report(out io.Writer, results []Result) {
	_, _ = fmt.Fprintln(out, messages.VerifyHeader)
	for _, r := range results {
		switch {
		case r.Err != nil:
			_, _ = fmt.Fprintln(out, color.YellowString(messages.VerifyUnreachableFmt, r.Name, r.Endpoint, r.Err))
		case !r.Reachable:
			_, _ = fmt.Fprintln(out, color.YellowString(messages.VerifyEmptyFmt, r.Name, r.Endpoint))
		default:
			_, _ = fmt.Fprintln(out, color.GreenString(messages.VerifyReachableFmt, r.Name, r.Endpoint, r.Lines))
		}
	}
}

func countLines(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			count++
		}
	}
	return count
}
