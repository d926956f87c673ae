package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// ErrBinaryNotFound is returned when the archive has no entry matching the
// requested binary name.
var ErrBinaryNotFound = errors.New(messages.BinaryMissingInArchive)

// DefaultClient returns an HTTP client with bounded retries and an overall
// request timeout. Downloads are the operation most likely to fail
// transiently, so they never run on a bare client.
func DefaultClient(timeout time.Duration) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 250 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	client := retryClient.StandardClient()
	client.Timeout = timeout
	return client
}

// DownloadArchiveBinary fetches a tar.gz archive from url and extracts the
// regular file whose base name matches binaryName to destPath (mode 0755).
func DownloadArchiveBinary(ctx context.Context, client *http.Client, url string, binaryName string, destPath string) error {
	if client == nil {
		client = DefaultClient(5 * time.Minute)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.DownloadErrFmt, url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf(messages.DownloadErrFmt, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.DownloadErrFmt, url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if err := extractBinary(resp.Body, binaryName, destPath); err != nil {
		return fmt.Errorf(messages.ExtractErrFmt, url, err)
	}
	return nil
}

// extractBinary scans a tar.gz stream for the named regular file and writes it
// to destPath with owner/group/world exec-read permissions.
func extractBinary(r io.Reader, binaryName string, destPath string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer func() {
		_ = gz.Close()
	}()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return ErrBinaryNotFound
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != binaryName {
			continue
		}

		dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dest, tr); err != nil {
			_ = dest.Close()
			return err
		}
		return dest.Close()
	}
}
