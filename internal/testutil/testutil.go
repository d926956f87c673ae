package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteStubRecording writes an executable shell stub that appends its argv to
// logPath (one invocation per line) and exits successfully. Tests use the log
// to assert which external commands ran and with which arguments.
func WriteStubRecording(t *testing.T, dir string, name string, logPath string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\necho \"%s $@\" >> %q\nexit 0\n", name, logPath))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WriteStubWithOutput writes an executable shell stub that prints output and exits 0.
// The output lives in a sidecar file so shell quoting cannot mangle it.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string) {
	t.Helper()
	outPath := filepath.Join(dir, name+".out")
	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		t.Fatalf("write stub output: %v", err)
	}
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\n/bin/cat %q\nexit 0\n", outPath))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// ReadLog returns the recorded stub invocations, or an empty string when none ran.
func ReadLog(t *testing.T, logPath string) string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read stub log: %v", err)
	}
	return string(data)
}
