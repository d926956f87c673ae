package systemd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteUnitCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_exporter.service")
	unit := ServiceUnit("Exporter", "/bin/exporter", "exporter")

	var out bytes.Buffer
	result, err := WriteUnit(&out, path, unit)
	require.NoError(t, err)
	require.Equal(t, WriteCreated, result)
	require.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, unit.Render(), string(data))
}

func TestWriteUnitIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_exporter.service")
	unit := ServiceUnit("Exporter", "/bin/exporter", "exporter")

	_, err := WriteUnit(nil, path, unit)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := WriteUnit(&out, path, unit)
	require.NoError(t, err)
	require.Equal(t, WriteUnchanged, result)
	require.Empty(t, out.String())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestWriteUnitUpdatesWithDiff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node_exporter.service")
	old := ServiceUnit("Exporter", "/bin/exporter --old-flag", "exporter")
	_, err := WriteUnit(nil, path, old)
	require.NoError(t, err)

	updated := ServiceUnit("Exporter", "/bin/exporter --new-flag", "exporter")
	var out bytes.Buffer
	result, err := WriteUnit(&out, path, updated)
	require.NoError(t, err)
	require.Equal(t, WriteUpdated, result)
	require.Contains(t, out.String(), "--old-flag")
	require.Contains(t, out.String(), "--new-flag")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, updated.Render(), string(data))
}

func TestWriteUnitMissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.service")
	_, err := WriteUnit(nil, path, ServiceUnit("X", "/bin/x", "x"))
	require.Error(t, err)
}
