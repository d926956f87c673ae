package pkgmgr

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/metrics-bootstrap/internal/testutil"
)

func TestDetectWithRealSystem(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "dnf")
	t.Setenv("PATH", dir)

	mgr, err := Detect(RealSystem{})
	require.NoError(t, err)
	require.Equal(t, FamilyDnf, mgr.Family())
}

func TestDetectWithRealSystemUnsupported(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Detect(RealSystem{})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestInstallWithRealSystem(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	testutil.WriteStubRecording(t, dir, "apt-get", logPath)
	t.Setenv("PATH", dir)

	mgr, err := Detect(RealSystem{})
	require.NoError(t, err)
	require.NoError(t, mgr.Install(context.Background(), []string{"curl", "git"}))

	require.Contains(t, testutil.ReadLog(t, logPath), "apt-get install -y curl git")
}
