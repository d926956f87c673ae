package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkdirCreateAndCleanup(t *testing.T) {
	wd, err := NewWorkdir()
	require.NoError(t, err)
	require.DirExists(t, wd.Path)

	require.NoError(t, os.WriteFile(filepath.Join(wd.Path, "staged"), []byte("x"), 0o644))

	wd.Cleanup()
	_, statErr := os.Stat(wd.Path)
	require.True(t, os.IsNotExist(statErr))
}

func TestWorkdirCleanupNilSafe(t *testing.T) {
	var wd *Workdir
	wd.Cleanup()
	(&Workdir{}).Cleanup()
}
