package fetch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSystem struct {
	runs    []string
	dirs    []string
	failOn  string
	failErr error
}

func (f *fakeSystem) Run(_ context.Context, dir string, name string, args ...string) error {
	line := name + " " + strings.Join(args, " ")
	f.runs = append(f.runs, line)
	f.dirs = append(f.dirs, dir)
	if f.failOn != "" && strings.HasPrefix(line, f.failOn) {
		return f.failErr
	}
	return nil
}

func TestCloneAndBuild(t *testing.T) {
	sys := &fakeSystem{}
	workdir := t.TempDir()

	err := CloneAndBuild(context.Background(), sys, "https://example.com/exporter.git", "0.20", workdir, "/tmp/out/slurm_exporter")
	require.NoError(t, err)
	require.Len(t, sys.runs, 2)
	require.Equal(t, "git clone --depth 1 --branch 0.20 https://example.com/exporter.git "+workdir+"/src", sys.runs[0])
	require.Equal(t, "go build -o /tmp/out/slurm_exporter .", sys.runs[1])
	require.Equal(t, workdir+"/src", sys.dirs[1], "build runs inside the clone")
}

func TestCloneAndBuildCloneFailure(t *testing.T) {
	sys := &fakeSystem{failOn: "git", failErr: errors.New("remote not found")}

	err := CloneAndBuild(context.Background(), sys, "https://example.com/exporter.git", "0.20", t.TempDir(), "/tmp/out")
	require.Error(t, err)
	require.Contains(t, err.Error(), "clone")
	require.Len(t, sys.runs, 1, "build must not run after a failed clone")
}

func TestCloneAndBuildBuildFailure(t *testing.T) {
	sys := &fakeSystem{failOn: "go build", failErr: errors.New("compile error")}

	err := CloneAndBuild(context.Background(), sys, "https://example.com/exporter.git", "0.20", t.TempDir(), "/tmp/out")
	require.Error(t, err)
	require.Contains(t, err.Error(), "build")
}
