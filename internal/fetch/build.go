package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// buildTimeout bounds the clone+build of the source exporter so a wedged
// network or toolchain cannot hang the whole run.
const buildTimeout = 10 * time.Minute

// System abstracts process execution for clone-and-build acquisition.
type System interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// Run executes a command in dir and streams output to the parent's stdout/stderr.
func (RealSystem) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// CloneAndBuild shallow-clones repoURL at ref into workdir and builds the Go
// main package at the clone root, writing the binary to destPath.
func CloneAndBuild(ctx context.Context, sys System, repoURL string, ref string, workdir string, destPath string) error {
	if sys == nil {
		sys = RealSystem{}
	}
	ctx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()

	cloneDir := filepath.Join(workdir, "src")
	if err := sys.Run(ctx, workdir, "git", "clone", "--depth", "1", "--branch", ref, repoURL, cloneDir); err != nil {
		return fmt.Errorf(messages.CloneErrFmt, repoURL, err)
	}
	if err := sys.Run(ctx, cloneDir, "go", "build", "-o", destPath, "."); err != nil {
		return fmt.Errorf(messages.BuildErrFmt, repoURL, err)
	}
	return nil
}
