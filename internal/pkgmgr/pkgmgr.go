package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// Family identifies a supported package manager.
type Family string

const (
	FamilyApt    Family = "apt"
	FamilyDnf    Family = "dnf"
	FamilyYum    Family = "yum"
	FamilyZypper Family = "zypper"
	FamilyPacman Family = "pacman"
)

// ErrUnsupported is returned when no known package manager executable is on PATH.
var ErrUnsupported = errors.New(messages.PkgMgrUnsupported)

// detection probe order; the first executable found wins.
var probeOrder = []struct {
	executable string
	family     Family
}{
	{"apt-get", FamilyApt},
	{"dnf", FamilyDnf},
	{"yum", FamilyYum},
	{"zypper", FamilyZypper},
	{"pacman", FamilyPacman},
}

// System abstracts process lookup and execution for the package manager.
// Package-local so tests can stub it without shared global state.
type System interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, env []string, name string, args ...string) error
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// LookPath searches PATH for an executable.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command, appending env to the inherited environment, and
// streams its output to the parent's stdout/stderr.
func (RealSystem) Run(ctx context.Context, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Manager installs OS packages through one detected backend.
type Manager struct {
	family Family
	sys    System
}

// Detect probes PATH in fixed priority order and returns a Manager for the
// first package manager found. It performs no side effects.
func Detect(sys System) (*Manager, error) {
	if sys == nil {
		sys = RealSystem{}
	}
	for _, probe := range probeOrder {
		if _, err := sys.LookPath(probe.executable); err == nil {
			return &Manager{family: probe.family, sys: sys}, nil
		}
	}
	return nil, ErrUnsupported
}

// Family reports the detected package manager family.
func (m *Manager) Family() Family {
	return m.family
}

// Install installs the given packages non-interactively.
func (m *Manager) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	var env []string
	var name string
	var args []string
	switch m.family {
	case FamilyApt:
		env = []string{"DEBIAN_FRONTEND=noninteractive"}
		name = "apt-get"
		args = append([]string{"install", "-y"}, packages...)
	case FamilyDnf:
		name = "dnf"
		args = append([]string{"install", "-y"}, packages...)
	case FamilyYum:
		name = "yum"
		args = append([]string{"install", "-y"}, packages...)
	case FamilyZypper:
		name = "zypper"
		args = append([]string{"--non-interactive", "install"}, packages...)
	case FamilyPacman:
		name = "pacman"
		args = append([]string{"-S", "--noconfirm", "--needed"}, packages...)
	default:
		return ErrUnsupported
	}
	if err := m.sys.Run(ctx, env, name, args...); err != nil {
		return fmt.Errorf(messages.PkgMgrInstallErrFmt, m.family, err)
	}
	return nil
}

// DependencyPackages returns the tools the installer needs, with the
// distribution's package names for the detected family.
func (m *Manager) DependencyPackages() []string {
	common := []string{"curl", "tar", "gzip", "git"}
	switch m.family {
	case FamilyApt:
		return append(common, "golang-go")
	case FamilyPacman:
		return append(common, "go")
	default:
		return append(common, "golang")
	}
}
