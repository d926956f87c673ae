package systemd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/metrics-bootstrap/internal/messages"
)

// System abstracts systemctl invocations. Package-local so tests stub it
// without touching a live service manager.
type System interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// Run executes a command and streams output to the parent's stdout/stderr.
func (RealSystem) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output executes a command and captures its stdout.
func (RealSystem) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// Manager drives a host's systemd over the systemctl CLI.
type Manager struct {
	sys System
}

// NewManager returns a Manager; a nil sys uses the real systemctl.
func NewManager(sys System) *Manager {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Manager{sys: sys}
}

// DaemonReload reloads systemd's unit database.
func (m *Manager) DaemonReload(ctx context.Context) error {
	if err := m.sys.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf(messages.DaemonReloadErrFmt, err)
	}
	return nil
}

// Enable marks the unit for boot-time start.
func (m *Manager) Enable(ctx context.Context, unit string) error {
	if err := m.sys.Run(ctx, "systemctl", "enable", unit); err != nil {
		return fmt.Errorf(messages.ServiceEnableErrFmt, unit, err)
	}
	return nil
}

// Start starts the unit immediately.
func (m *Manager) Start(ctx context.Context, unit string) error {
	return m.sys.Run(ctx, "systemctl", "start", unit)
}

// Stop stops the unit.
func (m *Manager) Stop(ctx context.Context, unit string) error {
	return m.sys.Run(ctx, "systemctl", "stop", unit)
}

// IsActive reports whether the unit is currently active. systemctl exits
// non-zero for every non-active state, so errors collapse to false.
func (m *Manager) IsActive(ctx context.Context, unit string) bool {
	return m.sys.Run(ctx, "systemctl", "is-active", "--quiet", unit) == nil
}

// ActiveState returns the unit's ActiveState property (active, inactive,
// failed, ...) queried fresh from systemd.
func (m *Manager) ActiveState(ctx context.Context, unit string) (string, error) {
	out, err := m.sys.Output(ctx, "systemctl", "show", "--property", "ActiveState", "--value", unit)
	if err != nil {
		return "", fmt.Errorf(messages.SystemdQueryStateFmt, unit, err)
	}
	return strings.TrimSpace(out), nil
}
