package sysuser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
)

// nologinShell keeps service accounts non-interactive.
const nologinShell = "/usr/sbin/nologin"

// System abstracts user lookup and creation so tests run without root.
type System interface {
	Lookup(username string) (*user.User, error)
	Run(ctx context.Context, name string, args ...string) error
	Chown(path string, uid int, gid int) error
}

// RealSystem implements System against the host.
type RealSystem struct{}

// Lookup resolves a user by name.
func (RealSystem) Lookup(username string) (*user.User, error) {
	return user.Lookup(username)
}

// Run executes a command and streams output to the parent's stdout/stderr.
func (RealSystem) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Chown changes ownership of path.
func (RealSystem) Chown(path string, uid int, gid int) error {
	return os.Chown(path, uid, gid)
}

// EnsureSystemUser creates a non-login system user when it does not already
// exist. It reports whether the user was created, so reruns stay idempotent.
func EnsureSystemUser(ctx context.Context, sys System, username string) (bool, error) {
	if sys == nil {
		sys = RealSystem{}
	}
	if _, err := sys.Lookup(username); err == nil {
		return false, nil
	}
	args := []string{"--system", "--no-create-home", "--shell", nologinShell, username}
	if err := sys.Run(ctx, "useradd", args...); err != nil {
		return false, fmt.Errorf("useradd %s: %w", username, err)
	}
	return true, nil
}

// ChownToUser transfers ownership of path to username's uid/gid.
func ChownToUser(sys System, path string, username string) error {
	if sys == nil {
		sys = RealSystem{}
	}
	u, err := sys.Lookup(username)
	if err != nil {
		return fmt.Errorf("lookup user %s: %w", username, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return fmt.Errorf("parse uid %q for %s: %w", u.Uid, username, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return fmt.Errorf("parse gid %q for %s: %w", u.Gid, username, err)
	}
	if err := sys.Chown(path, uid, gid); err != nil {
		return fmt.Errorf("chown %s to %s: %w", path, username, err)
	}
	return nil
}
