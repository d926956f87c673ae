package systemd

import (
	"fmt"
	"strings"
)

// Unit is a declarative description of a simple supervised service. Render
// produces the unit file text; the zero value of optional fields is omitted.
type Unit struct {
	Description string
	// After/Wants ordering dependencies (typically network-online.target).
	After []string
	Wants []string

	ExecStart  string
	User       string
	Group      string
	Restart    string
	RestartSec int

	WantedBy string
}

// Render produces deterministic unit file contents. Field order is fixed so
// idempotent reruns compare byte-for-byte.
func (u Unit) Render() string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", u.Description)
	for _, w := range u.Wants {
		fmt.Fprintf(&b, "Wants=%s\n", w)
	}
	for _, a := range u.After {
		fmt.Fprintf(&b, "After=%s\n", a)
	}

	b.WriteString("\n[Service]\n")
	b.WriteString("Type=simple\n")
	if u.User != "" {
		fmt.Fprintf(&b, "User=%s\n", u.User)
	}
	if u.Group != "" {
		fmt.Fprintf(&b, "Group=%s\n", u.Group)
	}
	fmt.Fprintf(&b, "ExecStart=%s\n", u.ExecStart)
	if u.Restart != "" {
		fmt.Fprintf(&b, "Restart=%s\n", u.Restart)
	}
	if u.RestartSec > 0 {
		fmt.Fprintf(&b, "RestartSec=%d\n", u.RestartSec)
	}

	b.WriteString("\n[Install]\n")
	wantedBy := u.WantedBy
	if wantedBy == "" {
		wantedBy = "multi-user.target"
	}
	fmt.Fprintf(&b, "WantedBy=%s\n", wantedBy)
	return b.String()
}

// ServiceUnit builds the standard unit shape used for exporters: simple type,
// dedicated user/group, restart on failure, started after the network is up.
func ServiceUnit(description string, execStart string, runAs string) Unit {
	return Unit{
		Description: description,
		Wants:       []string{"network-online.target"},
		After:       []string{"network-online.target"},
		ExecStart:   execStart,
		User:        runAs,
		Group:       runAs,
		Restart:     "on-failure",
		RestartSec:  5,
		WantedBy:    "multi-user.target",
	}
}
