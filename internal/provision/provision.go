package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/conn-castle/metrics-bootstrap/internal/config"
	"github.com/conn-castle/metrics-bootstrap/internal/fetch"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/pkgmgr"
	"github.com/conn-castle/metrics-bootstrap/internal/sysuser"
	"github.com/conn-castle/metrics-bootstrap/internal/systemd"
)

// slurmClientCommands are the scheduler CLIs the slurm exporter shells out to.
var slurmClientCommands = []string{"sinfo", "squeue"}

// Deps carries the host interaction points, each replaceable in tests.
type Deps struct {
	PkgSys   pkgmgr.System
	UserSys  sysuser.System
	BuildSys fetch.System
	Systemd  *systemd.Manager

	// HTTPClient fetches the node exporter release archive.
	HTTPClient *http.Client
	// LookPath probes PATH for the Slurm client commands.
	LookPath func(file string) (string, error)
	// Geteuid gates the privileged preflight check.
	Geteuid func() int
	// Arch selects the release archive (GOARCH naming).
	Arch string

	Out io.Writer
}

// DefaultDeps returns Deps wired to the live host.
func DefaultDeps(out io.Writer) Deps {
	return Deps{
		PkgSys:     pkgmgr.RealSystem{},
		UserSys:    sysuser.RealSystem{},
		BuildSys:   fetch.RealSystem{},
		Systemd:    systemd.NewManager(nil),
		HTTPClient: fetch.DefaultClient(5 * time.Minute),
		LookPath:   exec.LookPath,
		Geteuid:    os.Geteuid,
		Arch:       runtime.GOARCH,
		Out:        out,
	}
}

// State is threaded through every step: resolved configuration, the detected
// package manager, the scoped workdir, and cross-step findings.
type State struct {
	Cfg     config.Config
	Deps    Deps
	Workdir string

	PkgMgr            *pkgmgr.Manager
	SlurmToolsMissing bool
}

// NewSteps returns the ordered provisioning sequence. Exporter installation
// order matters: the node exporter is fatal and must succeed before the slurm
// exporter is attempted.
func NewSteps() []Step {
	return []Step{
		{Name: messages.StepNamePreflight, Fatal: true, Run: preflight},
		{Name: messages.StepNameDependencies, Fatal: true, Run: installDependencies},
		{Name: messages.StepNameNodeExporter, Fatal: true, Run: installNodeExporter},
		{Name: messages.StepNameSlurmExporter, Fatal: false, Run: installSlurmExporter},
	}
}

// preflight verifies privileges, detects the package manager, and records
// whether the Slurm client commands are present. No side effects.
func preflight(_ context.Context, st *State) error {
	if st.Deps.Geteuid() != 0 {
		return errors.New(messages.PreflightNotRoot)
	}

	mgr, err := pkgmgr.Detect(st.Deps.PkgSys)
	if err != nil {
		return err
	}
	st.PkgMgr = mgr
	_, _ = fmt.Fprintf(st.Deps.Out, messages.PreflightPkgMgrFmt, mgr.Family())

	for _, command := range slurmClientCommands {
		if _, err := st.Deps.LookPath(command); err != nil {
			st.SlurmToolsMissing = true
			_, _ = fmt.Fprintln(st.Deps.Out, color.YellowString(messages.PreflightSlurmToolsWarn))
			break
		}
	}
	return nil
}

func installDependencies(ctx context.Context, st *State) error {
	packages := st.PkgMgr.DependencyPackages()
	_, _ = fmt.Fprintf(st.Deps.Out, messages.DependenciesInstallingFmt, strings.Join(packages, " "))
	return st.PkgMgr.Install(ctx, packages)
}
