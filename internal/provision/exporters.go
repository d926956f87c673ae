package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/metrics-bootstrap/internal/fetch"
	"github.com/conn-castle/metrics-bootstrap/internal/fsutil"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/sysuser"
	"github.com/conn-castle/metrics-bootstrap/internal/systemd"
)

// mountPointExcludes keeps virtual and container filesystems out of the node
// exporter's filesystem collector.
const mountPointExcludes = `^/(dev|proc|sys|run|var/lib/docker/.+)($|/)`

// serviceSpec parameterizes the shared install flow for one exporter.
type serviceSpec struct {
	name        string
	description string
	user        string
	binaryPath  string
	execStart   string
	// acquire stages the exporter binary at stagedPath inside the workdir.
	acquire func(ctx context.Context, st *State, stagedPath string) error
	// postInstall runs after the binary lands, before service registration.
	postInstall func(ctx context.Context, st *State) error
}

func nodeExporterSpec(st *State) serviceSpec {
	cfg := st.Cfg
	binary := cfg.NodeExporterBinary()
	args := []string{
		fmt.Sprintf("--web.listen-address=:%d", cfg.NodeExporter.Port),
		fmt.Sprintf("--collector.filesystem.mount-points-exclude=%s", mountPointExcludes),
		fmt.Sprintf("--collector.textfile.directory=%s", cfg.NodeExporter.TextfileDir),
		"--collector.systemd",
		"--collector.processes",
	}
	return serviceSpec{
		name:        "node_exporter",
		description: "Prometheus Node Exporter",
		user:        cfg.NodeExporter.User,
		binaryPath:  binary,
		execStart:   binary + " " + strings.Join(args, " "),
		acquire: func(ctx context.Context, st *State, stagedPath string) error {
			url := st.Cfg.NodeExporterArchiveURL(st.Deps.Arch)
			return fetch.DownloadArchiveBinary(ctx, st.Deps.HTTPClient, url, "node_exporter", stagedPath)
		},
		postInstall: func(_ context.Context, st *State) error {
			dir := st.Cfg.NodeExporter.TextfileDir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf(messages.TextfileDirErrFmt, dir, err)
			}
			if err := sysuser.ChownToUser(st.Deps.UserSys, dir, st.Cfg.NodeExporter.User); err != nil {
				return fmt.Errorf(messages.TextfileDirErrFmt, dir, err)
			}
			return nil
		},
	}
}

func slurmExporterSpec(st *State) serviceSpec {
	cfg := st.Cfg
	binary := cfg.SlurmExporterBinary()
	return serviceSpec{
		name:        "slurm_exporter",
		description: "Prometheus Slurm Exporter",
		user:        cfg.SlurmExporter.User,
		binaryPath:  binary,
		execStart:   fmt.Sprintf("%s --listen-address=:%d", binary, cfg.SlurmExporter.Port),
		acquire: func(ctx context.Context, st *State, stagedPath string) error {
			return fetch.CloneAndBuild(ctx, st.Deps.BuildSys, st.Cfg.SlurmExporter.RepoURL, st.Cfg.SlurmExporter.Ref, st.Workdir, stagedPath)
		},
	}
}

func installNodeExporter(ctx context.Context, st *State) error {
	return installService(ctx, st, nodeExporterSpec(st))
}

func installSlurmExporter(ctx context.Context, st *State) error {
	return installService(ctx, st, slurmExporterSpec(st))
}

// installService runs the shared exporter install flow: stop an active
// same-named service, stage the binary, provision the user, install the
// binary, register the unit, and start it.
func installService(ctx context.Context, st *State, spec serviceSpec) error {
	unitName := spec.name + ".service"
	mgr := st.Deps.Systemd

	if mgr.IsActive(ctx, unitName) {
		_, _ = fmt.Fprintf(st.Deps.Out, messages.ServiceStoppingFmt, unitName)
		if err := mgr.Stop(ctx, unitName); err != nil {
			return fmt.Errorf(messages.ServiceStopErrFmt, unitName, err)
		}
	}

	stagedPath := filepath.Join(st.Workdir, spec.name)
	if err := spec.acquire(ctx, st, stagedPath); err != nil {
		return err
	}

	if created, err := sysuser.EnsureSystemUser(ctx, st.Deps.UserSys, spec.user); err != nil {
		return fmt.Errorf(messages.UserEnsureErrFmt, spec.user, err)
	} else if created {
		_, _ = fmt.Fprintf(st.Deps.Out, messages.UserCreatedFmt, spec.user)
	} else {
		_, _ = fmt.Fprintf(st.Deps.Out, messages.UserExistsFmt, spec.user)
	}

	if err := installBinary(stagedPath, spec.binaryPath); err != nil {
		return fmt.Errorf(messages.ServiceInstallErrFmt, spec.binaryPath, err)
	}
	if err := sysuser.ChownToUser(st.Deps.UserSys, spec.binaryPath, spec.user); err != nil {
		return fmt.Errorf(messages.ServiceChownErrFmt, spec.binaryPath, err)
	}
	_, _ = fmt.Fprintf(st.Deps.Out, messages.ServiceInstalledFmt, spec.name, stagedPath, spec.binaryPath)

	if spec.postInstall != nil {
		if err := spec.postInstall(ctx, st); err != nil {
			return err
		}
	}

	unit := systemd.ServiceUnit(spec.description, spec.execStart, spec.user)
	unitPath := filepath.Join(st.Cfg.SystemdDir, unitName)
	if _, err := systemd.WriteUnit(st.Deps.Out, unitPath, unit); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(st.Deps.Out, messages.ServiceUnitWrittenFmt, unitPath)

	if err := mgr.DaemonReload(ctx); err != nil {
		return err
	}
	if err := mgr.Enable(ctx, unitName); err != nil {
		return err
	}
	if err := mgr.Start(ctx, unitName); err != nil {
		return fmt.Errorf(messages.ServiceStartErrFmt, unitName, err)
	}
	if !mgr.IsActive(ctx, unitName) {
		return fmt.Errorf(messages.ServiceStartErrFmt, unitName, fmt.Errorf("unit is not active after start"))
	}
	_, _ = fmt.Fprintf(st.Deps.Out, messages.ServiceActiveFmt, unitName)
	return nil
}

// installBinary copies the staged binary into place with exec-read permissions
// for owner, group, and world (no world-write).
func installBinary(stagedPath string, destPath string) error {
	data, err := os.ReadFile(stagedPath)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(destPath, data, 0o755)
}
