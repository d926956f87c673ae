package messages

// Provisioning messages for the installer steps.
const (
	StepStartFmt      = "==> %s\n"
	StepFatalErrFmt   = "step %s failed: %w"
	StepWarnFmt       = "Warning: step %s failed: %v (continuing)"
	ProvisionAborted  = "Provisioning aborted."
	ProvisionComplete = "Provisioning complete."

	// Step names, in execution order.
	StepNamePreflight     = "preflight"
	StepNameDependencies  = "install dependencies"
	StepNameNodeExporter  = "install node exporter"
	StepNameSlurmExporter = "install slurm exporter"

	PreflightNotRoot          = "this command must run as root (try sudo)"
	PreflightPkgMgrFmt        = "Detected package manager: %s\n"
	PreflightSlurmToolsWarn   = "Warning: Slurm client commands (sinfo, squeue) were not found; the slurm exporter will start but cannot produce meaningful metrics until Slurm is installed."
	DependenciesInstallingFmt = "Installing packages: %s\n"

	WorkdirCreateErrFmt = "create working directory: %w"

	ServiceStoppingFmt     = "Service %s is active; stopping it before reinstall\n"
	ServiceStopErrFmt      = "stop service %s: %w"
	ServiceInstalledFmt    = "Installed %s %s -> %s\n"
	ServiceUnitWrittenFmt  = "Wrote unit file %s\n"
	ServiceStartErrFmt     = "service %s did not reach active state: %w"
	ServiceActiveFmt       = "Service %s is active\n"
	ServiceInstallErrFmt   = "install binary %s: %w"
	ServiceChownErrFmt     = "chown %s: %w"
	TextfileDirErrFmt      = "create textfile collector directory %s: %w"
	DownloadErrFmt         = "download %s: %w"
	ExtractErrFmt          = "extract %s: %w"
	CloneErrFmt            = "clone %s: %w"
	BuildErrFmt            = "build %s: %w"
	UserEnsureErrFmt       = "ensure user %s: %w"
	UserCreatedFmt         = "Created system user %s\n"
	UserExistsFmt          = "System user %s already exists\n"
	PkgMgrUnsupported      = "no supported package manager found (looked for apt-get, dnf, yum, zypper, pacman)"
	PkgMgrInstallErrFmt    = "install packages with %s: %w"
	UnitDiffHeaderFmt      = "Unit file %s changed:\n"
	UnitWriteErrFmt        = "write unit file %s: %w"
	DaemonReloadErrFmt     = "systemctl daemon-reload: %w"
	ServiceEnableErrFmt    = "enable service %s: %w"
	SystemdQueryStateFmt   = "query state of %s: %w"
	BinaryMissingInArchive = "exporter binary not found in archive"
)
