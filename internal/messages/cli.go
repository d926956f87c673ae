package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "mbs"
	// RootShort is the short description for the root command.
	RootShort = "Metrics Bootstrap CLI"
	RootLong  = "Provision Prometheus-style metrics exporters on a Linux host: install dependencies, create service users, register systemd units, and verify the exporters' endpoints."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install and start the node and Slurm exporters"
	InstallLong  = "Run the full provisioning sequence: preflight checks, package dependencies, exporter installation, systemd registration, endpoint verification, and a final summary."

	InstallFlagYes        = "Proceed without the confirmation prompt"
	InstallFlagConfig     = "Path to an alternate config file"
	InstallFlagSkipVerify = "Skip the endpoint verification probes"

	InstallConfirmTitle       = "Install metrics exporters on this host?"
	InstallConfirmDescription = "This installs OS packages, creates system users, and registers systemd services."
	InstallAborted            = "Install cancelled."
	InstallConfirmErrFmt      = "confirmation prompt: %w"

	// VerifyUse is the verify command name.
	VerifyUse   = "verify"
	VerifyShort = "Probe the exporters' metrics endpoints"

	// StatusUse is the status command name.
	StatusUse   = "status"
	StatusShort = "Print the exporter summary without changing anything"

	LoadConfigErrFmt = "load config: %w"
)
