package messages

// Report messages for the final summary.
const (
	ReportHeader = "Installation summary"
	ReportRule   = "--------------------"

	ReportServiceFmt = "%s\n  version:  %s\n  state:    %s\n  binary:   %s\n  endpoint: %s\n  user:     %s\n"

	ReportSlurmToolsNote = "Note: Slurm client tools (sinfo, squeue) were not found on this host; slurm exporter metrics will be empty until Slurm is installed."
)
