package messages

// Verify messages for endpoint probing.
const (
	VerifyHeader         = "Verifying exporter endpoints..."
	VerifyReachableFmt   = "%s: %s reachable (%d metric lines)"
	VerifyUnreachableFmt = "%s: %s unreachable: %v"
	VerifyEmptyFmt       = "%s: %s returned no metric lines"
	VerifyProbeErrFmt    = "probe %s: %w"
	VerifyStatusErrFmt   = "probe %s: unexpected status %s"
)
