package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/metrics-bootstrap/internal/config"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   messages.VerifyUse,
		Short: messages.VerifyShort,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf(messages.LoadConfigErrFmt, err)
			}
			// Diagnostic only: unreachable endpoints are reported, never fatal.
			verify.Report(cmd.OutOrStdout(), probeExporters(cmd.Context(), cfg))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, messages.InstallFlagConfig)
	return cmd
}
