package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/conn-castle/metrics-bootstrap/internal/config"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/provision"
)

var lookPathFunc = exec.LookPath

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf(messages.LoadConfigErrFmt, err)
			}
			slurmToolsMissing := false
			for _, command := range []string{"sinfo", "squeue"} {
				if _, err := lookPathFunc(command); err != nil {
					slurmToolsMissing = true
					break
				}
			}
			printSummary(cmd.Context(), cmd.OutOrStdout(), cfg, provision.DefaultDeps(cmd.OutOrStdout()), slurmToolsMissing)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, messages.InstallFlagConfig)
	return cmd
}
