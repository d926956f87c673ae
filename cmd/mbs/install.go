package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/metrics-bootstrap/internal/config"
	"github.com/conn-castle/metrics-bootstrap/internal/messages"
	"github.com/conn-castle/metrics-bootstrap/internal/provision"
	"github.com/conn-castle/metrics-bootstrap/internal/report"
	"github.com/conn-castle/metrics-bootstrap/internal/terminal"
	"github.com/conn-castle/metrics-bootstrap/internal/verify"
)

// Test seams.
var (
	runStepsFunc      = provision.Run
	isInteractiveFunc = terminal.IsInteractive
	runFormFunc       = func(form *huh.Form) error { return form.Run() }
)

func newInstallCmd() *cobra.Command {
	var yes bool
	var configPath string
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Long:  messages.InstallLong,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf(messages.LoadConfigErrFmt, err)
			}

			if !yes && isInteractiveFunc() {
				proceed, err := confirmInstall()
				if err != nil {
					return fmt.Errorf(messages.InstallConfirmErrFmt, err)
				}
				if !proceed {
					_, _ = fmt.Fprintln(out, messages.InstallAborted)
					return nil
				}
			}

			workdir, err := provision.NewWorkdir()
			if err != nil {
				return err
			}
			defer workdir.Cleanup()

			st := &provision.State{
				Cfg:     cfg,
				Workdir: workdir.Path,
				Deps:    provision.DefaultDeps(out),
			}
			if _, err := runStepsFunc(cmd.Context(), out, provision.NewSteps(), st); err != nil {
				_, _ = fmt.Fprintln(out, color.RedString(messages.ProvisionAborted))
				return err
			}

			if !skipVerify {
				verify.Report(out, probeExporters(cmd.Context(), cfg))
			}
			printSummary(cmd.Context(), out, cfg, st.Deps, st.SlurmToolsMissing)
			_, _ = fmt.Fprintln(out, color.GreenString(messages.ProvisionComplete))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.InstallFlagYes)
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, messages.InstallFlagConfig)
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, messages.InstallFlagSkipVerify)
	return cmd
}

// confirmInstall prompts before the host is mutated. Aborting the form counts
// as declining.
func confirmInstall() (bool, error) {
	var proceed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(messages.InstallConfirmTitle).
			Description(messages.InstallConfirmDescription).
			Value(&proceed),
	))
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return proceed, nil
}

// probeExporters verifies both metrics endpoints with a retrying client.
func probeExporters(ctx context.Context, cfg config.Config) []verify.Result {
	client := verify.DefaultClient(verify.Options{
		Timeout: time.Duration(cfg.Verify.TimeoutSeconds) * time.Second,
		Retries: cfg.Verify.Retries,
	})
	return []verify.Result{
		verify.Probe(ctx, client, "node_exporter", verify.Endpoint(cfg.NodeExporter.Port)),
		verify.Probe(ctx, client, "slurm_exporter", verify.Endpoint(cfg.SlurmExporter.Port)),
	}
}

// printSummary renders the final summary with live service state.
func printSummary(ctx context.Context, out io.Writer, cfg config.Config, deps provision.Deps, slurmToolsMissing bool) {
	summaries := []report.ServiceSummary{
		{
			Name:       "node_exporter",
			Version:    cfg.NodeExporter.Version,
			BinaryPath: cfg.NodeExporterBinary(),
			Endpoint:   verify.Endpoint(cfg.NodeExporter.Port),
			User:       cfg.NodeExporter.User,
		},
		{
			Name:       "slurm_exporter",
			Version:    cfg.SlurmExporter.Ref,
			BinaryPath: cfg.SlurmExporterBinary(),
			Endpoint:   verify.Endpoint(cfg.SlurmExporter.Port),
			User:       cfg.SlurmExporter.User,
		},
	}
	summaries = report.Resolve(ctx, deps.Systemd, summaries)
	report.Write(out, summaries, slurmToolsMissing)
}
