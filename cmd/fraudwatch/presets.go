package main

import (
	"fmt"

	"github.com/Veraticus/fraudwatch/internal/cli"
	"github.com/Veraticus/fraudwatch/internal/controller"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/Veraticus/fraudwatch/internal/service"
	"github.com/spf13/cobra"
)

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"quick-tests"},
		Short:   "List the quick-test scenarios",
		Long: `List the quick-test scenarios. Each one overwrites amount, time, merchant and
location of the transaction and submits it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()).PrintPresets(preset.All())
			return nil
		},
	}

	cmd.AddCommand(presetsRunCmd())

	return cmd
}

func presetsRunCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "run [names...]",
		Short: "Score quick-test scenarios one after another",
		Long: `Score the named quick-test scenarios, or all of them with --all. Requests
are sent one at a time; each result is printed as it arrives.`,
		Example: `  fraudwatch presets run suspicious
  fraudwatch presets run --all`,
		ValidArgs: preset.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if all {
				names = preset.Names()
			}
			if len(names) == 0 {
				return fmt.Errorf("name at least one scenario or pass --all")
			}
			for _, name := range names {
				if _, err := preset.Lookup(name); err != nil {
					return err
				}
			}

			settings := loadSettings()
			client, err := initClient(settings)
			if err != nil {
				return err
			}

			reporter := cli.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			failed := runSweep(cmd, client, names, reporter)

			refreshAfterPrediction(cmd, settings, client, reporter)

			if failed > 0 {
				return fmt.Errorf("%d of %d quick tests failed", failed, len(names))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "run every scenario")

	return cmd
}

// runSweep submits each scenario through one controller, so at most one
// request is in flight. It returns the number of failed predictions.
func runSweep(cmd *cobra.Command, p service.Predictor, names []string, reporter *cli.Reporter) int {
	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context())
	defer interrupts.Stop()

	ctrl := controller.New()
	failed := 0

	reporter.StartSweep(len(names))
	for i, name := range names {
		interrupts.SetProgress(i, len(names))
		if ctx.Err() != nil {
			break
		}

		sub, err := ctrl.ApplyPreset(name)
		if err != nil {
			reporter.Println(cli.FormatError(fmt.Sprintf("%s: %v", name, err)))
			failed++
			reporter.StepSweep()
			continue
		}

		switch ctrl.Execute(ctx, p, sub) {
		case controller.ResolutionSucceeded:
			reporter.PrintResult(sub.Input, ctrl.Result())
		case controller.ResolutionFailed:
			reporter.Println(cli.FormatError(fmt.Sprintf("%s: %v", name, ctrl.Err())))
			failed++
		case controller.ResolutionIgnored, controller.ResolutionDiscarded:
			failed++
		}
		reporter.StepSweep()
	}

	return failed
}
