package main

import (
	"fmt"

	"github.com/Veraticus/fraudwatch/internal/cli"
	"github.com/Veraticus/fraudwatch/internal/controller"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/spf13/cobra"
)

// predictFlags maps command line flags to form fields.
var predictFlags = []struct {
	name  string
	field string
}{
	{"amount", model.FieldAmount},
	{"time", model.FieldTime},
	{"merchant", model.FieldMerchant},
	{"location", model.FieldLocation},
	{"type", model.FieldType},
	{"device", model.FieldDevice},
	{"days-since", model.FieldDaysSince},
	{"transactions-today", model.FieldTransactionsToday},
}

func predictCmd() *cobra.Command {
	var presetName string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a single transaction",
		Long: `Score a single transaction against the prediction service.

Fields not given on the command line keep their defaults. With --preset the
quick-test scenario overwrites amount, time, merchant and location.`,
		Example: `  fraudwatch predict --amount 42.50 --merchant Restaurant
  fraudwatch predict --preset suspicious --device Web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, presetName)
		},
	}

	defaults := model.DefaultTransactionInput()
	cmd.Flags().String("amount", "", "transaction amount in dollars")
	cmd.Flags().Int("time", defaults.Time, "hour of day (0-23)")
	cmd.Flags().String("merchant", string(defaults.Merchant), "merchant category")
	cmd.Flags().String("location", string(defaults.Location), "location relative to the card holder")
	cmd.Flags().String("type", string(defaults.Type), "transaction type")
	cmd.Flags().String("device", string(defaults.Device), "device used")
	cmd.Flags().Int("days-since", defaults.DaysSince, "days since the previous transaction (0-365)")
	cmd.Flags().Int("transactions-today", defaults.TransactionsToday, "transactions already made today")
	cmd.Flags().StringVar(&presetName, "preset", "", "quick-test scenario to apply (coffee, online, moderate, atm, suspicious)")

	return cmd
}

func runPredict(cmd *cobra.Command, presetName string) error {
	ctx := cmd.Context()
	ctrl := controller.New()

	for _, f := range predictFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		value := cmd.Flags().Lookup(f.name).Value.String()
		if err := ctrl.SetField(f.field, value); err != nil {
			return fmt.Errorf("--%s: %w", f.name, err)
		}
	}

	var (
		sub controller.Submission
		err error
	)
	if presetName != "" {
		sub, err = ctrl.ApplyPreset(presetName)
	} else {
		sub, err = ctrl.Submit()
	}
	if err != nil {
		return err
	}

	settings := loadSettings()
	client, err := initClient(settings)
	if err != nil {
		return err
	}

	reporter := cli.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if ctrl.Execute(ctx, client, sub) == controller.ResolutionFailed {
		return ctrl.Err()
	}
	reporter.PrintResult(sub.Input, ctrl.Result())

	refreshAfterPrediction(cmd, settings, client, reporter)
	return nil
}
