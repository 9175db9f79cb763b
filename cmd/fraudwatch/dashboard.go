package main

import (
	"github.com/Veraticus/fraudwatch/internal/config"
	"github.com/Veraticus/fraudwatch/internal/tui"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "dashboard",
		Short:       "Open the interactive fraud detection dashboard",
		Long:        `Open a full-screen dashboard to score transactions, run quick tests and browse prediction history.`,
		Annotations: map[string]string{fullscreenAnnotation: "true"},
		RunE:        runDashboard,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings := loadSettings()

	client, err := initClient(settings)
	if err != nil {
		return err
	}

	db, err := initStorage(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	return tui.Run(ctx,
		tui.WithPredictor(client),
		tui.WithHistory(initHistory(client, db)),
		tui.WithTheme(themes.GetTheme(settings.Theme)),
		tui.WithExportDir(settings.ExportDir),
		tui.WithRequestTimeout(settings.Timeout),
		tui.WithServiceLabel("Service: "+client.BaseURL()),
	)
}
