package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fullscreenAnnotation marks commands that own the terminal. Their logs go to
// logging.file, or nowhere.
const fullscreenAnnotation = "fullscreen"

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "fraudwatch",
		Short: "🛡️  Real-time fraud prediction client",
		Long: `fraudwatch: a terminal client for the fraud prediction service.

Score a transaction, fire canned quick-test scenarios, browse the service's
prediction history and export it as CSV or a risk score chart.

Run without a subcommand to open the interactive dashboard.`,
		PersistentPreRunE: initConfig,
		Annotations:       map[string]string{fullscreenAnnotation: "true"},
		RunE:              runDashboard,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/fraudwatch/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("base-url", "", "prediction service base URL")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))

	// Add commands
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	if err := setupLogging(cmd.Annotations[fullscreenAnnotation] == "true"); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(fullscreen bool) error {
	settings := config.Load(viper.GetViper())

	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch {
	case settings.LogFile != "":
		if mkErr := os.MkdirAll(filepath.Dir(settings.LogFile), 0750); mkErr != nil {
			return fmt.Errorf("failed to create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if openErr != nil {
			return fmt.Errorf("failed to open log file: %w", openErr)
		}
		w = f
	case fullscreen:
		w = io.Discard
	}

	handler, err := common.NewHandler(w, level, settings.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fraudwatch version %s\n", version)
		},
	}
}
