package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/halden/battrack/internal/app"
	"codeberg.org/halden/battrack/internal/battery"
	"codeberg.org/halden/battrack/internal/config"
	"codeberg.org/halden/battrack/internal/history"
	"codeberg.org/halden/battrack/internal/logger"
	"codeberg.org/halden/battrack/internal/telemetry"
)

// sampleInterval is fixed: the history cap and autosave cadence are
// tuned to it.
const sampleInterval = 5 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "battrack",
		Short:        "Battery telemetry monitor",
		Long:         "battrack samples battery state every 5 seconds, keeps a bounded rolling history on disk and records completed charge sessions.",
		SilenceUsage: true,
		RunE:         runMonitor,
	}

	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warning, error)")
	cmd.PersistentFlags().String("data-file", "", "history document path")
	cmd.PersistentFlags().Bool("telemetry", false, "archive every sample to a local sqlite database")
	cmd.PersistentFlags().String("database", "", "telemetry database path")

	cmd.AddCommand(newSessionsCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	initLogging(cfg.LogLevel)

	// No battery hardware means there is nothing to monitor; fail loudly
	// at startup instead of looping over unavailable reads
	source, err := battery.NewSystemSource()
	if err != nil {
		return err
	}

	store := history.Load(cfg.DataFile)

	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		return err
	}

	application := app.New(source, store, collector)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(cancel)

	logger.Info().
		Str("data_file", cfg.DataFile).
		Bool("telemetry", cfg.Telemetry).
		Msg("Recording battery samples every 5s")

	loop(ctx, application)

	return nil
}

func loop(ctx context.Context, application *app.App) {
	// Take an initial sample so the store is never empty longer than
	// one read
	application.Tick(ctx)

	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The only guaranteed flush: autosave is interval-based
			// and may not have fired recently
			application.Shutdown()
			logger.Info().Msg("Exiting...")
			return
		case <-ticker.C:
			application.Tick(ctx)
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func initLogging(level string) {
	debug := level == config.LogLevelDebug.String()
	verbose := level == config.LogLevelInfo.String()
	logger.Init(debug, verbose, logger.IsService())
	if level == config.LogLevelError.String() {
		logger.SetLogLevel(logger.ErrorLevel)
	}
}
