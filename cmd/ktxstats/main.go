package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/qwstats/internal/config"
	"github.com/mauv0809/qwstats/internal/metrics"
	"github.com/mauv0809/qwstats/ktxstats"
	"github.com/spf13/cobra"
)

// app is the state shared by all commands once flags and environment are
// resolved.
type app struct {
	cfg     config.Config
	metrics *metrics.Service
	decoder *ktxstats.Decoder

	revision    string
	logLevel    string
	workers     int
	metricsFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "ktxstats",
		Short: "Decode QuakeWorld KTX match statistics",
		Long: `A command-line interface for decoding the JSON statistics documents
KTX servers write at the end of a match. Files may be plain, gzip or zstd
compressed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.revision, "revision", "", "Document revision: current or legacy (default from KTXSTATS_REVISION, else current)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().IntVar(&a.workers, "workers", 0, "Number of files processed concurrently")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")

	rootCmd.AddCommand(newDecodeCmd(a))
	rootCmd.AddCommand(newSummaryCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("revision") {
		rev, err := ktxstats.ParseRevision(a.revision)
		if err != nil {
			return err
		}
		cfg.Revision = rev
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("workers") {
		if a.workers < 1 {
			return fmt.Errorf("--workers must be positive, got %d", a.workers)
		}
		cfg.Workers = a.workers
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if err := cfg.Log.ConfigureLogger(); err != nil {
		return err
	}

	a.cfg = cfg
	a.metrics = metrics.NewService()
	a.decoder = ktxstats.NewDecoder(ktxstats.WithMetrics(a.metrics))
	log.Debug("Configuration loaded", "revision", cfg.Revision, "workers", cfg.Workers, "metrics_file", cfg.MetricsFile)
	return nil
}

func (a *app) flushMetrics() error {
	if a.metrics == nil || a.cfg.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	log.Debug("Metrics written", "path", a.cfg.MetricsFile)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "ktxstats: %s\n", err)
		os.Exit(1)
	}
}
