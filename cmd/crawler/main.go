package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"pegel-crawler/internal/config"
	"pegel-crawler/internal/crawler"
	"pegel-crawler/internal/crawler/engine"
	"pegel-crawler/internal/logging"
	"pegel-crawler/internal/observability"
	"pegel-crawler/internal/storage"
	"pegel-crawler/pkg/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	mode := ModeMeasurements
	var stations []string

	cmd := &cobra.Command{
		Use:           "crawler [--mode measurements|master_data] [--station NAME]...",
		Short:         "Crawls river gauge pages into CSV.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cmd.Context(), *cfg, mode, stations)
		},
	}
	cmd.Flags().Var(&mode, "mode", `what to crawl: "measurements" or "master_data"`)
	cmd.Flags().StringArrayVar(&stations, "station", nil, "only crawl the station with this exact name (repeatable)")
	return cmd
}

func run(ctx context.Context, cfg config.Config, mode Mode, names []string) error {
	logger := logging.New(os.Stdout, cfg)
	metrics := observability.NewMetrics()

	fetcher := crawler.NewFetcher(crawler.FetcherOptions{
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.HTTPTimeout,
		RateLimit:     cfg.RateLimit,
		RespectRobots: cfg.RespectRobots,
	}, metrics)
	navigator := crawler.NewNavigator(fetcher)

	var store *storage.Storage
	if cfg.DatabaseURL != "" {
		var err error
		store, err = storage.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	stations := crawler.NewDirectory(fetcher, cfg.DirectoryURL, cfg.BaseURL, logger).ListStations(ctx)
	stations = crawler.SelectStations(stations, names)

	engineCfg := engine.Config{Mode: string(mode), Workers: cfg.Workers}
	var err error
	switch mode {
	case ModeMasterData:
		sinks := []engine.Sink[models.MasterDataRecord]{
			&storage.MasterDataCSV{Path: filepath.Join(cfg.OutputDir, storage.MasterDataFile)},
		}
		if store != nil {
			sinks = append(sinks, &storage.MasterDataSink{Storage: store})
		}
		proc := &crawler.MasterDataProcessor{Fetcher: fetcher, Navigator: navigator, TableClass: cfg.MasterDataTableClass}
		_, err = engine.NewEngine[models.MasterDataRecord](engineCfg, proc, logger, metrics, sinks...).Run(ctx, stations)
	default:
		sinks := []engine.Sink[models.MeasurementRow]{
			&storage.MeasurementCSV{Path: filepath.Join(cfg.OutputDir, storage.MeasurementFile)},
		}
		if store != nil {
			sinks = append(sinks, &storage.MeasurementSink{Storage: store})
		}
		proc := &crawler.MeasurementProcessor{Fetcher: fetcher, Navigator: navigator, Logger: logger}
		_, err = engine.NewEngine[models.MeasurementRow](engineCfg, proc, logger, metrics, sinks...).Run(ctx, stations)
	}

	if cfg.MetricsTextfile != "" {
		if mErr := metrics.WriteTextfile(cfg.MetricsTextfile); mErr != nil {
			logger.Error("Could not write metrics", "path", cfg.MetricsTextfile, "err", mErr)
		}
	}

	if errors.Is(err, engine.ErrNoResults) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("Crawl finished", slog.String("mode", string(mode)), slog.String("output", cfg.OutputDir))
	return nil
}
