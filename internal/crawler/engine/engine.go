package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"pegel-crawler/internal/crawler"
	"pegel-crawler/internal/observability"
	"pegel-crawler/pkg/models"
)

// ErrNoResults is returned by Run when no station produced any data.
var ErrNoResults = errors.New("no data crawled")

// Processor defines how to crawl a single station.
type Processor[T any] interface {
	Process(ctx context.Context, station models.Station) ([]T, error)
}

// Sink defines how to persist the data.
type Sink[T any] interface {
	Save(batch []T) error
}

// Config holds worker settings.
type Config struct {
	// Mode names the run in logs and metrics.
	Mode    string
	Workers int
}

// Engine crawls a station list and hands the combined result to its sinks.
type Engine[T any] struct {
	config    Config
	processor Processor[T]
	sinks     []Sink[T]
	logger    *slog.Logger
	metrics   *observability.Metrics
}

func NewEngine[T any](cfg Config, proc Processor[T], logger *slog.Logger, metrics *observability.Metrics, sinks ...Sink[T]) *Engine[T] {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Engine[T]{
		config:    cfg,
		processor: proc,
		sinks:     sinks,
		logger:    logger,
		metrics:   metrics,
	}
}

type job struct {
	index   int
	station models.Station
}

// Run processes every station, then saves all results at once. Results keep
// the order of stations whatever the number of workers. A failing station
// only loses its own rows.
func (engine *Engine[T]) Run(ctx context.Context, stations []models.Station) ([]T, error) {
	perStation := make([][]T, len(stations))
	jobs := make(chan job)

	var waitGroup sync.WaitGroup
	for i := 0; i < engine.config.Workers; i++ {
		waitGroup.Add(1)
		go engine.startCrawlWorker(ctx, i, jobs, perStation, &waitGroup)
	}

feed:
	for i, s := range stations {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{index: i, station: s}:
		}
	}
	close(jobs)
	waitGroup.Wait()

	var all []T
	for _, rows := range perStation {
		all = append(all, rows...)
	}

	if err := ctx.Err(); err != nil {
		engine.logger.Warn("Crawl interrupted", "err", err)
	}
	if len(all) == 0 {
		engine.logger.Warn("No data was crawled from any station, no output written", "mode", engine.config.Mode)
		return nil, ErrNoResults
	}

	for _, sink := range engine.sinks {
		if err := sink.Save(all); err != nil {
			return all, fmt.Errorf("save %d records: %w", len(all), err)
		}
	}
	engine.logger.Info("Saved records", "mode", engine.config.Mode, "count", len(all))
	return all, nil
}

func (engine *Engine[T]) startCrawlWorker(ctx context.Context, id int, jobs <-chan job, perStation [][]T, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for j := range jobs {
		if ctx.Err() != nil {
			continue
		}
		logger := engine.logger.With("worker", id, "station", j.station.Name)
		logger.Info("Processing station", "url", j.station.Link)

		data, err := engine.processor.Process(ctx, j.station)
		outcome := engine.report(logger, len(data), err)
		engine.metrics.StationsProcessed.WithLabelValues(engine.config.Mode, outcome).Inc()
		if err != nil {
			continue
		}

		engine.metrics.RowsEmitted.WithLabelValues(engine.config.Mode).Add(float64(len(data)))
		// Each index is written by exactly one worker.
		perStation[j.index] = data
	}
}

func (engine *Engine[T]) report(logger *slog.Logger, count int, err error) string {
	switch {
	case err == nil && count == 0:
		logger.Info("No data found in the table")
		return observability.OutcomeEmpty
	case err == nil:
		logger.Info("Station done", "records", count)
		return observability.OutcomeSuccess
	case errors.Is(err, crawler.ErrNoWaterLevel):
		logger.Info("Skipping station, no water level data")
		return observability.OutcomeSkipped
	case errors.Is(err, crawler.ErrLinkNotFound), errors.Is(err, crawler.ErrTableNotFound):
		logger.Warn("Could not find data on station page", "err", err)
		return observability.OutcomeNotFound
	default:
		logger.Error("Station failed", "err", err)
		return observability.OutcomeFailed
	}
}
