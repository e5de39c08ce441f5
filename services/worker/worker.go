package worker

import (
	"context"
	"time"

	"spacedata/launchharvest/config"
	"spacedata/launchharvest/internal/dataset"
	"spacedata/launchharvest/internal/scraper"
	"spacedata/launchharvest/logger"
	"spacedata/launchharvest/services/store"
)

// Worker runs harvest cycles: load the dataset, crawl for newer launches,
// merge and persist.
type Worker struct {
	controller *scraper.Controller
	store      store.DatasetStore
	interval   time.Duration
	log        *logger.Logger
}

// NewWorker creates a harvest worker.
func NewWorker(cfg *config.Config, controller *scraper.Controller, datasetStore store.DatasetStore) *Worker {
	return &Worker{
		controller: controller,
		store:      datasetStore,
		interval:   cfg.CrawlInterval,
		log:        logger.ForWorker(),
	}
}

// Run performs one harvest cycle. A store that cannot be loaded or saved is
// fatal for the cycle; an empty crawl leaves the dataset untouched.
func (w *Worker) Run(ctx context.Context) error {
	existing, found, err := w.store.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		existing = &dataset.Dataset{}
		w.log.Info().Msg("No existing dataset, harvesting from scratch")
	}

	lastKnown := existing.MostRecentDate()
	if lastKnown != nil {
		w.log.Info().
			Time("last_known", *lastKnown).
			Int("records", len(existing.Records)).
			Msg("Harvesting launches newer than the dataset")
	}

	incoming, err := w.controller.Crawl(ctx, lastKnown)
	if err != nil {
		return err
	}
	if len(incoming) == 0 {
		w.log.Info().Msg("No new data")
		return nil
	}

	merged := dataset.Merge(existing, incoming)
	if err := w.store.Save(ctx, merged); err != nil {
		return err
	}

	w.log.Info().
		Int("new_records", len(incoming)).
		Int("total_records", len(merged.Records)).
		Msg("Dataset updated")
	return nil
}

// Start runs harvest cycles until the context is cancelled. With a zero
// interval it runs a single cycle and returns.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.log.Error().Err(err).Msg("Harvest cycle failed")
		if w.interval == 0 {
			return err
		}
	}
	if w.interval == 0 {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.log.Error().Err(err).Msg("Harvest cycle failed")
			}
		}
	}
}
