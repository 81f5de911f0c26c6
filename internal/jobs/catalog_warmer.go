package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kursadbilgin/fulfillment-bridge/internal/geo"
)

const warmTimeout = 30 * time.Second

// RegionCatalog is the cached catalog the warmer keeps hot.
type RegionCatalog interface {
	Get(ctx context.Context) ([]geo.Region, error)
}

// CatalogWarmer refreshes the region catalog on a cron schedule so the first
// order after an expiry does not pay the fetch latency. The catalog stays
// correct without it; the warmer only trades a periodic fetch for tail
// latency.
type CatalogWarmer struct {
	catalog  RegionCatalog
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewCatalogWarmer(catalog RegionCatalog, schedule string, logger *zap.Logger) (*CatalogWarmer, error) {
	if catalog == nil {
		return nil, fmt.Errorf("region catalog is required")
	}
	if strings.TrimSpace(schedule) == "" {
		return nil, fmt.Errorf("warm schedule is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogWarmer{
		catalog:  catalog,
		schedule: strings.TrimSpace(schedule),
		cron:     cron.New(),
		logger:   logger,
	}, nil
}

func (w *CatalogWarmer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.warm); err != nil {
		return fmt.Errorf("invalid catalog warm schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.logger.Info("catalog warmer started", zap.String("schedule", w.schedule))
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh to finish.
func (w *CatalogWarmer) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("catalog warmer stopped")
}

func (w *CatalogWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	regions, err := w.catalog.Get(ctx)
	if err != nil {
		w.logger.Warn("catalog warm refresh failed", zap.Error(err))
		return
	}

	w.logger.Debug("catalog warm refresh done", zap.Int("regions", len(regions)))
}
