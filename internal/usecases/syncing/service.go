package syncing

import (
	"context"
	"time"

	"github.com/pkg/errors"

	redditdomain "github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/domain"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/repository"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
	"github.com/vfg2006/reddit-ads-sync/pkg/log"
)

// Integrator produz o conjunto de resultados desnormalizado a partir da API
type Integrator interface {
	GetResult(ctx context.Context, startDate time.Time) ([]redditdomain.ReportRow, error)
}

// Service orquestra uma execução completa: busca, transformação e carga
type Service struct {
	cfg        *config.Config
	integrator Integrator
	repo       repository.AdPerformanceRepository
}

func NewService(
	cfg *config.Config,
	integrator Integrator,
	repo repository.AdPerformanceRepository,
) *Service {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		repo:       repo,
	}
}

// Run executa uma sincronização. Qualquer falha no pipeline interrompe a
// execução e é propagada ao chamador.
func (s *Service) Run(ctx context.Context, startDate time.Time) error {
	logger := log.ForContext(ctx)
	startedAt := time.Now()

	logger.WithField("start_date", startDate.Format(time.DateOnly)).Info("sync: fetching data from API")

	rows, err := s.integrator.GetResult(ctx, startDate)
	if err != nil {
		return errors.Wrap(err, "sync: failed to build result set")
	}

	if len(rows) == 0 {
		logger.Warn("sync: empty result set, nothing to load")
		return nil
	}

	logger.WithFields(log.Fields{
		"dataset": s.cfg.Warehouse.Dataset,
		"table":   s.cfg.Warehouse.Table,
		"rows":    len(rows),
	}).Info("sync: uploading result set to warehouse")

	affected, err := s.repo.Save(ctx, rows)
	if err != nil {
		return errors.Wrap(err, "sync: failed to load result set")
	}

	logger.WithFields(log.Fields{
		"affected_rows": affected,
		"elapsed":       time.Since(startedAt).Round(time.Millisecond).String(),
	}).Info("sync: run completed")

	return nil
}
