package processor

import (
	"context"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/storefront-service/internal/app/storefront/infrastructure"

	"github.com/robfig/cron/v3"
)

const probeTimeout = 5 * time.Second

// HealthProbe по расписанию проверяет доступность backend и выставляет gauge backend_up
type HealthProbe struct {
	cron    *cron.Cron
	checker infrastructure.HealthChecker
	up      bool
}

func NewHealthProbe(checker infrastructure.HealthChecker) *HealthProbe {
	return &HealthProbe{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		checker: checker,
		up:      true,
	}
}

// Start регистрирует проверку и сразу выполняет первую
func (p *HealthProbe) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting backend health probe")

	if _, err := p.cron.AddFunc(schedule, func() { p.Probe(ctx) }); err != nil {
		return err
	}

	// Первая проверка до запуска планировщика, чтобы не пересекаться с ним
	p.Probe(ctx)
	p.cron.Start()

	return nil
}

// Probe выполняет одну проверку. Лог пишется только при смене состояния
func (p *HealthProbe) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := p.checker.Ping(probeCtx)
	up := err == nil

	if up {
		metrics.BackendUp.Set(1)
	} else {
		metrics.BackendUp.Set(0)
	}

	if up != p.up {
		if up {
			logger.Info().Msg("Backend is reachable again")
		} else {
			logger.Warn().Err(err).Msg("Backend is unreachable, reads will degrade to empty results")
		}
	}
	p.up = up

	return up
}

func (p *HealthProbe) Stop() {
	logger.Info().Msg("Stopping backend health probe...")
	ctx := p.cron.Stop()
	<-ctx.Done()
}

func (p *HealthProbe) Entries() []cron.Entry {
	return p.cron.Entries()
}
