package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/api"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/execclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/proposalclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/registryclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/queue"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/timelock"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/treasury"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/utils/poller"
)

type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	engine       *timelock.Engine
	treasury     *treasury.Treasury
	server       *api.Server
	queueManager *queue.QueueManager
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	registry registryclient.RegistryInterface,
	proposal proposalclient.ProposalInterface,
	exec execclient.ExecInterface,
	qm *queue.QueueManager,
) *Service {
	engine := timelock.NewEngine(db, qm, exec, cfg.Treasury.Address)
	treasuryFacade := treasury.NewTreasury(db, registry, proposal, exec, qm, cfg.Treasury.Address)
	server := api.New(&cfg.Server, db, engine, treasuryFacade)

	return &Service{
		cfg:          cfg,
		db:           db,
		engine:       engine,
		treasury:     treasuryFacade,
		server:       server,
		queueManager: qm,
	}
}

// StartServiceSync seeds the persisted state, starts the treasury gauge
// poller and serves the API in the calling goroutine.
func (s *Service) StartServiceSync(ctx context.Context) {
	if err := s.engine.Bootstrap(ctx, &s.cfg.Timelock); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap timelock state")
	}
	if err := s.treasury.Bootstrap(ctx, &s.cfg.Treasury); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap treasury state")
	}

	gaugePoller := poller.NewPoller(s.cfg.Metrics.GaugeRefreshInterval(), s.treasury.RefreshGauges)
	go gaugePoller.Start(ctx)

	if err := s.server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("API server stopped")
	}
}
