package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/execclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/proposalclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/registryclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	dbmodel "github.com/yanuar-ar/nouns-monorepo-redemption/internal/db/model"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/tracing"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/queue"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the treasury redemption server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up treasury db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	queueManager, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer queueManager.Shutdown()

	var registryClient registryclient.RegistryInterface = registryclient.NewClient(&cfg.Registry)
	registryClient = registryclient.NewRegistryClientWithMetrics(registryClient)

	var proposalClient proposalclient.ProposalInterface = proposalclient.NewClient(&cfg.Proposal)
	proposalClient = proposalclient.NewProposalClientWithMetrics(proposalClient)

	var execClient execclient.ExecInterface = execclient.NewClient(&cfg.Exec)
	execClient = execclient.NewExecClientWithMetrics(execClient)

	service := services.NewService(cfg, dbClient, registryClient, proposalClient, execClient, queueManager)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartServiceSync(ctx)
	return nil
}
