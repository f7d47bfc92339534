package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/timelock"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/treasury"
)

// Server exposes the timelock and treasury operations over HTTP. Caller
// identity arrives as a plain request field: authentication of that identity
// is the responsibility of the signing front in front of this service.
type Server struct {
	cfg      *config.ServerConfig
	db       db.DbInterface
	engine   *timelock.Engine
	treasury *treasury.Treasury
}

func New(
	cfg *config.ServerConfig,
	db db.DbInterface,
	engine *timelock.Engine,
	treasury *treasury.Treasury,
) *Server {
	return &Server{
		cfg:      cfg,
		db:       db,
		engine:   engine,
		treasury: treasury,
	}
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthcheck", s.handleHealthcheck)

	router.Route("/v1", func(r chi.Router) {
		r.Route("/timelock", func(r chi.Router) {
			r.Get("/admin", s.handleGetAdminState)
			r.Post("/queue", s.handleQueueTransaction)
			r.Post("/cancel", s.handleCancelTransaction)
			r.Post("/execute", s.handleExecuteTransaction)
			r.Post("/accept-admin", s.handleAcceptAdmin)
		})
		r.Route("/treasury", func(r chi.Router) {
			r.Get("/total", s.handleTotalTreasury)
			r.Get("/allocated", s.handleAllocatedTreasury)
			r.Get("/redemption", s.handleCalculateRedemption)
			r.Post("/redeem", s.handleRedeem)
			r.Post("/redemption-rate", s.handleSetRedemptionRate)
		})
	})

	return router
}

func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to shut down API server")
		}
	}()

	log.Info().Msgf("Starting API server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
