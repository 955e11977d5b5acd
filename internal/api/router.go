package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"camPark/internal/api/handlers/http/admin"
	"camPark/internal/api/handlers/http/public"
	"camPark/internal/api/handlers/http/system"
	"camPark/internal/api/handlers/ws"
	"camPark/internal/config"
	"camPark/internal/core"
	"camPark/internal/middleware"
	"camPark/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, registry *core.Registry, hub *ws.Hub) *Server {
	adminHandler := admin.NewHandler(logger, svc.AdminZoneService, svc.StatsService)
	publicHandler := public.NewHandler(logger, registry, svc.ReportService, svc.StatusService, svc.PositionService, svc.GeocodeService)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, adminHandler, publicHandler, systemHandler, hub, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	adminHandler *admin.Handler,
	publicHandler *public.Handler,
	systemHandler *system.Handler,
	hub *ws.Hub,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.AdminStats)

			ar.Route("/zones", func(zr chi.Router) {
				zr.Post("/", adminHandler.AdminZoneCreate)
				zr.Get("/", adminHandler.AdminZoneList)

				zr.Route("/{code}", func(rr chi.Router) {
					rr.Get("/", adminHandler.AdminZoneGet)
					rr.Put("/", adminHandler.AdminZoneUpdate)
					rr.Delete("/", adminHandler.AdminZoneDelete)
				})
			})
		})

		// PUBLIC
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			pr.Post("/reports", publicHandler.PublicReportSubmit)
			pr.Get("/zones", publicHandler.PublicZoneList)
			pr.Get("/zones/{code}/status", publicHandler.PublicZoneStatus)
			pr.Post("/position", publicHandler.PublicPositionUpdate)
			pr.Get("/geocode", publicHandler.PublicGeocode)
		})

		// LIVE
		api.Get("/live", hub.ServeWS)

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
