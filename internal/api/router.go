package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ivost9/incidents-backend/internal/api/handlers/http/public"
	"github.com/ivost9/incidents-backend/internal/api/handlers/http/system"
	"github.com/ivost9/incidents-backend/internal/config"
	"github.com/ivost9/incidents-backend/internal/middleware"
	"github.com/ivost9/incidents-backend/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, incidents service.IncidentService, uploadsDir string, checks map[string]system.Pinger) *Server {
	publicHandler := public.NewHandler(logger, incidents)
	systemHandler := system.NewHandler(logger, checks)

	r := InitRouter(cfg, publicHandler, systemHandler, uploadsDir, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, publicHandler *public.Handler, systemHandler *system.Handler, uploadsDir string, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Http.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Route("/incidents", func(ir chi.Router) {
		ir.Get("/", publicHandler.IncidentList)
		ir.With(middleware.Limit(10, 20, 5*time.Minute, logger)).Post("/", publicHandler.IncidentCreate)
	})

	// Uploaded media is served verbatim; unknown names 404.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Get("/health", systemHandler.SystemHealth)

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
