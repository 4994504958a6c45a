package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rbarros/vigia/internal/compliance/auth"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its routing table.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	endpoint   string
}

// NewServer builds the router and wires every route to the handler. The
// health and metrics endpoints stay outside the auth middleware; the admin
// subtree additionally requires the admin role.
func NewServer(port int, h *Handler, jwtSecret string, logger *zap.Logger) *Server {
	router := chi.NewRouter()
	router.Use(MetricsMiddleware())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", h.CreateEmployee)
			r.Get("/", h.ListEmployees)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Get("/{id}/certificates", h.ListEmployeeCertificates)
			r.Get("/{id}/trainings", h.ListEmployeeTrainings)
			r.Get("/{id}/equipment", h.ListEmployeeEquipment)
		})

		r.Route("/certificates", func(r chi.Router) {
			r.Post("/", h.SaveCertificate)
			r.Get("/", h.ListCertificates)
			r.Delete("/{id}", h.DeleteCertificate)
		})

		r.Route("/trainings", func(r chi.Router) {
			r.Post("/", h.SaveTraining)
			r.Get("/", h.ListTrainings)
			r.Get("/{id}", h.GetTraining)
			r.Delete("/{id}", h.DeleteTraining)
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Post("/", h.SaveEquipment)
			r.Get("/", h.ListEquipment)
			r.Get("/{id}", h.GetEquipment)
			r.Delete("/{id}", h.DeleteEquipment)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/expiring", h.ExpiringFeed)
			r.Get("/statistics", h.Statistics)
			r.Get("/{kind}", h.Report)
			r.Get("/{kind}/export", h.ExportReport)
		})

		r.Route("/billing", func(r chi.Router) {
			r.Get("/plans", h.ListPlans)
			r.Post("/checkout", h.Checkout)
			r.Post("/verify", h.ConfirmPayment)
		})

		r.Get("/company", h.GetOwnCompany)
		r.Patch("/company", h.UpdateOwnCompany)
		r.Post("/notifications", h.SendNotification)

		r.Route("/companies", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", h.CreateCompany)
			r.Get("/", h.ListCompanies)
			r.Put("/{id}/active", h.SetCompanyActive)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		endpoint: fmt.Sprintf(":%d", port),
	}
}

// Start runs the HTTP server until it is stopped.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.endpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
