// Package http exposes the finance tracker over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finease/internal/auth"
	"finease/internal/cache"
	"finease/internal/core"
	"finease/internal/services"
)

type Server struct {
	httpSrv *http.Server
	router  *chi.Mux

	authSvc *services.AuthService
	ledger  *services.LedgerService
	reports *services.ReportService
	alerts  *services.AlertService
	tokens  *auth.TokenManager

	categoriesCache *cache.LRU[[]core.CategoryTotal]
	loginLimiter    *rateLimiter
}

func NewServer(addr string, authSvc *services.AuthService, ledger *services.LedgerService, reports *services.ReportService, alerts *services.AlertService, tokens *auth.TokenManager) *Server {
	s := &Server{
		authSvc:         authSvc,
		ledger:          ledger,
		reports:         reports,
		alerts:          alerts,
		tokens:          tokens,
		categoriesCache: cache.NewLRU[[]core.CategoryTotal](256, 30*time.Second),
		loginLimiter:    newRateLimiter(10, time.Minute),
	}

	s.router = s.routes()
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.loginLimiter.throttle)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/expenses", s.handleAddExpense)
			r.Get("/expenses", s.handleListExpenses)
			r.Get("/expenses/total", s.handleTotalSpent)
			r.Get("/expenses/categories", s.handleSpendingByCategory)

			r.Get("/budget", s.handleGetBudget)
			r.Put("/budget", s.handleSetBudget)
			r.Get("/budget/status", s.handleBudgetStatus)

			r.Post("/alerts", s.handleAddAlert)
			r.Get("/alerts", s.handleListAlerts)
			r.Get("/alerts/due", s.handleDueAlerts)
			r.Post("/alerts/{id}/notified", s.handleMarkNotified)
		})
	})

	return r
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.loginLimiter.stop()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// The repository is opened and migrated before the server starts, so
	// readiness mirrors liveness.
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
