package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmcruz/barberbook/internal/http/handlers"
	httpmiddleware "github.com/dmcruz/barberbook/internal/http/middleware"
	"github.com/dmcruz/barberbook/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	WidgetHandler      *handlers.WidgetHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public widget endpoints, scoped to a shop slug.
	r.Route("/widget/{shop}", func(r chi.Router) {
		r.Use(requireShop)
		r.Get("/shell", cfg.WidgetHandler.GetShell)
		r.Get("/days", cfg.WidgetHandler.GetDays)
		r.Get("/slots", cfg.WidgetHandler.GetSlots)
	})

	return r
}
