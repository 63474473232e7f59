package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/orderbackfill/docs"
	statushandlers "github.com/GlebRadaev/orderbackfill/internal/handlers/status"
)

type StatusHandler interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	StatusHandler StatusHandler
	Metrics       http.Handler
}

// New wires the status endpoints. A nil registry serves an empty /metrics.
func New(progress statushandlers.Service, registry *prometheus.Registry) *Handlers {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Handlers{
		StatusHandler: statushandlers.New(progress),
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Get("/status", h.StatusHandler.GetStatus)
	r.Get("/healthz", h.StatusHandler.Healthz)
	r.Method(http.MethodGet, "/metrics", h.Metrics)

	return r
}
