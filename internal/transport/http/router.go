// Package httptransport assembles the public router. Handlers stay thin and
// delegate to services so transport concerns remain isolated.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bankapi/internal/platform/metrics"
	"bankapi/internal/platform/middleware"
	"bankapi/pkg/platform/httputil"
	"bankapi/pkg/platform/middleware/metadata"
	"bankapi/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// Registrar is implemented by handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Banking  Registrar
	Admin    Registrar
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   map[string]HealthCheck
}

// NewRouter wires the banking API under /api/v1 together with the admin
// audit views and the operational endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger, d.Metrics))
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))

	r.Get("/healthz", healthHandler(d.Health))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(requestTimeout))
		api.Use(middleware.ContentTypeJSON)
		d.Banking.Register(api)
	})
	if d.Admin != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.Timeout(requestTimeout))
			d.Admin.Register(admin)
		})
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
