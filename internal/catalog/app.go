package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// CreateLimit caps POST /products per client IP within LimitWindow.
	// Zero disables the limit.
	CreateLimit int
	LimitWindow time.Duration
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	if deps.MetricsEnabled && deps.Registry == nil && deps.Log != nil {
		deps.Log.Warn("metrics enabled but Registry is nil")
	}

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)
	setupRateLimit(s, deps)

	r.Mount("/", s.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(deps.Log))
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePattern))

	registerCatalogMetrics(deps.Registry, s)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func registerCatalogMetrics(reg prometheus.Registerer, s *Server) {
	store := s.Store
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently held in the store",
		},
		func() float64 { return float64(store.Size()) },
	))

	if s.Created == nil {
		created := prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_products_created_total",
			Help: "Products created through the API",
		})
		reg.MustRegister(created)
		s.Created = created
	}
}

func setupRateLimit(s *Server, deps HTTPDeps) {
	if deps.CreateLimit <= 0 || s.CreateLimit != nil {
		return
	}
	window := deps.LimitWindow
	if window <= 0 {
		window = time.Minute
	}
	s.CreateLimit = kit.NewIPRateLimiter(deps.CreateLimit, window).Middleware
}
