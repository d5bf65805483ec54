package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCatalog/pkg/kit"
)

const bannerText = "Order API running successfully!"

type Server struct {
	Store Store
	Log   *zap.Logger

	// Created counts successful creations. Optional.
	Created prometheus.Counter
	// CreateLimit guards POST /products. Optional.
	CreateLimit func(http.Handler) http.Handler
}

type createResp struct {
	ID int `json:"id"`
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(bannerText))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/products", func(pr chi.Router) {
		pr.With(Validate(s.log(), CheckTypeFilter)).Get("/", s.list)

		var mws []func(http.Handler) http.Handler
		if s.CreateLimit != nil {
			mws = append(mws, s.CreateLimit)
		}
		mws = append(mws, Validate(s.log(), DecodeCreateRequest, CheckCreateRequest))
		pr.With(mws...).Post("/", s.create)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products := s.Store.List()

	raw := r.URL.Query().Get(typeParam)
	if raw == "" {
		kit.WriteJSON(w, http.StatusOK, products)
		return
	}

	want := ResolveCategory(raw)
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Type == want {
			filtered = append(filtered, p)
		}
	}

	if len(filtered) == 0 {
		err := &NotFoundError{Type: raw}
		s.log().Info("no products for type", zap.String("type", raw))
		kit.WriteAPIError(w, r, StatusOf(err), err.Error())
		return
	}
	kit.WriteJSON(w, http.StatusOK, filtered)
}

// create trusts that CheckCreateRequest has already run.
func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := createRequestFromContext(r.Context())
	if !ok {
		kit.WriteAPIError(w, r, http.StatusBadRequest, msgMissingFields)
		return
	}

	name, _ := req.Name.(string)
	typ, _ := req.Type.(string)
	inventory, _ := asNumber(req.Inventory)
	cost, _ := asNumber(req.Cost)

	p := s.Store.Create(Product{
		Name:      name,
		Type:      ResolveCategory(typ),
		Inventory: int(inventory),
		Cost:      cost,
	})

	if s.Created != nil {
		s.Created.Inc()
	}
	s.log().Info("product created",
		zap.Int("id", p.ID),
		zap.String("type", string(p.Type)),
	)

	kit.WriteJSON(w, http.StatusCreated, createResp{ID: p.ID})
}
