// Package handler provides the HTTP API over the recruiting collections.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/rest"
	restlog "github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stevemurr/recruit-store/collection"
	"github.com/stevemurr/recruit-store/logger"
	"github.com/stevemurr/recruit-store/metrics"
	"github.com/stevemurr/recruit-store/recruit"
	"github.com/stevemurr/recruit-store/schema"
	"github.com/stevemurr/recruit-store/store"
)

const maxBodySize = 1 << 20

// Handler holds the server dependencies and registers routes.
type Handler struct {
	reg       *recruit.Registry
	log       *zap.Logger
	lb        logger.Backend
	rateLimit float64
	router    *routegroup.Bundle
}

// Option configures a Handler.
type Option func(*Handler)

// WithRateLimit caps API requests per second per client IP. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(h *Handler) { h.rateLimit = rps }
}

// New creates a Handler and wires up all routes.
func New(reg *recruit.Registry, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{reg: reg, log: log, lb: logger.Backend{L: log.Sugar()}}
	for _, opt := range opts {
		opt(h)
	}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	router := routegroup.New(http.NewServeMux())
	router.Use(
		rest.RealIP,
		rest.Recoverer(h.lb),
		rest.Ping,
		rest.SizeLimit(maxBodySize),
		restlog.New(restlog.Log(h.lb), restlog.Prefix("[DEBUG]")).Handler,
	)

	router.HandleFunc("GET /health", h.health)
	router.Handle("GET /metrics", promhttp.Handler())

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		if h.rateLimit > 0 {
			lmt := tollbooth.NewLimiter(h.rateLimit, nil)
			lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
			lmt.SetMessageContentType("application/json")
			lmt.SetMessage(`{"error":"rate limit exceeded"}`)
			api.Use(tollbooth.HTTPMiddleware(lmt))
		}
		api.HandleFunc("GET /kinds", h.listKinds)
		api.HandleFunc("GET /stats", h.stats)
		api.HandleFunc("GET /{kind}", h.withRepo(h.list))
		api.HandleFunc("POST /{kind}", h.withRepo(h.create))
		api.HandleFunc("GET /{kind}/{id}", h.withRepo(h.get))
		api.HandleFunc("PATCH /{kind}/{id}", h.withRepo(h.update))
		api.HandleFunc("PUT /{kind}/{id}", h.withRepo(h.replace))
		api.HandleFunc("DELETE /{kind}/{id}", h.withRepo(h.remove))
	})
	h.router = router
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type repoHandler func(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int

// withRepo resolves the {kind} path value and counts the outcome per kind.
func (h *Handler) withRepo(fn repoHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := recruit.ParseKind(r.PathValue("kind"))
		if !ok {
			rest.SendErrorJSON(w, r, h.lb, http.StatusNotFound, errors.New("unknown kind"), "unknown entity kind "+strconv.Quote(r.PathValue("kind")))
			return
		}
		repo, _ := h.reg.Repository(kind)
		code := fn(w, r, repo)
		metrics.HTTPRequests.WithLabelValues(string(kind), r.Method, strconv.Itoa(code)).Inc()
	}
}

// sendError maps domain errors to status codes and returns the code sent.
func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, err error) int {
	var verr *schema.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, collection.ErrDuplicateID):
		code = http.StatusConflict
	case errors.As(err, &verr):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, collection.ErrMissingID), errors.Is(err, collection.ErrInvalidPatch),
		errors.Is(err, recruit.ErrUnknownFilter), errors.Is(err, recruit.ErrInvalidBody):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrQuotaExceeded):
		code = http.StatusInsufficientStorage
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	rest.SendErrorJSON(w, r, h.lb, code, err, err.Error())
	return code
}

func notFound(w http.ResponseWriter, kind recruit.Kind, id string) int {
	writeJSON(w, http.StatusNotFound, rest.JSON{"error": "not found", "kind": kind, "id": id})
	return http.StatusNotFound
}

// ---------- status endpoints ----------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rest.JSON{"status": "healthy"})
}

func (h *Handler) listKinds(w http.ResponseWriter, _ *http.Request) {
	type kindInfo struct {
		Kind    recruit.Kind `json:"kind"`
		Filters []string     `json:"filters"`
	}
	kinds := make([]kindInfo, 0, len(recruit.Kinds()))
	for _, k := range recruit.Kinds() {
		repo, _ := h.reg.Repository(k)
		kinds = append(kinds, kindInfo{Kind: k, Filters: repo.Filters()})
	}
	writeJSON(w, http.StatusOK, kinds)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reg.Counts()
	if err != nil {
		h.sendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// ---------- record CRUD ----------

func (h *Handler) list(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	filters := map[string]string{}
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[name] = values[0]
		}
	}
	items, err := repo.List(filters)
	if err != nil {
		return h.sendError(w, r, err)
	}
	writeJSON(w, http.StatusOK, items)
	return http.StatusOK
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	id := r.PathValue("id")
	item, ok, err := repo.Get(id)
	if err != nil {
		return h.sendError(w, r, err)
	}
	if !ok {
		return notFound(w, repo.Kind(), id)
	}
	writeJSON(w, http.StatusOK, item)
	return http.StatusOK
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.SendErrorJSON(w, r, h.lb, http.StatusBadRequest, err, "can't read body")
		return http.StatusBadRequest
	}
	item, err := repo.Create(body)
	if err != nil {
		return h.sendError(w, r, err)
	}
	h.log.Debug("record created", zap.String("kind", string(repo.Kind())))
	writeJSON(w, http.StatusCreated, item)
	return http.StatusCreated
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	id := r.PathValue("id")
	var partial map[string]any
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		rest.SendErrorJSON(w, r, h.lb, http.StatusBadRequest, err, "invalid JSON")
		return http.StatusBadRequest
	}
	item, ok, err := repo.Update(id, partial)
	if err != nil {
		return h.sendError(w, r, err)
	}
	if !ok {
		return notFound(w, repo.Kind(), id)
	}
	writeJSON(w, http.StatusOK, item)
	return http.StatusOK
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	id := r.PathValue("id")
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.SendErrorJSON(w, r, h.lb, http.StatusBadRequest, err, "can't read body")
		return http.StatusBadRequest
	}
	item, ok, err := repo.Replace(id, body)
	if err != nil {
		return h.sendError(w, r, err)
	}
	if !ok {
		return notFound(w, repo.Kind(), id)
	}
	writeJSON(w, http.StatusOK, item)
	return http.StatusOK
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, repo recruit.Repository) int {
	id := r.PathValue("id")
	removed, err := repo.Delete(id)
	if err != nil {
		return h.sendError(w, r, err)
	}
	if !removed {
		return notFound(w, repo.Kind(), id)
	}
	writeJSON(w, http.StatusOK, rest.JSON{"status": "deleted", "kind": repo.Kind(), "id": id})
	return http.StatusOK
}
