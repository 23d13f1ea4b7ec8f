// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/roster/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ListUsers returns every user record in insertion order.
	ListUsers(ctx context.Context) ([]record.Record, error)

	// CreateUser appends a record to the users collection unconditionally.
	CreateUser(ctx context.Context, rec record.Record) error

	// UpdateUser merges patch into the first user with a matching integer id.
	UpdateUser(ctx context.Context, id int64, patch record.Record) (record.Record, error)

	// ListProducts returns every product record in insertion order.
	ListProducts(ctx context.Context) ([]record.Record, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler     *RootHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	usersHandler    *UsersHandler
	productsHandler *ProductsHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes caps
// accepted request body sizes.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	return &Server{
		rootHandler:     NewRootHandler(),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		usersHandler:    NewUsersHandler(deps, maxBodyBytes),
		productsHandler: NewProductsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/users", RequestIDMiddleware(MetricsMiddleware(s.usersHandler.HandleUsers, "users")))
	mux.HandleFunc("/users/", RequestIDMiddleware(MetricsMiddleware(s.usersHandler.HandleUserByID, "user_by_id")))
	mux.HandleFunc("/products", RequestIDMiddleware(MetricsMiddleware(s.productsHandler.HandleGetProducts, "products")))
	mux.HandleFunc("/", s.rootHandler.HandleRoot)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// legacyErrorResponse is the wire shape older clients expect on an update
// miss: {"error": "User not found"}.
type legacyErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeRecord reads a single JSON object from the request body, enforcing
// the size cap. A non-object body (array, scalar, garbage) fails here, at
// the boundary.
func decodeRecord(w http.ResponseWriter, r *http.Request, maxBytes int64) (record.Record, error) {
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	var rec record.Record
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if rec == nil {
		return nil, ErrBadRequest
	}
	return rec, nil
}
