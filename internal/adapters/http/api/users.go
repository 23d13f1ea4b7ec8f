// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/roster/internal/adapters/repository"
)

// userNotFoundMessage is the exact body older clients key on.
const userNotFoundMessage = "User not found"

// UsersHandler handles the /users collection and /users/{id} element routes.
type UsersHandler struct {
	deps     Dependencies
	maxBytes int64
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps Dependencies, maxBytes int64) *UsersHandler {
	return &UsersHandler{deps: deps, maxBytes: maxBytes}
}

// HandleUsers handles GET /users and POST /users requests.
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleList returns the full collection in insertion order. An empty
// collection serializes as [], never null.
func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.deps.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleCreate appends the submitted object unconditionally, including when
// it lacks an id or duplicates an existing one, and echoes it back.
func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(w, r, h.maxBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.CreateUser(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleUserByID handles PUT /users/{id} requests. On a match the response
// echoes the patch object, not the merged record; on a miss it returns the
// legacy {"error": "User not found"} body with 404.
func (h *UsersHandler) HandleUserByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	// Extract path parameter after /users/
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	patch, err := decodeRecord(w, r, h.maxBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if _, err := h.deps.UpdateUser(r.Context(), id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, legacyErrorResponse{Error: userNotFoundMessage})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, patch)
}
