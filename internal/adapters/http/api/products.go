// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ProductsHandler handles product listing requests.
type ProductsHandler struct {
	deps Dependencies
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(deps Dependencies) *ProductsHandler {
	return &ProductsHandler{deps: deps}
}

// HandleGetProducts handles GET /products requests.
func (h *ProductsHandler) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	recs, err := h.deps.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
