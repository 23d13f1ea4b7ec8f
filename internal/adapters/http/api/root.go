// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RootHandler serves the greeting on "/".
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleRoot handles GET / requests. The "/" pattern catches every path the
// mux did not match, so anything but the bare root is a 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello, World!"})
}
