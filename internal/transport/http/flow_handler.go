package http

import (
	"net/http"

	"github.com/machingclee/scriptdeck/internal/cqrs"
)

// FlowHandler serves the static command/event flow graph derived from
// handler and policy declarations.
type FlowHandler struct {
	registry *cqrs.Registry
}

// NewFlowHandler creates a new flow handler.
func NewFlowHandler(registry *cqrs.Registry) *FlowHandler {
	return &FlowHandler{registry: registry}
}

// ServeHTTP handles GET /api/v1/flow requests.
func (h *FlowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Flow())
}
