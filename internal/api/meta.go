package api

import (
	"net/http"

	"github.com/concierge-ai/concierge/internal/config"
	"github.com/concierge-ai/concierge/internal/log"
)

// metaHandler serves the informational endpoints: health, root metadata,
// tool listing, and the debug-only configuration view.
type metaHandler struct {
	catalog ToolCatalog
	cfg     *config.Config
	version string
	logger  log.Logger
}

// health is a simple health check endpoint for Docker/Kubernetes probes.
func (h *metaHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
	}, h.logger)
}

// root returns service metadata and a map of available endpoints.
func (h *metaHandler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Concierge AI Microservice",
		"version": h.version,
		"status":  "running",
		"endpoints": map[string]string{
			"chat":   "POST /api/chat",
			"tools":  "GET /api/tools",
			"config": "GET /api/config",
			"health": "GET /health",
		},
	}, h.logger)
}

// listTools returns every callable tool with its name and description.
func (h *metaHandler) listTools(w http.ResponseWriter, r *http.Request) {
	descriptors := h.catalog.Descriptors(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": descriptors,
		"count": len(descriptors),
	}, h.logger)
}

// showConfig exposes the non-sensitive runtime configuration. Locked behind
// debug mode; production deployments get a 403.
func (h *metaHandler) showConfig(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.Debug {
		writeError(w, http.StatusForbidden,
			"Forbidden", "Config endpoint is only available in debug mode.", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.cfg.Public(), h.logger)
}
