package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/concierge-ai/concierge/internal/agent"
	"github.com/concierge-ai/concierge/internal/config"
	"github.com/concierge-ai/concierge/internal/log"
	"github.com/concierge-ai/concierge/internal/tools"
)

// Chatter executes a single chat turn. The concrete implementation is
// *agent.Agent; tests substitute a fake.
type Chatter interface {
	Chat(ctx context.Context, p agent.Params) (*agent.Response, error)
}

// ToolCatalog lists the callable tools exposed by the service.
type ToolCatalog interface {
	Descriptors(ctx context.Context) []tools.Descriptor
}

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger  log.Logger
	Agent   Chatter     // Required
	Catalog ToolCatalog // Required
	Config  *config.Config
	Version string
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Agent == nil {
		return nil, errors.New("agent is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("tool catalog is required")
	}
	if cfg.Config == nil {
		return nil, errors.New("config is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.Config{})
	}

	ch := &chatHandler{
		agent:  cfg.Agent,
		cfg:    cfg.Config,
		logger: logger,
	}
	mh := &metaHandler{
		catalog: cfg.Catalog,
		cfg:     cfg.Config,
		version: cfg.Version,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", ch.send)
	mux.HandleFunc("GET /api/tools", mh.listTools)
	mux.HandleFunc("GET /api/config", mh.showConfig)
	mux.HandleFunc("GET /{$}", mh.root)

	burst := cfg.Config.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → CORS → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	// CORS must be before RateLimit so preflight OPTIONS gets proper CORS headers.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, logger)(handler)
	handler = corsMiddleware(cfg.Config.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health probes bypass the middleware stack so liveness checks are never
	// rate-limited.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", mh.health)
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
