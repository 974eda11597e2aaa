// Package api provides the JSON REST API server for Concierge.
//
// # Architecture
//
// The API server uses Go 1.22+ routing with a layered middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → Routes
//
// The health probe (/health) bypasses the middleware stack via a top-level
// mux, ensuring liveness checks remain fast and never rate-limited.
//
// # Endpoints
//
// Health probe (no middleware):
//   - GET /health — returns {"status":"healthy","version":"..."}
//
// Chat:
//   - POST /api/chat — one synchronous assistant turn; the model may call
//     tools autonomously before answering
//
// Introspection:
//   - GET /api/tools  — callable tool names and descriptions, with count
//   - GET /api/config — non-sensitive runtime configuration (debug mode only)
//   - GET /           — service metadata and endpoint map
//
// # Error Handling
//
// All error responses share one payload shape:
//
//	{"error": "...", "status_code": <int>, "details": "..."}
//
// Client mistakes (malformed JSON, empty or oversized question, out-of-range
// sampling parameters, unknown history roles) return 400. Upstream model
// failures and timeouts return 503 with a fixed message; internal error text
// never reaches the client.
//
// # Security
//
// The middleware stack enforces:
//   - Per-IP rate limiting (token bucket, configurable burst)
//   - CORS with explicit origin allowlist
//   - Request body size cap (1MB) on chat requests
package api
