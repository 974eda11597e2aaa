package agent

import "errors"

// Sentinel errors for agent operations, checked with errors.Is() by the
// HTTP layer when mapping failures to status codes.
var (
	// ErrInvalidRequest indicates the chat parameters failed the agent's
	// own precondition checks (empty question, bad history role).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrModelUnavailable indicates the model invocation failed — network,
	// auth, timeout, or malformed output. Mapped to 503 at the boundary.
	ErrModelUnavailable = errors.New("model unavailable")
)
