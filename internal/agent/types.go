package agent

// Role identifies the author of a conversation message.
type Role string

// Valid message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the accepted roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is a single turn of caller-supplied conversation history.
// Immutable value: created by the caller, never mutated here.
type Message struct {
	Role    Role
	Content string
}

// Params carries the input for one chat turn. Temperature and MaxTokens are
// call-scoped overrides of the agent's defaults; they are applied to the
// single model invocation and never written back into shared state, so
// concurrent requests with different overrides cannot race.
type Params struct {
	Question    string
	History     []Message
	Model       string // accepted for wire compatibility; see Agent.Chat
	Temperature *float64
	MaxTokens   *int
}

// Usage is the best-effort token accounting for one turn.
// All fields are zero when the model client exposes no counters.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ToolCall records one tool invocation the model made during a turn, in the
// order issued. Input is the string form of the tool's arguments.
type ToolCall struct {
	Tool  string
	Input string
}

// Response is the result of one chat turn, constructed fresh per request.
type Response struct {
	Answer    string
	Model     string
	Usage     Usage
	ToolCalls []ToolCall
}
