package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/concierge-ai/concierge/internal/agent"
	"github.com/concierge-ai/concierge/internal/config"
	"github.com/concierge-ai/concierge/internal/log"
)

// maxRequestBody caps chat request bodies at 1MB.
const maxRequestBody = 1024 * 1024

// chatRequest is the wire format for POST /api/chat.
type chatRequest struct {
	Question            string           `json:"question"`
	ConversationHistory []historyMessage `json:"conversation_history,omitempty"`
	Model               string           `json:"model,omitempty"`
	Temperature         *float64         `json:"temperature,omitempty"`
	MaxTokens           *int             `json:"max_tokens,omitempty"`
}

// historyMessage is one prior turn supplied by the client.
type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the wire format for a successful chat turn.
type chatResponse struct {
	Answer     string         `json:"answer"`
	Model      string         `json:"model"`
	TokensUsed tokensUsed     `json:"tokens_used"`
	ToolCalls  []toolCallInfo `json:"tool_calls,omitempty"`
}

type tokensUsed struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type toolCallInfo struct {
	Tool  string `json:"tool"`
	Input string `json:"input"`
}

// chatHandler serves the chat endpoint against an injected Chatter.
type chatHandler struct {
	agent  Chatter
	cfg    *config.Config
	logger log.Logger
}

// send handles POST /api/chat: validate, execute one agent turn under the
// configured timeout, and translate the outcome onto the wire.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				"Request Too Large", "Request body exceeds 1MB.", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest,
			"Validation Error", "Invalid JSON request body.", h.logger)
		return
	}

	if details, ok := h.validate(&req); !ok {
		writeError(w, http.StatusBadRequest, "Validation Error", details, h.logger)
		return
	}

	params := agent.Params{
		Question:    strings.TrimSpace(req.Question),
		History:     toHistory(req.ConversationHistory),
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// The model call is bounded; a hung upstream surfaces as 503, not a
	// connection held open indefinitely.
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout())
	defer cancel()

	resp, err := h.agent.Chat(ctx, params)
	if err != nil {
		if errors.Is(err, agent.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "Validation Error", err.Error(), h.logger)
			return
		}
		requestID, _ := requestIDFromContext(r.Context())
		h.logger.Error("chat turn failed",
			"error", err,
			"request_id", requestID,
		)
		// Internal detail stays in the log; clients get a fixed message.
		writeError(w, http.StatusServiceUnavailable,
			"Service Unavailable", "Failed to process request. Please try again later.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(resp), h.logger)
}

// validate enforces the request contract. Returns a client-facing detail
// message and false when the request is rejected.
func (h *chatHandler) validate(req *chatRequest) (string, bool) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "question must not be empty", false
	}
	// The limit is in characters, not bytes; multibyte questions must not
	// be penalized for their encoding.
	if utf8.RuneCountInString(question) > h.cfg.MaxQuestionLength {
		return fmt.Sprintf("question exceeds maximum length of %d characters", h.cfg.MaxQuestionLength), false
	}
	for i, m := range req.ConversationHistory {
		if !agent.Role(m.Role).Valid() {
			return fmt.Sprintf("conversation_history[%d].role must be one of user, assistant, system", i), false
		}
	}
	if req.Temperature != nil {
		if *req.Temperature < config.MinTemperature || *req.Temperature > config.MaxTemperature {
			return fmt.Sprintf("temperature must be between %g and %g", config.MinTemperature, config.MaxTemperature), false
		}
	}
	if req.MaxTokens != nil {
		if *req.MaxTokens < config.MinMaxTokens || *req.MaxTokens > config.MaxMaxTokens {
			return fmt.Sprintf("max_tokens must be between %d and %d", config.MinMaxTokens, config.MaxMaxTokens), false
		}
	}
	return "", true
}

func toHistory(history []historyMessage) []agent.Message {
	if len(history) == 0 {
		return nil
	}
	out := make([]agent.Message, len(history))
	for i, m := range history {
		out[i] = agent.Message{Role: agent.Role(m.Role), Content: m.Content}
	}
	return out
}

func toChatResponse(resp *agent.Response) chatResponse {
	out := chatResponse{
		Answer: resp.Answer,
		Model:  resp.Model,
		TokensUsed: tokensUsed{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, tc := range resp.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, toolCallInfo{Tool: tc.Tool, Input: tc.Input})
	}
	return out
}
