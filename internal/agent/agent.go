// Package agent executes one chat turn end-to-end: it binds the language
// model to the tool set, converts caller-supplied history, invokes the model
// (which may autonomously call tools), and normalizes the result.
//
// The agent is an explicitly constructed, dependency-injected service object.
// All configuration is captured immutably at construction; per-request
// overrides travel as call parameters, never as writes to shared state.
// It holds no state between turns beyond what the caller resupplies as
// history.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/concierge-ai/concierge/internal/log"
)

// Provider is the Genkit plugin prefix for the OpenAI-compatible backend.
const Provider = "openai"

// systemPrompt is the fixed role description given to the model.
// System entries in caller-supplied history are dropped in favor of this
// prompt; see buildHistory.
const systemPrompt = "You are a helpful AI assistant with access to various tools. " +
	"You can help users with calendar management, reminders, email, weather, and more. " +
	"When the user asks for something that requires a tool, use the appropriate tool. " +
	"Be helpful, clear, and concise in your responses. " +
	"If you use a tool, explain what you're doing and the result."

// fallbackAnswer is returned when the model produces no output text.
const fallbackAnswer = "No response generated"

// Config contains all required parameters for the agent.
type Config struct {
	Genkit *genkit.Genkit
	Tools  []ai.Tool // pre-registered via tools.Register
	Logger log.Logger

	Model       string  // bare model identifier, e.g. "qwen/qwen3-235b-a22b-2507"
	Temperature float64 // default sampling temperature
	MaxTokens   int     // default completion token limit
	MaxTurns    int     // maximum agentic loop turns (0 = default 5)
}

// validate checks that all required dependencies are present.
func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return fmt.Errorf("genkit instance is required")
	}
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if len(cfg.Tools) == 0 {
		return fmt.Errorf("at least one tool is required")
	}
	if cfg.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// Agent orchestrates chat turns against the configured model.
// All fields are read-only after construction, so a single Agent is safe
// for concurrent requests.
type Agent struct {
	g      *genkit.Genkit
	logger log.Logger

	model       string // bare identifier, reported in responses
	modelName   string // provider-qualified Genkit name
	temperature float64
	maxTokens   int
	maxTurns    int

	toolRefs  []ai.ToolRef // cached at construction for ai.WithTools
	toolNames string       // cached comma-separated for logging
}

// New creates an agent with the given configuration.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 5
	}

	// Cache tool refs and names at construction (zero allocation per request).
	toolRefs := make([]ai.ToolRef, len(cfg.Tools))
	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		toolRefs[i] = t
		names[i] = t.Name()
	}

	a := &Agent{
		g:           cfg.Genkit,
		logger:      cfg.Logger,
		model:       cfg.Model,
		modelName:   Provider + "/" + cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxTurns:    maxTurns,
		toolRefs:    toolRefs,
		toolNames:   strings.Join(names, ", "),
	}

	a.logger.Info("agent initialized",
		"model", a.model,
		"tools", len(a.toolRefs),
		"maxTurns", a.maxTurns,
	)

	return a, nil
}

// Chat executes exactly one chat turn.
//
// Params.Model is accepted for wire compatibility but does not switch the
// bound model; the response always reports the configured model. Overrides
// for temperature and max tokens apply to this invocation only.
//
// Unrecoverable model failures are returned wrapped in ErrModelUnavailable;
// the agent does not retry.
func (a *Agent) Chat(ctx context.Context, p Params) (*Response, error) {
	question := strings.TrimSpace(p.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidRequest)
	}
	for i, m := range p.History {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("%w: history[%d] has unknown role %q", ErrInvalidRequest, i, m.Role)
		}
	}

	messages := buildHistory(p.History)
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(question)))

	genConfig := &ai.GenerationCommonConfig{
		Temperature:     a.temperature,
		MaxOutputTokens: a.maxTokens,
	}
	if p.Temperature != nil {
		genConfig.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		genConfig.MaxOutputTokens = *p.MaxTokens
	}

	a.logger.Debug("invoking model",
		"model", a.modelName,
		"historyMessages", len(messages)-1,
		"tools", a.toolNames,
		"temperature", genConfig.Temperature,
		"maxTokens", genConfig.MaxOutputTokens,
	)

	resp, err := genkit.Generate(ctx, a.g,
		ai.WithModelName(a.modelName),
		ai.WithSystem(systemPrompt),
		ai.WithMessages(messages...),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
		ai.WithConfig(genConfig),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		a.logger.Warn("model returned empty response, using fallback")
		answer = fallbackAnswer
	}

	toolCalls := extractToolCalls(resp)

	a.logger.Info("chat turn completed",
		"answerLength", len(answer),
		"toolCalls", len(toolCalls),
	)

	return &Response{
		Answer:    answer,
		Model:     a.model,
		Usage:     extractUsage(resp),
		ToolCalls: toolCalls,
	}, nil
}

// buildHistory converts caller-supplied history into the model's native
// message sequence: user entries become user turns, assistant entries become
// model turns, and system entries are silently dropped — the system role is
// reserved for the fixed system prompt, not user-supplied history.
func buildHistory(history []Message) []*ai.Message {
	messages := make([]*ai.Message, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case RoleUser:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(m.Content)))
		case RoleAssistant:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(m.Content)))
		case RoleSystem:
			// dropped
		}
	}
	return messages
}

// extractToolCalls collects every tool request issued during the turn, in
// order. Intermediate agentic-loop turns live in the final request's message
// history; the final message is scanned as well for requests left unresolved
// when the turn limit is reached.
func extractToolCalls(resp *ai.ModelResponse) []ToolCall {
	var calls []ToolCall

	if resp.Request != nil {
		for _, msg := range resp.Request.Messages {
			calls = appendToolCalls(calls, msg)
		}
	}
	calls = appendToolCalls(calls, resp.Message)

	return calls
}

func appendToolCalls(calls []ToolCall, msg *ai.Message) []ToolCall {
	if msg == nil {
		return calls
	}
	for _, part := range msg.Content {
		if part == nil || part.ToolRequest == nil {
			continue
		}
		calls = append(calls, ToolCall{
			Tool:  part.ToolRequest.Name,
			Input: stringifyInput(part.ToolRequest.Input),
		})
	}
	return calls
}

// stringifyInput renders tool arguments as a compact JSON string, falling
// back to fmt formatting for values JSON cannot encode.
func stringifyInput(input any) string {
	if input == nil {
		return ""
	}
	if s, ok := input.(string); ok {
		return s
	}
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}

// extractUsage maps the model's usage counters onto the response, defaulting
// to zeros when the client exposes none. Missing telemetry never fails a
// request.
func extractUsage(resp *ai.ModelResponse) Usage {
	if resp.Usage == nil {
		return Usage{}
	}
	return Usage{
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
}
