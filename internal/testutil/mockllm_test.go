package testutil

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/go-cmp/cmp"
)

func TestMockLLM_PatternMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []struct{ pattern, response string }
		input    string
		want     string
	}{
		{
			name:  "fallback when no patterns",
			input: "hello",
			want:  "default response",
		},
		{
			name: "exact match",
			patterns: []struct{ pattern, response string }{
				{"hello", "hi there"},
			},
			input: "hello",
			want:  "hi there",
		},
		{
			name: "case insensitive match",
			patterns: []struct{ pattern, response string }{
				{"hello", "hi there"},
			},
			input: "HELLO world",
			want:  "hi there",
		},
		{
			name: "first match wins",
			patterns: []struct{ pattern, response string }{
				{"hello", "first"},
				{"hello", "second"},
			},
			input: "hello",
			want:  "first",
		},
		{
			name: "no match returns fallback",
			patterns: []struct{ pattern, response string }{
				{"hello", "hi"},
			},
			input: "goodbye",
			want:  "default response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewMockLLM("default response")
			for _, p := range tt.patterns {
				m.AddResponse(p.pattern, p.response)
			}

			req := &ai.ModelRequest{
				Messages: []*ai.Message{
					ai.NewUserMessage(ai.NewTextPart(tt.input)),
				},
			}

			resp, err := m.generate(context.Background(), req, nil)
			if err != nil {
				t.Fatalf("generate() unexpected error: %v", err)
			}
			if got := resp.Message.Text(); got != tt.want {
				t.Errorf("generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMockLLM_CallRecording(t *testing.T) {
	t.Parallel()
	m := NewMockLLM("ok")
	m.AddResponse("special", "special response")

	req1 := &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserMessage(ai.NewTextPart("hello"))},
	}
	req2 := &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserMessage(ai.NewTextPart("special input"))},
	}

	if _, err := m.generate(context.Background(), req1, nil); err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}
	if _, err := m.generate(context.Background(), req2, nil); err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}

	want := []MockCall{
		{UserMessage: "hello", Response: "ok"},
		{UserMessage: "special input", Response: "special response"},
	}
	if diff := cmp.Diff(want, m.Calls()); diff != "" {
		t.Errorf("Calls() mismatch (-want +got):\n%s", diff)
	}

	m.Reset()
	if got := len(m.Calls()); got != 0 {
		t.Errorf("Calls() after Reset() len = %d, want 0", got)
	}
}

func TestMockLLM_ToolRuleFiresOnce(t *testing.T) {
	t.Parallel()
	m := NewMockLLM("fallback")
	m.AddToolResponse("time", []*ai.ToolRequest{
		{Name: "get_current_time", Input: map[string]any{"timezone": "UTC"}},
	}, "It is now 10:30.")

	req := &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserMessage(ai.NewTextPart("what time is it?"))},
	}

	// First call issues the tool request and no text.
	resp, err := m.generate(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}
	if len(resp.Message.Content) != 1 || resp.Message.Content[0].ToolRequest == nil {
		t.Fatalf("first call content = %+v, want single tool request", resp.Message.Content)
	}

	// Second call for the same question returns the text answer.
	resp, err = m.generate(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}
	if got := resp.Message.Text(); got != "It is now 10:30." {
		t.Errorf("second call text = %q, want answer", got)
	}

	// Reset re-arms the rule.
	m.Reset()
	resp, err = m.generate(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}
	if resp.Message.Content[0].ToolRequest == nil {
		t.Error("tool rule did not re-arm after Reset()")
	}
}

func TestMockLLM_Streaming(t *testing.T) {
	t.Parallel()
	m := NewMockLLM("streamed")

	var chunks []string
	cb := func(_ context.Context, chunk *ai.ModelResponseChunk) error {
		for _, p := range chunk.Content {
			chunks = append(chunks, p.Text)
		}
		return nil
	}

	req := &ai.ModelRequest{
		Messages: []*ai.Message{ai.NewUserMessage(ai.NewTextPart("test"))},
	}

	if _, err := m.generate(context.Background(), req, cb); err != nil {
		t.Fatalf("generate() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"streamed"}, chunks); diff != "" {
		t.Errorf("streaming chunks mismatch (-want +got):\n%s", diff)
	}
}

func TestMockLLM_RegisterModel(t *testing.T) {
	t.Parallel()
	m := NewMockLLM("registered")
	g := genkit.Init(context.Background())

	model := m.RegisterModel(g)
	if model == nil {
		t.Fatal("RegisterModel() returned nil")
	}
	if got := model.Name(); got != "openai/mock-model" {
		t.Errorf("RegisterModel().Name() = %q, want %q", got, "openai/mock-model")
	}

	found := genkit.LookupModel(g, "openai/mock-model")
	if found == nil {
		t.Fatal("LookupModel() returned nil after registration")
	}
}
