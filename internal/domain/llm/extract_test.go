package llm_test

import (
	"testing"

	"softday/wellness-api/internal/domain/llm"
)

func TestExtractJSON(t *testing.T) {
	type payload struct {
		Reply   string `json:"reply"`
		Emotion string `json:"emotion"`
	}

	tests := []struct {
		name      string
		raw       string
		wantOK    bool
		wantReply string
	}{
		{
			name:      "plain object",
			raw:       `{"reply": "hello", "emotion": "neutral"}`,
			wantOK:    true,
			wantReply: "hello",
		},
		{
			name:      "object wrapped in markdown fence",
			raw:       "```json\n{\"reply\": \"take a break\", \"emotion\": \"stressed\"}\n```",
			wantOK:    true,
			wantReply: "take a break",
		},
		{
			name:      "object with leading prose",
			raw:       `Here is my answer: {"reply": "ok", "emotion": "positive"} hope that helps`,
			wantOK:    true,
			wantReply: "ok",
		},
		{
			name:   "no braces at all",
			raw:    "I cannot answer in JSON",
			wantOK: false,
		},
		{
			name:   "closing brace before opening brace",
			raw:    "} nonsense {",
			wantOK: false,
		},
		{
			name:   "braces around invalid JSON",
			raw:    `{reply: missing quotes}`,
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			ok := llm.ExtractJSON(tt.raw, &got)
			if ok != tt.wantOK {
				t.Fatalf("ExtractJSON(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if tt.wantOK && got.Reply != tt.wantReply {
				t.Errorf("reply = %q, want %q", got.Reply, tt.wantReply)
			}
		})
	}
}

func TestGenerateResponseText(t *testing.T) {
	resp := llm.GenerateResponse{
		Candidates: []llm.Candidate{
			{Content: llm.CandidateContent{Parts: []llm.Part{{Text: "first part"}}}},
		},
	}
	text, ok := resp.Text()
	if !ok || text != "first part" {
		t.Fatalf("Text() = %q, %v; want %q, true", text, ok, "first part")
	}

	empty := llm.GenerateResponse{}
	if _, ok := empty.Text(); ok {
		t.Error("Text() on empty response should report false")
	}
}
