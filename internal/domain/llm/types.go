package llm

import "context"

// Role values follow the Gemini generateContent wire convention: user turns
// are "user", assistant turns are "model".
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is a single text fragment of a content turn.
type Part struct {
	Text string `json:"text"`
}

// Content is one role-tagged turn in a generateContent request.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// GenerationConfig tunes the completion. ResponseMIMEType set to
// "application/json" forces JSON-mode output.
type GenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

// GenerateRequest is the payload for the text-completion endpoint.
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateResponse mirrors the success response shape.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

// Candidate holds one generated completion.
type Candidate struct {
	Content CandidateContent `json:"content"`
}

// CandidateContent wraps the generated parts.
type CandidateContent struct {
	Parts []Part `json:"parts"`
}

// APIError is the upstream error body shape.
type APIError struct {
	Message string `json:"message"`
}

// Text returns candidates[0].content.parts[0].text, or false when the
// response does not carry that shape.
func (r *GenerateResponse) Text() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", false
	}
	return parts[0].Text, true
}

// Provider is the text-completion client consumed by the chat and analysis
// services. Implementations own their full retry budget; callers never retry.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// NewUserTurn builds a single-part user content turn.
func NewUserTurn(text string) Content {
	return Content{Parts: []Part{{Text: text}}, Role: RoleUser}
}

// NewModelTurn builds a single-part model content turn.
func NewModelTurn(text string) Content {
	return Content{Parts: []Part{{Text: text}}, Role: RoleModel}
}
