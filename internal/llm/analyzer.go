package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// defaultSummary is the sentinel used when the envelope carries a
// document_type but no summary.
const defaultSummary = "No summary provided"

// defaultDocumentType is used when the envelope carries a summary but no
// document_type.
const defaultDocumentType = "unknown"

type analyzer struct {
	client CompletionClient
}

// NewAnalyzer constructs the default Analyzer on top of a completion client.
func NewAnalyzer(client CompletionClient) Analyzer {
	return &analyzer{client: client}
}

// Analyze builds the prompt, invokes the completion endpoint, and normalizes
// the free-text completion into an Analysis. It has no side effects beyond
// the outbound call.
func (a *analyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	content, err := a.client.Complete(ctx, BuildPrompt(text))
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return normalize(content)
}

// normalize turns a raw completion body into an Analysis. Every step defends
// against an observed completion failure mode: markdown fencing, prose
// around the JSON object, a missing envelope, fully malformed JSON.
func normalize(content string) (Analysis, error) {
	body := stripFences(strings.TrimSpace(content))

	// Narrow to the first '{' ... last '}' span when both exist, so prose
	// before or after the object does not break parsing.
	if start := strings.Index(body, "{"); start >= 0 {
		if end := strings.LastIndex(body, "}"); end > start {
			body = body[start : end+1]
		}
	}

	var value any
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// A valid but non-object completion is treated as an empty envelope; the
	// missing-keys check below rejects it.
	payload, ok := value.(map[string]any)
	if !ok {
		payload = map[string]any{}
	}

	if err := validateEnvelope(payload); err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	_, hasSummary := payload["summary"]
	_, hasType := payload["document_type"]
	if !hasSummary && !hasType {
		// The model returned a bare metadata object instead of the envelope.
		return Analysis{}, fmt.Errorf("%w: missing summary and document_type", ErrFormat)
	}

	out := Analysis{
		Summary:      defaultSummary,
		DocumentType: defaultDocumentType,
		Metadata:     map[string]any{},
	}
	if s, ok := payload["summary"].(string); ok && s != "" {
		out.Summary = s
	}
	if s, ok := payload["document_type"].(string); ok && s != "" {
		out.DocumentType = s
	}
	if m, ok := payload["metadata"].(map[string]any); ok {
		out.Metadata = m
	}
	return out, nil
}

// stripFences removes a leading markdown fence marker (with or without a
// language tag) and a trailing one.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}
