package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrAnalysis is the umbrella error every analysis failure matches via
// errors.Is. The three kinds below separate "upstream communication failed"
// (retryable in principle) from "upstream responded but content is unusable"
// (not retryable without a different prompt).
var (
	ErrAnalysis = errors.New("document analysis failed")

	// ErrUpstream covers transport failures, non-success statuses and
	// responses with no usable completion content.
	ErrUpstream = fmt.Errorf("completion endpoint unavailable: %w", ErrAnalysis)

	// ErrParse means the completion content could not be parsed as JSON.
	ErrParse = fmt.Errorf("completion content is not valid JSON: %w", ErrAnalysis)

	// ErrFormat means the completion parsed but does not carry the expected
	// envelope keys.
	ErrFormat = fmt.Errorf("completion envelope is malformed: %w", ErrAnalysis)
)

// Analysis is the normalized result of a document analysis.
type Analysis struct {
	Summary      string
	DocumentType string
	Metadata     map[string]any
}

// CompletionClient abstracts the outbound chat/completions call. It returns
// the first completion's message content, or an error when the transport
// fails, the status is non-success, or the response carries no content.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns raw document text into a normalized Analysis.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}
