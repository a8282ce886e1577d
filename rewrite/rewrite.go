// Package rewrite paraphrases question statements through an external
// text-rewriting service, so two variants of the same exam need not share
// identical wording.
//
// The service is a blocking network call per question; callers choose
// what a failed call means through the failure policy.
package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rangel3l/sem-colar-system/model"
)

// Rewriter turns text into an equivalent paraphrase.
type Rewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// FailurePolicy decides what a failed rewrite does to the run.
type FailurePolicy int

const (
	// FailClosed aborts the run on the first failed rewrite.
	FailClosed FailurePolicy = iota
	// FallbackOriginal keeps the question's original text and logs the
	// failure.
	FallbackOriginal
)

// Apply rewrites every question's statement, leaving alternatives
// untouched. The input is not mutated.
func Apply(ctx context.Context, rw Rewriter, questions []model.Question, policy FailurePolicy, log *slog.Logger) ([]model.Question, error) {
	if log == nil {
		log = slog.Default()
	}

	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()

		rewritten, err := rw.Rewrite(ctx, q.Statement)
		if err != nil {
			if policy == FailClosed {
				return nil, fmt.Errorf("rewriting question %d: %w", i+1, err)
			}
			log.Warn("rewrite failed, keeping original text", "question", i+1, "error", err)
			continue
		}
		if strings.TrimSpace(rewritten) == "" {
			if policy == FailClosed {
				return nil, fmt.Errorf("rewriting question %d: empty response", i+1)
			}
			log.Warn("rewrite returned empty text, keeping original", "question", i+1)
			continue
		}
		out[i].Statement = strings.TrimSpace(rewritten)
	}
	return out, nil
}

// prompt is the fixed instruction prefix sent with each statement.
const prompt = "Troque por sinônimos mantendo o sentido: "

// GeminiRewriter paraphrases through the Gemini API.
type GeminiRewriter struct {
	client *genai.Client
	model  string
}

// NewGemini creates a rewriter authenticated with the given API key.
func NewGemini(ctx context.Context, apiKey, modelName string) (*GeminiRewriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("rewrite: api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiRewriter{client: client, model: modelName}, nil
}

// Close releases the underlying client.
func (g *GeminiRewriter) Close() error {
	return g.client.Close()
}

// Rewrite sends one statement and returns the paraphrase.
func (g *GeminiRewriter) Rewrite(ctx context.Context, text string) (string, error) {
	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt+text))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini response has no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini response has no text parts")
	}
	return sb.String(), nil
}
