// Package suggest offers an optional, AI-backed category suggestion for
// expense merchants that fall into the catch-all pool. It never runs
// inside the deterministic parsing and classification pipeline; it is
// only invoked explicitly and requires an API key.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Suggester proposes a category for a transaction.
type Suggester interface {
	Suggest(ctx context.Context, tx models.Transaction, known []string) (string, error)
}

// GeminiSuggester implements Suggester against the Google Gemini API.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiSuggester creates a suggester for the given API key and model
// name. An empty model name falls back to DefaultModel.
func NewGeminiSuggester(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for category suggestions")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSuggester{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (s *GeminiSuggester) Close() error {
	return s.client.Close()
}

// Suggest asks the model to pick one of the known categories for the
// transaction's merchant description.
func (s *GeminiSuggester) Suggest(ctx context.Context, tx models.Transaction, known []string) (string, error) {
	prompt := fmt.Sprintf(`Categorize the following bank transaction:
Description: %s
Current category: %s
Amount: %s
MCC: %s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		tx.Description,
		tx.Category,
		tx.Amount.StringFixed(2),
		tx.MCC,
		strings.Join(known, ", "))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategory(responseText, known)
	if category == "" {
		return "", fmt.Errorf("no category in Gemini response")
	}

	s.logger.Debug("Category suggested",
		logging.Field{Key: "description", Value: tx.Description},
		logging.Field{Key: "category", Value: category})
	return category, nil
}

// extractCategory pulls the category out of a structured model response,
// falling back to scanning for any known category name.
func extractCategory(response string, known []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		}
	}
	for _, name := range known {
		if strings.Contains(response, name) {
			return name
		}
	}
	return ""
}
