package service

import (
	"context"
	"strings"

	"ideaforge/config"
	"ideaforge/internal/apperr"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// TextGenerator is the outbound text-generation endpoint. The idea pipeline
// only needs prompt-in, text-out; tests substitute a canned implementation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiTextGenerator struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiTextGenerator builds the Gemini-backed TextGenerator. When no API
// key is configured the service still constructs, with a nil client, and
// every call reports the endpoint as unavailable.
func NewGeminiTextGenerator(cfg *config.Config) (TextGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Idea generation will be non-functional.")
		return &geminiTextGenerator{cfg: cfg, client: nil}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Gemini client")
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create gemini client", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	return &geminiTextGenerator{client: model, cfg: cfg}, nil
}

func (s *geminiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", apperr.New(apperr.KindGenerationUnavailable,
			"Gemini API key not configured. Please set GEMINI_API_KEY environment variable.")
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error")
		return "", classifyGenerationError(err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response")
		return "", apperr.New(apperr.KindEmptyResponse, "Empty response from Gemini AI")
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", apperr.New(apperr.KindEmptyResponse, "Empty response from Gemini AI")
	}
	return text, nil
}

// classifyGenerationError sorts endpoint failures into the classes operators
// alert on: credential problems, quota or billing problems, and everything
// else. Classification goes by the error message because the SDK surfaces
// these as opaque transport errors.
func classifyGenerationError(err error) error {
	msg := err.Error()
	upper := strings.ToUpper(msg)
	if strings.Contains(upper, "API_KEY") || strings.Contains(upper, "API KEY") {
		return apperr.Wrap(apperr.KindGenerationUnavailable,
			"Invalid or missing Gemini API key. Please check your API key configuration.", err)
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "quota") || strings.Contains(lower, "billing") {
		return apperr.Wrap(apperr.KindQuotaExhausted,
			"Gemini API quota exceeded or billing issue. Please check your Google Cloud billing.", err)
	}
	return apperr.Wrap(apperr.KindInternal, "Gemini API error", err)
}
