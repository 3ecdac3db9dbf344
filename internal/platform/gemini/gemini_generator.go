package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/parla-app/parla-api/internal/config"
	"github.com/parla-app/parla-api/internal/generation"
)

// promptTemplateText asks for exactly one sentence so the response needs
// no structured parsing.
const promptTemplateText = `You are helping a language learner practice vocabulary.
Write exactly one natural example sentence in the language of the term "{{.Term}}"
(meaning: "{{.Translation}}") that uses the term in context.
Respond with the sentence only, no translation, no quotes, no explanation.`

// promptData carries the template fields for one generation request.
type promptData struct {
	Term        string
	Translation string
}

// contentCaller is the slice of the genai client the generator uses.
// Narrowing the dependency to one method keeps the retry and parsing
// logic testable without network access.
type contentCaller interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Verify the real client satisfies the caller seam
var _ contentCaller = (*genai.Models)(nil)

// ExampleGenerator implements generation.ExampleGenerator using Google's
// Gemini API to produce example sentences for vocabulary terms.
type ExampleGenerator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	caller         contentCaller
	model          string
}

// Ensure ExampleGenerator implements the generation interface
var _ generation.ExampleGenerator = (*ExampleGenerator)(nil)

// NewExampleGenerator creates a Gemini-backed example generator.
// It validates the configuration and establishes the API client.
func NewExampleGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*ExampleGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("example").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &ExampleGenerator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		caller:         client.Models,
		model:          cfg.ModelName,
	}, nil
}

// GenerateExample implements generation.ExampleGenerator.
func (g *ExampleGenerator) GenerateExample(ctx context.Context, term, translation string) (string, error) {
	prompt, err := g.createPrompt(ctx, term, translation)
	if err != nil {
		return "", err
	}

	sentence, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	g.logger.InfoContext(ctx, "example sentence generated",
		slog.String("term", term),
		slog.Int("sentence_length", len(sentence)))
	return sentence, nil
}

// createPrompt renders the prompt template for the given term.
func (g *ExampleGenerator) createPrompt(ctx context.Context, term, translation string) (string, error) {
	if strings.TrimSpace(term) == "" {
		return "", generation.ErrEmptyTerm
	}

	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{Term: term, Translation: translation})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "prompt rendered",
		slog.String("term", term),
		slog.Int("prompt_length", buf.Len()))
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Transient errors (network, 5xx) are retried up to MaxRetries times;
// permanent errors (blocked content, malformed response) surface
// immediately.
func (g *ExampleGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default",
			slog.Int("max_retries", 3))
		maxRetries = 3
	}

	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default",
			slog.Int("base_delay_seconds", 2))
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "calling Gemini API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		sentence, err := g.callOnce(ctx, prompt)
		if err == nil {
			return sentence, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single API call and normalizes the response.
func (g *ExampleGenerator) callOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := g.caller.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: blocked by safety filters", generation.ErrContentBlocked)
	}

	sentence := strings.TrimSpace(resp.Text())
	sentence = strings.Trim(sentence, `"`)
	if sentence == "" {
		return "", fmt.Errorf("%w: empty sentence in response", generation.ErrInvalidResponse)
	}

	return sentence, nil
}
