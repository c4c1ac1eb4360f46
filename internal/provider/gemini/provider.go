// Package gemini implements the schema-constrained generation client on top
// of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	genai "google.golang.org/genai"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/prompt"
	"github.com/masterclass-labs/architect-advisor/internal/tokens"
)

const (
	// defaultMatchModel serves the matcher and step explainer.
	defaultMatchModel = "gemini-3-flash-preview"
	// defaultReviewModel serves architecture reviews, which need the
	// stronger reasoning tier.
	defaultReviewModel = "gemini-3-pro-preview"

	defaultMaxPromptTokens = 8192
)

// Models selects the model per prompt kind.
type Models struct {
	Match   string
	Review  string
	Explain string
}

// ProviderOption configures the provider.
type ProviderOption func(*Provider)

// WithHTTPClient sets a custom HTTP client (used by tests to inject a
// recording transport).
func WithHTTPClient(httpClient *http.Client) ProviderOption {
	return func(p *Provider) {
		p.httpClient = httpClient
	}
}

// WithBaseURL points the client at a custom API endpoint.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithModels overrides the per-kind model selection.
func WithModels(m Models) ProviderOption {
	return func(p *Provider) {
		if m.Match != "" {
			p.models.Match = m.Match
		}
		if m.Review != "" {
			p.models.Review = m.Review
		}
		if m.Explain != "" {
			p.models.Explain = m.Explain
		}
	}
}

// WithMaxPromptTokens overrides the prompt token budget.
func WithMaxPromptTokens(n int) ProviderOption {
	return func(p *Provider) {
		p.maxPromptTokens = n
	}
}

// Provider implements domain.Generator using the official genai client.
type Provider struct {
	client          *genai.Client
	models          Models
	counter         *tokens.Counter
	maxPromptTokens int
	logger          *slog.Logger

	httpClient *http.Client
	baseURL    string
}

var _ domain.Generator = (*Provider)(nil)

// New creates a Gemini-backed generation client.
func New(ctx context.Context, apiKey string, logger *slog.Logger, opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		models: Models{
			Match:   defaultMatchModel,
			Review:  defaultReviewModel,
			Explain: defaultMatchModel,
		},
		maxPromptTokens: defaultMaxPromptTokens,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	counter, err := tokens.NewCounter()
	if err != nil {
		return nil, err
	}
	p.counter = counter

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.httpClient != nil {
		cfg.HTTPClient = p.httpClient
	}
	if p.baseURL != "" {
		cfg.HTTPOptions.BaseURL = p.baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	p.client = client
	return p, nil
}

// MatchService recommends a service for the described workload.
func (p *Provider) MatchService(ctx context.Context, promptText string) (*domain.RecommendationResult, error) {
	raw, err := p.generate(ctx, domain.PromptKindServiceMatch, promptText)
	if err != nil {
		return nil, err
	}
	var result domain.RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.ErrMalformedResponse("response is not a recommendation").WithCause(err)
	}
	if err := result.Validate(); err != nil {
		return nil, domain.ErrMalformedResponse(err.Error())
	}
	return &result, nil
}

// ReviewArchitecture scores the described architecture against the six
// Well-Architected pillars.
func (p *Provider) ReviewArchitecture(ctx context.Context, promptText string) (*domain.ArchitectureReviewResult, error) {
	raw, err := p.generate(ctx, domain.PromptKindArchitectureReview, promptText)
	if err != nil {
		return nil, err
	}
	var result domain.ArchitectureReviewResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.ErrMalformedResponse("response is not an architecture review").WithCause(err)
	}
	if err := result.Validate(); err != nil {
		return nil, domain.ErrMalformedResponse(err.Error())
	}
	return &result, nil
}

// ExplainStep produces the deep dive for a single implementation step.
func (p *Provider) ExplainStep(ctx context.Context, promptText string) (*domain.StepExplanation, error) {
	raw, err := p.generate(ctx, domain.PromptKindStepExplanation, promptText)
	if err != nil {
		return nil, err
	}
	var result domain.StepExplanation
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, domain.ErrMalformedResponse("response is not a step explanation").WithCause(err)
	}
	if err := result.Validate(); err != nil {
		return nil, domain.ErrMalformedResponse(err.Error())
	}
	return &result, nil
}

// generate performs the schema-constrained call for one kind and returns the
// repaired raw JSON. Validation of the typed shape happens in the callers.
func (p *Provider) generate(ctx context.Context, kind domain.PromptKind, promptText string) (json.RawMessage, error) {
	if promptText == "" {
		return nil, domain.ErrInvalidInput("prompt must not be empty")
	}
	if !kind.Valid() {
		panic(fmt.Sprintf("gemini: unknown prompt kind %q", kind))
	}

	instruction := prompt.Instruction(kind, promptText)
	if n := p.counter.Count(instruction); n > p.maxPromptTokens {
		return nil, domain.ErrInvalidInput(
			fmt.Sprintf("prompt is %d tokens, over the %d token budget", n, p.maxPromptTokens))
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.modelFor(kind),
		[]*genai.Content{{Parts: []*genai.Part{{Text: instruction}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schemaFor(kind),
		},
	)
	if err != nil {
		return nil, domain.ErrNetworkFailure("generation call failed").WithCause(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrEmptyResponse("generation service returned no text")
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return nil, domain.ErrEmptyResponse("generation service returned no text")
	}

	raw, err := decodeModelJSON(text)
	if err != nil {
		p.logger.Warn("model returned unusable JSON",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrMalformedResponse("response text is not valid JSON").WithCause(err)
	}
	return raw, nil
}

func (p *Provider) modelFor(kind domain.PromptKind) string {
	switch kind {
	case domain.PromptKindServiceMatch:
		return p.models.Match
	case domain.PromptKindArchitectureReview:
		return p.models.Review
	case domain.PromptKindStepExplanation:
		return p.models.Explain
	default:
		panic(fmt.Sprintf("gemini: unknown prompt kind %q", kind))
	}
}
