package domain

import "context"

// Generator is the schema-constrained generation client. Implementations
// construct a kind-specific instruction around the prompt, attach the response
// schema for the expected shape, and validate the reply before returning it.
// A reply missing any required field is an error, never a partial result.
type Generator interface {
	MatchService(ctx context.Context, prompt string) (*RecommendationResult, error)
	ReviewArchitecture(ctx context.Context, prompt string) (*ArchitectureReviewResult, error)
	ExplainStep(ctx context.Context, prompt string) (*StepExplanation, error)
}

// DiagramRenderer converts a textual diagram definition into displayable
// markup. Rendering is best-effort: the definition originates from a
// generative model and may be syntactically invalid, in which case the
// returned error carries the raw definition for a plain-text fallback.
type DiagramRenderer interface {
	Render(ctx context.Context, definition string) (*RenderedDiagram, error)
}
