package domain

import (
	"fmt"
	"time"
)

// PromptKind selects one of the fixed response shapes the generation service
// can be asked for. The set is closed; an unknown kind is a programming error.
type PromptKind string

const (
	PromptKindServiceMatch       PromptKind = "service_match"
	PromptKindArchitectureReview PromptKind = "architecture_review"
	PromptKindStepExplanation    PromptKind = "step_explanation"
)

// Valid reports whether the kind is one of the known prompt kinds.
func (k PromptKind) Valid() bool {
	switch k {
	case PromptKindServiceMatch, PromptKindArchitectureReview, PromptKindStepExplanation:
		return true
	}
	return false
}

// ImplementationStep is one ordered phase of a recommendation rollout plan.
type ImplementationStep struct {
	Phase   string `json:"phase"`
	Details string `json:"details"`
}

// RecommendationResult is the structured reply of the Service Matcher.
// Immutable once returned; a partially-filled result is never considered valid.
type RecommendationResult struct {
	RecommendedService  string               `json:"recommendedService"`
	Justification       string               `json:"justification"`
	ImplementationSteps []ImplementationStep `json:"implementationSteps"`
	DiagramDefinition   string               `json:"diagramDefinition"`
	Alternatives        []string             `json:"alternatives,omitempty"`
}

// Validate checks the required-field schema before a result is accepted.
func (r *RecommendationResult) Validate() error {
	switch {
	case r.RecommendedService == "":
		return fmt.Errorf("missing required field recommendedService")
	case r.Justification == "":
		return fmt.Errorf("missing required field justification")
	case len(r.ImplementationSteps) == 0:
		return fmt.Errorf("missing required field implementationSteps")
	case r.DiagramDefinition == "":
		return fmt.Errorf("missing required field diagramDefinition")
	}
	return nil
}

// PillarRating scores an architecture against one Well-Architected pillar.
type PillarRating struct {
	Pillar   string `json:"pillar"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// ArchitectureReviewResult is the structured reply of the Architecture
// Reviewer. Transient; never persisted.
type ArchitectureReviewResult struct {
	PillarRatings         []PillarRating `json:"pillarRatings"`
	CriticalFixes         []string       `json:"criticalFixes"`
	CostOptimizationScore string         `json:"costOptimizationScore"`
}

// Validate checks the required-field schema before a review is accepted.
func (r *ArchitectureReviewResult) Validate() error {
	if len(r.PillarRatings) == 0 {
		return fmt.Errorf("missing required field pillarRatings")
	}
	for i, p := range r.PillarRatings {
		if p.Pillar == "" || p.Feedback == "" {
			return fmt.Errorf("pillarRatings[%d] missing pillar or feedback", i)
		}
	}
	if r.CostOptimizationScore == "" {
		return fmt.Errorf("missing required field costOptimizationScore")
	}
	return nil
}

// KeyTerm is a term/definition pair in a step explanation.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// DocLink points at external documentation for a step.
type DocLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CodeSnippet is an optional illustrative snippet in a step explanation.
type CodeSnippet struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// StepExplanation is the lazily-requested deep dive for a single
// implementation step. Cached only in transient view state, never persisted.
type StepExplanation struct {
	Explanation        string        `json:"explanation"`
	KeyTerms           []KeyTerm     `json:"keyTerms"`
	DocumentationLinks []DocLink     `json:"documentationLinks"`
	CodeSnippets       []CodeSnippet `json:"codeSnippets,omitempty"`
}

// Validate checks the required-field schema before an explanation is accepted.
func (s *StepExplanation) Validate() error {
	if s.Explanation == "" {
		return fmt.Errorf("missing required field explanation")
	}
	return nil
}

// HistoryEntry is one persisted past request/result pair.
type HistoryEntry struct {
	ID             string               `json:"id"`
	CreatedAt      time.Time            `json:"createdAt"`
	OriginalPrompt string               `json:"originalPrompt"`
	Result         RecommendationResult `json:"result"`
}

// RenderedDiagram is the output of the diagram rendering adapter.
type RenderedDiagram struct {
	// SVG is the rendered markup fragment.
	SVG string
	// PNG is an optional rasterized snapshot for report embedding.
	PNG []byte
}

// Document is a self-contained offline report ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
