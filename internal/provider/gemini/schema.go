package gemini

import (
	"fmt"

	genai "google.golang.org/genai"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
)

// schemaFor returns the machine-checkable response schema attached to the
// generation request for the given kind. Required fields mirror the typed
// validation in domain exactly.
func schemaFor(kind domain.PromptKind) *genai.Schema {
	switch kind {
	case domain.PromptKindServiceMatch:
		return recommendationSchema
	case domain.PromptKindArchitectureReview:
		return reviewSchema
	case domain.PromptKindStepExplanation:
		return explanationSchema
	default:
		panic(fmt.Sprintf("gemini: unknown prompt kind %q", kind))
	}
}

var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendedService": {Type: genai.TypeString},
		"justification":      {Type: genai.TypeString},
		"implementationSteps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"phase":   {Type: genai.TypeString},
					"details": {Type: genai.TypeString},
				},
				Required: []string{"phase", "details"},
			},
		},
		"diagramDefinition": {Type: genai.TypeString},
		"alternatives": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"recommendedService", "justification", "implementationSteps", "diagramDefinition"},
}

var reviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"pillarRatings": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"pillar":   {Type: genai.TypeString},
					"rating":   {Type: genai.TypeInteger},
					"feedback": {Type: genai.TypeString},
				},
				Required: []string{"pillar", "rating", "feedback"},
			},
		},
		"criticalFixes": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"costOptimizationScore": {Type: genai.TypeString},
	},
	Required: []string{"pillarRatings", "criticalFixes", "costOptimizationScore"},
}

var explanationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"explanation": {Type: genai.TypeString},
		"keyTerms": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"term":       {Type: genai.TypeString},
					"definition": {Type: genai.TypeString},
				},
				Required: []string{"term", "definition"},
			},
		},
		"documentationLinks": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {Type: genai.TypeString},
					"url":   {Type: genai.TypeString},
				},
				Required: []string{"title", "url"},
			},
		},
		"codeSnippets": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":    {Type: genai.TypeString},
					"language": {Type: genai.TypeString},
					"code":     {Type: genai.TypeString},
				},
				Required: []string{"title", "language", "code"},
			},
		},
	},
	Required: []string{"explanation", "keyTerms", "documentationLinks"},
}
