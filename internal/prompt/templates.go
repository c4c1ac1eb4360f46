package prompt

import (
	"fmt"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
)

// Instruction embeds the built prompt into the role-appropriate instruction
// template for the given kind. An unknown kind is a programming error.
func Instruction(kind domain.PromptKind, promptText string) string {
	switch kind {
	case domain.PromptKindServiceMatch:
		return fmt.Sprintf(
			`Acting as a Lead AWS Solutions Architect, recommend the best service for this scenario: %q.
Consider modern 2026 AWS practices (Serverless first, Event-driven, AI-integrated).
Lay out an ordered implementation plan, each step with a phase name and concrete details.
Describe the resulting architecture as a Mermaid flowchart in the diagramDefinition field.`,
			promptText,
		)
	case domain.PromptKindArchitectureReview:
		return fmt.Sprintf(
			`Review the following AWS architecture against the 6 Pillars of the Well-Architected Framework: %q.
Be critical, professional, and focus on 2026 standards.
Rate each pillar from 0 to 10 and list the critical fixes in priority order.`,
			promptText,
		)
	case domain.PromptKindStepExplanation:
		return fmt.Sprintf(
			`Acting as a patient AWS instructor, explain this implementation step to an intermediate engineer: %q.
Define the key terms it relies on, link official documentation, and include short code snippets where they help.`,
			promptText,
		)
	default:
		panic(fmt.Sprintf("prompt: unknown kind %q", kind))
	}
}
