// Package prompt assembles generation prompts from user input.
//
// Building is a pure transformation: identical input always yields a
// byte-identical prompt, and no validation failure ever reaches the
// generation layer.
package prompt

import (
	"strings"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
)

// Brief is the structured five-field workload description of the Service
// Matcher form.
type Brief struct {
	Workload            string `json:"workload"`
	TrafficProfile      string `json:"trafficProfile"`
	LatencyRequirement  string `json:"latencyRequirement"`
	PersistenceStrategy string `json:"persistenceStrategy"`
	SecurityPosture     string `json:"securityPosture"`
}

// briefFields fixes the label order so repeated submissions of identical
// field values produce byte-identical prompts regardless of input key order.
var briefFields = []struct {
	label string
	value func(Brief) string
}{
	{"Workload", func(b Brief) string { return b.Workload }},
	{"Traffic profile", func(b Brief) string { return b.TrafficProfile }},
	{"Latency requirement", func(b Brief) string { return b.LatencyRequirement }},
	{"Persistence strategy", func(b Brief) string { return b.PersistenceStrategy }},
	{"Security posture", func(b Brief) string { return b.SecurityPosture }},
}

// Freeform returns the user-authored text verbatim. Empty or whitespace-only
// text is rejected before any call is attempted.
func Freeform(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrInvalidInput("prompt must not be empty")
	}
	return text, nil
}

// FromBrief concatenates the labeled fields in deterministic order. The
// workload field is required; the rest are included only when non-empty.
func FromBrief(b Brief) (string, error) {
	if strings.TrimSpace(b.Workload) == "" {
		return "", domain.ErrInvalidInput("workload must not be empty")
	}
	var sb strings.Builder
	for _, f := range briefFields {
		v := strings.TrimSpace(f.value(b))
		if v == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.label)
		sb.WriteString(": ")
		sb.WriteString(v)
	}
	return sb.String(), nil
}
