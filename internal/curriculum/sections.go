// Package curriculum holds the portal's static content: navigation sections,
// curriculum modules, the study roadmap, and lab material.
package curriculum

import "fmt"

// SectionID identifies one navigation section of the portal. The set is
// closed; an invalid tag is a compile-time error, not a runtime fallback.
type SectionID string

const (
	SectionFundamentals SectionID = "fundamentals"
	SectionCoreServices SectionID = "core-services"
	SectionArchitecture SectionID = "architecture"
	SectionLabs         SectionID = "labs"
	SectionMatcher      SectionID = "matcher"
	SectionReview       SectionID = "review"
	SectionRoadmap      SectionID = "roadmap"
)

// Sections lists every section in display order.
func Sections() []SectionID {
	return []SectionID{
		SectionFundamentals,
		SectionCoreServices,
		SectionArchitecture,
		SectionLabs,
		SectionMatcher,
		SectionReview,
		SectionRoadmap,
	}
}

// ParseSectionID validates a wire-format section tag.
func ParseSectionID(s string) (SectionID, error) {
	id := SectionID(s)
	for _, known := range Sections() {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}
