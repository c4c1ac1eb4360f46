package curriculum

import (
	"strings"
	"testing"
)

func TestParseSectionID(t *testing.T) {
	for _, id := range Sections() {
		got, err := ParseSectionID(string(id))
		if err != nil {
			t.Errorf("ParseSectionID(%q) error: %v", id, err)
		}
		if got != id {
			t.Errorf("ParseSectionID(%q) = %q", id, got)
		}
	}

	for _, bad := range []string{"", "Fundamentals", "core_services", "nope"} {
		if _, err := ParseSectionID(bad); err == nil {
			t.Errorf("ParseSectionID(%q) accepted an unknown section", bad)
		}
	}
}

func TestModulesContent(t *testing.T) {
	for _, id := range []SectionID{SectionFundamentals, SectionCoreServices, SectionArchitecture} {
		mods := Modules(id)
		if len(mods) == 0 {
			t.Errorf("section %q has no modules", id)
			continue
		}
		for _, m := range mods {
			if m.Title == "" || m.ArchitectWhy == "" {
				t.Errorf("section %q module %+v missing content", id, m)
			}
		}
	}

	// Tool and lab sections carry no module cards.
	for _, id := range []SectionID{SectionLabs, SectionMatcher, SectionReview, SectionRoadmap} {
		if mods := Modules(id); mods != nil {
			t.Errorf("section %q unexpectedly has modules", id)
		}
	}
}

func TestRoadmap(t *testing.T) {
	phases := Roadmap()
	if len(phases) != 4 {
		t.Fatalf("roadmap has %d phases", len(phases))
	}
	for i, p := range phases {
		if p.Week == "" || p.Title == "" || p.Focus == "" {
			t.Errorf("phase %d missing content: %+v", i, p)
		}
	}
}

func TestLabs(t *testing.T) {
	labs := Labs()
	if len(labs) == 0 {
		t.Fatal("no labs")
	}
	found := false
	for _, l := range labs {
		if strings.Contains(l.Template, "AWS::EC2::VPC") {
			found = true
		}
	}
	if !found {
		t.Error("expected a VPC CloudFormation lab")
	}
}
