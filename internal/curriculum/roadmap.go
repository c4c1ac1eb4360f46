package curriculum

// PhaseStatus tracks a learner's progress through a roadmap phase.
type PhaseStatus string

const (
	PhaseCompleted  PhaseStatus = "completed"
	PhaseInProgress PhaseStatus = "in-progress"
	PhasePending    PhaseStatus = "pending"
)

// RoadmapPhase is one week of the 30-day certification study plan.
type RoadmapPhase struct {
	Week     string      `json:"week"`
	Title    string      `json:"title"`
	Focus    string      `json:"focus"`
	Artifact string      `json:"artifact"`
	Status   PhaseStatus `json:"status"`
	Days     []string    `json:"days"`
}

// Roadmap returns the study plan phases in order.
func Roadmap() []RoadmapPhase {
	return []RoadmapPhase{
		{
			Week:     "Week 1",
			Title:    "Identity & Security Foundations",
			Focus:    "IAM, Organizations, SCPs, & Zero Trust",
			Artifact: "Global Identity Governance Blueprint",
			Status:   PhaseCompleted,
			Days:     []string{"Day 1-2: Advanced IAM Policies", "Day 3-4: Multi-Account Management", "Day 5-7: AWS Organizations & Guardrails"},
		},
		{
			Week:     "Week 2",
			Title:    "Resilient Compute Patterns",
			Focus:    "Lambda, Fargate, & Event-Driven Design",
			Artifact: "Auto-scaling Event-Driven Stack",
			Status:   PhaseInProgress,
			Days:     []string{"Day 8-10: Serverless Best Practices", "Day 11-12: Container Orchestration", "Day 13-14: Decoupling with EventBridge"},
		},
		{
			Week:     "Week 3",
			Title:    "Modern Data Architectures",
			Focus:    "Aurora Serverless, DynamoDB Global, S3 Express",
			Artifact: "Multi-Region Data Strategy",
			Status:   PhasePending,
			Days:     []string{"Day 15-17: Relational Mastery", "Day 18-19: NoSQL Data Modeling", "Day 20-21: Data Lake Modernization"},
		},
		{
			Week:     "Week 4",
			Title:    "IaC & Operational Excellence",
			Focus:    "CDK, CloudFormation, & Observability",
			Artifact: "Production-Ready IaC Repository",
			Status:   PhasePending,
			Days:     []string{"Day 22-24: Infrastructure as Code", "Day 25-27: CloudWatch & X-Ray", "Day 28-30: Final Mock Review"},
		},
	}
}
