package curriculum

// Module is one curriculum card: what the service is, why an architect cares,
// what it pairs with, and how to keep it cheap.
type Module struct {
	Title          string   `json:"title"`
	ArchitectWhy   string   `json:"architectWhy"`
	ServiceSynergy string   `json:"serviceSynergy"`
	CostTip        string   `json:"costTip"`
	Tags           []string `json:"tags"`
}

// Modules returns the curriculum content for a section. Sections without
// module content (labs, the tools, the roadmap) return nil.
func Modules(section SectionID) []Module {
	return moduleTable[section]
}

var moduleTable = map[SectionID][]Module{
	SectionFundamentals: {
		{
			Title:          "IAM & Zero Trust Governance",
			ArchitectWhy:   "Granular control ensures your blast radius is minimized while enabling cross-functional agility. It is the bedrock of the 'Security by Design' principle in 2026 architectures.",
			ServiceSynergy: "Integrates with AWS Organizations (SCPs) and resource-based policies in S3/KMS to create a defense-in-depth posture.",
			CostTip:        "Leverage IAM Access Analyzer to prune unused permissions; least-privilege reduces security overhead and expensive remediation cycles.",
			Tags:           []string{"Security", "Identity", "Governance"},
		},
		{
			Title:          "The Well-Architected Framework",
			ArchitectWhy:   "Provides a structured baseline to evaluate architectures across 6 pillars, ensuring sustainability and operational excellence. It prevents technical debt from accruing during rapid scaling.",
			ServiceSynergy: "Acts as the blueprint for using Trusted Advisor and Config to automate compliance and reliability checks.",
			CostTip:        "Prioritize the Sustainability Pillar to reduce resource waste, which naturally aligns with lowering your compute/storage bill by up to 40%.",
			Tags:           []string{"Best Practices", "Strategy", "Compliance"},
		},
	},
	SectionCoreServices: {
		{
			Title:          "Lambda & Serverless Compute",
			ArchitectWhy:   "Removes infrastructure management to focus entirely on code and business value. Scales effortlessly from zero to peak demand with no idle resource costs.",
			ServiceSynergy: "Pairs with EventBridge for event-driven flows and DynamoDB for low-latency state management.",
			CostTip:        "Switch to Graviton3 (ARM64) runtimes for 25% better performance at 20% lower cost than traditional x86 instances.",
			Tags:           []string{"Compute", "Serverless", "Scaling"},
		},
		{
			Title:          "Aurora Serverless v3",
			ArchitectWhy:   "A high-performance relational database that scales compute capacity instantly based on application demand. Perfect for unpredictable workloads requiring SQL consistency.",
			ServiceSynergy: "Works with RDS Proxy to handle high-concurrency Lambda connections and Secrets Manager for automated credential rotation.",
			CostTip:        "Utilize I/O-Optimized storage for write-heavy workloads to cap unpredictable I/O costs and save up to 40% on total database spend.",
			Tags:           []string{"Database", "SQL", "High Availability"},
		},
		{
			Title:          "S3 Express One Zone",
			ArchitectWhy:   "High-performance storage designed for the most latency-sensitive data processing workloads. Ideal for ML training and real-time analytics.",
			ServiceSynergy: "Integrates with SageMaker for high-speed data feeding and Mountpoint for S3 to simplify data access patterns.",
			CostTip:        "Use Lifecycle Policies to transition data to Glacier Deep Archive for long-term retention, reducing costs by 95% compared to S3 Standard.",
			Tags:           []string{"Storage", "Performance", "Data Lake"},
		},
	},
	SectionArchitecture: {
		{
			Title:          "Event-Driven Modernization",
			ArchitectWhy:   "Decouples services to improve fault tolerance and enable independent scaling of microservices. It is the gold standard for resilient 2026 cloud applications.",
			ServiceSynergy: "Centered around EventBridge as the backbone, connecting SNS, SQS, and Step Functions for complex orchestrations.",
			CostTip:        "Replace constant polling with event-driven triggers to eliminate 100% of 'idle check' costs in your application logic.",
			Tags:           []string{"Patterns", "Events", "Decoupling"},
		},
		{
			Title:          "Multi-Region Active-Active",
			ArchitectWhy:   "Provides business continuity for mission-critical apps by serving traffic from two or more regions simultaneously. Minimizes RTO/RPO to seconds.",
			ServiceSynergy: "Requires Route 53 Health Checks, Global Accelerator, and DynamoDB Global Tables for cross-region data sync.",
			CostTip:        "Use intelligent routing to serve users from the nearest region, reducing data transfer costs (egress) while improving latency.",
			Tags:           []string{"Reliability", "Global", "Disaster Recovery"},
		},
		{
			Title:          "Modern Data Mesh",
			ArchitectWhy:   "Decentralizes data ownership to domain teams, removing the central data engineering bottleneck while maintaining centralized governance and discoverability.",
			ServiceSynergy: "Leverages AWS Lake Formation for cross-account permissioning and Amazon DataZone for a business-ready data catalog.",
			CostTip:        "Utilize Glue Flex jobs for non-critical batch processing to save up to 34% compared to standard Glue interactive sessions.",
			Tags:           []string{"Data", "Governance", "Scale"},
		},
	},
}
