package model

// RiskSeverity indicates how urgently a risk flag should be addressed
type RiskSeverity string

const (
	SeverityHigh   RiskSeverity = "high"
	SeverityMedium RiskSeverity = "medium"
	SeverityLow    RiskSeverity = "low"
)

// Rank orders severities for sorting (high first). Unknown severities sort last.
func (s RiskSeverity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// RiskFlag is a rule-triggered warning about a financial habit
type RiskFlag struct {
	ID          string       `json:"id"`
	Severity    RiskSeverity `json:"severity"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Evidence    *string      `json:"evidence"` // nil when the rule has no natural evidence
}

// Metadata is the structured side of derived insights
type Metadata struct {
	Focus            string   `json:"focus"`
	Region           string   `json:"region"`
	HouseholdSize    *float64 `json:"householdSize"`
	MonthlyNetIncome *float64 `json:"monthlyNetIncome"`
	GoalAreas        []string `json:"goalAreas"`
}

// Insights holds everything derived from one wizard submission
type Insights struct {
	SummaryBullets []string   `json:"summaryBullets"`
	RiskFlags      []RiskFlag `json:"riskFlags"`
	Metadata       Metadata   `json:"metadata"`
	Raw            WizardData `json:"raw"`
}

// Message is a single chat message in a prompt payload
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the assembled prompt ready to hand to an LLM caller
type Payload struct {
	ReportID       *string       `json:"reportId"`
	Messages       []Message     `json:"messages"`
	SummaryBullets []string      `json:"summaryBullets"`
	RiskFlags      []RiskFlag    `json:"riskFlags"`
	SanitisedData  SanitisedData `json:"sanitisedData"`
	Disclaimer     string        `json:"disclaimer"`
	Fingerprint    string        `json:"fingerprint"`
}
