package model

// WizardData is the normalised Money Blueprint wizard input.
// Every section and field is always present once normalised.
type WizardData struct {
	Basics     Basics     `json:"basics" yaml:"basics"`
	Priorities Priorities `json:"priorities" yaml:"priorities"`
	Habits     Habits     `json:"habits" yaml:"habits"`
	Summary    Summary    `json:"summary" yaml:"summary"`
}

// Basics describes the household and its take-home pay
type Basics struct {
	PlanName        string `json:"planName" yaml:"planName"`
	HouseholdSize   string `json:"householdSize" yaml:"householdSize"`     // Numeric string
	NetIncome       string `json:"netIncome" yaml:"netIncome"`             // Numeric string, may contain thousands separators
	IncomeFrequency string `json:"incomeFrequency" yaml:"incomeFrequency"` // monthly, four-weekly, fortnightly, weekly
	Region          string `json:"region" yaml:"region"`                   // england, scotland, wales, northern-ireland
	Focus           string `json:"focus" yaml:"focus"`                     // stability, debt, home, growth, future-proof
}

// Priorities captures what the household wants to achieve
type Priorities struct {
	GoalAreas     []string `json:"goalAreas" yaml:"goalAreas"`
	TopGoal       string   `json:"topGoal" yaml:"topGoal"`
	SavingsTarget string   `json:"savingsTarget" yaml:"savingsTarget"`
	Timeline      string   `json:"timeline" yaml:"timeline"` // 0-3, 3-6, 6-12, 12+
}

// Habits captures how the household manages money today
type Habits struct {
	BudgetingStyle      string `json:"budgetingStyle" yaml:"budgetingStyle"`
	CheckInFrequency    string `json:"checkInFrequency" yaml:"checkInFrequency"`
	EmergencyFundMonths string `json:"emergencyFundMonths" yaml:"emergencyFundMonths"` // less-1, 1-3, 3-6, 6+
	ConfidenceLevel     string `json:"confidenceLevel" yaml:"confidenceLevel"`
	AdditionalNotes     string `json:"additionalNotes" yaml:"additionalNotes"`
}

// Summary holds contact preferences. ShareEmail is PII and never leaves the process.
type Summary struct {
	ShareEmail       string `json:"shareEmail" yaml:"shareEmail"`
	ConsentToContact bool   `json:"consentToContact" yaml:"consentToContact"`
}

// SanitisedData is the disclosure-safe copy of WizardData sent to an LLM
type SanitisedData struct {
	Basics     Basics           `json:"basics"`
	Priorities Priorities       `json:"priorities"`
	Habits     Habits           `json:"habits"`
	Summary    SanitisedSummary `json:"summary"`
}

// SanitisedSummary replaces the email address with a presence flag
type SanitisedSummary struct {
	ProvidedEmail    bool `json:"providedEmail"`
	ConsentToContact bool `json:"consentToContact"`
}
