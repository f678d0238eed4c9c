// Package risk evaluates the fixed risk rule set against normalised wizard data.
package risk

import (
	"slices"
	"sort"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/labels"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/numeric"
)

// Flag identifiers
const (
	IDEmergencyFundCritical = "emergency-fund-critical"
	IDEmergencyFundLow      = "emergency-fund-low"
	IDInfrequentReviews     = "infrequent-reviews"
	IDLowConfidence         = "low-confidence"
	IDMissingIncome         = "missing-income"
	IDDebtWithoutTarget     = "debt-without-target"
)

// rule returns a flag when it fires, nil otherwise
type rule func(d model.WizardData) *model.RiskFlag

// rules are evaluated in this order; equal severities keep it after sorting
var rules = []rule{
	emergencyFund,
	infrequentReviews,
	lowConfidence,
	missingIncome,
	debtWithoutTarget,
}

// BuildRiskFlags evaluates every rule and sorts the flags high, medium, low.
// The input must already be normalised.
func BuildRiskFlags(d model.WizardData) []model.RiskFlag {
	flags := make([]model.RiskFlag, 0, len(rules))
	for _, r := range rules {
		if f := r(d); f != nil {
			flags = append(flags, *f)
		}
	}

	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Severity.Rank() < flags[j].Severity.Rank()
	})
	return flags
}

// emergencyFund fires at most one of the critical and low emergency fund flags
func emergencyFund(d model.WizardData) *model.RiskFlag {
	code := d.Habits.EmergencyFundMonths
	switch code {
	case labels.EmergencyLessThanOne:
		return &model.RiskFlag{
			ID:          IDEmergencyFundCritical,
			Severity:    model.SeverityHigh,
			Title:       "Emergency fund below one month",
			Description: "Savings would cover less than a month of essential costs, so an unexpected bill or drop in income could quickly lead to borrowing.",
			Evidence:    evidence(labels.EmergencyFund(code)),
		}
	case labels.EmergencyOneToThree:
		return &model.RiskFlag{
			ID:          IDEmergencyFundLow,
			Severity:    model.SeverityMedium,
			Title:       "Emergency fund below three months",
			Description: "There is some cushion, but less than the three months of essential spending usually recommended.",
			Evidence:    evidence(labels.EmergencyFund(code)),
		}
	}
	return nil
}

func infrequentReviews(d model.WizardData) *model.RiskFlag {
	code := d.Habits.CheckInFrequency
	if code != labels.CheckInAdHoc {
		return nil
	}
	return &model.RiskFlag{
		ID:          IDInfrequentReviews,
		Severity:    model.SeverityMedium,
		Title:       "Finances reviewed only occasionally",
		Description: "Without a regular check-in, overspending and missed payments are harder to spot early.",
		Evidence:    evidence(labels.CheckIn(code)),
	}
}

func lowConfidence(d model.WizardData) *model.RiskFlag {
	code := d.Habits.ConfidenceLevel
	if code != labels.ConfidenceFindingFeet {
		return nil
	}
	return &model.RiskFlag{
		ID:          IDLowConfidence,
		Severity:    model.SeverityMedium,
		Title:       "Low confidence managing money",
		Description: "Plain-English explanations and small, concrete next steps will matter more than detailed optimisation.",
		Evidence:    evidence(labels.Confidence(code)),
	}
}

func missingIncome(d model.WizardData) *model.RiskFlag {
	if _, ok := numeric.Clamp(d.Basics.NetIncome); ok {
		return nil
	}
	return &model.RiskFlag{
		ID:          IDMissingIncome,
		Severity:    model.SeverityLow,
		Title:       "Take-home pay not provided",
		Description: "Cash flow guidance will be general because net income was missing or not a number.",
		Evidence:    nil,
	}
}

func debtWithoutTarget(d model.WizardData) *model.RiskFlag {
	if !slices.Contains(d.Priorities.GoalAreas, labels.GoalClearDebt) {
		return nil
	}
	if strings.TrimSpace(d.Priorities.SavingsTarget) != "" {
		return nil
	}
	return &model.RiskFlag{
		ID:          IDDebtWithoutTarget,
		Severity:    model.SeverityLow,
		Title:       "Debt goal without a savings target",
		Description: "Clearing debt is a priority but no savings target was set, so there is no buffer goal to stop new borrowing.",
		Evidence:    evidence(labels.GoalArea(labels.GoalClearDebt)),
	}
}

func evidence(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
