// Package normalise coerces arbitrary wizard input into a complete WizardData.
package normalise

import (
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/spf13/cast"
)

// Normalise never fails. Anything that is not an object becomes an empty
// submission; unknown keys are dropped; string fields are kept untrimmed.
func Normalise(raw any) model.WizardData {
	switch v := raw.(type) {
	case model.WizardData:
		return fromWizard(v)
	case *model.WizardData:
		if v == nil {
			return fromWizard(model.WizardData{})
		}
		return fromWizard(*v)
	}

	root := object(raw)
	basics := object(root["basics"])
	priorities := object(root["priorities"])
	habits := object(root["habits"])
	summary := object(root["summary"])

	return model.WizardData{
		Basics: model.Basics{
			PlanName:        str(basics["planName"]),
			HouseholdSize:   str(basics["householdSize"]),
			NetIncome:       str(basics["netIncome"]),
			IncomeFrequency: str(basics["incomeFrequency"]),
			Region:          str(basics["region"]),
			Focus:           str(basics["focus"]),
		},
		Priorities: model.Priorities{
			GoalAreas:     GoalAreas(priorities["goalAreas"]),
			TopGoal:       str(priorities["topGoal"]),
			SavingsTarget: str(priorities["savingsTarget"]),
			Timeline:      str(priorities["timeline"]),
		},
		Habits: model.Habits{
			BudgetingStyle:      str(habits["budgetingStyle"]),
			CheckInFrequency:    str(habits["checkInFrequency"]),
			EmergencyFundMonths: str(habits["emergencyFundMonths"]),
			ConfidenceLevel:     str(habits["confidenceLevel"]),
			AdditionalNotes:     str(habits["additionalNotes"]),
		},
		Summary: model.Summary{
			ShareEmail:       str(summary["shareEmail"]),
			ConsentToContact: boolean(summary["consentToContact"]),
		},
	}
}

// fromWizard re-applies the goal area rule to already typed data
func fromWizard(d model.WizardData) model.WizardData {
	out := d
	out.Priorities.GoalAreas = goalAreasFromStrings(d.Priorities.GoalAreas)
	return out
}

// GoalAreas keeps only list input, trims every entry and drops empty or
// falsy entries. Order is preserved and duplicates are kept.
func GoalAreas(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return goalAreasFromStrings(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if falsy(item) {
				continue
			}
			if s := strings.TrimSpace(str(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func goalAreasFromStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// object returns raw as a string-keyed map, or an empty map for anything else
func object(raw any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	switch raw.(type) {
	case map[string]any, map[any]any:
		m, err := cast.ToStringMapE(raw)
		if err == nil {
			return m
		}
	}
	return map[string]any{}
}

// str coerces scalars to strings; nested objects and lists become ""
func str(v any) string {
	if v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, map[any]any, []any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func boolean(v any) bool {
	if v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}
