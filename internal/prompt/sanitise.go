package prompt

import (
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/model"
)

// Sanitise builds the disclosure-safe copy of normalised data.
// Free-text fields are trimmed, enum and numeric fields pass through, and the
// email address is replaced by a presence flag.
func Sanitise(d model.WizardData) model.SanitisedData {
	goals := make([]string, len(d.Priorities.GoalAreas))
	copy(goals, d.Priorities.GoalAreas)

	return model.SanitisedData{
		Basics: model.Basics{
			PlanName:        strings.TrimSpace(d.Basics.PlanName),
			HouseholdSize:   d.Basics.HouseholdSize,
			NetIncome:       d.Basics.NetIncome,
			IncomeFrequency: d.Basics.IncomeFrequency,
			Region:          d.Basics.Region,
			Focus:           d.Basics.Focus,
		},
		Priorities: model.Priorities{
			GoalAreas:     goals,
			TopGoal:       strings.TrimSpace(d.Priorities.TopGoal),
			SavingsTarget: d.Priorities.SavingsTarget,
			Timeline:      d.Priorities.Timeline,
		},
		Habits: model.Habits{
			BudgetingStyle:      d.Habits.BudgetingStyle,
			CheckInFrequency:    d.Habits.CheckInFrequency,
			EmergencyFundMonths: d.Habits.EmergencyFundMonths,
			ConfidenceLevel:     d.Habits.ConfidenceLevel,
			AdditionalNotes:     strings.TrimSpace(d.Habits.AdditionalNotes),
		},
		Summary: model.SanitisedSummary{
			ProvidedEmail:    d.Summary.ShareEmail != "",
			ConsentToContact: d.Summary.ConsentToContact,
		},
	}
}
