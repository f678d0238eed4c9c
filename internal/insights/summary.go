package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/labels"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/numeric"
)

// IncomeNotProvided is the income sentence used when net income is missing or not numeric
const IncomeNotProvided = "Combined take-home pay was not provided."

// householdSentence describes who the plan is for
func (d *Deriver) householdSentence(b model.Basics) string {
	people := "an unspecified number of people"
	if size, ok := numeric.Clamp(b.HouseholdSize); ok && size > 0 {
		if size == 1 {
			people = "1 person"
		} else {
			people = strconv.FormatFloat(size, 'f', -1, 64) + " people"
		}
	}

	return fmt.Sprintf("Household of %s in %s focusing on %s.",
		people, labels.Region(b.Region), strings.ToLower(labels.Focus(b.Focus)))
}

// monthlyIncome converts net income to a monthly equivalent
func monthlyIncome(b model.Basics) (float64, bool) {
	income, ok := numeric.Clamp(b.NetIncome)
	if !ok {
		return 0, false
	}
	monthly := income * labels.MonthlyMultiplier(b.IncomeFrequency)
	if math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		return 0, false
	}
	return monthly, true
}

// incomeSentence describes take-home pay, adding a monthly equivalent for non-monthly pay
func (d *Deriver) incomeSentence(b model.Basics) string {
	income, ok := numeric.Clamp(b.NetIncome)
	if !ok {
		return IncomeNotProvided
	}

	amount := d.format.Currency(income)
	phrase := labels.FrequencyPhrase(b.IncomeFrequency)

	if b.IncomeFrequency != labels.FrequencyMonthly {
		if monthly, ok := monthlyIncome(b); ok {
			return fmt.Sprintf("Combined take-home pay is about %s %s, which is roughly %s per month.",
				amount, phrase, d.format.Currency(monthly))
		}
	}

	return fmt.Sprintf("Combined take-home pay is about %s %s.", amount, phrase)
}

// prioritySentences returns the goal area list and at most one headline sentence
func (d *Deriver) prioritySentences(p model.Priorities) []string {
	var out []string

	if len(p.GoalAreas) > 0 {
		names := make([]string, len(p.GoalAreas))
		for i, code := range p.GoalAreas {
			names[i] = labels.GoalArea(code)
		}
		out = append(out, fmt.Sprintf("Priority areas: %s.", d.format.List(names)))
	}

	topGoal := strings.TrimRight(strings.TrimSpace(p.TopGoal), ".")
	target := strings.TrimSpace(p.SavingsTarget)
	timeline := strings.TrimSpace(p.Timeline)

	targetLabel := target
	if n, ok := numeric.Clamp(target); ok {
		targetLabel = d.format.Currency(n)
	}

	switch {
	case topGoal != "":
		var sb strings.Builder
		sb.WriteString("Headline outcome: ")
		sb.WriteString(topGoal)
		if timeline != "" {
			sb.WriteString(" " + labels.Timeline(timeline))
		}
		if target != "" {
			sb.WriteString(" (savings target " + targetLabel + ")")
		}
		sb.WriteString(".")
		out = append(out, sb.String())
	case target != "":
		s := "Savings target of " + targetLabel
		if timeline != "" {
			s += " " + labels.Timeline(timeline)
		}
		out = append(out, s+".")
	case timeline != "":
		out = append(out, fmt.Sprintf("Target timeline: %s.", labels.Timeline(timeline)))
	}

	return out
}

// habitSentences returns one clause per answered habit question
func habitSentences(h model.Habits) []string {
	var out []string

	if style := strings.TrimSpace(h.BudgetingStyle); style != "" {
		out = append(out, fmt.Sprintf("Budgeting approach: %s.", labels.BudgetingStyle(style)))
	}
	if cadence := strings.TrimSpace(h.CheckInFrequency); cadence != "" {
		out = append(out, fmt.Sprintf("Money check-ins happen %s.", strings.ToLower(labels.CheckIn(cadence))))
	}
	if fund := strings.TrimSpace(h.EmergencyFundMonths); fund != "" {
		out = append(out, fmt.Sprintf("Emergency savings cover %s of essential spending.", strings.ToLower(labels.EmergencyFund(fund))))
	}
	if confidence := strings.TrimSpace(h.ConfidenceLevel); confidence != "" {
		out = append(out, fmt.Sprintf("Self-reported money confidence: %s.", labels.Confidence(confidence)))
	}

	return out
}

// notesSentence echoes free-text notes, if any
func notesSentence(h model.Habits) (string, bool) {
	notes := strings.TrimSpace(h.AdditionalNotes)
	if notes == "" {
		return "", false
	}
	return "Personal notes: " + notes, true
}
