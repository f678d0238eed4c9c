// Package labels holds the display tables for wizard enum codes.
// Tables are unexported so callers cannot mutate them; use the lookup functions.
package labels

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Region codes
const (
	RegionEngland         = "england"
	RegionScotland        = "scotland"
	RegionWales           = "wales"
	RegionNorthernIreland = "northern-ireland"
)

// Income frequency codes
const (
	FrequencyMonthly     = "monthly"
	FrequencyFourWeekly  = "four-weekly"
	FrequencyFortnightly = "fortnightly"
	FrequencyWeekly      = "weekly"
)

// Habit codes referenced by the risk rules
const (
	EmergencyLessThanOne = "less-1"
	EmergencyOneToThree  = "1-3"
	EmergencyThreeToSix  = "3-6"
	EmergencySixPlus     = "6+"

	CheckInAdHoc = "ad-hoc"

	ConfidenceFindingFeet = "finding-feet"

	GoalClearDebt = "clear-debt"
)

var regions = map[string]string{
	RegionEngland:         "England",
	RegionScotland:        "Scotland",
	RegionWales:           "Wales",
	RegionNorthernIreland: "Northern Ireland",
}

var focuses = map[string]string{
	"stability":    "Build stability",
	"debt":         "Clear debt faster",
	"home":         "Buy or move home",
	"growth":       "Grow wealth",
	"future-proof": "Future-proof the household",
}

var frequencyPhrases = map[string]string{
	FrequencyMonthly:     "each month",
	FrequencyFourWeekly:  "each four weeks",
	FrequencyFortnightly: "each fortnight",
	FrequencyWeekly:      "each week",
}

var monthlyMultipliers = map[string]float64{
	FrequencyMonthly:     1,
	FrequencyFourWeekly:  13.0 / 12.0,
	FrequencyFortnightly: 26.0 / 12.0,
	FrequencyWeekly:      52.0 / 12.0,
}

var timelines = map[string]string{
	"0-3":  "within the next 3 months",
	"3-6":  "within 3 to 6 months",
	"6-12": "within 6 to 12 months",
	"12+":  "over the next year or longer",
}

var goalAreas = map[string]string{
	"emergency-fund": "Emergency fund",
	GoalClearDebt:    "Clear debt",
	"save-home":      "Save for a home",
	"invest":         "Invest for growth",
	"retirement":     "Plan for retirement",
	"protection":     "Protect the family",
	"budgeting":      "Improve budgeting",
}

var budgetingStyles = map[string]string{
	"zero-based": "Zero-based budgeting",
	"50-30-20":   "50/30/20 split",
	"envelope":   "Envelope or pots system",
	"app":        "Budgeting app",
	"none":       "No formal budget",
}

var checkIns = map[string]string{
	"weekly":      "Weekly",
	"fortnightly": "Fortnightly",
	"monthly":     "Monthly",
	"quarterly":   "Quarterly",
	CheckInAdHoc:  "Ad hoc",
}

var emergencyFunds = map[string]string{
	EmergencyLessThanOne: "Less than 1 month",
	EmergencyOneToThree:  "1 to 3 months",
	EmergencyThreeToSix:  "3 to 6 months",
	EmergencySixPlus:     "6 months or more",
}

var confidenceLevels = map[string]string{
	ConfidenceFindingFeet: "Finding my feet",
	"getting-there":       "Getting there",
	"confident":           "Confident",
	"very-confident":      "Very confident",
}

var titleCaser = cases.Title(language.BritishEnglish, cases.NoLower)

// TitleCase turns an unknown code such as "part-time_role" into "Part Time Role"
func TitleCase(code string) string {
	words := strings.FieldsFunc(code, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) == 0 {
		return ""
	}
	return titleCaser.String(strings.Join(words, " "))
}

func lookup(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return TitleCase(code)
}

// Region returns the display name for a region code, "Unknown region" when empty
func Region(code string) string {
	if label := lookup(regions, code); label != "" {
		return label
	}
	return "Unknown region"
}

// Focus returns the display name for a focus code, "Not specified" when empty
func Focus(code string) string {
	if label := lookup(focuses, code); label != "" {
		return label
	}
	return "Not specified"
}

// FrequencyPhrase returns the "each ..." phrase for an income frequency
func FrequencyPhrase(code string) string {
	if phrase, ok := frequencyPhrases[code]; ok {
		return phrase
	}
	if code == "" {
		return "per pay period"
	}
	return "per " + strings.ToLower(TitleCase(code)) + " period"
}

// MonthlyMultiplier converts an income frequency into its monthly factor.
// Unknown frequencies are treated as monthly.
func MonthlyMultiplier(code string) float64 {
	if m, ok := monthlyMultipliers[code]; ok {
		return m
	}
	return 1
}

// Timeline returns the phrase for a timeline code
func Timeline(code string) string {
	return lookup(timelines, code)
}

// GoalArea returns the display name for a goal area code
func GoalArea(code string) string {
	return lookup(goalAreas, code)
}

// BudgetingStyle returns the display name for a budgeting style code
func BudgetingStyle(code string) string {
	return lookup(budgetingStyles, code)
}

// CheckIn returns the display name for a check-in cadence code
func CheckIn(code string) string {
	return lookup(checkIns, code)
}

// EmergencyFund returns the display name for an emergency fund coverage code
func EmergencyFund(code string) string {
	return lookup(emergencyFunds, code)
}

// Confidence returns the display name for a confidence level code
func Confidence(code string) string {
	return lookup(confidenceLevels, code)
}
