// Package insights derives summary sentences, risk flags and metadata from wizard data.
package insights

import (
	"math"

	"github.com/ppiankov/moneyblueprint/internal/format"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/normalise"
	"github.com/ppiankov/moneyblueprint/internal/numeric"
	"github.com/ppiankov/moneyblueprint/internal/risk"
)

// Deriver turns raw wizard input into insights
type Deriver struct {
	format *format.Formatter
}

// NewDeriver creates a deriver that formats with f (nil means fallback formatting only)
func NewDeriver(f *format.Formatter) *Deriver {
	return &Deriver{format: f}
}

var defaultDeriver = NewDeriver(format.Default())

// Derive normalises raw and derives insights with the default en-GB formatter
func Derive(raw any) model.Insights {
	return defaultDeriver.Derive(raw)
}

// Derive normalises raw and derives insights.
// Bullets are ordered household, income, priorities, habits, notes.
func (d *Deriver) Derive(raw any) model.Insights {
	data := normalise.Normalise(raw)

	bullets := []string{
		d.householdSentence(data.Basics),
		d.incomeSentence(data.Basics),
	}
	bullets = append(bullets, d.prioritySentences(data.Priorities)...)
	bullets = append(bullets, habitSentences(data.Habits)...)
	if notes, ok := notesSentence(data.Habits); ok {
		bullets = append(bullets, notes)
	}

	return model.Insights{
		SummaryBullets: bullets,
		RiskFlags:      risk.BuildRiskFlags(data),
		Metadata:       metadata(data),
		Raw:            data,
	}
}

func metadata(data model.WizardData) model.Metadata {
	m := model.Metadata{
		Focus:     data.Basics.Focus,
		Region:    data.Basics.Region,
		GoalAreas: append([]string{}, data.Priorities.GoalAreas...),
	}
	if size, ok := numeric.Clamp(data.Basics.HouseholdSize); ok {
		m.HouseholdSize = &size
	}
	if monthly, ok := monthlyIncome(data.Basics); ok {
		rounded := math.Round(monthly*100) / 100
		m.MonthlyNetIncome = &rounded
	}
	return m
}
