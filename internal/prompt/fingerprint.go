package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/moneyblueprint/internal/model"
)

// fingerprintDoc fixes the key order of the canonical form
type fingerprintDoc struct {
	ReportID       *string             `json:"reportId"`
	Data           model.SanitisedData `json:"data"`
	SummaryBullets []string            `json:"summaryBullets"`
	RiskFlags      []flagRef           `json:"riskFlags"`
}

type flagRef struct {
	ID       string             `json:"id"`
	Severity model.RiskSeverity `json:"severity"`
}

// Fingerprint returns the canonical compact JSON of a prompt's logical inputs.
// Identical inputs always produce identical bytes. No hashing is applied.
func Fingerprint(reportID *string, data model.SanitisedData, bullets []string, flags []model.RiskFlag) (string, error) {
	refs := make([]flagRef, len(flags))
	for i, f := range flags {
		refs[i] = flagRef{ID: f.ID, Severity: f.Severity}
	}
	if bullets == nil {
		bullets = []string{}
	}
	if data.Priorities.GoalAreas == nil {
		data.Priorities.GoalAreas = []string{}
	}

	out, err := marshalJSON(fingerprintDoc{
		ReportID:       reportID,
		Data:           data,
		SummaryBullets: bullets,
		RiskFlags:      refs,
	}, "")
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return out, nil
}

// marshalJSON encodes like JSON.stringify: no HTML escaping, optional indent, no trailing newline
func marshalJSON(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
