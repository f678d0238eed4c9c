package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/model"
)

// RenderMarkdown renders a payload as a Markdown review document.
// Useful to eyeball exactly what would be sent before any model sees it.
func RenderMarkdown(payload *model.Payload) string {
	if payload == nil {
		return ""
	}

	var sb strings.Builder

	reportID := "Not assigned"
	if payload.ReportID != nil {
		reportID = *payload.ReportID
	}

	sb.WriteString("# Money Blueprint Prompt\n\n")
	sb.WriteString(fmt.Sprintf("**Report:** %s\n\n", reportID))

	sb.WriteString("## Summary\n\n")
	if len(payload.SummaryBullets) == 0 {
		sb.WriteString("_None available_\n")
	}
	for _, b := range payload.SummaryBullets {
		sb.WriteString("- " + b + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Risk Flags\n\n")
	if len(payload.RiskFlags) == 0 {
		sb.WriteString("_No risk flags triggered_\n")
	} else {
		sb.WriteString("| ID | Severity | Title | Evidence |\n")
		sb.WriteString("|----|----------|-------|----------|\n")
		for _, f := range payload.RiskFlags {
			evidence := "-"
			if f.Evidence != nil {
				evidence = *f.Evidence
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", f.ID, f.Severity, f.Title, evidence))
		}
	}
	sb.WriteString("\n")

	for _, m := range payload.Messages {
		sb.WriteString(fmt.Sprintf("## Message: %s\n\n", m.Role))
		sb.WriteString("```text\n")
		sb.WriteString(m.Content)
		sb.WriteString("\n```\n\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("_" + payload.Disclaimer + "_\n")

	return sb.String()
}
