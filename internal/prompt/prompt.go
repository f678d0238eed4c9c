// Package prompt assembles the two-message Money Blueprint prompt from wizard data.
// It only builds the payload; sending it to a model is the caller's job.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ppiankov/moneyblueprint/internal/insights"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/sashabaranov/go-openai"
)

// Disclaimer is embedded verbatim in the system message and returned with every payload
const Disclaimer = "This Money Blueprint is for general information and education only. It is not regulated financial advice. Check your own circumstances or speak to a qualified, FCA-regulated adviser before making significant financial decisions."

// NoReportID is shown in the user message when no report reference was given
const NoReportID = "Not assigned"

const (
	noSummaryLine = "- None available"
	noRisksLine   = "- No specific risk flags were triggered. Keep the watch-outs section brief and encouraging."
)

// Request contains the input for prompt assembly
type Request struct {
	// WizardData is raw or normalised wizard input; anything is accepted
	WizardData any

	// ReportID is an optional caller reference
	ReportID string

	// Tone is interpolated into the system message (default model.DefaultTone)
	Tone string

	// SystemInstructions are appended to the system message, one per line
	SystemInstructions []string
}

// Builder assembles prompt payloads
type Builder struct {
	deriver *insights.Deriver
}

// NewBuilder creates a builder using the given deriver (nil uses the default)
func NewBuilder(deriver *insights.Deriver) *Builder {
	return &Builder{deriver: deriver}
}

// Build assembles a payload with the default deriver
func Build(req Request) (*model.Payload, error) {
	return NewBuilder(nil).Build(req)
}

// Build derives insights, sanitises the data and assembles the system and user messages.
// The only possible error is a serialisation failure.
func (b *Builder) Build(req Request) (*model.Payload, error) {
	var ins model.Insights
	if b.deriver != nil {
		ins = b.deriver.Derive(req.WizardData)
	} else {
		ins = insights.Derive(req.WizardData)
	}

	sanitised := Sanitise(ins.Raw)

	var reportID *string
	if req.ReportID != "" {
		id := req.ReportID
		reportID = &id
	}

	userMessage, err := buildUserMessage(req.ReportID, sanitised, ins.SummaryBullets, ins.RiskFlags)
	if err != nil {
		return nil, err
	}

	fingerprint, err := Fingerprint(reportID, sanitised, ins.SummaryBullets, ins.RiskFlags)
	if err != nil {
		return nil, err
	}

	return &model.Payload{
		ReportID: reportID,
		Messages: []model.Message{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemMessage(req.Tone, req.SystemInstructions)},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		SummaryBullets: ins.SummaryBullets,
		RiskFlags:      ins.RiskFlags,
		SanitisedData:  sanitised,
		Disclaimer:     Disclaimer,
		Fingerprint:    fingerprint,
	}, nil
}

func buildSystemMessage(tone string, instructions []string) string {
	if tone == "" {
		tone = model.DefaultTone
	}

	lines := []string{
		"You are a UK-based financial coach writing a personalised Money Blueprint for a household.",
		fmt.Sprintf("Keep the tone %s. Use plain British English and bring in UK context (tax bands, ISAs, workplace pensions, benefits) only where it is relevant.", tone),
		"Never recommend specific regulated products, providers or investments, and never invent figures that are not in the data you are given.",
		"End the report with this disclaimer, word for word: " + Disclaimer,
	}
	if len(instructions) > 0 {
		lines = append(lines, instructions...)
	}

	return strings.Join(lines, "\n")
}

func buildUserMessage(reportID string, data model.SanitisedData, bullets []string, flags []model.RiskFlag) (string, error) {
	if reportID == "" {
		reportID = NoReportID
	}

	dump, err := marshalJSON(data, "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sanitised data: %w", err)
	}

	sections := []string{
		"Report reference: " + reportID,
		"Household data (personal contact details removed):\n" + dump,
		"Summary insights:\n" + FormatSummary(bullets),
		"Risk flags:\n" + FormatRisks(flags),
		"Write the Money Blueprint with these sections in this order: Snapshot, Cash flow, Priorities and goals, Watch-outs, Next 90 days.",
		"In Watch-outs, explain each risk flag in plain language, say why it matters for this household and suggest one practical first step. If there are no flags, highlight what is going well instead.",
		"When you discuss a risk flag, reference it by its ID in square brackets, for example [emergency-fund-low], so the report can be linked back to these inputs.",
	}

	return strings.Join(sections, "\n\n"), nil
}

// FormatSummary renders bullets as "- bullet" lines
func FormatSummary(bullets []string) string {
	if len(bullets) == 0 {
		return noSummaryLine
	}
	lines := make([]string, len(bullets))
	for i, b := range bullets {
		lines[i] = "- " + b
	}
	return strings.Join(lines, "\n")
}

// FormatRisks renders flags as "- [SEVERITY] title: description (Evidence: ...)" lines
func FormatRisks(flags []model.RiskFlag) string {
	if len(flags) == 0 {
		return noRisksLine
	}
	lines := make([]string, len(flags))
	for i, f := range flags {
		line := fmt.Sprintf("- [%s] %s: %s", strings.ToUpper(string(f.Severity)), f.Title, f.Description)
		if f.Evidence != nil && *f.Evidence != "" {
			line += fmt.Sprintf(" (Evidence: %s)", *f.Evidence)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
