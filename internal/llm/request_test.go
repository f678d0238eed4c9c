package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(t *testing.T, reportID string) *model.Payload {
	t.Helper()
	payload, err := prompt.Build(prompt.Request{
		ReportID: reportID,
		WizardData: map[string]any{
			"basics": map[string]any{"netIncome": "2,100", "incomeFrequency": "monthly"},
			"habits": map[string]any{"emergencyFundMonths": "1-3"},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestChatRequest(t *testing.T) {
	payload := samplePayload(t, "MB-55")

	req, err := ChatRequest(payload, Config{Model: "gpt-4o", MaxTokens: 900, Temperature: 0.2})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 900, req.MaxTokens)
	assert.Equal(t, float32(0.2), req.Temperature)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, payload.Messages[0].Content, req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, map[string]string{"report_id": "MB-55"}, req.Metadata)

	_, err = json.Marshal(req)
	require.NoError(t, err)
}

func TestChatRequest_Defaults(t *testing.T) {
	req, err := ChatRequest(samplePayload(t, ""), Config{})
	require.NoError(t, err)
	assert.Equal(t, openai.GPT4oMini, req.Model)
	assert.Nil(t, req.Metadata)
}

func TestChatRequest_InvalidPayload(t *testing.T) {
	_, err := ChatRequest(nil, DefaultConfig())
	assert.Error(t, err)

	_, err = ChatRequest(&model.Payload{}, DefaultConfig())
	assert.Error(t, err)
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{})
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = ConfigFromModel(model.LLMConfig{Model: "gpt-4.1", MaxTokens: 2000, Temperature: 0.7})
	assert.Equal(t, "gpt-4.1", cfg.Model)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, float32(0.7), cfg.Temperature)
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(samplePayload(t, "MB-3"))

	assert.True(t, strings.HasPrefix(md, "# Money Blueprint Prompt\n\n**Report:** MB-3"))
	assert.Contains(t, md, "| `emergency-fund-low` | medium | Emergency fund below three months | 1 to 3 months |")
	assert.Contains(t, md, "## Message: system")
	assert.Contains(t, md, "## Message: user")
	assert.Contains(t, md, "_"+prompt.Disclaimer+"_")
}

func TestRenderMarkdown_Nil(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(nil))
}
