package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const wizardJSON = `{
  "basics": {"netIncome": "2,500.00", "incomeFrequency": "four-weekly", "householdSize": "3", "region": "scotland", "focus": "stability"},
  "habits": {"emergencyFundMonths": "less-1", "checkInFrequency": "ad-hoc", "confidenceLevel": "finding-feet"},
  "summary": {"shareEmail": "sam@example.com", "consentToContact": true}
}`

const wizardYAML = `basics:
  netIncome: "2,500.00"
  incomeFrequency: four-weekly
  householdSize: 3
  region: scotland
  focus: stability
habits:
  emergencyFundMonths: less-1
  checkInFrequency: ad-hoc
  confidenceLevel: finding-feet
summary:
  shareEmail: sam@example.com
  consentToContact: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = ""
	return cfg
}

func TestLoader_JSONAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(0)

	fromJSON, err := loader.LoadFile(writeFile(t, dir, "a.json", wizardJSON))
	require.NoError(t, err)
	assert.Equal(t, "json", fromJSON.Format)

	fromYAML, err := loader.LoadFile(writeFile(t, dir, "a.yml", wizardYAML))
	require.NoError(t, err)
	assert.Equal(t, "yaml", fromYAML.Format)

	a, err := prompt.Build(prompt.Request{WizardData: fromJSON.Raw})
	require.NoError(t, err)
	b, err := prompt.Build(prompt.Request{WizardData: fromYAML.Raw})
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(0)

	_, err := loader.LoadFile(writeFile(t, dir, "wizard.txt", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = loader.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = loader.LoadFile(writeFile(t, dir, "broken.json", "{"))
	assert.Error(t, err)

	_, err = NewLoader(4).Load(strings.NewReader(`{"basics":{}}`), "big", "json")
	assert.ErrorContains(t, err, "exceeds")
}

func TestLoader_EmptyFile(t *testing.T) {
	res, err := NewLoader(0).Load(strings.NewReader(""), "empty", "json")
	require.NoError(t, err)
	assert.Nil(t, res.Raw)
}

func TestPipeline_BuildFile(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(testConfig(), zap.NewNop())

	res, err := p.BuildFile(context.Background(), writeFile(t, dir, "w.json", wizardJSON), BuildOptions{ReportID: "MB-12"})
	require.NoError(t, err)

	require.NotNil(t, res.Payload.ReportID)
	assert.Equal(t, "MB-12", *res.Payload.ReportID)
	assert.False(t, res.Duplicate)

	var ids []string
	for _, f := range res.Payload.RiskFlags {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"emergency-fund-critical", "infrequent-reviews", "low-confidence"}, ids)
}

func TestPipeline_DetectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPipeline(testConfig(), zap.New(core))

	first, err := p.BuildFile(context.Background(), writeFile(t, dir, "one.json", wizardJSON), BuildOptions{})
	require.NoError(t, err)
	second, err := p.BuildFile(context.Background(), writeFile(t, dir, "two.yaml", wizardYAML), BuildOptions{})
	require.NoError(t, err)

	assert.False(t, first.Duplicate)
	assert.True(t, second.Duplicate)
	assert.Equal(t, filepath.Join(dir, "one.json"), second.DuplicateOf)
	assert.Equal(t, 2, logs.FilterMessage("built prompt payload").Len())
}

func TestPipeline_CacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, nil)

	for i := 0; i < 2; i++ {
		res, err := p.Build(context.Background(), "inline", map[string]any{}, BuildOptions{})
		require.NoError(t, err)
		assert.False(t, res.Duplicate)
	}
}

func TestPipeline_NewID(t *testing.T) {
	p := NewPipeline(testConfig(), nil)

	res, err := p.Build(context.Background(), "inline", nil, BuildOptions{NewID: true})
	require.NoError(t, err)
	require.NotNil(t, res.Payload.ReportID)
	_, err = uuid.Parse(*res.Payload.ReportID)
	assert.NoError(t, err)

	res, err = p.Build(context.Background(), "inline", nil, BuildOptions{NewID: true, ReportID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", *res.Payload.ReportID)
}

func TestPipeline_UsesConfiguredTone(t *testing.T) {
	cfg := testConfig()
	cfg.Prompt.Tone = "calm and upbeat"
	cfg.Prompt.SystemInstructions = []string{"Use metric units."}
	p := NewPipeline(cfg, nil)

	res, err := p.Build(context.Background(), "inline", nil, BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, res.Payload.Messages[0].Content, "Keep the tone calm and upbeat.")
	assert.True(t, strings.HasSuffix(res.Payload.Messages[0].Content, "\nUse metric units."))
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(testConfig(), nil).Build(ctx, "inline", nil, BuildOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Formats(t *testing.T) {
	p := NewPipeline(testConfig(), nil)
	res, err := p.Build(context.Background(), "inline", map[string]any{"habits": map[string]any{"additionalNotes": "a < b"}}, BuildOptions{ReportID: "MB-R"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Renderer().Render(&buf, res.Payload, FormatJSON))
	var decoded model.Payload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.Payload.Fingerprint, decoded.Fingerprint)
	assert.Contains(t, buf.String(), "a < b")

	buf.Reset()
	require.NoError(t, p.Renderer().Render(&buf, res.Payload, FormatMarkdown))
	assert.True(t, strings.HasPrefix(buf.String(), "# Money Blueprint Prompt"))

	buf.Reset()
	require.NoError(t, p.Renderer().Render(&buf, res.Payload, FormatOpenAI))
	var req openai.ChatCompletionRequest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &req))
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Len(t, req.Messages, 2)

	assert.Error(t, p.Renderer().Render(&buf, res.Payload, "pdf"))
}

func TestRenderer_RenderFile(t *testing.T) {
	p := NewPipeline(testConfig(), nil)
	res, err := p.Build(context.Background(), "inline", nil, BuildOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "out"+Extension(FormatMarkdown))
	require.NoError(t, p.Renderer().RenderFile(path, res.Payload, FormatMarkdown))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), prompt.Disclaimer)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", Extension(FormatJSON))
	assert.Equal(t, ".md", Extension(FormatMarkdown))
	assert.Equal(t, ".openai.json", Extension(FormatOpenAI))
}
