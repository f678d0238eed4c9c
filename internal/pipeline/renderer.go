package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/moneyblueprint/internal/llm"
	"github.com/ppiankov/moneyblueprint/internal/model"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatOpenAI   = "openai"
)

// Renderer writes payloads in the configured output format
type Renderer struct {
	llmConfig llm.Config
}

// NewRenderer creates a renderer; the LLM config shapes --format openai output
func NewRenderer(cfg model.LLMConfig) *Renderer {
	return &Renderer{llmConfig: llm.ConfigFromModel(cfg)}
}

// Render writes payload to w in format
func (r *Renderer) Render(w io.Writer, payload *model.Payload, format string) error {
	switch format {
	case "", FormatJSON:
		return writeJSON(w, payload)
	case FormatMarkdown, "md":
		_, err := io.WriteString(w, llm.RenderMarkdown(payload))
		return err
	case FormatOpenAI:
		req, err := llm.ChatRequest(payload, r.llmConfig)
		if err != nil {
			return fmt.Errorf("build chat request: %w", err)
		}
		return writeJSON(w, req)
	default:
		return fmt.Errorf("unknown output format: %s (supported: json, markdown, openai)", format)
	}
}

// RenderFile writes payload to path, creating parent directories
func (r *Renderer) RenderFile(path string, payload *model.Payload, format string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	return r.Render(f, payload, format)
}

// Extension returns the file extension for a format
func Extension(format string) string {
	switch format {
	case FormatMarkdown, "md":
		return ".md"
	case FormatOpenAI:
		return ".openai.json"
	default:
		return ".json"
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
