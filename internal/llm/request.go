// Package llm shapes assembled prompt payloads for chat-completion APIs.
// Nothing here performs network I/O; sending the request is the caller's job.
package llm

import (
	"fmt"

	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/sashabaranov/go-openai"
)

// Config holds the request shaping options
type Config struct {
	// Model name, defaults to gpt-4o-mini
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature for generation
	Temperature float32

	// User is an opaque end-user identifier forwarded to the provider (never the email)
	User string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Model:       openai.GPT4oMini,
		MaxTokens:   1500,
		Temperature: 0.4,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	cfg := DefaultConfig()
	if modelConfig.Model != "" {
		cfg.Model = modelConfig.Model
	}
	if modelConfig.MaxTokens > 0 {
		cfg.MaxTokens = modelConfig.MaxTokens
	}
	if modelConfig.Temperature > 0 {
		cfg.Temperature = modelConfig.Temperature
	}
	return cfg
}

// ChatRequest converts a payload into an OpenAI chat completion request
func ChatRequest(payload *model.Payload, cfg Config) (openai.ChatCompletionRequest, error) {
	if payload == nil {
		return openai.ChatCompletionRequest{}, fmt.Errorf("payload is required")
	}
	if len(payload.Messages) == 0 {
		return openai.ChatCompletionRequest{}, fmt.Errorf("payload has no messages")
	}

	messages := make([]openai.ChatCompletionMessage, len(payload.Messages))
	for i, m := range payload.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		User:        cfg.User,
	}
	if payload.ReportID != nil {
		req.Metadata = map[string]string{"report_id": *payload.ReportID}
	}

	return req, nil
}
