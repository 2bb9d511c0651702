// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package username

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/99yash/eptesicus/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator asks a chat model for a single short handle.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator builds a generator from the AI config. Returns nil
// when no API key is configured so the allocator skips straight to the
// fallback scheme.
func NewOpenAIGenerator(cfg *config.AIConfig) *OpenAIGenerator {
	if cfg.APIKey == "" {
		return nil
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

const systemPrompt = "You generate usernames. Respond with exactly one username: " +
	"5 to 8 lowercase letters and digits, nothing else. No punctuation, no explanation."

// Generate requests one candidate handle seeded by a display name or
// email local part.
func (g *OpenAIGenerator) Generate(ctx context.Context, seed string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Suggest a username inspired by: " + seed},
		},
		MaxTokens:   10,
		Temperature: 1.0,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
