// Package llm provides clients for the OpenAI-compatible chat-completions
// and embeddings APIs. The chat client is the generative fallback invoked
// only when deterministic extraction finds no answer.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/TheMonk2121/ai-dev-tasks-sub022/internal/contextutil"
)

// Client is a client for an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new chat client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

const fallbackSystemPrompt = "You answer questions using only the provided evidence context. " +
	"Answer in one short sentence. If the context does not contain the answer, say \"unknown\"."

// GenerateAnswer asks the model for a free-text answer grounded in the
// assembled evidence context. The caller normalizes the result exactly like a
// rule-extracted answer.
func (c *Client) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	messages := []Message{
		{Role: "system", Content: fallbackSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("%s\n\nEvidence:\n%s", question, contextText)},
	}
	return c.chat(ctx, messages)
}

// chat sends a chat completion request and returns the first choice.
func (c *Client) chat(ctx context.Context, messages []Message) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	payload := chatRequest{Model: c.Model, Messages: messages}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	logger.DebugContext(ctx, "generative fallback answered",
		"model", c.Model,
		"finish_reason", chatResp.Choices[0].FinishReason,
	)
	return chatResp.Choices[0].Message.Content, nil
}
