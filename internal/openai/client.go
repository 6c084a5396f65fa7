package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dadihq/dadi-gateway/internal/config"
	"github.com/dadihq/dadi-gateway/internal/types"
)

const noResponseSentinel = "No response generated"

// Client talks to an Azure-OpenAI-style chat completions deployment.
// It is constructed once at startup, holds no per-request state, and is
// safe for concurrent use.
type Client struct {
	cfg        config.OpenAIConfig
	httpClient *http.Client
	configured bool
}

func New(cfg config.OpenAIConfig) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		slog.Warn("OpenAI endpoint or key not configured, chat functionality will be limited")
		return c
	}
	c.configured = true
	slog.Info("OpenAI client initialized", "deployment", cfg.Deployment)
	return c
}

// IsConfigured reports whether the client can reach a model backend.
// Callers must check this before invoking Chat or ChatStream.
func (c *Client) IsConfigured() bool {
	return c.configured
}

// Chat runs a single-shot completion over the supplied history, injecting
// the mode's system prompt when the history has none. Provider failures
// come back as *Error with a stable Category.
func (c *Client) Chat(ctx context.Context, history []types.Message, mode types.ChatMode) (string, error) {
	if !c.configured {
		return "", notConfiguredError()
	}

	resp, err := c.send(ctx, history, mode, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(0, "", err.Error(), err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyResponse(resp.StatusCode, body)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", classify(0, "", err.Error(), fmt.Errorf("unmarshal completion: %w", err))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		slog.Warn("provider returned empty completion, using sentinel")
		return noResponseSentinel, nil
	}
	return completion.Choices[0].Message.Content, nil
}

// ChatStream starts an incremental completion and returns a forward-only
// stream of text fragments. The stream is bound to ctx: cancelling the
// request releases the provider connection.
func (c *Client) ChatStream(ctx context.Context, history []types.Message, mode types.ChatMode) (*Stream, error) {
	if !c.configured {
		return nil, notConfiguredError()
	}

	resp, err := c.send(ctx, history, mode, true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, classifyResponse(resp.StatusCode, body)
	}

	return newStream(resp.Body), nil
}

func (c *Client) send(ctx context.Context, history []types.Message, mode types.ChatMode, stream bool) (*http.Response, error) {
	msgs := withSystemPrompt(history, mode)
	payload := completionRequest{
		Messages:         make([]types.Message, len(msgs)),
		Temperature:      c.cfg.Temperature,
		MaxTokens:        c.cfg.MaxTokens,
		TopP:             c.cfg.TopP,
		FrequencyPenalty: c.cfg.FrequencyPenalty,
		PresencePenalty:  c.cfg.PresencePenalty,
		Stream:           stream,
	}
	for i, m := range msgs {
		payload.Messages[i] = types.Message{Role: normalizeRole(m.Role), Content: m.Content}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, classify(0, "", err.Error(), fmt.Errorf("marshal completion request: %w", err))
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Deployment, c.cfg.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, classify(0, "", err.Error(), fmt.Errorf("create completion request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("provider request failed", "error", err)
		return nil, classify(0, "", err.Error(), err)
	}
	return resp, nil
}

// classifyResponse turns a non-200 provider response into a typed Error,
// preferring the structured error code over message text.
func classifyResponse(statusCode int, body []byte) *Error {
	var perr providerErrorResponse
	code, message := "", string(body)
	if err := json.Unmarshal(body, &perr); err == nil && perr.Error.Message != "" {
		code = perr.Error.Code
		message = perr.Error.Message
	}
	slog.Error("provider returned error", "status", statusCode, "code", code, "message", message)
	return classify(statusCode, code, message, fmt.Errorf("provider status %d: %s", statusCode, message))
}

type completionRequest struct {
	Messages         []types.Message `json:"messages"`
	Temperature      float64         `json:"temperature"`
	MaxTokens        int             `json:"max_tokens"`
	TopP             float64         `json:"top_p"`
	FrequencyPenalty float64         `json:"frequency_penalty"`
	PresencePenalty  float64         `json:"presence_penalty"`
	Stream           bool            `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Index   int           `json:"index"`
		Message types.Message `json:"message"`
	} `json:"choices"`
}

type providerErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
