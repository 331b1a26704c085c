package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ershubhamgupta1/ai-agentic-meeting-summarizer/internal/logger"
)

// Client is a minimal chat-completions client for OpenAI-compatible
// gateways. One instance is constructed at startup and shared by every
// pipeline run; each call is an independent stateless request, so the
// client is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     logger.New(),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one system+user exchange and returns the
// assistant content. Transient failures (network errors, 5xx) are
// retried with exponential backoff; 4xx responses are permanent.
func (c *Client) ChatCompletion(ctx context.Context, model string, temperature float64, system, user string) (string, error) {
	log := c.log.WithField("component", "llm-client").WithField("model", model)

	body := chatRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var content string
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error: status=%d", resp.StatusCode)
			log.WithField("http_status", resp.StatusCode).Warn("llm server error")
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("llm client error: status=%d body=%s", resp.StatusCode, string(raw))
			return backoff.Permanent(lastErr)
		}

		var parsed chatResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			lastErr = fmt.Errorf("decode llm response: %w", err)
			return lastErr
		}
		if len(parsed.Choices) == 0 {
			lastErr = fmt.Errorf("llm response has no choices")
			return lastErr
		}
		content = parsed.Choices[0].Message.Content
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return "", lastErr
	}
	return content, nil
}
