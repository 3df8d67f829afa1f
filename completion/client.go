// Package completion talks to an OpenAI-compatible chat completion
// endpoint. It is the only place in the engine that performs network
// I/O toward the text provider; callers see either generated text or a
// typed ProviderError.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"chatdice/domain"
)

// ErrorKind classifies provider failures for logging and retry decisions.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindQuotaOrAuth ErrorKind = "quota_or_auth"
	KindMalformed   ErrorKind = "malformed_response"
)

// ProviderError wraps any completion failure with its kind. It never
// reaches a participant; the conversation layer masks it with a
// fallback phrase.
type ProviderError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Config carries the generation parameters sent with every request and
// the retry policy applied around it.
type Config struct {
	BaseURL          string
	APIKey           string
	Model            string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	// Timeout bounds one attempt, independently of retry backoff.
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:          "https://api.openai.com",
		APIKey:           apiKey,
		Model:            "gpt-4o-mini",
		Temperature:      0.9,
		MaxTokens:        150,
		TopP:             1,
		FrequencyPenalty: 0.3,
		PresencePenalty:  0.3,
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
	}
}

type Client struct {
	log        *slog.Logger
	cfg        Config
	httpClient *http.Client
}

func NewClient(log *slog.Logger, cfg Config) *Client {
	return &Client{
		log:        log,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the transcript and returns the generated text. Up to
// MaxRetries additional attempts are made with a fixed backoff; the
// last failure is returned once they are exhausted.
func (c *Client) Complete(ctx context.Context, transcript []domain.Turn) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug("Retrying completion request", "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", &ProviderError{Kind: KindTimeout, Err: ctx.Err()}
			case <-time.After(c.cfg.RetryBackoff):
			}
		}
		text, err := c.complete(ctx, transcript)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (c *Client) complete(ctx context.Context, transcript []domain.Turn) (string, error) {
	body := chatRequest{
		Model: c.cfg.Model,
		Messages: lo.Map(transcript, func(t domain.Turn, _ int) chatMessage {
			return chatMessage{Role: string(t.Role), Content: t.Content}
		}),
		Temperature:      c.cfg.Temperature,
		MaxTokens:        c.cfg.MaxTokens,
		TopP:             c.cfg.TopP,
		FrequencyPenalty: c.cfg.FrequencyPenalty,
		PresencePenalty:  c.cfg.PresencePenalty,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Kind: KindMalformed, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Kind: KindMalformed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Kind: KindTimeout, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Kind: KindMalformed, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return "", &ProviderError{Kind: KindQuotaOrAuth,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, providerMessage(raw))}
	default:
		return "", &ProviderError{Kind: KindMalformed,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, providerMessage(raw))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ProviderError{Kind: KindMalformed, Err: err}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &ProviderError{Kind: KindMalformed, Err: fmt.Errorf("empty choices")}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func providerMessage(raw []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
		return parsed.Error.Message
	}
	return "unknown provider error"
}
