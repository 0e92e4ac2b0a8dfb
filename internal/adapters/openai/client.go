// Package openai provides an adapter for the mood analysis service.
// It sends mood text or an encoded photo to a chat-completions endpoint and
// turns the free-text reply into a mood description plus song candidates.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

const systemPrompt = "You are MoodMatch, an empathetic music companion. " +
	"The user describes their mood in text or shares a photo of their current situation.\n\n" +
	"Reply in exactly this shape:\n" +
	"First, write one or two warm sentences reflecting the mood back to the user.\n" +
	"Then recommend five songs that fit the mood, one per line, formatted as:\n" +
	"1. <song title> - <artist>\n" +
	"Do not add any text after the song list."

const imagePrompt = "Describe the mood of this picture and recommend songs that match it."

// Config holds the analysis service settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	parser     ports.ReplyParser
	httpClient *http.Client
}

var _ ports.MoodAnalyzer = (*Client)(nil)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(cfg Config, parser ports.ReplyParser) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		timeout: timeout,
		parser:  parser,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// AnalyzeText analyzes a free-text mood description.
func (c *Client) AnalyzeText(ctx context.Context, text string) (domain.MoodAnalysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: %w", domain.ErrEmptyInput)
	}

	return c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: trimmed},
	})
}

// AnalyzeImage analyzes a photo of the user's situation. The bytes are sent
// base64-encoded as a data URL; unsupported or empty payloads are rejected
// before any network call.
func (c *Client) AnalyzeImage(ctx context.Context, data []byte, mimeHint string) (domain.MoodAnalysis, error) {
	dataURL, err := encodeImage(data, mimeHint)
	if err != nil {
		return domain.MoodAnalysis{}, err
	}

	return c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: imagePrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}},
	})
}

var supportedImageMimes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

func encodeImage(data []byte, mimeHint string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("openai: empty image payload: %w", domain.ErrImageEncoding)
	}
	mime := strings.ToLower(strings.TrimSpace(mimeHint))
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	if _, ok := supportedImageMimes[mime]; !ok {
		return "", fmt.Errorf("openai: unsupported image type %q: %w", mime, domain.ErrImageEncoding)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (domain.MoodAnalysis, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.MoodAnalysis{}, fmt.Errorf("openai: %w", domain.ErrTimeout)
		}
		return domain.MoodAnalysis{}, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: %w", &domain.ServiceError{Code: resp.StatusCode})
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return domain.MoodAnalysis{}, fmt.Errorf("openai: empty response")
	}

	return c.parser.Parse(parsed.Choices[0].Message.Content), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
