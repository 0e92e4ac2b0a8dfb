// Package playback forwards play requests to the external playback
// collaborator. The play URI is opaque and passed through unchanged.
package playback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.Player = (*Client)(nil)

type playRequest struct {
	URI string `json:"uri"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Play is fire-and-forget from the pipeline's point of view: the collaborator
// owns playback state, this client only reports whether the request was
// accepted.
func (c *Client) Play(ctx context.Context, uri string) error {
	body, err := json.Marshal(playRequest{URI: uri})
	if err != nil {
		return fmt.Errorf("playback: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/play", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("playback: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("playback: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("playback: unexpected status %d", resp.StatusCode)
	}
	return nil
}
