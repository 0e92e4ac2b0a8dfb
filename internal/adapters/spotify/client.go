// Package spotify implements the catalog provider port against the Spotify
// Web API.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	tokenURL        = "https://accounts.spotify.com/api/token"
	searchLimit     = 30
	resolveLimit    = 5
	requestTimeout  = 15 * time.Second
	requestsPerSec  = 10
	requestBurst    = 5
	resolveMinScore = 0.6
)

// Client is an HTTP client for the Spotify catalog.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.CatalogProvider = (*Client)(nil)

// NewClient wraps an existing HTTP client, typically one produced by an
// oauth2 token source. Tests pass a plain client against a fake server.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestBurst),
	}
}

// NewAuthenticatedClient builds a client whose requests carry a
// client-credentials token, refreshed automatically. An empty baseURL falls
// back to the public API endpoint.
func NewAuthenticatedClient(ctx context.Context, clientID, clientSecret, baseURL string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := conf.Client(ctx)
	httpClient.Timeout = requestTimeout
	return NewClient(httpClient, baseURL)
}

// Search runs a free-text query and returns ranked catalog entries as the
// catalog orders them, capped at the display limit. Zero results is success.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogEntry, error) {
	tracks, err := c.searchTracks(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CatalogEntry, 0, len(tracks))
	for _, t := range tracks {
		entry, ok := mapTrack(t)
		if !ok {
			log.Debug().Str("query", query).Msg("skipping malformed search result")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Resolve issues a targeted query for a candidate and returns the best
// confident match, or nil when the catalog has nothing usable for it.
func (c *Client) Resolve(ctx context.Context, title, artist string) (*domain.CatalogEntry, error) {
	query := fmt.Sprintf("track:%s artist:%s", title, artist)
	tracks, err := c.searchTracks(ctx, query, resolveLimit)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		// Retry once with a loose query; the field syntax misses tracks whose
		// catalog metadata differs from the candidate wording.
		tracks, err = c.searchTracks(ctx, title+" "+artist, resolveLimit)
		if err != nil {
			return nil, err
		}
	}

	bestScore := 0.0
	bestIndex := -1
	for i, t := range tracks {
		score := matchScore(title, artist, t.Name, joinArtistNames(t))
		log.Debug().
			Str("candidate", t.Name).
			Str("artist", joinArtistNames(t)).
			Float64("score", score).
			Msg("catalog match")
		if score >= resolveMinScore && score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	if bestIndex == -1 {
		return nil, nil
	}

	entry, ok := mapTrack(tracks[bestIndex])
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (c *Client) searchTracks(ctx context.Context, query string, limit int) ([]trackObject, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("spotify: %w", err)
	}

	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("spotify: invalid search url: %w", err)
	}
	q := searchURL.Query()
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(limit))
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: build search request: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: search request failed: %w: %w", domain.ErrSearch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: search status %d: %w", resp.StatusCode, domain.ErrSearch)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify: decode search response: %w: %w", domain.ErrSearch, err)
	}

	return body.Tracks.Items, nil
}
