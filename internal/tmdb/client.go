// Package tmdb talks to The Movie Database API to collect movie credits.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Movie is the subset of /movie/{id}?append_to_response=credits we use.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Credits     Credits `json:"credits"`
}

// Credits holds the embedded credits block.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is one billed actor.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Order     int    `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department,omitempty"`
}

// Client fetches movie details. It is safe for sequential use by one goroutine.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client with a fixed per-request timeout.
// A non-positive timeout falls back to 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// movieURL builds {base}/movie/{id}?api_key=...&append_to_response=credits.
func (c *Client) movieURL(movieID string) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("append_to_response", "credits")
	return fmt.Sprintf("%s/movie/%s?%s", c.baseURL, url.PathEscape(movieID), q.Encode())
}

// GetMovie fetches one movie with credits.
//
// 401 yields *AuthError, any other non-200 yields *StatusError, transport
// failures are returned wrapped. No retries are attempted.
func (c *Client) GetMovie(ctx context.Context, movieID string) (*Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.movieURL(movieID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for movie %s: %w", movieID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{MovieID: movieID, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &AuthError{MovieID: movieID}
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{MovieID: movieID, StatusCode: resp.StatusCode}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if ctx.Err() != nil {
			return nil, &NetworkError{MovieID: movieID, Err: err}
		}
		return nil, &DecodeError{MovieID: movieID, Err: err}
	}
	return decodeMovie(movieID, raw)
}

// decodeMovie rejects null and {} bodies with ErrNoData.
func decodeMovie(movieID string, raw json.RawMessage) (*Movie, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DecodeError{MovieID: movieID, Err: err}
	}
	if len(fields) == 0 {
		return nil, &DecodeError{MovieID: movieID, Err: ErrNoData}
	}

	var movie Movie
	if err := json.Unmarshal(raw, &movie); err != nil {
		return nil, &DecodeError{MovieID: movieID, Err: err}
	}
	return &movie, nil
}
