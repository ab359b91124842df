package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const requestTimeout = 5 * time.Second

// HTTPStore is a Store backed by the leaderboard service's REST API
type HTTPStore struct {
	base   string
	client *http.Client
}

// NewHTTPStore creates a client for the service at base, e.g.
// "http://localhost:8080"
func NewHTTPStore(base string) *HTTPStore {
	return &HTTPStore{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: requestTimeout},
	}
}

type submitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Submit posts a score
func (s *HTTPStore) Submit(ctx context.Context, name string, score int) error {
	if _, err := NewEntry(name, score, time.Time{}); err != nil {
		return err
	}
	body, err := json.Marshal(submitRequest{Name: NormalizeName(name), Score: score})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submission: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Top fetches the n best entries
func (s *HTTPStore) Top(ctx context.Context, n int) ([]Entry, error) {
	q := url.Values{"limit": {strconv.Itoa(n)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/api/scores?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build top query: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch top scores: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode top scores: %w: %v", ErrUnavailable, err)
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return ErrInvalidEntry
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}
