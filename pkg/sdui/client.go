package sdui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingCredentials is returned before any network call when the user id
// or auth token is not configured.
var ErrMissingCredentials = errors.New("sdui user id or auth token is not configured")

const dateFormat = "2006-01-02"

// Client is the HTTP wrapper for the SDUI timetable API.
type Client struct {
	baseURL    string
	userID     string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a new SDUI HTTP client.
func NewClient(baseURL, userID, authToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		userID:     userID,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchTimetable fetches raw lesson records for the inclusive date window
// [begin, end] via GET /v1/timetables/users/{id}/timetable.
func (c *Client) FetchTimetable(ctx context.Context, begin, end time.Time) (*Timetable, error) {
	if c.userID == "" || c.authToken == "" {
		return nil, ErrMissingCredentials
	}

	url := fmt.Sprintf("%s/v1/timetables/users/%s/timetable?begins_at=%s&ends_at=%s",
		c.baseURL, c.userID, begin.Format(dateFormat), end.Format(dateFormat))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build timetable request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.authToken))
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call sdui timetable API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sdui API timetable error %d: %s", resp.StatusCode, string(raw))
	}

	var timetable Timetable
	if err := json.NewDecoder(resp.Body).Decode(&timetable); err != nil {
		return nil, fmt.Errorf("failed to decode sdui timetable response: %w", err)
	}
	return &timetable, nil
}
