package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/nvoskov/teamplan/internal/models"
)

// Client fetches events over HTTP with a bearer token cached in-process
// for the session lifetime. An authorization failure invalidates the
// cached token; obtaining a fresh one is the caller's problem.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.Mutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs a new access token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the cached token, empty after invalidation.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type wireEvent struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	Start       wireWhen `json:"start"`
	End         wireWhen `json:"end"`
	HangoutLink string   `json:"hangoutLink"`
	Attendees   []struct {
		Email string `json:"email"`
	} `json:"attendees"`
}

type wireWhen struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type wireEventList struct {
	Items []wireEvent `json:"items"`
}

// EventsForDate implements Service.
func (c *Client) EventsForDate(ctx context.Context, date string) ([]models.CalendarEvent, error) {
	token := c.Token()
	if token == "" {
		return nil, ErrAuthExpired
	}

	endpoint := fmt.Sprintf("%s/events?date=%s", c.BaseURL, url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.SetToken("")
		return nil, ErrAuthExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar fetch: unexpected status %d", resp.StatusCode)
	}

	var list wireEventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("calendar fetch: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		ev, err := item.toModel()
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (w wireEvent) toModel() (models.CalendarEvent, error) {
	ev := models.CalendarEvent{
		ID:            w.ID,
		Summary:       w.Summary,
		HangoutLink:   w.HangoutLink,
		AttendeeCount: len(w.Attendees),
	}
	if w.Start.Date != "" {
		ev.AllDay = true
		start, err := time.Parse("2006-01-02", w.Start.Date)
		if err != nil {
			return ev, err
		}
		ev.Start = start
		ev.End = start.AddDate(0, 0, 1)
		return ev, nil
	}
	start, err := time.Parse(time.RFC3339, w.Start.DateTime)
	if err != nil {
		return ev, err
	}
	end, err := time.Parse(time.RFC3339, w.End.DateTime)
	if err != nil {
		return ev, err
	}
	ev.Start = start
	ev.End = end
	return ev, nil
}
