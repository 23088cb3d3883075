// Package chat holds the messaging boundary: an outbound Slack-style
// client, inbound request verification, and notification coalescing.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nvoskov/teamplan/internal/config"
)

// Poster is the capability the rest of the app uses to send messages.
type Poster interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) error
}

// Client posts messages through the Slack Web API.
type Client struct {
	Token      string
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		Endpoint:   config.SlackPostEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type postMessageRequest struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// PostMessage sends text to a channel, threading when threadTS is set.
func (c *Client) PostMessage(ctx context.Context, channel, text, threadTS string) error {
	body, err := json.Marshal(postMessageRequest{Channel: channel, Text: text, ThreadTS: threadTS})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var decoded postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	if !decoded.OK {
		return fmt.Errorf("post message: %s", decoded.Error)
	}
	return nil
}
