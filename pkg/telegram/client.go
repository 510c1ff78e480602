// Package telegram sends reminder messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the public Bot API endpoint.
const DefaultAPIURL = "https://api.telegram.org"

// Client represents a Telegram bot used to deliver reminders.
type Client struct {
	token  string       // bot token for authentication
	apiURL string       // Bot API base URL without trailing slash
	client *http.Client // HTTP client used to make requests
}

// NewClient creates a Client for the bot with the given token. An empty
// apiURL selects DefaultAPIURL.
func NewClient(token, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		token:  token,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// sendMessageRequest represents the payload for the Telegram sendMessage API.
type sendMessageRequest struct {
	ChatID string `json:"chat_id"` // chat id to send message to
	Text   string `json:"text"`    // message text
}

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts msg to the chat identified by to.
//
// It returns an error if the request fails, the API answers with a non-200
// status, or the reply is not marked ok.
func (c *Client) Send(to string, msg string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)

	body, err := json.Marshal(sendMessageRequest{ChatID: to, Text: msg})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		// The URL carries the token; keep it out of the error.
		return fmt.Errorf("send request: %w", redact(err, c.token))
	}
	defer resp.Body.Close()

	var reply apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode != http.StatusOK || !reply.OK {
		if reply.Description != "" {
			return fmt.Errorf("telegram API error: %s: %s", resp.Status, reply.Description)
		}
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e redactedError) Error() string { return e.msg }
func (e redactedError) Unwrap() error { return e.err }

func redact(err error, token string) error {
	if token == "" {
		return err
	}
	return redactedError{msg: strings.ReplaceAll(err.Error(), token, "<token>"), err: err}
}
