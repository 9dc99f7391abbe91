// Package discord posts notification messages to a Discord webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultUsername = "Timers"

// WebhookMessage is the payload accepted by Discord webhook endpoints.
type WebhookMessage struct {
	Username        string          `json:"username"`
	Content         string          `json:"content"`
	AllowedMentions AllowedMentions `json:"allowed_mentions"`
}

// AllowedMentions limits which mention types the message may trigger.
type AllowedMentions struct {
	Parse []string `json:"parse"`
}

// WebhookClient sends messages to a single configured webhook URL.
type WebhookClient struct {
	httpClient *http.Client
	webhookURL string
	username   string
}

func NewWebhookClient(webhookURL string) *WebhookClient {
	return &WebhookClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		username:   defaultUsername,
	}
}

// SendMessage posts content to the webhook, allowing @everyone/@here pings.
func (c *WebhookClient) SendMessage(ctx context.Context, content string) error {
	message := WebhookMessage{
		Username: c.username,
		Content:  content,
		AllowedMentions: AllowedMentions{
			Parse: []string{"everyone"},
		},
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
