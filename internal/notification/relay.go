package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultRelayTimeout bounds one relay call. The relay is given a single
// attempt; on timeout the dispatcher falls back to the inbox.
const DefaultRelayTimeout = 8 * time.Second

// relayRequest is the wire body of POST /send-notification.
type relayRequest struct {
	Tokens       []string          `json:"tokens"`
	Notification *relayMessage     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

type relayMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type relayResponse struct {
	Success bool `json:"success"`
}

// RelayClient calls the standalone relay process that fans a token batch
// out to the push gateway. A client with no base URL is valid: Configured
// reports false and the dispatcher always uses the inbox instead.
type RelayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient creates a client for the relay at baseURL. An empty
// baseURL disables the relay step entirely.
func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	if timeout <= 0 {
		timeout = DefaultRelayTimeout
	}
	return &RelayClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a relay URL was provided.
func (c *RelayClient) Configured() bool {
	return c.baseURL != ""
}

// Send delivers one batch to the relay. Any transport failure, non-2xx
// status, or success=false response is returned as an error; the caller
// treats all of them identically.
func (c *RelayClient) Send(ctx context.Context, tokens []string, payload Payload) error {
	body, err := json.Marshal(relayRequest{
		Tokens:       tokens,
		Notification: &relayMessage{Title: payload.Title, Body: payload.Body},
		Data:         payload.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-notification", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	var decoded relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode relay response: %w", err)
	}
	if !decoded.Success {
		return fmt.Errorf("relay reported failure")
	}
	return nil
}
