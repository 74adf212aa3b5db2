package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yotei-chat/yotei/pkg/chat"
)

// Client talks to the scheduling backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 60*time.Second)
}

func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ChatMessage is the wire shape of one transcript entry.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body sent to the chat endpoints: the full
// prior transcript plus the newly submitted user text, in order.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// FromTranscript converts transcript messages to their wire shape. Only
// completed user and assistant turns are sent; error entries and the
// in-flight placeholder are local display state.
func FromTranscript(msgs []chat.Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if !m.IsComplete() {
			continue
		}
		if m.Role != chat.RoleUser && m.Role != chat.RoleAssistant && m.Role != chat.RoleSystem {
			continue
		}
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// postJSON issues a POST with a JSON body and decodes a JSON reply into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &chat.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transportErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &chat.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transportErrorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// AuthRequired reports whether err is the backend's auth-required
// response, meaning the user must complete the Google OAuth flow before
// the calendar can be read.
func AuthRequired(err error) bool {
	var terr *chat.TransportError
	return errors.As(err, &terr) && terr.StatusCode == http.StatusUnauthorized
}

// transportErrorFromResponse reads the error body for detail. The backend
// reports failures as {"detail": "..."}.
func transportErrorFromResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &chat.TransportError{StatusCode: resp.StatusCode}
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
		return &chat.TransportError{StatusCode: resp.StatusCode, Body: detail.Detail}
	}
	return &chat.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
}
