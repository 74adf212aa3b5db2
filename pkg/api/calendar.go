package api

import (
	"context"
	"fmt"
)

// CalendarEvent is one entry from the backend's event listing.
type CalendarEvent struct {
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Status   string `json:"status"`
	Calendar string `json:"calendar"`
}

// String renders the event as a single listing line.
func (e CalendarEvent) String() string {
	return fmt.Sprintf("%s 〜 %s  %s [%s]", e.Start, e.End, e.Summary, e.Status)
}

// HealthStatus is the backend liveness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Schedule sends the transcript to the scheduling endpoint and returns the
// backend's reply text. Unlike StreamChat this is a plain request/response
// call; the backend owns all slot-finding and date-parsing semantics.
func (c *Client) Schedule(ctx context.Context, messages []ChatMessage) (string, error) {
	var reply struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/chat/schedule", ChatRequest{Messages: messages}, &reply); err != nil {
		return "", err
	}
	return reply.Response, nil
}

// Events lists upcoming calendar events.
func (c *Client) Events(ctx context.Context) ([]CalendarEvent, error) {
	var reply struct {
		Events []CalendarEvent `json:"events"`
	}
	if err := c.getJSON(ctx, "/calendar/events", &reply); err != nil {
		return nil, err
	}
	return reply.Events, nil
}

// AuthURL fetches the Google OAuth authorization URL for the user to open
// in a browser. The auth flow itself is entirely backend-owned.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var reply struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.getJSON(ctx, "/auth/google", &reply); err != nil {
		return "", err
	}
	return reply.AuthURL, nil
}

// Health reports backend liveness.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var reply HealthStatus
	if err := c.getJSON(ctx, "/health", &reply); err != nil {
		return HealthStatus{}, err
	}
	return reply, nil
}
