package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/logger"
	"github.com/yotei-chat/yotei/pkg/sse"
)

// StreamChat posts the transcript to the streaming chat endpoint and
// returns a channel of decoded events in stream order. The channel is
// closed after StreamEnded, on EOF, or when ctx is cancelled; the caller
// owns finalizing the in-flight turn in all three cases.
//
// A non-success response surfaces as a TransportError before any event is
// produced.
func (c *Client) StreamChat(ctx context.Context, messages []ChatMessage) (<-chan sse.Event, error) {
	reqBody, err := json.Marshal(ChatRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &chat.TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, transportErrorFromResponse(resp)
	}

	events := make(chan sse.Event, 100) // Buffered for performance
	go c.readStream(ctx, resp.Body, events)

	return events, nil
}

// readStream feeds response bytes to the decoder and forwards events.
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, events chan<- sse.Event) {
	defer close(events)
	defer body.Close()

	decoder := sse.NewDecoder()
	buf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stream cancelled: %v", ctx.Err())
			return
		default:
		}

		n, err := body.Read(buf)
		if n > 0 {
			for _, ev := range decoder.Feed(buf[:n]) {
				events <- ev
				if ev.Kind == sse.StreamEnded {
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				logger.Error("Stream read error: %v", err)
			}
			// Flush an unterminated trailing frame before closing.
			for _, ev := range decoder.Close() {
				events <- ev
			}
			return
		}
	}
}
