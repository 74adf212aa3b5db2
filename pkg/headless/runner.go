package headless

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yotei-chat/yotei/pkg/api"
	"github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/config"
	"github.com/yotei-chat/yotei/pkg/logger"
	"github.com/yotei-chat/yotei/pkg/sse"
)

// Runner executes a single chat turn without the TUI, printing the
// assistant reply to stdout as it streams.
type Runner struct {
	client     *api.Client
	transcript *chat.Transcript
	history    *chat.History
}

// NewRunner builds a runner from global config.
func NewRunner(continueHistory bool) (*Runner, error) {
	settings := config.Get()

	history, err := chat.NewHistory(config.BuildSettingsPath(settings.Chat.HistoryPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create history: %w", err)
	}

	if !continueHistory {
		if err := history.Clear(); err != nil {
			return nil, fmt.Errorf("failed to clear history: %w", err)
		}
	}

	transcript := chat.NewTranscript()
	transcript.Restore(history.GetMessages())

	return &Runner{
		client:     api.NewClientWithTimeout(settings.Server.URL, settings.ServerTimeout()),
		transcript: transcript,
		history:    history,
	}, nil
}

// Run submits one prompt and streams the reply to stdout.
func (r *Runner) Run(ctx context.Context, prompt string) error {
	userMsg, err := r.transcript.SubmitUserTurn(prompt)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyInput) {
			return fmt.Errorf("prompt cannot be empty in headless mode")
		}
		return err
	}
	if err := r.history.Add(userMsg); err != nil {
		logger.Warn("Failed to persist user message: %v", err)
	}

	turnID := r.transcript.BeginAssistantTurn()

	events, err := r.client.StreamChat(ctx, api.FromTranscript(r.transcript.Messages()))
	if err != nil {
		r.transcript.Abort(turnID)
		if api.AuthRequired(err) {
			if url, aerr := r.client.AuthURL(ctx); aerr == nil {
				return fmt.Errorf("カレンダーの認証が必要です。ブラウザで開いてください: %s", url)
			}
		}
		return fmt.Errorf("chat request failed: %w", err)
	}

	for ev := range events {
		if err := r.transcript.ApplyEvent(turnID, ev); err != nil {
			logger.Warn("Dropping stream event: %v", err)
			continue
		}
		if ev.Kind == sse.ContentDelta {
			fmt.Fprint(os.Stdout, ev.Text)
		}
	}
	fmt.Fprintln(os.Stdout)

	// Channel closed without a completion sentinel means the transport was
	// cut; keep whatever partial content arrived.
	if r.transcript.AwaitingResponse() {
		r.transcript.Abort(turnID)
	}

	return r.saveAssistantTurn(turnID)
}

func (r *Runner) saveAssistantTurn(turnID string) error {
	for _, m := range r.transcript.Messages() {
		if m.ID == turnID {
			if err := r.history.Add(m); err != nil {
				return fmt.Errorf("failed to persist assistant message: %w", err)
			}
			return nil
		}
	}
	return nil
}
