package chat

import (
	"fmt"

	"github.com/yotei-chat/yotei/pkg/logger"
	"github.com/yotei-chat/yotei/pkg/sse"
)

// Transcript owns the ordered message list for one conversation. It is the
// sole writer of its messages: the UI observes through Render and must not
// mutate what it receives. All mutation happens on one goroutine (the event
// loop that feeds it), so no locking is done here.
//
// Invariant: at most one message is in flight (pending or streaming) at any
// time, because only one assistant turn may be active.
type Transcript struct {
	messages  []Message
	malformed int
}

func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0)}
}

// SubmitUserTurn appends a completed user message. Returns ErrEmptyInput if
// the text is blank after trimming, leaving the transcript unchanged.
func (t *Transcript) SubmitUserTurn(text string) (Message, error) {
	msg := NewUserMessage(text)
	if msg.IsEmpty() {
		return Message{}, ErrEmptyInput
	}
	t.messages = append(t.messages, msg)
	return msg, nil
}

// BeginAssistantTurn opens a pending assistant message and returns its id.
// Only one assistant turn may be in flight; beginning a second one is a
// programming error, not a recoverable condition.
func (t *Transcript) BeginAssistantTurn() string {
	for _, m := range t.messages {
		if m.InFlight() {
			panic(fmt.Sprintf("chat: assistant turn %s still in flight", m.ID))
		}
	}
	msg := NewPendingAssistantMessage()
	t.messages = append(t.messages, msg)
	return msg.ID
}

// ApplyEvent folds one decoded stream event into the identified turn.
// Events arrive in stream order; a stale or unknown turn id fails without
// mutating the transcript.
func (t *Transcript) ApplyEvent(turnID string, ev sse.Event) error {
	idx := t.indexOf(turnID)
	if idx < 0 {
		return ErrUnknownTurn
	}
	msg := &t.messages[idx]

	if ev.Kind == sse.MalformedFrame {
		// Reported, not fatal: count for diagnostics and move on.
		t.malformed++
		logger.Warn("Skipping malformed frame on turn %s: %q", turnID, ev.Raw)
		return nil
	}

	if msg.Status == StatusComplete {
		return ErrStaleTurn
	}

	switch ev.Kind {
	case sse.RoleAnnounced:
		// No content change; idempotent once streaming.
		if msg.Status == StatusPending {
			msg.Status = StatusStreaming
		}
	case sse.ContentDelta:
		msg.Content += ev.Text
		if msg.Status == StatusPending {
			msg.Status = StatusStreaming
		}
	case sse.StreamEnded:
		// pending -> complete directly is legal: the stream ended before
		// any delta arrived and the message stays empty.
		msg.Status = StatusComplete
	}
	return nil
}

// Abort finalizes an in-flight turn with whatever partial content it holds.
// Called when the transport fails or is cancelled, so no message is left
// permanently streaming. Completing an already-complete turn is a no-op.
func (t *Transcript) Abort(turnID string) {
	idx := t.indexOf(turnID)
	if idx < 0 {
		return
	}
	t.messages[idx].Status = StatusComplete
}

// RecordError appends a completed error-role entry. Transport failures
// surface to the UI this way after the in-flight turn has been aborted.
func (t *Transcript) RecordError(text string) Message {
	msg := NewErrorMessage(text)
	t.messages = append(t.messages, msg)
	return msg
}

// Render returns the messages in conversation order for display. A pending
// message with no content is suppressed unless it is the most recent entry:
// a just-started assistant turn shows as a loading placeholder, while an
// earlier never-populated turn is hidden.
func (t *Transcript) Render() []Message {
	rendered := make([]Message, 0, len(t.messages))
	last := len(t.messages) - 1
	for i, m := range t.messages {
		if m.Status == StatusPending && m.Content == "" && i != last {
			continue
		}
		rendered = append(rendered, m)
	}
	return rendered
}

// Messages returns a copy of the full message list, including suppressed
// entries. Used for persistence and request building.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Restore seeds the transcript with previously persisted messages.
func (t *Transcript) Restore(msgs []Message) {
	t.messages = append(t.messages, msgs...)
}

// AwaitingResponse reports whether any message is still in flight, which
// drives the UI loading indicator.
func (t *Transcript) AwaitingResponse() bool {
	for _, m := range t.messages {
		if m.InFlight() {
			return true
		}
	}
	return false
}

// MalformedFrames returns the count of skipped malformed frames.
func (t *Transcript) MalformedFrames() int {
	return t.malformed
}

func (t *Transcript) indexOf(turnID string) int {
	for i := range t.messages {
		if t.messages[i].ID == turnID {
			return i
		}
	}
	return -1
}
