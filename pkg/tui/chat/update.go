package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yotei-chat/yotei/pkg/api"
	"github.com/yotei-chat/yotei/pkg/logger"
	"github.com/yotei-chat/yotei/pkg/sse"
)

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg.Width, msg.Height)
		m.updateViewportContent()

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case streamEventMsg:
		return m.handleStreamEvent(msg)

	case streamClosedMsg:
		return m.handleStreamClosed()

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.transcript.AwaitingResponse() {
			m.updateViewportContent()
			cmds = append(cmds, spinCmd)
		}

	default:
		var tiCmd tea.Cmd
		m.textarea, tiCmd = m.textarea.Update(msg)
		cmds = append(cmds, tiCmd)

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// startStream begins the assistant turn's network request. The goroutine
// only forwards events; folding them into the transcript stays on the
// update loop.
func (m *chatModel) startStream(turnID string) tea.Cmd {
	ch := make(chan streamEventMsg, 100)
	ctx, cancel := context.WithCancel(context.Background())

	m.stream = ch
	m.cancelStream = cancel
	m.currentTurn = turnID

	messages := api.FromTranscript(m.transcript.Messages())

	go func() {
		defer close(ch)

		events, err := m.client.StreamChat(ctx, messages)
		if err != nil {
			msg := streamEventMsg{TurnID: turnID, Err: err}
			if api.AuthRequired(err) {
				if url, aerr := m.client.AuthURL(ctx); aerr == nil {
					msg.AuthHint = url
				}
			}
			ch <- msg
			return
		}
		for ev := range events {
			ch <- streamEventMsg{TurnID: turnID, Event: ev}
		}
	}()

	return tea.Batch(waitForEvent(ch), m.spinner.Tick)
}

func waitForEvent(ch <-chan streamEventMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return msg
	}
}

func (m chatModel) handleStreamEvent(msg streamEventMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Terminate the turn: finalize with partial content, surface the
		// failure, clear the loading state.
		m.transcript.Abort(msg.TurnID)
		text := "サーバーに接続できませんでした。もう一度お試しください。"
		if msg.AuthHint != "" {
			text = "カレンダーの認証が必要です。ブラウザで開いてください: " + msg.AuthHint
		}
		m.transcript.RecordError(text)
		logger.Error("Chat request failed: %v", msg.Err)
		m.persistTurn(msg.TurnID)
		m.endStream()
		m.updateViewportContent()
		return m, nil
	}

	if err := m.transcript.ApplyEvent(msg.TurnID, msg.Event); err != nil {
		logger.Warn("Dropping stream event: %v", err)
	}

	if msg.Event.Kind == sse.StreamEnded {
		m.persistTurn(msg.TurnID)
		m.endStream()
		m.updateViewportContent()
		return m, nil
	}

	m.updateViewportContent()
	return m, waitForEvent(m.stream)
}

func (m chatModel) handleStreamClosed() (tea.Model, tea.Cmd) {
	// Closed without a completion sentinel: the transport was cut.
	// Finalize with whatever partial content arrived.
	if m.currentTurn != "" && m.transcript.AwaitingResponse() {
		m.transcript.Abort(m.currentTurn)
		m.persistTurn(m.currentTurn)
	}
	m.endStream()
	m.updateViewportContent()
	return m, nil
}

func (m *chatModel) endStream() {
	if m.cancelStream != nil {
		m.cancelStream()
	}
	m.cancelStream = nil
	m.stream = nil
	m.currentTurn = ""
}

func (m *chatModel) persistTurn(turnID string) {
	if m.history == nil {
		return
	}
	for _, message := range m.transcript.Messages() {
		if message.ID == turnID {
			if err := m.history.Add(message); err != nil {
				logger.Warn("Failed to persist assistant message: %v", err)
			}
			return
		}
	}
}
