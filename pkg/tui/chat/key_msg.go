package chat

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/logger"
)

func handleKeyMsg(m chatModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		// Cancel an in-flight stream before quitting so the turn is
		// finalized by the close handler, not left streaming.
		if m.cancelStream != nil {
			m.cancelStream()
		}
		return m, tea.Quit

	case tea.KeyEscape:
		m.numEscPress++
		if m.numEscPress == 2 {
			m.textarea.Reset()
			m.numEscPress = 0
			return m, nil
		}

	case tea.KeyEnter:
		if msg.Alt {
			// Alt+Enter adds a newline
			break
		}
		return m.submit()
	}

	// Let the textarea handle the key
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	newHeight := m.calculateTextAreaHeight()
	if m.textarea.Height() != newHeight {
		m.textarea.SetHeight(newHeight)
		m.updateViewportHeight()
	}

	return m, cmd
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	// One assistant turn in flight at a time; queue nothing while waiting.
	if m.transcript.AwaitingResponse() {
		return m, nil
	}

	userMsg, err := m.transcript.SubmitUserTurn(m.textarea.Value())
	if err != nil {
		if errors.Is(err, chat.ErrEmptyInput) {
			// Blank input never reaches the transport.
			return m, nil
		}
		m.err = err
		return m, nil
	}

	if m.history != nil {
		if err := m.history.Add(userMsg); err != nil {
			logger.Warn("Failed to persist user message: %v", err)
		}
	}

	m.textarea.Reset()
	m.textarea.SetHeight(1)
	m.updateViewportHeight()

	turnID := m.transcript.BeginAssistantTurn()
	cmd := m.startStream(turnID)
	m.updateViewportContent()

	return m, cmd
}
