package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yotei-chat/yotei/pkg/chat"
)

func (m *chatModel) renderTranscript() string {
	availableWidth := m.viewport.Width
	if availableWidth <= 0 {
		availableWidth = 80 // Default fallback
	}

	var rendered []string
	for _, msg := range m.transcript.Render() {
		var style lipgloss.Style
		switch msg.Role {
		case chat.RoleUser:
			style = m.styles.UserMessage
		case chat.RoleAssistant:
			style = m.styles.AssistantMessage
		case chat.RoleSystem:
			style = m.styles.SystemMessage
		case chat.RoleError:
			style = m.styles.ErrorMessage
		default:
			style = m.styles.InfoMessage
		}
		style = style.Width(availableWidth).PaddingTop(1)

		content := msg.DisplayContent()
		if msg.Status == chat.StatusPending && content == "" {
			// Just-started assistant turn: loading indicator instead of
			// an empty bubble.
			content = m.spinner.View()
		}

		rendered = append(rendered, style.Render(content))
	}

	return strings.Join(rendered, "\n")
}

func (m *chatModel) updateViewportContent() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
