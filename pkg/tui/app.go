package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yotei-chat/yotei/pkg/api"
	chatpkg "github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/config"
	"github.com/yotei-chat/yotei/pkg/tui/chat"
)

// StartApp wires the transcript, history, and backend client into the chat
// view and runs the bubbletea program.
func StartApp(continueHistory bool) error {
	settings := config.Get()
	client := api.NewClientWithTimeout(settings.Server.URL, settings.ServerTimeout())

	history, err := chatpkg.NewHistory(config.BuildSettingsPath(settings.Chat.HistoryPath))
	if err != nil {
		return fmt.Errorf("failed to create history: %w", err)
	}
	if !continueHistory {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}

	transcript := chatpkg.NewTranscript()
	transcript.Restore(history.GetMessages())

	model := chat.NewChatModel(client, transcript, history)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	return nil
}
