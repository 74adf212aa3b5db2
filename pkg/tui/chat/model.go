package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/yotei-chat/yotei/pkg/api"
	"github.com/yotei-chat/yotei/pkg/chat"
	"github.com/yotei-chat/yotei/pkg/tui/theme"
)

type chatModel struct {
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	styles   *theme.Styles

	client     *api.Client
	transcript *chat.Transcript
	history    *chat.History

	// Streaming state for the single in-flight turn
	stream       chan streamEventMsg
	cancelStream context.CancelFunc
	currentTurn  string

	width       int
	height      int
	numEscPress int
	err         error
}

// NewChatModel creates the chat view bound to a backend client and an
// already-restored transcript.
func NewChatModel(client *api.Client, transcript *chat.Transcript, history *chat.History) chatModel {
	ta := textarea.New()
	ta.Focus()
	ta.Placeholder = "予定を入力してください..."
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetEnabled(true)

	styles := theme.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	return chatModel{
		viewport:   vp,
		textarea:   ta,
		spinner:    sp,
		styles:     styles,
		client:     client,
		transcript: transcript,
		history:    history,
	}
}
