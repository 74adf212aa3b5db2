package chat

import "fmt"

func (m chatModel) View() string {
	return fmt.Sprintf(
		"%s%s%s\n%s",
		m.viewport.View(),
		"\n\n",
		m.textarea.View(),
		m.statusLine(),
	)
}

func (m chatModel) statusLine() string {
	if m.err != nil {
		return m.styles.ErrorMessage.Render(m.err.Error())
	}
	if m.transcript.AwaitingResponse() {
		return m.styles.StatusLine.Render("応答を待っています...")
	}
	return m.styles.StatusLine.Render("Enter: 送信  Alt+Enter: 改行  Ctrl+C: 終了")
}
