package chat

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// calculateTextAreaHeight determines the visual height of the textarea
// based on its content and wrapping
func (m *chatModel) calculateTextAreaHeight() int {
	content := m.textarea.Value()
	if content == "" {
		return 1
	}

	textWidth := m.textarea.Width()
	if textWidth <= 0 {
		textWidth = m.width - 4
		if textWidth <= 0 {
			textWidth = 80 // fallback
		}
	}

	totalVisualLines := 0
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			totalVisualLines++
			continue
		}
		// runewidth handles double-width Japanese text correctly
		lineWidth := runewidth.StringWidth(line)
		visualLines := (lineWidth + textWidth - 1) / textWidth
		if visualLines < 1 {
			visualLines = 1
		}
		totalVisualLines += visualLines
	}

	maxHeight := 10
	if totalVisualLines > maxHeight {
		return maxHeight
	}
	if totalVisualLines < 1 {
		return 1
	}

	return totalVisualLines
}

// updateViewportHeight adjusts the viewport height based on textarea size
func (m *chatModel) updateViewportHeight() {
	if m.height > 0 {
		textAreaHeight := m.calculateTextAreaHeight()
		// Account for status line and spacing
		m.viewport.Height = m.height - textAreaHeight - 4
	}
}

// handleWindowResize updates all dimensions when window size changes
func (m *chatModel) handleWindowResize(width, height int) {
	m.width = width
	m.height = height

	m.textarea.SetWidth(width - 4)

	textAreaHeight := m.calculateTextAreaHeight()
	m.textarea.SetHeight(textAreaHeight)

	m.viewport.Width = width
	m.viewport.Height = height - textAreaHeight - 4
}
