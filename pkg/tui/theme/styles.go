package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Base16 palette with warm earth tones.
var (
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, muted text
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground

	ColorRed    = lipgloss.Color("#d95f5f") // Errors
	ColorOrange = lipgloss.Color("#eb8755") // Focus, prompts
	ColorYellow = lipgloss.Color("#f5b761") // Warnings
	ColorGreen  = lipgloss.Color("#93b56b") // User messages
	ColorCyan   = lipgloss.Color("#61afaf") // Info
	ColorBlue   = lipgloss.Color("#6b93b5") // Assistant messages
	ColorPurple = lipgloss.Color("#976bb5") // System messages

	ColorFocus = ColorOrange
	ColorMuted = ColorBase03
	ColorError = ColorRed
)

// Styles defines the Lipgloss styles for the TUI components
type Styles struct {
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	SystemMessage    lipgloss.Style
	ErrorMessage     lipgloss.Style
	InfoMessage      lipgloss.Style

	InputPrompt lipgloss.Style
	StatusLine  lipgloss.Style
	Spinner     lipgloss.Style

	Focused   lipgloss.Style
	Unfocused lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles
func DefaultStyles() *Styles {
	return &Styles{
		UserMessage: lipgloss.NewStyle().
			Foreground(ColorGreen),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(ColorBlue),

		SystemMessage: lipgloss.NewStyle().
			Foreground(ColorPurple),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		InfoMessage: lipgloss.NewStyle().
			Foreground(ColorCyan),

		InputPrompt: lipgloss.NewStyle().
			Foreground(ColorFocus).
			Bold(true),

		StatusLine: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Spinner: lipgloss.NewStyle().
			Foreground(ColorOrange),

		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorFocus),

		Unfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBase03),
	}
}
