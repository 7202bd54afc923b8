package console

import "charm.land/lipgloss/v2"

// Styles contains the lipgloss styles for the terminal transcript.
type Styles struct {
	Header    lipgloss.Style
	Prompt    lipgloss.Style
	Assistant lipgloss.Style
	Thinking  lipgloss.Style // dimmed italic for model reasoning
	Tool      lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Thinking:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")),
		Tool:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
