// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PromptOutcome is the result of routing one key to a Prompt.
type PromptOutcome int

const (
	// PromptPending means the prompt is still open.
	PromptPending PromptOutcome = iota
	// PromptSubmit means the user pressed Enter. Read Value().
	PromptSubmit
	// PromptCancel means the user pressed Escape.
	PromptCancel
)

// Prompt is a centered single-line text input modal. The owning screen
// model routes all keyboard input into HandleKey while the prompt is
// open and acts on the returned outcome.
type Prompt struct {
	// Title labels the prompt, e.g. "New folder name".
	Title string

	input  []rune
	cursor int
	theme  Theme
}

// NewPrompt creates an empty, focused Prompt.
func NewPrompt(title string, theme Theme) Prompt {
	return Prompt{Title: title, theme: theme}
}

// Value returns the entered text, trimmed.
func (p Prompt) Value() string {
	return strings.TrimSpace(string(p.input))
}

// HandleKey processes one key message.
func (p *Prompt) HandleKey(message tea.KeyMsg) PromptOutcome {
	switch message.Type {
	case tea.KeyEnter:
		return PromptSubmit

	case tea.KeyEscape:
		return PromptCancel

	case tea.KeyBackspace:
		if p.cursor > 0 {
			p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
			p.cursor--
		}

	case tea.KeyLeft:
		if p.cursor > 0 {
			p.cursor--
		}

	case tea.KeyRight:
		if p.cursor < len(p.input) {
			p.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		p.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		p.cursor = len(p.input)

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			p.input = append(p.input[:p.cursor], append([]rune{character}, p.input[p.cursor:]...)...)
			p.cursor++
		}
	}
	return PromptPending
}

// promptWidth is the inner width of the prompt box.
const promptWidth = 44

// Render returns the prompt box as overlay lines for splicing.
func (p Prompt) Render() []string {
	boxStyle := lipgloss.NewStyle().
		Foreground(p.theme.ModalForeground).
		Background(p.theme.ModalBackground).
		Padding(0, 1).
		Width(promptWidth)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.ModalBorder)
	titleStyle := boxStyle.
		Foreground(p.theme.HeaderForeground).
		Bold(true)

	// Input line with a visible cursor cell.
	before := string(p.input[:p.cursor])
	cursorCell := " "
	after := ""
	if p.cursor < len(p.input) {
		cursorCell = string(p.input[p.cursor])
		after = string(p.input[p.cursor+1:])
	}
	inputLine := before +
		lipgloss.NewStyle().Reverse(true).Render(cursorCell) +
		after

	help := lipgloss.NewStyle().
		Foreground(p.theme.HelpText).
		Background(p.theme.ModalBackground).
		Padding(0, 1).
		Width(promptWidth).
		Render("Enter submit · Esc cancel")

	box := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(p.Title),
		boxStyle.Render(inputLine),
		help,
	))
	return strings.Split(box, "\n")
}
