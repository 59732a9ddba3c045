// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmOutcome is the result of routing one key to a Confirm.
type ConfirmOutcome int

const (
	// ConfirmPending means the dialog is still open.
	ConfirmPending ConfirmOutcome = iota
	// ConfirmAccept means the user confirmed the action.
	ConfirmAccept
	// ConfirmCancel means the user declined.
	ConfirmCancel
)

// Confirm is a centered yes/no dialog. Destructive operations open one
// and only run after an explicit accept.
type Confirm struct {
	// Message describes the action being confirmed.
	Message string

	theme Theme
}

// NewConfirm creates a Confirm with the given message.
func NewConfirm(message string, theme Theme) Confirm {
	return Confirm{Message: message, theme: theme}
}

// HandleKey processes one key message. "y" or Enter accepts, "n" or
// Escape cancels, everything else leaves the dialog open.
func (c Confirm) HandleKey(message tea.KeyMsg) ConfirmOutcome {
	switch message.Type {
	case tea.KeyEnter:
		return ConfirmAccept
	case tea.KeyEscape:
		return ConfirmCancel
	case tea.KeyRunes:
		switch strings.ToLower(string(message.Runes)) {
		case "y":
			return ConfirmAccept
		case "n":
			return ConfirmCancel
		}
	}
	return ConfirmPending
}

// confirmWidth is the inner width of the dialog box.
const confirmWidth = 44

// Render returns the dialog box as overlay lines for splicing.
func (c Confirm) Render() []string {
	bodyStyle := lipgloss.NewStyle().
		Foreground(c.theme.ModalForeground).
		Background(c.theme.ModalBackground).
		Padding(0, 1).
		Width(confirmWidth)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.ModalBorder)
	help := lipgloss.NewStyle().
		Foreground(c.theme.HelpText).
		Background(c.theme.ModalBackground).
		Padding(0, 1).
		Width(confirmWidth).
		Render("y/Enter confirm · n/Esc cancel")

	box := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		bodyStyle.Render(c.Message),
		help,
	))
	return strings.Split(box, "\n")
}
