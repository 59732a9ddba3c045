// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the project screen key bindings. Most bindings are
// focus-sensitive: they act on the card grid or the document panel
// depending on which has focus.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	FocusToggle key.Binding // Switch between the card grid and documents.
	Open        key.Binding // Open card modal / document detail.
	Create      key.Binding // New card or document, per focus.
	Delete      key.Binding
	Cluster     key.Binding
	Back        key.Binding // Close modal, leave detail, or go to dashboard.
	Quit        key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Create: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Cluster: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cluster"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
