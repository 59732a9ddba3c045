// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for Folio's terminal screens. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected tile or row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status line notices.
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color
	BusyText   lipgloss.Color

	// Card tags (#label) and category section headers.
	TagForeground      lipgloss.Color
	CategoryForeground lipgloss.Color

	// The always-present "add" affordance tiles.
	AddForeground lipgloss.Color

	// Modal overlays.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
	ModalBorder     lipgloss.Color

	// Document content accents (headings, links, code).
	AccentForeground lipgloss.Color
	LinkForeground   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:  lipgloss.Color("203"),
	NoticeText: lipgloss.Color("179"),
	BusyText:   lipgloss.Color("208"),

	TagForeground:      lipgloss.Color("114"),
	CategoryForeground: lipgloss.Color("110"),

	AddForeground: lipgloss.Color("72"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("235"),
	ModalBorder:     lipgloss.Color("75"),

	AccentForeground: lipgloss.Color("81"),
	LinkForeground:   lipgloss.Color("75"),
}
