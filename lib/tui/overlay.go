// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpliceCentered draws overlay lines over the middle of a rendered
// view of the given dimensions. Folio's modals (prompt, confirm, open
// card) all render this way; there is no other overlay placement.
//
// Overlay rows replace the underlying cells outright. The cut is
// ANSI-aware on both sides, and each seam gets a reset so styling
// cannot bleed between the modal and the view beneath it.
func SpliceCentered(view string, overlayLines []string, screenWidth, screenHeight int) string {
	if len(overlayLines) == 0 {
		return view
	}

	overlayWidth := ansi.StringWidth(overlayLines[0])
	left := max((screenWidth-overlayWidth)/2, 0)
	top := max((screenHeight-len(overlayLines))/2, 0)

	rows := strings.Split(view, "\n")
	for offset, line := range overlayLines {
		row := top + offset
		if row >= len(rows) {
			break
		}
		rows[row] = overlayRow(rows[row], line, left, left+overlayWidth)
	}
	return strings.Join(rows, "\n")
}

// overlayRow rebuilds one screen row: the base row up to column from,
// then the overlay line, then the base row from column to onward.
func overlayRow(base, overlay string, from, to int) string {
	var row strings.Builder
	if from > 0 {
		row.WriteString(ansi.Truncate(base, from, ""))
	}
	row.WriteString("\x1b[0m")
	row.WriteString(overlay)
	row.WriteString("\x1b[0m")
	if to < ansi.StringWidth(base) {
		row.WriteString(ansi.TruncateLeft(base, to, ""))
	}
	return row.String()
}
