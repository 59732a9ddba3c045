// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/folionotes/folio/lib/tui"
)

const (
	// tileWidth is the inner width of a project tile.
	tileWidth = 22
	// sidebarWidth is the fixed width of the project sidebar.
	sidebarWidth = 24
	// addTileLabel is the always-present create affordance.
	addTileLabel = "+ new project"
)

// gridColumns returns how many tiles fit per row at the current
// terminal width.
func (model Model) gridColumns() int {
	gridWidth := model.width - sidebarWidth - 1
	columns := gridWidth / (tileWidth + 4)
	if columns < 1 {
		columns = 1
	}
	return columns
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 {
		return ""
	}

	header := model.renderHeader()
	sidebar := model.renderSidebar()
	grid := model.renderGrid()

	dividerHeight := max(lipgloss.Height(sidebar), lipgloss.Height(grid))
	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", dividerHeight), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, grid)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, model.renderStatus())

	if model.prompt != nil {
		view = tui.SpliceCentered(view, model.prompt.Render(), model.width, model.height)
	}
	if model.confirm != nil {
		view = tui.SpliceCentered(view, model.confirm.Render(), model.width, model.height)
	}
	return view
}

func (model Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := titleStyle.Render("Folio") + faintStyle.Render(" · "+model.me.DisplayName())

	if model.searchActive {
		searchStyle := lipgloss.NewStyle().Foreground(model.theme.AccentForeground)
		return left + "  " + searchStyle.Render("search: "+string(model.searchInput)+"▌")
	}
	if model.activeQuery != "" {
		return left + "  " + faintStyle.Render(fmt.Sprintf("matching %q", model.activeQuery))
	}
	return left
}

func (model Model) renderSidebar() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(model.theme.CategoryForeground).
		Bold(true).
		Width(sidebarWidth)
	rowStyle := lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Width(sidebarWidth)
	selectedStyle := rowStyle.
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)

	lines := []string{headerStyle.Render("Projects")}
	for index, project := range model.store.Projects {
		label := ansi.Truncate(project.Name, sidebarWidth-2, "…")
		if index == model.cursor {
			lines = append(lines, selectedStyle.Render("▸ "+label))
		} else {
			lines = append(lines, rowStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderGrid() string {
	if model.loading {
		return lipgloss.NewStyle().
			Foreground(model.theme.BusyText).
			Padding(1, 2).
			Render("loading projects...")
	}

	tileStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Width(tileWidth)
	selectedTileStyle := tileStyle.
		BorderForeground(model.theme.AccentForeground).
		Background(model.theme.SelectedBackground)
	nameStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	addStyle := lipgloss.NewStyle().Foreground(model.theme.AddForeground)

	var tiles []string
	for _, project := range model.store.Projects {
		content := nameStyle.Render(ansi.Truncate(project.Name, tileWidth-2, "…")) + "\n" +
			descStyle.Render(ansi.Truncate(project.Description, tileWidth-2, "…"))
		tiles = append(tiles, content)
	}
	tiles = append(tiles, addStyle.Render(addTileLabel)+"\n")

	columns := model.gridColumns()
	var rows []string
	for start := 0; start < len(tiles); start += columns {
		end := min(start+columns, len(tiles))
		var rendered []string
		for index := start; index < end; index++ {
			style := tileStyle
			if index == model.cursor {
				style = selectedTileStyle
			}
			rendered = append(rendered, style.Render(tiles[index]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(rows, "\n"))
}

func (model Model) renderStatus() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	help := helpStyle.Render("enter open · a new · x delete · / search · L log out · q quit")

	if model.notice == "" {
		return help
	}
	noticeStyle := lipgloss.NewStyle().Foreground(model.theme.NoticeText)
	if model.noticeError {
		noticeStyle = noticeStyle.Foreground(model.theme.ErrorText)
	}
	return noticeStyle.Render(model.notice) + "\n" + help
}
