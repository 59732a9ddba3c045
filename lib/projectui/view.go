// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/store"
	"github.com/folionotes/folio/lib/tui"
)

const (
	// cardTileWidth is the inner width of a card tile.
	cardTileWidth = 24
	// documentsPanelWidth is the fixed width of the right-hand panel.
	documentsPanelWidth = 42
	// addCardLabel and its busy variant label the card add tile.
	addCardLabel     = "+ new card"
	addCardBusyLabel = "adding..."
	// addDocumentLabel and its busy variant label the document add row.
	addDocumentLabel     = "+ new document"
	addDocumentBusyLabel = "adding..."
	// clusterLabel and its busy variant appear in the help line.
	clusterLabel     = "c cluster"
	clusterBusyLabel = "clustering..."
)

// gridColumns returns how many card tiles fit per row.
func (model Model) gridColumns() int {
	gridWidth := model.width - documentsPanelWidth - 1
	columns := gridWidth / (cardTileWidth + 4)
	if columns < 1 {
		columns = 1
	}
	return columns
}

// sizeViewport fits the document detail viewport to the panel.
func (model *Model) sizeViewport() {
	model.viewport.Width = documentsPanelWidth - 2
	height := model.height - 6
	if height < 3 {
		height = 3
	}
	model.viewport.Height = height
}

// ansiSafeTitle shortens free-form card text so it fits in a confirm
// message.
func ansiSafeTitle(text string) string {
	return ansi.Truncate(strings.ReplaceAll(text, "\n", " "), 30, "…")
}

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 {
		return ""
	}

	header := model.renderHeader()
	grid := model.renderCardGrid()
	documents := model.renderDocumentsPanel()

	dividerHeight := max(lipgloss.Height(grid), lipgloss.Height(documents))
	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", dividerHeight), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, divider, documents)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, model.renderStatus())

	if card, ok := model.openCard(); ok {
		view = tui.SpliceCentered(view, model.renderCardModal(card), model.width, model.height)
	}
	if model.prompt != nil {
		view = tui.SpliceCentered(view, model.prompt.Render(), model.width, model.height)
	}
	if model.confirm != nil {
		view = tui.SpliceCentered(view, model.confirm.Render(), model.width, model.height)
	}
	return view
}

// openCard resolves the card modal's card; false when closed or the
// card vanished from the store.
func (model Model) openCard() (api.Card, bool) {
	if model.openCardID == 0 {
		return api.Card{}, false
	}
	return model.store.CardByID(model.openCardID)
}

func (model Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	header := titleStyle.Render(model.project.Name)
	if model.project.Description != "" {
		header += faintStyle.Render(" · " + model.project.Description)
	}
	return header
}

func (model Model) renderCardGrid() string {
	if model.loading {
		return lipgloss.NewStyle().
			Foreground(model.theme.BusyText).
			Padding(1, 2).
			Render("loading...")
	}

	tileStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Width(cardTileWidth)
	selectedTileStyle := tileStyle.
		BorderForeground(model.theme.AccentForeground).
		Background(model.theme.SelectedBackground)
	categoryStyle := lipgloss.NewStyle().
		Foreground(model.theme.CategoryForeground).
		Bold(true)
	focusedStyle := categoryStyle.Foreground(model.theme.AccentForeground)

	columns := model.gridColumns()
	var sections []string
	if model.focus == focusCards {
		sections = append(sections, focusedStyle.Render("Cards"))
	} else {
		sections = append(sections, categoryStyle.Render("Cards"))
	}

	tileIndex := 0
	for _, group := range store.GroupCardsByCategory(model.store.Cards) {
		sections = append(sections, categoryStyle.Render(group.Category))
		var rendered []string
		var rows []string
		for _, card := range group.Cards {
			style := tileStyle
			if model.focus == focusCards && tileIndex == model.cardCursor {
				style = selectedTileStyle
			}
			rendered = append(rendered, style.Render(model.renderCardTile(card)))
			tileIndex++
			if len(rendered) == columns {
				rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
				rendered = nil
			}
		}
		if len(rendered) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		}
		sections = append(sections, strings.Join(rows, "\n"))
	}

	// The add tile renders outermost, after every group.
	addStyle := tileStyle.BorderForeground(model.theme.AddForeground)
	if model.focus == focusCards && tileIndex == model.cardCursor {
		addStyle = selectedTileStyle
	}
	label := addCardLabel
	if model.cardBusy {
		label = addCardBusyLabel
	}
	sections = append(sections, addStyle.Render(
		lipgloss.NewStyle().Foreground(model.theme.AddForeground).Render(label)))

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(sections, "\n"))
}

// renderCardTile renders one card's tile content: text, then tag
// labels. Cards without tags get no label row.
func (model Model) renderCardTile(card api.Card) string {
	textStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	tagStyle := lipgloss.NewStyle().Foreground(model.theme.TagForeground)

	content := textStyle.Render(ansi.Truncate(card.Text, cardTileWidth-2, "…"))
	if len(card.Tags) > 0 {
		labels := make([]string, len(card.Tags))
		for index, tag := range card.Tags {
			labels[index] = "#" + tag
		}
		content += "\n" + tagStyle.Render(ansi.Truncate(strings.Join(labels, " "), cardTileWidth-2, "…"))
	}
	return content
}

func (model Model) renderDocumentsPanel() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(model.theme.CategoryForeground).
		Bold(true).
		Width(documentsPanelWidth)
	if model.focus == focusDocuments {
		headerStyle = headerStyle.Foreground(model.theme.AccentForeground)
	}

	if model.docView == documentViewDetail {
		if document, ok := model.store.DocumentByID(model.detailDocID); ok {
			return model.renderDocumentDetail(document, headerStyle)
		}
		// Render-side fallback; Update heals the state on the next
		// message.
	}
	return model.renderDocumentList(headerStyle)
}

func (model Model) renderDocumentList(headerStyle lipgloss.Style) string {
	rowStyle := lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Width(documentsPanelWidth)
	selectedStyle := rowStyle.
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	addStyle := lipgloss.NewStyle().Foreground(model.theme.AddForeground)

	lines := []string{headerStyle.Render("Documents")}
	if len(model.store.Documents) == 0 {
		lines = append(lines, faintStyle.Render("  no documents yet"))
	}
	for index, document := range model.store.Documents {
		label := ansi.Truncate(document.Title, documentsPanelWidth-4, "…")
		if model.focus == focusDocuments && index == model.docCursor {
			lines = append(lines, selectedStyle.Render("▸ "+label))
		} else {
			lines = append(lines, rowStyle.Render("  "+label))
		}
	}

	label := addDocumentLabel
	if model.documentBusy {
		label = addDocumentBusyLabel
	}
	lines = append(lines, "", addStyle.Render("  "+label))
	return strings.Join(lines, "\n")
}

func (model Model) renderDocumentDetail(document api.Document, headerStyle lipgloss.Style) string {
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := []string{
		headerStyle.Render(ansi.Truncate(document.Title, documentsPanelWidth-2, "…")),
	}
	if document.UpdatedAt != "" {
		lines = append(lines, faintStyle.Render("updated "+document.UpdatedAt))
	}
	lines = append(lines, model.viewport.View())
	lines = append(lines, faintStyle.Render("esc back · j/k scroll"))
	return strings.Join(lines, "\n")
}

func (model Model) renderCardModal(card api.Card) []string {
	boxWidth := 50
	bodyStyle := lipgloss.NewStyle().
		Foreground(model.theme.ModalForeground).
		Background(model.theme.ModalBackground).
		Padding(0, 1).
		Width(boxWidth)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.ModalBorder)
	tagStyle := bodyStyle.Foreground(model.theme.TagForeground)
	linkStyle := bodyStyle.Foreground(model.theme.LinkForeground)
	faintStyle := bodyStyle.Foreground(model.theme.FaintText)

	sections := []string{
		bodyStyle.Render(ansi.Wrap(card.Text, boxWidth-2, " ,.;")),
	}
	if card.URL != "" {
		sections = append(sections, linkStyle.Render(card.URL))
	}
	if len(card.Tags) > 0 {
		labels := make([]string, len(card.Tags))
		for index, tag := range card.Tags {
			labels[index] = "#" + tag
		}
		sections = append(sections, tagStyle.Render(strings.Join(labels, " ")))
	}
	sections = append(sections, faintStyle.Render(fmt.Sprintf("%s · esc close", card.Category)))

	box := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return strings.Split(box, "\n")
}

func (model Model) renderStatus() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	cluster := helpStyle.Render(clusterLabel)
	if model.clusterBusy {
		cluster = lipgloss.NewStyle().Foreground(model.theme.BusyText).Render(clusterBusyLabel)
	}
	help := helpStyle.Render("tab pane · enter open · a new · x delete · ") +
		cluster +
		helpStyle.Render(" · esc back · q quit")

	if model.notice == "" {
		return help
	}
	noticeStyle := lipgloss.NewStyle().Foreground(model.theme.NoticeText)
	if model.noticeError {
		noticeStyle = noticeStyle.Foreground(model.theme.ErrorText)
	}
	return noticeStyle.Render(model.notice) + "\n" + help
}
