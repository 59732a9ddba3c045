// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package projectui implements the per-project screen: the card grid
// grouped by category, the documents panel with its list and detail
// views, and the card/document/cluster mutations. Everything network-
// bound runs as a command; the store changes only when result messages
// arrive in Update.
package projectui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/store"
	"github.com/folionotes/folio/lib/tui"
)

// BackToDashboardMsg asks the root model to return to the dashboard.
// Notice, when non-empty, is shown in the dashboard status line (used
// when the project itself turned out not to exist).
type BackToDashboardMsg struct {
	Notice string
}

// SessionExpiredMsg means the backend answered 401. The root model
// switches to the login screen; the failed operation is never retried.
type SessionExpiredMsg struct{}

// focusRegion identifies which pane has keyboard focus.
type focusRegion int

const (
	focusCards focusRegion = iota
	focusDocuments
)

// documentView is the documents panel's two-state machine.
type documentView int

const (
	documentViewList documentView = iota
	documentViewDetail
)

// promptKind says what an open prompt modal will create.
type promptKind int

const (
	promptNone promptKind = iota
	promptCard
	promptDocument
)

// confirmKind says what an accepted confirm dialog will do.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteCard
	confirmDeleteDocument
	confirmCluster
)

// Model is the project screen.
type Model struct {
	client *api.Client
	theme  tui.Theme
	keys   KeyMap
	logger *slog.Logger
	store  *store.Store

	project api.Project
	loading bool
	focus   focusRegion

	// Card grid state. cardCursor indexes the flattened grouped card
	// order; len(cards) is the add tile. openCardID is the card shown
	// in the card modal, 0 when closed.
	cardCursor int
	openCardID int64

	// Documents panel state.
	docView     documentView
	docCursor   int
	detailDocID int64
	viewport    viewport.Model

	// One outstanding mutation per control.
	cardBusy     bool
	documentBusy bool
	clusterBusy  bool

	prompt      *tui.Prompt
	promptFor   promptKind
	confirm     *tui.Confirm
	confirmFor  confirmKind
	confirmID   int64
	confirmName string

	notice      string
	noticeError bool

	width  int
	height int
}

// New creates a project screen. The project argument may carry only
// the ID (when opened via a flag); the load fills in the rest.
func New(client *api.Client, theme tui.Theme, logger *slog.Logger, project api.Project) Model {
	return Model{
		client:  client,
		theme:   theme,
		keys:    DefaultKeyMap,
		logger:  logger,
		store:   store.New(),
		project: project,
		loading: true,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return loadAll(model.client, model.project.ID)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.sizeViewport()

	case tea.KeyMsg:
		if model.prompt != nil {
			return model.handlePromptKeys(message)
		}
		if model.confirm != nil {
			return model.handleConfirmKeys(message)
		}
		if model.openCardID != 0 {
			return model.handleCardModalKeys(message)
		}
		return model.handleScreenKeys(message)

	case loadedMsg:
		return model.applyLoaded(message)

	case cardsReloadedMsg:
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			model.setError(message.err.Error())
			return model, nil
		}
		model.store.ReplaceCards(message.cards)
		model.clampCardCursor()
		model.setNotice("cards re-clustered")

	case cardRefreshedMsg:
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			// The modal keeps rendering the list copy; the refresh
			// is opportunistic.
			model.logger.Debug("card refresh failed", "error", message.err)
			return model, nil
		}
		model.store.UpdateCard(message.card)

	case cardCreatedMsg:
		model.cardBusy = false
		if message.err != nil {
			switch {
			case api.IsUnauthenticated(message.err):
				return model, sessionExpired()
			case message.err == api.ErrAmbiguousCreate:
				model.logger.Warn("card create response unusable, reloading cards")
				return model, reloadCards(model.client, model.project.ID)
			default:
				model.setError(message.err.Error())
			}
			return model, nil
		}
		model.store.AppendCard(message.card)

	case cardDeletedMsg:
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			model.setError(message.err.Error())
			return model, nil
		}
		model.store.RemoveCard(message.cardID)
		if model.openCardID == message.cardID {
			model.openCardID = 0
		}
		model.clampCardCursor()

	case clusterDoneMsg:
		model.clusterBusy = false
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			model.setError(message.err.Error())
			return model, nil
		}
		// Categories changed server-side; never patch locally.
		return model, reloadCards(model.client, model.project.ID)

	case documentCreatedMsg:
		model.documentBusy = false
		if message.err != nil {
			switch {
			case api.IsUnauthenticated(message.err):
				return model, sessionExpired()
			case message.err == api.ErrAmbiguousCreate:
				model.logger.Warn("document create response unusable, reloading")
				return model, loadAll(model.client, model.project.ID)
			default:
				model.setError(message.err.Error())
			}
			return model, nil
		}
		model.store.PrependDocument(message.document)
		model.docCursor = 0
		model.enterDocumentDetail(message.document.ID)

	case documentDeletedMsg:
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			model.setError(message.err.Error())
			return model, nil
		}
		model.store.RemoveDocument(message.documentID)
		model.clampDocCursor()
		model.healDocumentView()
		model.setNotice(fmt.Sprintf("deleted %q", message.title))
	}
	return model, nil
}

func sessionExpired() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}

// applyLoaded applies the three fault-isolated fetch results.
func (model Model) applyLoaded(message loadedMsg) (Model, tea.Cmd) {
	model.loading = false

	for _, err := range []error{message.projectErr, message.cardsErr, message.documentsErr} {
		if err != nil && api.IsUnauthenticated(err) {
			return model, sessionExpired()
		}
	}

	// A project that no longer exists is the one hard failure on this
	// screen: there is nothing to show, so hand back to the dashboard.
	if isNotFound(message.projectErr) {
		notice := fmt.Sprintf("project %d not found", model.project.ID)
		return model, func() tea.Msg { return BackToDashboardMsg{Notice: notice} }
	}

	switch {
	case message.projectErr != nil:
		if model.project.Name == "" {
			model.project.Name = fmt.Sprintf("project %d", model.project.ID)
		}
		model.logger.Warn("project fetch failed", "project", model.project.ID, "error", message.projectErr)
	default:
		model.project = message.project
	}

	if message.cardsErr != nil {
		model.logger.Warn("card fetch failed", "project", model.project.ID, "error", message.cardsErr)
	}
	model.store.ReplaceCards(message.cards)

	if message.documentsErr != nil {
		model.logger.Warn("document fetch failed", "project", model.project.ID, "error", message.documentsErr)
	}
	model.store.ReplaceDocuments(message.documents)

	model.clampCardCursor()
	model.clampDocCursor()
	model.healDocumentView()
	return model, nil
}

func (model *Model) setNotice(text string) {
	model.notice = text
	model.noticeError = false
}

func (model *Model) setError(text string) {
	model.notice = text
	model.noticeError = true
}

// orderedCards returns the cards in grouped display order, which is
// what cardCursor indexes.
func (model Model) orderedCards() []api.Card {
	var ordered []api.Card
	for _, group := range store.GroupCardsByCategory(model.store.Cards) {
		ordered = append(ordered, group.Cards...)
	}
	return ordered
}

// selectedCard returns the card under the cursor; false when the add
// tile is selected.
func (model Model) selectedCard() (api.Card, bool) {
	ordered := model.orderedCards()
	if model.cardCursor >= 0 && model.cardCursor < len(ordered) {
		return ordered[model.cardCursor], true
	}
	return api.Card{}, false
}

func (model *Model) clampCardCursor() {
	if model.cardCursor > len(model.store.Cards) {
		model.cardCursor = len(model.store.Cards)
	}
	if model.cardCursor < 0 {
		model.cardCursor = 0
	}
}

func (model *Model) clampDocCursor() {
	if model.docCursor >= len(model.store.Documents) {
		model.docCursor = len(model.store.Documents) - 1
	}
	if model.docCursor < 0 {
		model.docCursor = 0
	}
}

// enterDocumentDetail switches the documents panel to the detail view
// for the given document and fills the viewport with rendered content.
func (model *Model) enterDocumentDetail(documentID int64) {
	document, ok := model.store.DocumentByID(documentID)
	if !ok {
		model.logger.Warn("document vanished before open", "document", documentID)
		model.docView = documentViewList
		return
	}
	model.docView = documentViewDetail
	model.detailDocID = documentID
	model.focus = focusDocuments
	model.sizeViewport()
	model.viewport.SetContent(renderDocumentContent(document.Content, model.theme, model.viewport.Width))
	model.viewport.GotoTop()
}

// healDocumentView drops out of a detail view whose document no
// longer exists in the store. The user sees the list again, never an
// error.
func (model *Model) healDocumentView() {
	if model.docView != documentViewDetail {
		return
	}
	if _, ok := model.store.DocumentByID(model.detailDocID); !ok {
		model.logger.Info("detail document missing, returning to list", "document", model.detailDocID)
		model.docView = documentViewList
		model.detailDocID = 0
	}
}

func (model Model) handlePromptKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch model.prompt.HandleKey(message) {
	case tui.PromptSubmit:
		value := model.prompt.Value()
		kind := model.promptFor
		model.prompt = nil
		model.promptFor = promptNone
		if value == "" {
			return model, nil
		}
		switch kind {
		case promptCard:
			if model.cardBusy {
				return model, nil
			}
			model.cardBusy = true
			return model, createCard(model.client, model.project.ID, value)
		case promptDocument:
			if model.documentBusy {
				return model, nil
			}
			model.documentBusy = true
			return model, createDocument(model.client, model.project.ID, value)
		}
	case tui.PromptCancel:
		model.prompt = nil
		model.promptFor = promptNone
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch model.confirm.HandleKey(message) {
	case tui.ConfirmAccept:
		kind, targetID, targetName := model.confirmFor, model.confirmID, model.confirmName
		model.confirm = nil
		model.confirmFor = confirmNone
		switch kind {
		case confirmDeleteCard:
			return model, deleteCard(model.client, targetID)
		case confirmDeleteDocument:
			return model, deleteDocument(model.client, targetID, targetName)
		case confirmCluster:
			model.clusterBusy = true
			return model, clusterCards(model.client, model.project.ID)
		}
	case tui.ConfirmCancel:
		model.confirm = nil
		model.confirmFor = confirmNone
	}
	return model, nil
}

func (model Model) handleCardModalKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Open):
		model.openCardID = 0
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	}
	return model, nil
}

func (model Model) handleScreenKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == focusCards {
			model.focus = focusDocuments
		} else {
			model.focus = focusCards
		}

	case key.Matches(message, model.keys.Back):
		if model.focus == focusDocuments && model.docView == documentViewDetail {
			model.docView = documentViewList
			model.detailDocID = 0
			return model, nil
		}
		return model, func() tea.Msg { return BackToDashboardMsg{} }

	case key.Matches(message, model.keys.Cluster):
		if model.clusterBusy {
			return model, nil
		}
		confirm := tui.NewConfirm(
			"Re-cluster all cards? Existing categorization is discarded.",
			model.theme,
		)
		model.confirm = &confirm
		model.confirmFor = confirmCluster

	case key.Matches(message, model.keys.Create):
		if model.focus == focusCards {
			if model.cardBusy {
				return model, nil
			}
			prompt := tui.NewPrompt("New card text", model.theme)
			model.prompt = &prompt
			model.promptFor = promptCard
		} else {
			if model.documentBusy {
				return model, nil
			}
			prompt := tui.NewPrompt("New document title", model.theme)
			model.prompt = &prompt
			model.promptFor = promptDocument
		}

	case key.Matches(message, model.keys.Delete):
		if model.focus == focusCards {
			if card, ok := model.selectedCard(); ok {
				text := ansiSafeTitle(card.Text)
				confirm := tui.NewConfirm(fmt.Sprintf("Delete card %q?", text), model.theme)
				model.confirm = &confirm
				model.confirmFor = confirmDeleteCard
				model.confirmID = card.ID
			}
		} else if document, ok := model.selectedDocument(); ok {
			confirm := tui.NewConfirm(fmt.Sprintf("Delete document %q?", document.Title), model.theme)
			model.confirm = &confirm
			model.confirmFor = confirmDeleteDocument
			model.confirmID = document.ID
			model.confirmName = document.Title
		}

	case key.Matches(message, model.keys.Open):
		if model.focus == focusCards {
			if card, ok := model.selectedCard(); ok {
				model.openCardID = card.ID
				return model, refreshCard(model.client, card.ID)
			} else if !model.cardBusy {
				prompt := tui.NewPrompt("New card text", model.theme)
				model.prompt = &prompt
				model.promptFor = promptCard
			}
		} else if model.docView == documentViewList {
			if document, ok := model.selectedDocument(); ok {
				model.enterDocumentDetail(document.ID)
			}
		}

	default:
		return model.handleMovement(message)
	}
	return model, nil
}

func (model Model) handleMovement(message tea.KeyMsg) (Model, tea.Cmd) {
	if model.focus == focusCards {
		switch {
		case key.Matches(message, model.keys.Left):
			if model.cardCursor > 0 {
				model.cardCursor--
			}
		case key.Matches(message, model.keys.Right):
			if model.cardCursor < len(model.store.Cards) {
				model.cardCursor++
			}
		case key.Matches(message, model.keys.Up):
			model.cardCursor -= model.gridColumns()
			if model.cardCursor < 0 {
				model.cardCursor = 0
			}
		case key.Matches(message, model.keys.Down):
			model.cardCursor += model.gridColumns()
			if model.cardCursor > len(model.store.Cards) {
				model.cardCursor = len(model.store.Cards)
			}
		}
		return model, nil
	}

	if model.docView == documentViewDetail {
		var cmd tea.Cmd
		model.viewport, cmd = model.viewport.Update(message)
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if model.docCursor > 0 {
			model.docCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.docCursor < len(model.store.Documents)-1 {
			model.docCursor++
		}
	}
	return model, nil
}

// selectedDocument returns the document under the list cursor.
func (model Model) selectedDocument() (api.Document, bool) {
	if model.docCursor >= 0 && model.docCursor < len(model.store.Documents) {
		return model.store.Documents[model.docCursor], true
	}
	return api.Document{}, false
}
