// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the dashboard screen: the grid of project
// tiles, the sidebar listing the same projects, server-side search,
// and project create/delete. It talks to the backend exclusively
// through asynchronous commands; the store is mutated only when their
// result messages arrive in Update.
package dashui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/store"
	"github.com/folionotes/folio/lib/tui"
)

// OpenProjectMsg asks the root model to switch to the project screen.
type OpenProjectMsg struct {
	Project api.Project
}

// LoggedOutMsg asks the root model to clear the saved session and
// return to the login screen.
type LoggedOutMsg struct{}

// SessionExpiredMsg means the backend answered 401. The root model
// switches to the login screen; the failed operation is never retried.
type SessionExpiredMsg struct{}

// Model is the dashboard screen.
type Model struct {
	client *api.Client
	theme  tui.Theme
	keys   KeyMap
	logger *slog.Logger
	store  *store.Store
	me     api.Me

	// cursor indexes the grid: 0..len(projects)-1 are project tiles,
	// len(projects) is the add tile.
	cursor  int
	loadSeq int
	loading bool

	notice      string
	noticeError bool

	// Search bar state. activeQuery is the last submitted query and
	// is what the current store contents answer.
	searchActive bool
	searchInput  []rune
	activeQuery  string

	prompt             *tui.Prompt
	confirm            *tui.Confirm
	confirmProjectID   int64
	confirmProjectName string

	width  int
	height int
}

// New creates a dashboard for the signed-in user. The project list
// loads on Init.
func New(client *api.Client, theme tui.Theme, logger *slog.Logger, me api.Me) Model {
	return Model{
		client:  client,
		theme:   theme,
		keys:    DefaultKeyMap,
		logger:  logger,
		store:   store.New(),
		me:      me,
		loading: true,
	}
}

// WithNotice returns the model with a status-line notice preset. Used
// when another screen hands control back with something to report
// (a project that turned out not to exist, for example).
func (model Model) WithNotice(text string) Model {
	model.setError(text)
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return loadProjects(model.client, model.loadSeq, "")
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case tea.KeyMsg:
		if model.prompt != nil {
			return model.handlePromptKeys(message)
		}
		if model.confirm != nil {
			return model.handleConfirmKeys(message)
		}
		if model.searchActive {
			return model.handleSearchKeys(message)
		}
		return model.handleGridKeys(message)

	case projectsLoadedMsg:
		if message.seq != model.loadSeq {
			// A newer load superseded this one.
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			// Silent-empty: the grid renders empty and the error
			// lives in the status line and log, nowhere else.
			model.store.ReplaceProjects(nil)
			model.setError(message.err.Error())
			model.logger.Warn("project load failed", "error", message.err)
			model.clampCursor()
			return model, nil
		}
		model.store.ReplaceProjects(message.projects)
		model.activeQuery = message.query
		model.clampCursor()

	case projectCreatedMsg:
		if message.err != nil {
			switch {
			case api.IsUnauthenticated(message.err):
				return model, sessionExpired()
			case message.err == api.ErrAmbiguousCreate:
				// The project may exist server-side; reconcile with a
				// full reload instead of guessing.
				model.logger.Warn("project create response unusable, reloading")
				return model, model.startLoad("")
			default:
				model.setError(message.err.Error())
			}
			return model, nil
		}
		model.store.PrependProject(message.project)
		model.cursor = 0
		model.setNotice(fmt.Sprintf("created %q", message.project.Name))

	case projectDeletedMsg:
		if message.err != nil {
			if api.IsUnauthenticated(message.err) {
				return model, sessionExpired()
			}
			model.setError(message.err.Error())
			return model, nil
		}
		model.store.RemoveProject(message.projectID)
		model.clampCursor()
		model.setNotice(fmt.Sprintf("deleted %q", message.name))

	case logoutDoneMsg:
		return model, func() tea.Msg { return LoggedOutMsg{} }
	}
	return model, nil
}

func sessionExpired() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}

// startLoad begins a project list fetch that supersedes any in-flight
// one.
func (model *Model) startLoad(query string) tea.Cmd {
	model.loadSeq++
	model.loading = true
	return loadProjects(model.client, model.loadSeq, query)
}

func (model *Model) setNotice(text string) {
	model.notice = text
	model.noticeError = false
}

func (model *Model) setError(text string) {
	model.notice = text
	model.noticeError = true
}

func (model *Model) clampCursor() {
	// The add tile keeps the cursor range non-empty even with no
	// projects.
	if model.cursor > len(model.store.Projects) {
		model.cursor = len(model.store.Projects)
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model Model) handlePromptKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch model.prompt.HandleKey(message) {
	case tui.PromptSubmit:
		name := model.prompt.Value()
		model.prompt = nil
		if name == "" {
			return model, nil
		}
		if model.store.HasProjectNamed(name) {
			model.setNotice(fmt.Sprintf("a project named %q already exists", name))
			return model, nil
		}
		return model, createProject(model.client, name)
	case tui.PromptCancel:
		model.prompt = nil
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch model.confirm.HandleKey(message) {
	case tui.ConfirmAccept:
		projectID, name := model.confirmProjectID, model.confirmProjectName
		model.confirm = nil
		return model, deleteProject(model.client, projectID, name)
	case tui.ConfirmCancel:
		model.confirm = nil
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEnter:
		model.searchActive = false
		query := strings.TrimSpace(string(model.searchInput))
		// A blank query is a plain reload of the full list.
		return model, model.startLoad(query)
	case tea.KeyEscape:
		model.searchActive = false
		model.searchInput = nil
	case tea.KeyBackspace:
		if len(model.searchInput) > 0 {
			model.searchInput = model.searchInput[:len(model.searchInput)-1]
		}
	case tea.KeyRunes, tea.KeySpace:
		model.searchInput = append(model.searchInput, message.Runes...)
	}
	return model, nil
}

func (model Model) handleGridKeys(message tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Search):
		model.searchActive = true
		model.searchInput = nil
		model.notice = ""

	case key.Matches(message, model.keys.Create):
		prompt := tui.NewPrompt("New project name", model.theme)
		model.prompt = &prompt
		model.notice = ""

	case key.Matches(message, model.keys.Delete):
		if project, ok := model.selectedProject(); ok {
			confirm := tui.NewConfirm(
				fmt.Sprintf("Delete project %q and everything in it?", project.Name),
				model.theme,
			)
			model.confirm = &confirm
			model.confirmProjectID = project.ID
			model.confirmProjectName = project.Name
		}

	case key.Matches(message, model.keys.Open):
		if project, ok := model.selectedProject(); ok {
			return model, func() tea.Msg { return OpenProjectMsg{Project: project} }
		}
		// The add tile behaves like pressing "a".
		prompt := tui.NewPrompt("New project name", model.theme)
		model.prompt = &prompt

	case key.Matches(message, model.keys.Logout):
		return model, logout(model.client)

	case key.Matches(message, model.keys.Left):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Right):
		if model.cursor < len(model.store.Projects) {
			model.cursor++
		}

	case key.Matches(message, model.keys.Up):
		model.cursor -= model.gridColumns()
		if model.cursor < 0 {
			model.cursor = 0
		}

	case key.Matches(message, model.keys.Down):
		model.cursor += model.gridColumns()
		if model.cursor > len(model.store.Projects) {
			model.cursor = len(model.store.Projects)
		}
	}
	return model, nil
}

// selectedProject returns the project under the cursor. The second
// return is false when the add tile is selected.
func (model Model) selectedProject() (api.Project, bool) {
	if model.cursor >= 0 && model.cursor < len(model.store.Projects) {
		return model.store.Projects[model.cursor], true
	}
	return api.Project{}, false
}
