// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package appui composes the three Folio screens into one bubbletea
// program. The root model owns which screen is active and handles the
// navigation messages the screens emit; everything else routes to the
// active screen only. Because a switch replaces the screen model
// outright, results from commands started before the switch land in a
// screen that no longer recognizes them and are dropped, which is
// exactly the post-navigation discard the client wants.
package appui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/dashui"
	"github.com/folionotes/folio/lib/loginui"
	"github.com/folionotes/folio/lib/projectui"
	"github.com/folionotes/folio/lib/session"
	"github.com/folionotes/folio/lib/tui"
)

// screen identifies the active screen.
type screen int

const (
	screenLogin screen = iota
	screenDashboard
	screenProject
)

// Model is the root application model.
type Model struct {
	client  *api.Client
	session *session.Jar
	theme   tui.Theme
	logger  *slog.Logger

	screen    screen
	login     loginui.Model
	dashboard dashui.Model
	project   projectui.Model

	me api.Me

	// initialProjectID, when non-zero, opens that project directly
	// after authentication (the --project flag). Cleared after first
	// use so navigating back lands on the dashboard.
	initialProjectID int64

	width  int
	height int
}

// New creates the root model. Every run starts on the login screen;
// its session probe moves past it immediately when the saved session
// is still valid.
func New(client *api.Client, jar *session.Jar, theme tui.Theme, logger *slog.Logger, initialProjectID int64) Model {
	return Model{
		client:           client,
		session:          jar,
		theme:            theme,
		logger:           logger,
		screen:           screenLogin,
		login:            loginui.New(client, theme, logger),
		initialProjectID: initialProjectID,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return model.login.Init()
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		// Fall through to the active screen below.

	case loginui.AuthenticatedMsg:
		model.me = message.Me
		if projectID := model.initialProjectID; projectID != 0 {
			model.initialProjectID = 0
			return model.switchToProject(api.Project{ID: projectID})
		}
		return model.switchToDashboard(dashui.New(model.client, model.theme, model.logger, model.me))

	case dashui.OpenProjectMsg:
		return model.switchToProject(message.Project)

	case dashui.LoggedOutMsg:
		if err := model.session.Clear(); err != nil {
			model.logger.Warn("session clear failed", "error", err)
		}
		return model.switchToLogin()

	case dashui.SessionExpiredMsg:
		return model.switchToLogin()

	case projectui.SessionExpiredMsg:
		return model.switchToLogin()

	case projectui.BackToDashboardMsg:
		dashboard := dashui.New(model.client, model.theme, model.logger, model.me)
		if message.Notice != "" {
			dashboard = dashboard.WithNotice(message.Notice)
		}
		return model.switchToDashboard(dashboard)
	}

	var cmd tea.Cmd
	switch model.screen {
	case screenLogin:
		model.login, cmd = model.login.Update(message)
	case screenDashboard:
		model.dashboard, cmd = model.dashboard.Update(message)
	case screenProject:
		model.project, cmd = model.project.Update(message)
	}
	return model, cmd
}

// View implements tea.Model.
func (model Model) View() string {
	switch model.screen {
	case screenDashboard:
		return model.dashboard.View()
	case screenProject:
		return model.project.View()
	default:
		return model.login.View()
	}
}

func (model Model) switchToLogin() (tea.Model, tea.Cmd) {
	model.screen = screenLogin
	model.login = loginui.New(model.client, model.theme, model.logger)
	model.login, _ = model.login.Update(model.sizeMsg())
	return model, model.login.Init()
}

func (model Model) switchToDashboard(dashboard dashui.Model) (tea.Model, tea.Cmd) {
	model.screen = screenDashboard
	model.dashboard = dashboard
	model.dashboard, _ = model.dashboard.Update(model.sizeMsg())
	return model, model.dashboard.Init()
}

func (model Model) switchToProject(project api.Project) (tea.Model, tea.Cmd) {
	model.screen = screenProject
	model.project = projectui.New(model.client, model.theme, model.logger, project)
	model.project, _ = model.project.Update(model.sizeMsg())
	return model, model.project.Init()
}

// sizeMsg replays the current terminal size to a freshly created
// screen model, which would otherwise render at zero size until the
// next resize.
func (model Model) sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: model.width, Height: model.height}
}
