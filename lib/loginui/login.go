// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package loginui implements the sign-in screen. Folio cannot collect
// credentials itself: authentication happens in the user's browser via
// the backend's GitHub OAuth flow, and the resulting session cookie is
// picked up by re-checking /api/me. The screen therefore has exactly
// two jobs: hand the login URL to the user (and open it in a browser
// on request) and poll the session until the backend recognizes it.
package loginui

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/tui"
)

// AuthenticatedMsg is emitted to the root model when the backend
// recognizes the session. Carries the signed-in user for display in
// the dashboard chrome.
type AuthenticatedMsg struct {
	Me api.Me
}

// sessionCheckedMsg is the result of an asynchronous /api/me probe.
type sessionCheckedMsg struct {
	me  api.Me
	err error
}

// browserOpenedMsg reports whether launching the system browser
// succeeded. Failure is not fatal: the URL stays on screen for manual
// copying.
type browserOpenedMsg struct {
	err error
}

// state is the login screen's phase.
type state int

const (
	// stateChecking means a session probe is in flight.
	stateChecking state = iota
	// stateIdle means the probe came back unauthenticated and the
	// screen is waiting for the user to sign in and re-check.
	stateIdle
)

// checkTimeout bounds a single session probe.
const checkTimeout = 10 * time.Second

// KeyMap defines the login screen key bindings.
type KeyMap struct {
	OpenBrowser key.Binding
	Recheck     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	OpenBrowser: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open browser"),
	),
	Recheck: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-check session"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the login screen.
type Model struct {
	client *api.Client
	theme  tui.Theme
	keys   KeyMap
	logger *slog.Logger

	state  state
	notice string

	width  int
	height int
}

// New creates a login screen that probes the session on Init.
func New(client *api.Client, theme tui.Theme, logger *slog.Logger) Model {
	return Model{
		client: client,
		theme:  theme,
		keys:   DefaultKeyMap,
		logger: logger,
		state:  stateChecking,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return checkSession(model.client)
}

// checkSession probes /api/me in the background.
func checkSession(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		me, err := client.Me(ctx)
		return sessionCheckedMsg{me: me, err: err}
	}
}

// openBrowser launches the platform browser on the login URL.
func openBrowser(loginURL string) tea.Cmd {
	return func() tea.Msg {
		var command *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			command = exec.Command("open", loginURL)
		case "windows":
			command = exec.Command("rundll32", "url.dll,FileProtocolHandler", loginURL)
		default:
			command = exec.Command("xdg-open", loginURL)
		}
		return browserOpenedMsg{err: command.Start()}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.OpenBrowser):
			if model.state == stateIdle {
				return model, openBrowser(model.client.LoginURL())
			}

		case key.Matches(message, model.keys.Recheck):
			if model.state == stateIdle {
				model.state = stateChecking
				model.notice = ""
				return model, checkSession(model.client)
			}
		}

	case sessionCheckedMsg:
		if model.state != stateChecking {
			return model, nil
		}
		switch {
		case message.err == nil:
			model.logger.Info("session valid", "user", message.me.DisplayName())
			return model, func() tea.Msg {
				return AuthenticatedMsg{Me: message.me}
			}
		case api.IsUnauthenticated(message.err):
			model.state = stateIdle
		default:
			model.state = stateIdle
			model.notice = message.err.Error()
			model.logger.Warn("session check failed", "error", message.err)
		}

	case browserOpenedMsg:
		if message.err != nil {
			model.notice = "could not open browser: " + message.err.Error()
		}
	}
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	linkStyle := lipgloss.NewStyle().
		Foreground(model.theme.LinkForeground).
		Underline(true)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	busyStyle := lipgloss.NewStyle().Foreground(model.theme.BusyText)

	var body string
	switch model.state {
	case stateChecking:
		body = lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Folio"),
			"",
			busyStyle.Render("checking session..."),
		)
	case stateIdle:
		lines := []string{
			titleStyle.Render("Folio"),
			"",
			faintStyle.Render("Sign in with GitHub in your browser, then re-check:"),
			linkStyle.Render(model.client.LoginURL()),
			"",
			helpStyle.Render("o open browser · r re-check · q quit"),
		}
		if model.notice != "" {
			lines = append(lines, "", errorStyle.Render(model.notice))
		}
		body = lipgloss.JoinVertical(lipgloss.Center, lines...)
	}

	if model.width == 0 || model.height == 0 {
		return body
	}
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, body)
}
