// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
)

// projectsLoadedMsg is the result of a project list fetch. The
// sequence number matches the load that requested it; results from a
// superseded load (an older search, for example) are dropped.
type projectsLoadedMsg struct {
	seq      int
	query    string
	projects []api.Project
	err      error
}

// projectCreatedMsg is the result of a project create.
type projectCreatedMsg struct {
	project api.Project
	err     error
}

// projectDeletedMsg is the result of a project delete.
type projectDeletedMsg struct {
	projectID int64
	name      string
	err       error
}

// logoutDoneMsg means the logout POST finished. Errors are discarded:
// the local session is cleared regardless, which is the part the user
// can observe.
type logoutDoneMsg struct{}

func loadProjects(client *api.Client, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background(), query)
		return projectsLoadedMsg{seq: seq, query: query, projects: projects, err: err}
	}
}

func createProject(client *api.Client, name string) tea.Cmd {
	return func() tea.Msg {
		project, err := client.CreateProject(context.Background(), name)
		return projectCreatedMsg{project: project, err: err}
	}
}

func deleteProject(client *api.Client, projectID int64, name string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteProject(context.Background(), projectID)
		return projectDeletedMsg{projectID: projectID, name: name, err: err}
	}
}

func logout(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		// Best effort. A failed revoke still ends the local session.
		_ = client.Logout(context.Background())
		return logoutDoneMsg{}
	}
}
