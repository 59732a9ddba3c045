// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
)

// loadedMsg carries the result of the sequential initial load. Each
// fetch is fault-isolated: a failed project fetch doesn't stop the
// card fetch, and so on. The errors are kept separate so Update can
// apply placeholder or empty-slice fallbacks per collection.
type loadedMsg struct {
	project    api.Project
	projectErr error

	cards    []api.Card
	cardsErr error

	documents    []api.Document
	documentsErr error
}

// cardsReloadedMsg is a fresh card fetch, used after clustering where
// every card's category may have changed server-side.
type cardsReloadedMsg struct {
	cards []api.Card
	err   error
}

// cardRefreshedMsg is the single-card fetch issued when the card
// modal opens, so the modal shows the backend's current copy rather
// than a possibly stale list entry.
type cardRefreshedMsg struct {
	card api.Card
	err  error
}

type cardCreatedMsg struct {
	card api.Card
	err  error
}

type cardDeletedMsg struct {
	cardID int64
	err    error
}

type clusterDoneMsg struct {
	err error
}

type documentCreatedMsg struct {
	document api.Document
	err      error
}

type documentDeletedMsg struct {
	documentID int64
	title      string
	err        error
}

// loadAll fetches the project, its cards, and its documents in that
// order, inside a single command so the ordering is deterministic.
func loadAll(client *api.Client, projectID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var result loadedMsg
		result.project, result.projectErr = client.GetProject(ctx, projectID)
		result.cards, result.cardsErr = client.ListCards(ctx, projectID)
		result.documents, result.documentsErr = client.ListDocuments(ctx, projectID)
		return result
	}
}

func reloadCards(client *api.Client, projectID int64) tea.Cmd {
	return func() tea.Msg {
		cards, err := client.ListCards(context.Background(), projectID)
		return cardsReloadedMsg{cards: cards, err: err}
	}
}

func refreshCard(client *api.Client, cardID int64) tea.Cmd {
	return func() tea.Msg {
		card, err := client.GetCard(context.Background(), cardID)
		return cardRefreshedMsg{card: card, err: err}
	}
}

func createCard(client *api.Client, projectID int64, text string) tea.Cmd {
	return func() tea.Msg {
		card, err := client.CreateCard(context.Background(), projectID, text)
		return cardCreatedMsg{card: card, err: err}
	}
}

func deleteCard(client *api.Client, cardID int64) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteCard(context.Background(), cardID)
		return cardDeletedMsg{cardID: cardID, err: err}
	}
}

func clusterCards(client *api.Client, projectID int64) tea.Cmd {
	return func() tea.Msg {
		err := client.ClusterCards(context.Background(), projectID)
		return clusterDoneMsg{err: err}
	}
}

func createDocument(client *api.Client, projectID int64, title string) tea.Cmd {
	return func() tea.Msg {
		document, err := client.CreateDocument(context.Background(), projectID, title)
		return documentCreatedMsg{document: document, err: err}
	}
}

func deleteDocument(client *api.Client, documentID int64, title string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteDocument(context.Background(), documentID)
		return documentDeletedMsg{documentID: documentID, title: title, err: err}
	}
}

// isNotFound reports whether an error is the backend's 404 answer.
// Used to distinguish "project deleted under us" (return to the
// dashboard) from transient failures (placeholder fallback).
func isNotFound(err error) bool {
	var requestErr *api.RequestError
	return errors.As(err, &requestErr) && requestErr.Status == 404
}
