// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package store holds the client's in-memory view of the currently
// loaded entities. Each screen model owns its own Store instance and
// passes it to its render functions; there is no process-wide
// singleton, so tests stay isolated.
//
// All mutations happen inside the bubbletea Update loop, strictly
// between suspension points, so no locking is needed. Collections are
// either fully replaced (after a reload) or patched by a single
// insert/remove (after a create/delete); nothing is ever mutated in
// place.
package store

import "github.com/folionotes/folio/lib/api"

// Store is the per-screen state container.
type Store struct {
	Projects  []api.Project
	Cards     []api.Card
	Documents []api.Document
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// ReplaceProjects swaps in a freshly fetched project list.
func (s *Store) ReplaceProjects(projects []api.Project) {
	s.Projects = projects
}

// ReplaceCards swaps in a freshly fetched card list. Used on initial
// load and after clustering, which may have changed every card's
// category server-side.
func (s *Store) ReplaceCards(cards []api.Card) {
	s.Cards = cards
}

// ReplaceDocuments swaps in a freshly fetched document list.
func (s *Store) ReplaceDocuments(documents []api.Document) {
	s.Documents = documents
}

// PrependProject inserts a newly created project at the front for
// recency-first display.
func (s *Store) PrependProject(project api.Project) {
	s.Projects = append([]api.Project{project}, s.Projects...)
}

// AppendCard inserts a newly created card at the end, keeping a
// stable reading order in the grid.
func (s *Store) AppendCard(card api.Card) {
	s.Cards = append(s.Cards, card)
}

// UpdateCard replaces the stored card with the same id in place. A
// card no longer in the store is left alone; that happens when the
// card was deleted while a refresh of it was in flight.
func (s *Store) UpdateCard(card api.Card) {
	for index := range s.Cards {
		if s.Cards[index].ID == card.ID {
			s.Cards[index] = card
			return
		}
	}
}

// PrependDocument inserts a newly created document at the front of
// the document list.
func (s *Store) PrependDocument(document api.Document) {
	s.Documents = append([]api.Document{document}, s.Documents...)
}

// RemoveProject deletes the project with the given id, if present.
func (s *Store) RemoveProject(projectID int64) {
	kept := s.Projects[:0]
	for _, project := range s.Projects {
		if project.ID != projectID {
			kept = append(kept, project)
		}
	}
	s.Projects = kept
}

// RemoveCard deletes the card with the given id, if present.
func (s *Store) RemoveCard(cardID int64) {
	kept := s.Cards[:0]
	for _, card := range s.Cards {
		if card.ID != cardID {
			kept = append(kept, card)
		}
	}
	s.Cards = kept
}

// RemoveDocument deletes the document with the given id, if present.
func (s *Store) RemoveDocument(documentID int64) {
	kept := s.Documents[:0]
	for _, document := range s.Documents {
		if document.ID != documentID {
			kept = append(kept, document)
		}
	}
	s.Documents = kept
}

// ProjectByID looks up a project. The second return reports absence:
// a missing id is a recoverable condition (the caller falls back to
// an overview state), never a panic.
func (s *Store) ProjectByID(projectID int64) (api.Project, bool) {
	for _, project := range s.Projects {
		if project.ID == projectID {
			return project, true
		}
	}
	return api.Project{}, false
}

// CardByID looks up a card by id.
func (s *Store) CardByID(cardID int64) (api.Card, bool) {
	for _, card := range s.Cards {
		if card.ID == cardID {
			return card, true
		}
	}
	return api.Card{}, false
}

// DocumentByID looks up a document by id.
func (s *Store) DocumentByID(documentID int64) (api.Document, bool) {
	for _, document := range s.Documents {
		if document.ID == documentID {
			return document, true
		}
	}
	return api.Document{}, false
}

// HasProjectNamed reports whether a project with the given name
// already exists, compared trimmed and case-insensitively. This is
// the advisory duplicate check before a create; the backend remains
// the authority and may still reject.
func (s *Store) HasProjectNamed(name string) bool {
	normalized := normalizeName(name)
	for _, project := range s.Projects {
		if normalizeName(project.Name) == normalized {
			return true
		}
	}
	return false
}
