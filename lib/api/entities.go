// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "strings"

// DefaultCategory is the bucket for cards the backend has not (or not
// yet) categorized. Applied once, at the decode boundary, so render code
// never sees an empty category.
const DefaultCategory = "uncategorized"

// Project is a top-level folder owning cards and documents. The wire
// field names (projectid, projectname, projectdesc) are fixed by the
// backend contract.
type Project struct {
	ID          int64  `json:"projectid"`
	Name        string `json:"projectname"`
	Description string `json:"projectdesc"`
}

// Card is a short note belonging to one project. Tags and Category are
// normalized from the wire shape: the backend stores tags as one
// comma-joined string and leaves category empty for uncategorized
// cards.
type Card struct {
	ID        int64
	ProjectID int64
	Text      string
	URL       string
	Tags      []string
	Category  string
}

// cardWire is the backend's JSON shape for a card.
type cardWire struct {
	ID        int64  `json:"id"`
	Text      string `json:"cardtext"`
	URL       string `json:"cardurl"`
	Tags      string `json:"cardtags"`
	Category  string `json:"category"`
	ProjectID int64  `json:"project_id"`
}

// normalize converts the wire shape to the client-side Card: the
// comma-joined tag string becomes an ordered slice and an absent
// category becomes DefaultCategory.
func (w cardWire) normalize() Card {
	return Card{
		ID:        w.ID,
		ProjectID: w.ProjectID,
		Text:      w.Text,
		URL:       w.URL,
		Tags:      SplitTags(w.Tags),
		Category:  normalizeCategory(w.Category),
	}
}

// SplitTags splits a comma-joined tag string into trimmed tags.
// Empty segments are dropped, so "" and ", ," both yield no tags.
func SplitTags(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(joined, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func normalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// Document is a long-form note belonging to one project. Content is a
// trusted markup fragment rendered verbatim (no sanitization).
type Document struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ProjectID int64  `json:"project_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Me is the backend's current-user response. Older deployments report
// github_username instead of user_name.
type Me struct {
	UserName       string `json:"user_name"`
	GitHubUsername string `json:"github_username"`
}

// DisplayName returns the name to show in the UI chrome.
func (m Me) DisplayName() string {
	if m.UserName != "" {
		return m.UserName
	}
	return m.GitHubUsername
}
