// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client gateway to the Folio backend. All
// other components reach the backend exclusively through this package.
//
// Requests carry the session cookie via the http.Client's cookie jar
// (the session is established by the backend's GitHub OAuth flow in a
// browser; see lib/session for persistence). The gateway itself does
// no caching, no retries, and sets no deadline; cancellation is the
// caller's context.
//
// Error policy, uniform across every call:
//   - 401 → ErrUnauthenticated; callers return to the login screen.
//   - other non-2xx → *RequestError with the raw body text.
//   - 2xx with an unusable body → empty collection on reads,
//     ErrAmbiguousCreate on creates (caller reloads to reconcile).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// maxResponseSize bounds response body reads. Folio API responses are
// small JSON documents; the limit only guards against a pathological
// server exhausting memory.
const maxResponseSize int64 = 64 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// ServerURL is the base URL of the Folio backend
	// (e.g. "https://folio.example.net").
	ServerURL string
	// HTTPClient is used for all requests. If nil, a default client
	// is constructed. Supply one with a cookie jar to carry the
	// session across calls and runs.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
}

// Client is the typed gateway to the backend REST contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the server URL and builds a Client.
func NewClient(config Config) (*Client, error) {
	if config.ServerURL == "" {
		return nil, fmt.Errorf("api: ServerURL is required")
	}
	parsed, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid ServerURL %q: %w", config.ServerURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: ServerURL %q must be http or https", config.ServerURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.ServerURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// LoginURL returns the backend's OAuth start endpoint. The client
// never follows this URL itself; the user's browser does, and the
// backend owns the whole redirect chain.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/github"
}

// doRequest performs one HTTP round trip and applies the uniform
// status policy. Returns the raw body bytes on 2xx.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
	)

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthenticated
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return responseBody, nil
	default:
		return nil, &RequestError{
			Status: response.StatusCode,
			Body:   strings.TrimSpace(string(responseBody)),
		}
	}
}

// decodeList applies the read-side parse policy: an empty or
// unparsable body is an empty collection, logged, never an error. The
// dashboard and project screens render empty state instead of failing.
func decodeList[T any](c *Client, body []byte, what string) []T {
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return nil
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		c.logger.Warn("unparsable list response, treating as empty",
			"collection", what, "error", err)
		return nil
	}
	return items
}

// Me returns the current session's user. ErrUnauthenticated means no
// valid session.
func (c *Client) Me(ctx context.Context) (Me, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/me", nil, nil)
	if err != nil {
		return Me{}, err
	}
	var me Me
	if err := json.Unmarshal(body, &me); err != nil {
		return Me{}, fmt.Errorf("api: parsing /api/me response: %w", err)
	}
	return me, nil
}

// Logout ends the session server-side. The caller drops the local
// session regardless of the result, so errors here are advisory.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// ListProjects returns the caller's projects. A non-blank query asks
// the backend to filter server-side; there is no client-side fallback.
func (c *Client) ListProjects(ctx context.Context, query string) ([]Project, error) {
	var values url.Values
	if strings.TrimSpace(query) != "" {
		values = url.Values{"q": {strings.TrimSpace(query)}}
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/api/projects/", values, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Project](c, body, "projects"), nil
}

// CreateProject creates a project and returns the backend's created
// entity. A 2xx response that does not include the assigned projectid
// returns ErrAmbiguousCreate: the project may exist server-side, so
// the caller reloads the full list.
func (c *Client) CreateProject(ctx context.Context, name string) (Project, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/projects/", nil,
		map[string]string{"projectname": name})
	if err != nil {
		return Project{}, err
	}
	var created Project
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		return Project{}, ErrAmbiguousCreate
	}
	return created, nil
}

// GetProject returns one project by id.
func (c *Client) GetProject(ctx context.Context, projectID int64) (Project, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, nil)
	if err != nil {
		return Project{}, err
	}
	var project Project
	if err := json.Unmarshal(body, &project); err != nil {
		return Project{}, fmt.Errorf("api: parsing project %d: %w", projectID, err)
	}
	if project.ID == 0 {
		project.ID = projectID
	}
	return project, nil
}

// DeleteProject deletes a project by id. Cascade semantics are the
// backend's concern.
func (c *Client) DeleteProject(ctx context.Context, projectID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), nil, nil)
	return err
}

// ListCards returns a project's cards, normalized (tags split,
// category defaulted).
func (c *Client) ListCards(ctx context.Context, projectID int64) ([]Card, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/cards/",
		url.Values{"project_id": {fmt.Sprint(projectID)}}, nil)
	if err != nil {
		return nil, err
	}
	wires := decodeList[cardWire](c, body, "cards")
	cards := make([]Card, len(wires))
	for index, wire := range wires {
		cards[index] = wire.normalize()
	}
	return cards, nil
}

// GetCard returns one card by id.
func (c *Client) GetCard(ctx context.Context, cardID int64) (Card, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/cards/%d", cardID), nil, nil)
	if err != nil {
		return Card{}, err
	}
	var wire cardWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return Card{}, fmt.Errorf("api: parsing card %d: %w", cardID, err)
	}
	return wire.normalize(), nil
}

// CreateCard creates a card with the given text. The backend may fill
// in tags itself (it calls its tagging service when the client sends
// none). Same ambiguity policy as CreateProject.
func (c *Client) CreateCard(ctx context.Context, projectID int64, text string) (Card, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/cards/", nil,
		map[string]any{"cardtext": text, "project_id": projectID})
	if err != nil {
		return Card{}, err
	}
	var wire cardWire
	if err := json.Unmarshal(body, &wire); err != nil || wire.ID == 0 {
		return Card{}, ErrAmbiguousCreate
	}
	return wire.normalize(), nil
}

// DeleteCard deletes a card by id.
func (c *Client) DeleteCard(ctx context.Context, cardID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/cards/%d", cardID), nil, nil)
	return err
}

// ClusterCards asks the backend to re-categorize every card in the
// project. The response body is ignored: the only consistent way to
// observe the result is a fresh ListCards, which the caller performs.
func (c *Client) ClusterCards(ctx context.Context, projectID int64) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/projects/cluster",
		url.Values{"project_id": {fmt.Sprint(projectID)}}, nil)
	return err
}

// ListDocuments returns a project's documents.
func (c *Client) ListDocuments(ctx context.Context, projectID int64) ([]Document, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/documents/",
		url.Values{"project_id": {fmt.Sprint(projectID)}}, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[Document](c, body, "documents"), nil
}

// CreateDocument creates a document with the given title and empty
// content. Same ambiguity policy as CreateProject.
func (c *Client) CreateDocument(ctx context.Context, projectID int64, title string) (Document, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/documents/", nil,
		map[string]any{"title": title, "project_id": projectID})
	if err != nil {
		return Document{}, err
	}
	var created Document
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		return Document{}, ErrAmbiguousCreate
	}
	return created, nil
}

// DeleteDocument deletes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, documentID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/documents/%d", documentID), nil, nil)
	return err
}
