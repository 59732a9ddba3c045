// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Config{ServerURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidatesURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{ServerURL: "ftp://example.net"})
	require.Error(t, err)

	client, err := NewClient(Config{ServerURL: "https://folio.example.net/"})
	require.NoError(t, err)
	require.Equal(t, "https://folio.example.net/auth/github", client.LoginURL())
}

func TestListProjects(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/projects/", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode([]Project{{ID: 1, Name: "A"}})
	}))

	projects, err := client.ListProjects(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "A", projects[0].Name)
}

func TestListProjectsSearchQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte("[]"))
	}))

	_, err := client.ListProjects(context.Background(), "  notes  ")
	require.NoError(t, err)
	require.Equal(t, "notes", gotQuery)
}

func TestUnauthenticatedMapsTo401(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no session", http.StatusUnauthorized)
	}))

	_, err := client.ListProjects(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = client.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)

	err = client.DeleteCard(context.Background(), 3)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequestErrorCarriesBodyText(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "project not found or not yours", http.StatusForbidden)
	}))

	err := client.DeleteProject(context.Background(), 9)
	var requestErr *RequestError
	require.ErrorAs(t, err, &requestErr)
	require.Equal(t, http.StatusForbidden, requestErr.Status)
	require.Equal(t, "project not found or not yours", requestErr.Body)
}

func TestUnparsableListIsEmpty(t *testing.T) {
	for _, body := range []string{"", "null", "<html>gateway error</html>", `{"not":"an array"}`} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		projects, err := client.ListProjects(context.Background(), "")
		require.NoError(t, err, "body %q", body)
		require.Empty(t, projects, "body %q", body)

		documents, err := client.ListDocuments(context.Background(), 1)
		require.NoError(t, err, "body %q", body)
		require.Empty(t, documents, "body %q", body)
	}
}

func TestCreateProject(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "Reading list", payload["projectname"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Project{ID: 7, Name: payload["projectname"]})
	}))

	created, err := client.CreateProject(context.Background(), "Reading list")
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ID)
}

func TestCreateAmbiguityPolicy(t *testing.T) {
	// A 2xx create whose body is unusable (unparsable, or missing the
	// assigned id) reports ErrAmbiguousCreate so the caller reloads.
	for _, body := range []string{"", "not json", `{"projectname":"X"}`} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(body))
		}))

		_, err := client.CreateProject(context.Background(), "X")
		require.ErrorIs(t, err, ErrAmbiguousCreate, "body %q", body)
	}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"untitled"}`))
	}))
	_, err := client.CreateDocument(context.Background(), 1, "untitled")
	require.ErrorIs(t, err, ErrAmbiguousCreate)

	_, err = client.CreateCard(context.Background(), 1, "hello")
	require.ErrorIs(t, err, ErrAmbiguousCreate)
}

func TestListCardsNormalizesWireShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "5", r.URL.Query().Get("project_id"))
		w.Write([]byte(`[
			{"id":10,"cardtext":"hello","cardtags":"x, y","project_id":5},
			{"id":11,"cardtext":"plain","cardtags":"","category":"ideas","project_id":5}
		]`))
	}))

	cards, err := client.ListCards(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, []string{"x", "y"}, cards[0].Tags)
	require.Equal(t, DefaultCategory, cards[0].Category)
	require.Nil(t, cards[1].Tags)
	require.Equal(t, "ideas", cards[1].Category)
}

func TestClusterCards(t *testing.T) {
	var gotPath, gotProject string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotProject = r.URL.Query().Get("project_id")
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.ClusterCards(context.Background(), 42))
	require.Equal(t, "/api/projects/cluster", gotPath)
	require.Equal(t, "42", gotProject)
}

func TestSplitTags(t *testing.T) {
	require.Equal(t, []string{"x", "y"}, SplitTags("x, y"))
	require.Equal(t, []string{"solo"}, SplitTags("solo"))
	require.Nil(t, SplitTags(""))
	require.Nil(t, SplitTags("  , ,  "))
}

func TestMeFallsBackToGitHubUsername(t *testing.T) {
	require.Equal(t, "ada", Me{UserName: "ada", GitHubUsername: "alovelace"}.DisplayName())
	require.Equal(t, "alovelace", Me{GitHubUsername: "alovelace"}.DisplayName())
}
