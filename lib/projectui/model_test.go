// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/tui"
)

func newTestModel(t *testing.T, serverURL string) Model {
	t.Helper()
	if serverURL == "" {
		serverURL = "http://folio.test"
	}
	client, err := api.NewClient(api.Config{
		ServerURL: serverURL,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	model := New(client, tui.DefaultTheme, logger, api.Project{ID: 7, Name: "notes"})
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model
}

func loadedWith(t *testing.T, model Model, cards []api.Card, documents []api.Document) Model {
	t.Helper()
	model, _ = model.Update(loadedMsg{
		project:   api.Project{ID: 7, Name: "notes", Description: "scratch"},
		cards:     cards,
		documents: documents,
	})
	return model
}

func keyRunes(runes string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)}
}

func TestLoadAppliesAllThreeCollections(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t,
		model,
		[]api.Card{{ID: 1, Text: "first", Category: "ideas"}},
		[]api.Document{{ID: 1, Title: "readme"}},
	)
	if model.loading {
		t.Fatal("loading flag still set")
	}
	if model.project.Description != "scratch" {
		t.Fatalf("project not refreshed: %+v", model.project)
	}
	if len(model.store.Cards) != 1 || len(model.store.Documents) != 1 {
		t.Fatalf("store not populated: %d cards, %d documents",
			len(model.store.Cards), len(model.store.Documents))
	}
}

func TestProjectNotFoundReturnsToDashboard(t *testing.T) {
	model := newTestModel(t, "")
	_, cmd := model.Update(loadedMsg{
		projectErr: &api.RequestError{Status: 404, Body: "not found"},
	})
	if cmd == nil {
		t.Fatal("missing project: no cmd")
	}
	back, ok := cmd().(BackToDashboardMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want BackToDashboardMsg", cmd())
	}
	if back.Notice == "" {
		t.Fatal("back message carries no notice for the dashboard status line")
	}
}

func TestProjectFetchFailureFallsBackToPlaceholder(t *testing.T) {
	client, err := api.NewClient(api.Config{ServerURL: "http://folio.test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Entered by id only, so no name is known yet.
	model := New(client, tui.DefaultTheme, logger, api.Project{ID: 9})
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	model, cmd := model.Update(loadedMsg{
		projectErr: errors.New("upstream timeout"),
		cards:      []api.Card{{ID: 1, Text: "survives"}},
	})
	if cmd != nil {
		t.Fatal("transient project failure must not leave the screen")
	}
	if model.project.Name == "" {
		t.Fatal("no placeholder project name")
	}
	if len(model.store.Cards) != 1 {
		t.Fatal("card fetch result lost to the project failure")
	}
}

func TestGridRendersGroupsInOrderWithAddTileLast(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{
		{ID: 1, Text: "one", Category: "zebra"},
		{ID: 2, Text: "two", Category: api.DefaultCategory},
		{ID: 3, Text: "three", Category: "alpha"},
	}, nil)

	view := model.View()
	alphaAt := strings.Index(view, "alpha")
	zebraAt := strings.Index(view, "zebra")
	defaultAt := strings.Index(view, api.DefaultCategory)
	addAt := strings.Index(view, addCardLabel)
	if alphaAt < 0 || zebraAt < 0 || defaultAt < 0 || addAt < 0 {
		t.Fatalf("missing section or add tile in view:\n%s", view)
	}
	if !(alphaAt < zebraAt && zebraAt < defaultAt && defaultAt < addAt) {
		t.Fatalf("section order wrong: alpha=%d zebra=%d default=%d add=%d",
			alphaAt, zebraAt, defaultAt, addAt)
	}
}

func TestTagsRenderAsLabels(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{
		{ID: 1, Text: "tagged", Tags: []string{"x", "y"}, Category: "a"},
		{ID: 2, Text: "untagged", Category: "a"},
	}, nil)

	view := model.View()
	if !strings.Contains(view, "#x") || !strings.Contains(view, "#y") {
		t.Fatal("tag labels #x and #y missing")
	}
	if strings.Count(view, "#") != 2 {
		t.Fatalf("found %d tag markers, want exactly 2", strings.Count(view, "#"))
	}
}

func TestCreatedCardLandsUncategorized(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, nil)

	created := api.Card{ID: 5, ProjectID: 7, Text: "fresh", Category: api.DefaultCategory}
	model, _ = model.Update(cardCreatedMsg{card: created})

	if model.cardBusy {
		t.Fatal("cardBusy still set after create result")
	}
	view := model.View()
	if !strings.Contains(view, "fresh") || !strings.Contains(view, api.DefaultCategory) {
		t.Fatalf("created card not rendered in the default bucket:\n%s", view)
	}
}

func TestCardCreateBusyBlocksSecondSubmit(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, nil)

	model, _ = model.Update(keyRunes("a"))
	model, _ = model.Update(keyRunes("x"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("first submit: no create cmd")
	}
	if !model.cardBusy {
		t.Fatal("cardBusy not set while create is in flight")
	}

	// The add affordance relabels and further create attempts are
	// ignored until the result arrives.
	if !strings.Contains(model.View(), addCardBusyLabel) {
		t.Fatal("add tile not relabeled while busy")
	}
	model, cmd = model.Update(keyRunes("a"))
	if cmd != nil || model.prompt != nil {
		t.Fatal("second create attempt not blocked while busy")
	}
}

func TestCardDeleteConfirmedRemovesFromStore(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{{ID: 1, Text: "doomed", Category: "a"}}, nil)

	model, _ = model.Update(keyRunes("x"))
	if model.confirm == nil {
		t.Fatal("confirm not opened")
	}
	model, cmd := model.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("accepted confirm produced no delete cmd")
	}

	model, _ = model.Update(cardDeletedMsg{cardID: 1})
	if len(model.store.Cards) != 0 {
		t.Fatal("deleted card still in store")
	}
	if strings.Contains(model.View(), "doomed") {
		t.Fatal("deleted card still rendered")
	}
}

func TestClusterSuccessTriggersFreshCardFetch(t *testing.T) {
	var cardFetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cards/" && r.Method == http.MethodGet {
			cardFetches.Add(1)
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	model := newTestModel(t, server.URL)
	model = loadedWith(t, model, []api.Card{{ID: 1, Text: "old", Category: "stale"}}, nil)

	model, _ = model.Update(keyRunes("c"))
	if model.confirm == nil {
		t.Fatal("cluster confirm not opened")
	}
	model, cmd := model.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("accepted cluster produced no cmd")
	}
	if !model.clusterBusy {
		t.Fatal("clusterBusy not set")
	}

	model, cmd = model.Update(clusterDoneMsg{})
	if model.clusterBusy {
		t.Fatal("clusterBusy still set after result")
	}
	if cmd == nil {
		t.Fatal("cluster success did not schedule a card reload")
	}
	result := cmd() // Runs the reload against the test server.
	if _, ok := result.(cardsReloadedMsg); !ok {
		t.Fatalf("reload produced %T, want cardsReloadedMsg", result)
	}
	if cardFetches.Load() != 1 {
		t.Fatalf("cluster success issued %d card fetches, want 1", cardFetches.Load())
	}
}

func TestClusterFailureRestoresTrigger(t *testing.T) {
	model := newTestModel(t, "")
	model.clusterBusy = true
	model, _ = model.Update(clusterDoneMsg{err: errors.New("503 overloaded")})
	if model.clusterBusy {
		t.Fatal("clusterBusy still set after failure")
	}
	if !strings.Contains(model.View(), "503 overloaded") {
		t.Fatal("cluster error not surfaced")
	}
}

func TestDocumentListDetailTransitions(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, []api.Document{
		{ID: 1, Title: "first", Content: "# hello"},
		{ID: 2, Title: "second", Content: "plain"},
	})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(keyRunes("j"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.docView != documentViewDetail || model.detailDocID != 2 {
		t.Fatalf("detail state = (%v, %d), want (detail, 2)", model.docView, model.detailDocID)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if model.docView != documentViewList {
		t.Fatal("esc did not return to the list")
	}
}

func TestDocumentDetailSelfHealsWhenDocumentVanishes(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, []api.Document{{ID: 1, Title: "only", Content: "x"}})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.docView != documentViewDetail {
		t.Fatal("not in detail view")
	}

	model, _ = model.Update(documentDeletedMsg{documentID: 1, title: "only"})
	if model.docView != documentViewList {
		t.Fatal("detail view did not self-heal to the list")
	}
	if strings.Contains(model.View(), "error") {
		t.Fatal("self-heal surfaced a user-facing error")
	}
}

func TestDocumentCreateEntersDetail(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, []api.Document{{ID: 1, Title: "existing"}})

	created := api.Document{ID: 2, Title: "new doc", Content: "body", ProjectID: 7}
	model, _ = model.Update(documentCreatedMsg{document: created})

	if model.documentBusy {
		t.Fatal("documentBusy still set")
	}
	if model.store.Documents[0].ID != 2 {
		t.Fatal("created document not prepended")
	}
	if model.docView != documentViewDetail || model.detailDocID != 2 {
		t.Fatalf("detail state = (%v, %d), want (detail, 2)", model.docView, model.detailDocID)
	}
}

func TestUnauthenticatedEmitsSessionExpiredWithoutStoreMutation(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model,
		[]api.Card{{ID: 1, Text: "keep", Category: "a"}},
		[]api.Document{{ID: 1, Title: "keep"}},
	)

	results := []tea.Msg{
		cardCreatedMsg{err: api.ErrUnauthenticated},
		cardDeletedMsg{cardID: 1, err: api.ErrUnauthenticated},
		clusterDoneMsg{err: api.ErrUnauthenticated},
		documentCreatedMsg{err: api.ErrUnauthenticated},
		documentDeletedMsg{documentID: 1, err: api.ErrUnauthenticated},
		cardsReloadedMsg{err: api.ErrUnauthenticated},
		cardRefreshedMsg{err: api.ErrUnauthenticated},
	}
	for _, result := range results {
		next, cmd := model.Update(result)
		if cmd == nil {
			t.Fatalf("%T: no cmd, want SessionExpiredMsg emitter", result)
		}
		if message := cmd(); message != (SessionExpiredMsg{}) {
			t.Fatalf("%T: cmd produced %T, want SessionExpiredMsg", result, message)
		}
		if len(next.store.Cards) != 1 || len(next.store.Documents) != 1 {
			t.Fatalf("%T: 401 mutated the store", result)
		}
	}
}

func TestAmbiguousCardCreateReloadsCards(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{{ID: 1, Text: "old", Category: "a"}}, nil)

	model, cmd := model.Update(cardCreatedMsg{err: api.ErrAmbiguousCreate})
	if cmd == nil {
		t.Fatal("ambiguous card create: no reload cmd")
	}
	if len(model.store.Cards) != 1 {
		t.Fatal("ambiguous create mutated the store before the reload")
	}
}

func TestEscFromCardFocusReturnsToDashboard(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, nil, nil)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc: no cmd")
	}
	if _, ok := cmd().(BackToDashboardMsg); !ok {
		t.Fatalf("cmd produced %T, want BackToDashboardMsg", cmd())
	}
}

func TestCardModalOpensAndCloses(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{
		{ID: 1, Text: "full text here", URL: "https://example.net", Tags: []string{"ref"}, Category: "a"},
	}, nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.openCardID != 1 {
		t.Fatal("card modal not opened")
	}
	view := model.View()
	if !strings.Contains(view, "https://example.net") || !strings.Contains(view, "#ref") {
		t.Fatal("card modal missing url or tags")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if model.openCardID != 0 {
		t.Fatal("card modal not closed by esc")
	}
}

func TestCardModalRefreshesFromBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/cards/1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id":1,"cardtext":"edited elsewhere","cardtags":"x,y","category":"a","project_id":7}`))
	}))
	defer server.Close()

	model := newTestModel(t, server.URL)
	model = loadedWith(t, model, []api.Card{
		{ID: 1, Text: "stale copy", Category: "a"},
	}, nil)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("opening the card modal issued no refresh cmd")
	}
	model, _ = model.Update(cmd())

	view := model.View()
	if !strings.Contains(view, "edited elsewhere") {
		t.Fatal("modal still shows the stale list copy after refresh")
	}
	if !strings.Contains(view, "#x") || !strings.Contains(view, "#y") {
		t.Fatal("refreshed tags not rendered")
	}
}

func TestCardModalKeepsListCopyWhenRefreshFails(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{
		{ID: 1, Text: "list copy", Category: "a"},
	}, nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, cmd := model.Update(cardRefreshedMsg{err: &api.RequestError{Status: 500, Body: "boom"}})
	if cmd != nil {
		t.Fatal("refresh failure produced a cmd")
	}
	if model.openCardID != 1 {
		t.Fatal("refresh failure closed the modal")
	}
	if !strings.Contains(model.View(), "list copy") {
		t.Fatal("modal lost the list copy")
	}
}

func TestCardRefreshForDeletedCardLeavesStoreAlone(t *testing.T) {
	model := newTestModel(t, "")
	model = loadedWith(t, model, []api.Card{
		{ID: 2, Text: "survivor", Category: "a"},
	}, nil)

	model, _ = model.Update(cardRefreshedMsg{card: api.Card{ID: 9, Text: "ghost"}})
	if len(model.store.Cards) != 1 || model.store.Cards[0].ID != 2 {
		t.Fatal("refresh of an absent card mutated the store")
	}
}
