// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package loginui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/tui"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client, err := api.NewClient(api.Config{ServerURL: "http://folio.test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(client, tui.DefaultTheme, logger)
}

func TestValidSessionEmitsAuthenticated(t *testing.T) {
	model := newTestModel(t)
	model, cmd := model.Update(sessionCheckedMsg{me: api.Me{UserName: "ada"}})
	if cmd == nil {
		t.Fatal("valid session: cmd is nil, want AuthenticatedMsg emitter")
	}
	message := cmd()
	authenticated, ok := message.(AuthenticatedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want AuthenticatedMsg", message)
	}
	if authenticated.Me.UserName != "ada" {
		t.Fatalf("Me.UserName = %q, want %q", authenticated.Me.UserName, "ada")
	}
}

func TestUnauthenticatedSessionGoesIdle(t *testing.T) {
	model := newTestModel(t)
	model, cmd := model.Update(sessionCheckedMsg{err: api.ErrUnauthenticated})
	if cmd != nil {
		t.Fatal("unauthenticated session: unexpected cmd")
	}
	if model.state != stateIdle {
		t.Fatalf("state = %v, want idle", model.state)
	}
	if model.notice != "" {
		t.Fatalf("notice = %q, want empty (a 401 is the expected signed-out state)", model.notice)
	}
}

func TestTransportErrorShowsNotice(t *testing.T) {
	model := newTestModel(t)
	model, _ = model.Update(sessionCheckedMsg{err: errors.New("connection refused")})
	if model.state != stateIdle {
		t.Fatalf("state = %v, want idle", model.state)
	}
	if !strings.Contains(model.View(), "connection refused") {
		t.Fatal("view does not surface the transport error")
	}
}

func TestRecheckRestartsProbe(t *testing.T) {
	model := newTestModel(t)
	model, _ = model.Update(sessionCheckedMsg{err: api.ErrUnauthenticated})

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if model.state != stateChecking {
		t.Fatalf("state = %v, want checking", model.state)
	}
	if cmd == nil {
		t.Fatal("re-check: cmd is nil, want session probe")
	}
}

func TestRecheckIgnoredWhileChecking(t *testing.T) {
	model := newTestModel(t)
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Fatal("re-check while checking: unexpected cmd")
	}
}

func TestStaleProbeResultIgnoredWhenIdle(t *testing.T) {
	model := newTestModel(t)
	model, _ = model.Update(sessionCheckedMsg{err: api.ErrUnauthenticated})

	// A duplicate probe result arriving while idle must not emit
	// AuthenticatedMsg.
	_, cmd := model.Update(sessionCheckedMsg{me: api.Me{UserName: "ada"}})
	if cmd != nil {
		t.Fatal("stale probe result: unexpected cmd")
	}
}

func TestIdleViewShowsLoginURL(t *testing.T) {
	model := newTestModel(t)
	model, _ = model.Update(sessionCheckedMsg{err: api.ErrUnauthenticated})
	if !strings.Contains(model.View(), "http://folio.test/auth/github") {
		t.Fatal("idle view does not show the login URL")
	}
}
