// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared building blocks for Folio's terminal
// screens: the color theme, modal overlays (prompt and confirm), and
// ANSI-aware overlay splicing.
//
// The modals follow an explicit request/response shape: a screen model
// opens a modal, routes keyboard input to it while it is active, and
// receives the outcome (submitted text, or an accept/cancel decision)
// as a typed result rather than a blocking dialog. This keeps the
// state-transition logic testable without a terminal.
package tui
