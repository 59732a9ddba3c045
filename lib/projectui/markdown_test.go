// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/folionotes/folio/lib/tui"
)

func renderPlain(t *testing.T, content string, width int) string {
	t.Helper()
	return ansi.Strip(renderDocumentContent(content, tui.DefaultTheme, width))
}

func TestRenderEmptyContent(t *testing.T) {
	if got := renderDocumentContent("", tui.DefaultTheme, 60); got != "" {
		t.Fatalf("empty content rendered %q", got)
	}
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	output := renderPlain(t, "# Title\n\nBody text.", 60)
	if !strings.Contains(output, "Title") || !strings.Contains(output, "Body text.") {
		t.Fatalf("missing heading or paragraph:\n%s", output)
	}
	if strings.Contains(output, "#") {
		t.Fatal("markdown heading marker leaked into output")
	}
}

func TestSoftBreaksReflow(t *testing.T) {
	output := renderPlain(t, "one\ntwo\nthree", 60)
	if !strings.Contains(output, "one two three") {
		t.Fatalf("soft line breaks not joined:\n%s", output)
	}
}

func TestParagraphWrapsToWidth(t *testing.T) {
	output := renderPlain(t, strings.Repeat("word ", 30), 40)
	for _, line := range strings.Split(output, "\n") {
		if len(line) > 40 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestListBullets(t *testing.T) {
	output := renderPlain(t, "- first\n- second\n\n1. uno\n2. dos", 60)
	if strings.Count(output, "•") != 2 {
		t.Fatalf("want 2 bullets:\n%s", output)
	}
	if !strings.Contains(output, "1. uno") || !strings.Contains(output, "2. dos") {
		t.Fatalf("ordered list markers missing:\n%s", output)
	}
}

func TestCodeFencePreservesLines(t *testing.T) {
	output := renderPlain(t, "```go\nfunc main() {\n\tprintln(1)\n}\n```", 60)
	if !strings.Contains(output, "func main() {") {
		t.Fatalf("code fence content missing:\n%s", output)
	}
}

func TestHTMLTagsStrippedToText(t *testing.T) {
	output := renderPlain(t, "before <b>kept</b> after", 60)
	if strings.Contains(output, "<b>") {
		t.Fatalf("tag survived: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Fatalf("tag text lost:\n%s", output)
	}
}

func TestLinkShowsDestination(t *testing.T) {
	output := renderPlain(t, "see [docs](https://example.net/docs)", 80)
	if !strings.Contains(output, "docs") || !strings.Contains(output, "https://example.net/docs") {
		t.Fatalf("link label or destination missing:\n%s", output)
	}
}

func TestBlockquotePrefix(t *testing.T) {
	output := renderPlain(t, "> quoted line", 60)
	if !strings.Contains(output, "│") {
		t.Fatalf("blockquote prefix missing:\n%s", output)
	}
}
