// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package projectui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/folionotes/folio/lib/tui"
)

// documentParser is shared across renders. The parser configuration
// never changes and goldmark parsers create per-call state inside
// Parse, so one instance serves every document.
var (
	documentParser     goldmark.Markdown
	documentParserOnce sync.Once
)

func getDocumentParser() goldmark.Markdown {
	documentParserOnce.Do(func() {
		documentParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return documentParser
}

// renderDocumentContent turns a document's markup into styled terminal
// text wrapped to the given width. Content is trusted: whatever the
// backend stored renders as-is, with HTML tags stripped to their text
// rather than escaped or rejected.
//
// Soft line breaks become spaces so hard-wrapped source reflows at the
// viewport width.
func renderDocumentContent(content string, theme tui.Theme, width int) string {
	if content == "" {
		return ""
	}
	source := []byte(content)
	document := getDocumentParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile. The output always targets the
	// bubbletea viewport, and profile auto-detection would strip all
	// color when stdout is not a TTY (tests, piped runs).
	lipglossRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipglossRenderer.SetColorProfile(termenv.ANSI256)

	walker := &documentWalker{
		source:   source,
		theme:    theme,
		width:    width,
		renderer: lipglossRenderer,
	}
	ast.Walk(document, walker.walk)
	return strings.TrimRight(walker.output.String(), "\n")
}

// documentWalker walks the goldmark AST and accumulates styled output.
// Inline content within a paragraph or heading collects in a buffer
// and is word-wrapped as a unit when the block closes, which is why
// this is a direct ast.Walk instead of a goldmark renderer.
type documentWalker struct {
	source   []byte
	theme    tui.Theme
	width    int
	renderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// indent is the running prefix for nested blocks (blockquotes,
	// list continuations). bullet, when set, replaces indent for the
	// next emitted line only.
	indent string
	bullet string

	// Emphasis nesting counters. Counters rather than booleans so
	// nested emphasis unwinds correctly.
	bold   int
	italic int

	// listCounters holds the next ordinal per nesting level; 0 means
	// the level is unordered.
	listCounters []int
}

func (walker *documentWalker) style() lipgloss.Style {
	return walker.renderer.NewStyle()
}

func (walker *documentWalker) contentWidth() int {
	width := walker.width - len(walker.indent)
	if width < 10 {
		width = 10
	}
	return width
}

// emitBlock writes wrapped block content with indentation and a
// trailing blank line.
func (walker *documentWalker) emitBlock(content string) {
	for index, line := range strings.Split(content, "\n") {
		if index == 0 && walker.bullet != "" {
			walker.output.WriteString(walker.bullet)
			walker.bullet = ""
		} else {
			walker.output.WriteString(walker.indent)
		}
		walker.output.WriteString(line)
		walker.output.WriteString("\n")
	}
	walker.output.WriteString("\n")
}

func (walker *documentWalker) inlineText(content string) string {
	style := walker.style().Foreground(walker.theme.NormalText)
	if walker.bold > 0 {
		style = style.Bold(true)
	}
	if walker.italic > 0 {
		style = style.Italic(true)
	}
	return style.Render(content)
}

func (walker *documentWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			walker.inline.Reset()
		} else if content := walker.inline.String(); content != "" {
			walker.inline.Reset()
			walker.emitBlock(ansi.Wrap(content, walker.contentWidth(), " ,.;"))
		}

	case ast.KindHeading:
		if entering {
			walker.inline.Reset()
		} else {
			walker.emitHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			walker.emitCode(walker.blockText(block), string(block.Language(walker.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			walker.emitCode(walker.blockText(node.(*ast.CodeBlock)), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			walker.indent += "│ "
		} else {
			walker.indent = strings.TrimSuffix(walker.indent, "│ ")
		}

	case ast.KindList:
		if entering {
			start := 0
			if list := node.(*ast.List); list.IsOrdered() {
				start = list.Start
			}
			walker.listCounters = append(walker.listCounters, start)
		} else if len(walker.listCounters) > 0 {
			walker.listCounters = walker.listCounters[:len(walker.listCounters)-1]
		}

	case ast.KindListItem:
		if entering {
			walker.enterListItem()
		} else {
			walker.indent = strings.TrimSuffix(walker.indent, "  ")
		}

	case ast.KindThematicBreak:
		if entering {
			rule := walker.style().Foreground(walker.theme.BorderColor).
				Render(strings.Repeat("─", walker.contentWidth()))
			walker.emitBlock(rule)
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			walker.inline.WriteString(walker.inlineText(string(textNode.Segment.Value(walker.source))))
			if textNode.SoftLineBreak() {
				walker.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				walker.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			walker.inline.WriteString(walker.inlineText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		if node.(*ast.Emphasis).Level >= 2 {
			walker.adjust(&walker.bold, entering)
		} else {
			walker.adjust(&walker.italic, entering)
		}

	case ast.KindCodeSpan:
		if entering {
			walker.emitCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			walker.emitLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(walker.source))
			walker.inline.WriteString(walker.style().
				Foreground(walker.theme.LinkForeground).Render(url))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			faint := walker.style().Foreground(walker.theme.FaintText)
			walker.inline.WriteString(faint.Render("[image: " + string(image.Destination) + "]"))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindHTMLBlock:
		if entering {
			stripped := strings.TrimSpace(stripMarkup(walker.blockText(node)))
			if stripped != "" {
				walker.emitBlock(ansi.Wrap(walker.inlineText(stripped), walker.contentWidth(), " ,.;"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			raw := node.(*ast.RawHTML)
			var markup strings.Builder
			for index := 0; index < raw.Segments.Len(); index++ {
				segment := raw.Segments.At(index)
				markup.Write(segment.Value(walker.source))
			}
			if stripped := stripMarkup(markup.String()); stripped != "" {
				walker.inline.WriteString(walker.inlineText(stripped))
			}
		}
	}
	return ast.WalkContinue, nil
}

func (walker *documentWalker) adjust(counter *int, entering bool) {
	if entering {
		*counter++
	} else {
		*counter--
	}
}

func (walker *documentWalker) enterListItem() {
	if len(walker.listCounters) == 0 {
		return
	}
	level := len(walker.listCounters) - 1
	marker := "• "
	if walker.listCounters[level] > 0 {
		marker = fmt.Sprintf("%d. ", walker.listCounters[level])
		walker.listCounters[level]++
	}
	walker.bullet = walker.indent + walker.style().
		Foreground(walker.theme.AccentForeground).Render(marker)
	walker.indent += "  "
}

func (walker *documentWalker) emitHeading(heading *ast.Heading) {
	// Headings restyle wholesale, so drop the inline styling first.
	content := ansi.Strip(walker.inline.String())
	walker.inline.Reset()
	if content == "" {
		return
	}
	style := walker.style().Bold(true).Foreground(walker.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(walker.theme.AccentForeground)
	}
	walker.emitBlock(ansi.Wrap(style.Render(content), walker.contentWidth(), " ,.;"))
}

// blockText concatenates a block node's source lines.
func (walker *documentWalker) blockText(node ast.Node) string {
	var collected strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		collected.Write(segment.Value(walker.source))
	}
	return collected.String()
}

// emitCode renders a code block, syntax-highlighted when the fence
// names a language chroma knows.
func (walker *documentWalker) emitCode(code, language string) {
	code = strings.TrimRight(code, "\n")
	highlighted := ""
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			highlighted = strings.TrimRight(buffer.String(), "\n")
		}
	}
	if highlighted == "" {
		highlighted = walker.style().Foreground(walker.theme.FaintText).Render(code)
	}
	walker.emitBlock(highlighted)
}

func (walker *documentWalker) emitCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			code.Write(child.Segment.Value(walker.source))
		case *ast.String:
			code.Write(child.Value)
		}
	}
	walker.inline.WriteString(walker.style().
		Foreground(walker.theme.NoticeText).Render(code.String()))
}

func (walker *documentWalker) emitLink(link *ast.Link) {
	// Render the link text through a sub-walk, then append the
	// destination faintly.
	saved := walker.inline.String()
	walker.inline.Reset()
	for child := link.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, walker.walk)
	}
	label := walker.inline.String()
	walker.inline.Reset()
	walker.inline.WriteString(saved)
	walker.inline.WriteString(label)
	if url := string(link.Destination); url != "" {
		walker.inline.WriteString(" " + walker.style().
			Foreground(walker.theme.LinkForeground).Render("("+url+")"))
	}
}

// stripMarkup drops angle-bracket tags, keeping their text content.
func stripMarkup(markup string) string {
	var result strings.Builder
	inTag := false
	for _, character := range markup {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}
