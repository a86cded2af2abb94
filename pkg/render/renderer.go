// Package render is the bridge to the markdown-to-HTML conversion pipeline.
// Given document text it produces an HTML fragment, or a fixed placeholder
// for empty input. The converter's output is trusted as-is; titles displayed
// outside this pipeline go through EscapeTitle instead.
package render

import (
	"bytes"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// Placeholder is the markup shown when there is nothing to preview.
const Placeholder = `<div class="empty-state"><p>Start typing to see the preview...</p></div>`

// Renderer converts markdown to HTML with GitHub-flavored syntax, hard line
// breaks, and syntax-highlighted fenced code.
type Renderer struct {
	md  goldmark.Markdown
	hl  Highlighter
	log *zap.Logger
}

// New creates a renderer with the chroma-backed highlighter.
func New(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
				highlighting.WithGuessLanguage(true),
			),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithUnsafe(),
		),
	)

	return &Renderer{md: md, hl: ChromaHighlighter{}, log: log}
}

// Render converts text to an HTML fragment. Empty or whitespace-only input
// yields Placeholder without touching the converter. A conversion failure
// degrades to the escaped raw text.
func (r *Renderer) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return Placeholder
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		r.log.Error("render: markdown conversion failed", zap.Error(err))
		return "<pre>" + html.EscapeString(text) + "</pre>"
	}

	return r.rehighlight(buf.String())
}

// EscapeTitle escapes a title for plain-text insertion into a view. Titles
// never go through the markdown pipeline.
func EscapeTitle(title string) string {
	return html.EscapeString(title)
}
