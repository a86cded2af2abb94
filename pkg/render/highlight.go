package render

import (
	"bytes"
	"html"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"
)

// Highlighter colorizes a block of code given an optionally declared
// language. Implementations must treat failure as recoverable: the caller
// falls back to the raw code text.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// ChromaHighlighter highlights through chroma with class-based output,
// auto-detecting the language when none is declared.
type ChromaHighlighter struct{}

// Highlight implements Highlighter.
func (ChromaHighlighter) Highlight(code, lang string) (string, error) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	tokens, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Fallback, tokens); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// plainCodeBlock matches code blocks the primary pass left unhighlighted
// (indented blocks and anything the converter skipped). Highlighted blocks
// carry the chroma wrapper and never match.
var plainCodeBlock = regexp.MustCompile(`(?s)<pre><code(?: class="language-([^"]*)")?>(.*?)</code></pre>`)

// rehighlight gives unhighlighted code blocks one more attempt. A failed
// attempt leaves the block as-is.
func (r *Renderer) rehighlight(doc string) string {
	return plainCodeBlock.ReplaceAllStringFunc(doc, func(match string) string {
		parts := plainCodeBlock.FindStringSubmatch(match)
		lang := parts[1]
		code := html.UnescapeString(parts[2])

		out, err := r.hl.Highlight(code, lang)
		if err != nil {
			r.log.Error("render: highlight failed", zap.String("lang", lang), zap.Error(err))
			return match
		}
		return out
	})
}
