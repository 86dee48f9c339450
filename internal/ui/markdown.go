package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// linkPattern matches, in order of precedence, a fenced code block (closed or
// running to the end of the text), an inline code span, an existing Markdown
// link or a bare http(s) URL. Only the last is rewritten.
var linkPattern = regexp.MustCompile("(?s:```.*?(?:```|\\z))|`[^`\n]*`|\\[[^\\]]*\\]\\([^)]*\\)|https?://[^\\s<>()\\[\\]`]+")

// Linkify rewrites bare URLs as Markdown links. URLs inside code or already
// part of a link are left alone, as is trailing sentence punctuation.
func Linkify(text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "[") || strings.HasPrefix(match, "`") {
			return match
		}
		url := strings.TrimRight(match, ".,;:!?'\"")
		rest := match[len(url):]
		return "[" + url + "](" + url + ")" + rest
	})
}

// minRenderWidth is the narrowest wrap width a Renderer accepts.
const minRenderWidth = 20

// Renderer turns assistant Markdown into styled terminal output.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

// NewRenderer builds a renderer wrapping at width. An empty style picks a
// dark or light theme from the terminal background.
func NewRenderer(style string, width int) (*Renderer, error) {
	r := &Renderer{style: style}
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

// SetWidth rebuilds the underlying renderer when the wrap width changes.
func (r *Renderer) SetWidth(width int) error {
	width = clampRenderWidth(width)
	if r.term != nil && width == r.width {
		return nil
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}

	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return err
	}
	r.term = term
	r.width = width
	return nil
}

func clampRenderWidth(width int) int {
	if width < minRenderWidth {
		return minRenderWidth
	}
	return width
}

// Render linkifies and renders text. On failure the raw text is returned.
func (r *Renderer) Render(text string) string {
	out, err := r.term.Render(Linkify(text))
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
