package ui

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// CodeBlock is a fenced block found in a reply.
type CodeBlock struct {
	Language string
	Code     string
}

var fencePattern = regexp.MustCompile("(?s)```([\\w+#.-]*)[^\\n]*\\n(.*?)```")

// ExtractCodeBlocks returns the fenced code blocks of a Markdown text in order.
func ExtractCodeBlocks(markdown string) []CodeBlock {
	matches := fencePattern.FindAllStringSubmatch(markdown, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, CodeBlock{
			Language: strings.ToLower(m[1]),
			Code:     strings.TrimRight(m[2], "\n"),
		})
	}
	return blocks
}

// HighlightCode colors code for a 256-color terminal. An unknown language is
// guessed from the content.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
