package web

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var blobFormatter = html.New(
	html.WithLineNumbers(true),
	html.WithLinkableLineNumbers(true, "L"),
	html.WithClasses(false),
)

// highlightBlob renders text content as syntax-highlighted HTML, picking a
// lexer from the file name. Falls back to an escaped <pre> block when
// lexing or formatting fails, so a lexer bug never breaks the blob view.
func highlightBlob(filePath, content string) template.HTML {
	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return plainBlob(content)
	}
	var b strings.Builder
	if err := blobFormatter.Format(&b, styles.Get("github"), iterator); err != nil {
		return plainBlob(content)
	}
	return template.HTML(b.String())
}

func plainBlob(content string) template.HTML {
	return template.HTML("<pre>" + template.HTMLEscapeString(content) + "</pre>")
}
