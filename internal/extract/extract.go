// Package extract turns fetched or submitted content into plain text suitable
// for an enrichment prompt.
package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// MaxTextLength caps extracted text so a single page cannot blow up the
// enrichment context.
const MaxTextLength = 50000

// skippedElements are HTML containers whose text is navigation or plumbing,
// not content.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"footer":   true,
	"noscript": true,
}

// FromHTML extracts visible plain text from an HTML document, skipping
// script/style/nav/footer subtrees and collapsing whitespace. The result is
// capped at MaxTextLength characters. Malformed markup is tolerated; the
// parser never fails on real-world pages.
func FromHTML(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	var builder strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			builder.WriteString(n.Data)
			builder.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return clamp(collapseWhitespace(builder.String()))
}

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// FromMarkdown flattens markdown content to plain text by walking the
// goldmark AST and collecting text segments.
func FromMarkdown(content []byte) string {
	reader := text.NewReader(content)
	doc := markdownParser.Parser().Parse(reader)

	var builder strings.Builder
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			builder.Write(segment.Value(content))
			builder.WriteString(" ")
		case *ast.String:
			builder.Write(v.Value)
			builder.WriteString(" ")
		}
		return ast.WalkContinue, nil
	})

	return clamp(collapseWhitespace(builder.String()))
}

// collapseWhitespace reduces all whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clamp(s string) string {
	if len(s) <= MaxTextLength {
		return s
	}
	limit := MaxTextLength
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
