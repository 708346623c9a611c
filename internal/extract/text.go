package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// VisibleText joins the text nodes under sel with single spaces, skipping
// script, style, noscript and template content.
func VisibleText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var parts []string
	for _, node := range sel.Nodes {
		walkText(node, func(text string) bool {
			if text = collapse(text); text != "" {
				parts = append(parts, text)
			}
			return true
		})
	}
	return strings.Join(parts, " ")
}

// FirstTextNode returns the first visible text node under sel accepted by match.
func FirstTextNode(sel *goquery.Selection, match func(string) bool) (string, bool) {
	if sel == nil {
		return "", false
	}
	var found string
	ok := false
	for _, node := range sel.Nodes {
		walkText(node, func(text string) bool {
			if match(text) {
				found, ok = text, true
				return false
			}
			return true
		})
		if ok {
			break
		}
	}
	return found, ok
}

// walkText visits text nodes depth-first in document order until visit returns false.
func walkText(n *html.Node, visit func(string) bool) bool {
	switch n.Type {
	case html.TextNode:
		return visit(n.Data)
	case html.CommentNode, html.DoctypeNode:
		return true
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return true
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if !walkText(child, visit) {
			return false
		}
	}
	return true
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// TruncateRunes cuts value to at most max runes.
func TruncateRunes(value string, max int) string {
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max])
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(value string) string {
	if value == "" {
		return value
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + strings.ToLower(value[size:])
}
