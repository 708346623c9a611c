package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed detail page together with the text views the rules match against.
type Page struct {
	Doc   *goquery.Document
	Text  string
	Lower string
}

func NewPage(doc *goquery.Document) *Page {
	text := VisibleText(doc.Selection)
	return &Page{
		Doc:   doc,
		Text:  text,
		Lower: strings.ToLower(text),
	}
}

// Source selects the text a matcher runs against.
type Source func(p *Page, values Values) string

// PageText is the full visible text.
func PageText(p *Page, _ Values) string { return p.Text }

// LowerText is the lower-cased visible text.
func LowerText(p *Page, _ Values) string { return p.Lower }

// FieldValue reads a field extracted by an earlier rule. Sentinel values read as empty.
func FieldValue(field Field) Source {
	return func(_ *Page, values Values) string {
		return values.Get(field)
	}
}
