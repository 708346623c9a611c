package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/tecnoscrape/internal/models"
)

// Field names one output column of a posting.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPublishedAt Field = "published_at"
	FieldCompany     Field = "company"
	FieldContract    Field = "contract"
	FieldSalary      Field = "salary"
	FieldExperience  Field = "experience"
	FieldLocation    Field = "location"
	FieldSkills      Field = "skills"
)

// Values holds the result of applying a Table. Every field a rule ran for is
// present, either with a value or the sentinel.
type Values map[Field]string

// Get returns the value for field, or "" when it is missing or the sentinel.
func (v Values) Get(field Field) string {
	value, ok := v[field]
	if !ok || value == models.Sentinel {
		return ""
	}
	return value
}

// Matcher tries to derive a field value from a page.
type Matcher interface {
	Match(p *Page, values Values) (string, bool)
}

// Rule derives one field. Matchers are tried in order and the first hit wins;
// when none hits the field is the sentinel.
type Rule struct {
	Field    Field
	Matchers []Matcher
}

func (r Rule) Apply(p *Page, values Values) string {
	for _, matcher := range r.Matchers {
		if value, ok := matcher.Match(p, values); ok {
			return value
		}
	}
	return models.Sentinel
}

// Table is an ordered rule list. Later rules may read earlier fields through FieldValue.
type Table []Rule

func (t Table) Apply(p *Page) Values {
	values := make(Values, len(t))
	for _, rule := range t {
		values[rule.Field] = rule.Apply(p, values)
	}
	return values
}

// Regex matches Pattern against Source. Format receives the submatches and
// may reject the match by returning "". Without Format the first group (or
// the whole match) is used.
type Regex struct {
	Source  Source
	Pattern *regexp.Regexp
	Format  func(match []string) string
}

func (m Regex) Match(p *Page, values Values) (string, bool) {
	match := m.Pattern.FindStringSubmatch(m.Source(p, values))
	if match == nil {
		return "", false
	}
	var value string
	if m.Format != nil {
		value = m.Format(match)
	} else if len(match) > 1 {
		value = match[1]
	} else {
		value = match[0]
	}
	return value, value != ""
}

// Contains yields Value when Phrase occurs in Source.
type Contains struct {
	Source Source
	Phrase string
	Value  string
}

func (m Contains) Match(p *Page, values Values) (string, bool) {
	if !strings.Contains(m.Source(p, values), m.Phrase) {
		return "", false
	}
	return m.Value, true
}

// FirstKeyword yields the first keyword, in list order, contained in Source.
type FirstKeyword struct {
	Source   Source
	Keywords []string
	Format   func(string) string
}

func (m FirstKeyword) Match(p *Page, values Values) (string, bool) {
	text := m.Source(p, values)
	for _, keyword := range m.Keywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		if m.Format != nil {
			return m.Format(keyword), true
		}
		return keyword, true
	}
	return "", false
}

// KeywordSet yields every keyword contained in Source, sorted and joined by Sep.
type KeywordSet struct {
	Source   Source
	Keywords []string
	Sep      string
}

func (m KeywordSet) Match(p *Page, values Values) (string, bool) {
	text := m.Source(p, values)
	seen := map[string]struct{}{}
	var found []string
	for _, keyword := range m.Keywords {
		if _, ok := seen[keyword]; ok {
			continue
		}
		if strings.Contains(text, keyword) {
			seen[keyword] = struct{}{}
			found = append(found, keyword)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Strings(found)
	return strings.Join(found, m.Sep), true
}

// Selector yields the visible text of the first element matching Selector
// and, when set, Filter.
type Selector struct {
	Selector string
	Filter   func(*goquery.Selection) bool
}

func (m Selector) Match(p *Page, _ Values) (string, bool) {
	sel := p.Doc.Find(m.Selector)
	if m.Filter != nil {
		sel = sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return m.Filter(s)
		})
	}
	sel = sel.First()
	if sel.Length() == 0 {
		return "", false
	}
	text := VisibleText(sel)
	return text, text != ""
}

// Prefix yields the first Runes runes of Source.
type Prefix struct {
	Source Source
	Runes  int
}

func (m Prefix) Match(p *Page, values Values) (string, bool) {
	value := TruncateRunes(m.Source(p, values), m.Runes)
	return value, value != ""
}

// TextNode finds the first text node matching Marker and applies Pattern
// within that node only.
type TextNode struct {
	Marker  *regexp.Regexp
	Pattern *regexp.Regexp
	Format  func(string) string
}

func (m TextNode) Match(p *Page, _ Values) (string, bool) {
	node, ok := FirstTextNode(p.Doc.Selection, m.Marker.MatchString)
	if !ok {
		return "", false
	}
	match := m.Pattern.FindStringSubmatch(node)
	if match == nil {
		return "", false
	}
	value := match[len(match)-1]
	if m.Format != nil {
		value = m.Format(value)
	}
	return value, value != ""
}

// ClassContains reports whether any class of s contains needle, ignoring case.
func ClassContains(needle string) func(*goquery.Selection) bool {
	needle = strings.ToLower(needle)
	return func(s *goquery.Selection) bool {
		for _, class := range strings.Fields(s.AttrOr("class", "")) {
			if strings.Contains(strings.ToLower(class), needle) {
				return true
			}
		}
		return false
	}
}
