package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var companyPattern = regexp.MustCompile(`(?i)en\s+([a-zA-ZÁÉÍÓÚÜÑ0-9/&.,\s]+?)\s*-\s*tecnoempleo`)

// Cities and work modes that leak into the "<role> en <company> - tecnoempleo" blurb.
var companyStopWords = []string{
	"remoto",
	"híbrido",
	"madrid",
	"barcelona",
	"sevilla",
	"valencia",
	"málaga",
	"bilbao",
	"teletrabajo",
	"spain",
	"hibrido",
}

// RE2 has no lookaround and its \b only knows ASCII, so the word edges are
// captured and written back.
var companyStopPattern = regexp.MustCompile(
	`(?i)(^|[^\p{L}\p{N}_])(?:` + strings.Join(companyStopWords, "|") + `)([^\p{L}\p{N}_]|$)`,
)

var spanishLower = cases.Lower(language.Spanish)

// CleanCompany strips stop words and punctuation from a raw company candidate
// and title-cases what is left. It returns "" when fewer than two runes remain.
func CleanCompany(raw string) string {
	value := stripStopWords(raw)
	value = collapse(value)
	value = strings.Trim(value, " -.,")
	if utf8.RuneCountInString(value) < 2 {
		return ""
	}
	return titleWords(value)
}

// stripStopWords repeats until stable: adjacent stop words share the separator
// between them and a single pass consumes it.
func stripStopWords(value string) string {
	for {
		next := companyStopPattern.ReplaceAllString(value, "${1}${2}")
		if next == value {
			return value
		}
		value = next
	}
}

// titleWords upper-cases every letter that follows a non-letter and lower-cases
// the rest, so "S.L" and "O'Reilly" keep their capitals.
func titleWords(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	prevLetter := false
	for _, r := range spanishLower.String(value) {
		if unicode.IsLetter(r) {
			if !prevLetter {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func companyFromMatch(match []string) string {
	return CleanCompany(match[1])
}
