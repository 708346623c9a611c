package extract

import (
	"regexp"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/models"
)

const (
	listingDateLayout = "2/1/2006"
	isoDateLayout     = "2006-01-02"
)

var datePattern = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)

// NormalizeDate converts a d/m/yyyy date into yyyy-mm-dd. Anything that does
// not parse is returned unchanged.
func NormalizeDate(value string) string {
	parsed, err := time.Parse(listingDateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(isoDateLayout)
}

// FindDate returns the first date-shaped token in text, normalized, or the
// sentinel when text has none.
func FindDate(text string) string {
	match := datePattern.FindStringSubmatch(text)
	if match == nil {
		return models.Sentinel
	}
	return NormalizeDate(match[1])
}
