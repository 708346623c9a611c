package extract

import (
	"regexp"
	"strings"
)

const descriptionFallbackRunes = 300

var contractKeywords = []string{
	"temporal",
	"indefinido",
	"prácticas",
	"freelance",
	"autónomo",
	"fijo",
	"híbrido",
	"remoto",
	"teletrabajo",
}

// Priority order: the first keyword found wins.
var locationKeywords = []string{
	"madrid",
	"barcelona",
	"sevilla",
	"valencia",
	"bilbao",
	"remoto",
	"teletrabajo",
	"híbrido",
	"malaga",
}

var skillKeywords = []string{
	"python",
	"sql",
	"aws",
	"azure",
	"gcp",
	"spark",
	"docker",
	"tensorflow",
	"pandas",
	"r",
	"power bi",
	"ml",
	"ai",
	"java",
	"linux",
	"git",
	"big data",
	"scikit",
	"airflow",
	"kubernetes",
}

var (
	publishedMarker   = regexp.MustCompile(`(?i)publicad`)
	contractPattern   = regexp.MustCompile(`(` + strings.Join(contractKeywords, "|") + `)`)
	salaryPattern     = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*(?: ?€| euros|k))`)
	experiencePattern = regexp.MustCompile(`(\d{1,2}) ?años? de experiencia`)
)

// PostingRules is the rule table for a tecnoempleo posting page. Description
// runs before Company because the company is read out of the description.
func PostingRules() Table {
	return Table{
		{Field: FieldTitle, Matchers: []Matcher{
			Selector{Selector: "h1"},
		}},
		{Field: FieldDescription, Matchers: []Matcher{
			Selector{Selector: "[class]", Filter: ClassContains("description")},
			Prefix{Source: PageText, Runes: descriptionFallbackRunes},
		}},
		{Field: FieldPublishedAt, Matchers: []Matcher{
			TextNode{Marker: publishedMarker, Pattern: datePattern, Format: NormalizeDate},
		}},
		{Field: FieldCompany, Matchers: []Matcher{
			Regex{Source: FieldValue(FieldDescription), Pattern: companyPattern, Format: companyFromMatch},
		}},
		{Field: FieldContract, Matchers: []Matcher{
			Regex{Source: LowerText, Pattern: contractPattern, Format: func(m []string) string {
				return Capitalize(m[1])
			}},
		}},
		{Field: FieldSalary, Matchers: []Matcher{
			Regex{Source: LowerText, Pattern: salaryPattern, Format: func(m []string) string {
				return strings.ReplaceAll(m[1], " ", "")
			}},
		}},
		{Field: FieldExperience, Matchers: []Matcher{
			Regex{Source: LowerText, Pattern: experiencePattern, Format: func(m []string) string {
				return m[1] + " años"
			}},
			Contains{Source: LowerText, Phrase: "sin experiencia", Value: "Sin experiencia"},
		}},
		{Field: FieldLocation, Matchers: []Matcher{
			FirstKeyword{Source: LowerText, Keywords: locationKeywords, Format: Capitalize},
		}},
		{Field: FieldSkills, Matchers: []Matcher{
			KeywordSet{Source: LowerText, Keywords: skillKeywords, Sep: ", "},
		}},
	}
}
