package extract

import (
	"strings"
	"testing"

	"github.com/jimezsa/tecnoscrape/internal/models"
)

const postingHTML = `<!doctype html>
<html>
<head><title>Data Engineer</title><script>var publicado = "01/01/1999";</script></head>
<body>
  <h1>Data Engineer</h1>
  <div class="fs-14 Offer-Description">Oferta en Acme Corp - tecnoempleo. Buscamos perfil con 3 años de experiencia en Python y SQL.</div>
  <ul>
    <li>Publicado el 05/03/2024</li>
    <li>Contrato indefinido</li>
    <li>Salario 35.000 € brutos</li>
    <li>Ubicación: Barcelona (híbrido)</li>
  </ul>
  <p>Stack: Spark, Docker, Airflow.</p>
</body>
</html>`

func TestPostingRules(t *testing.T) {
	page := NewPage(mustDoc(t, postingHTML))
	values := PostingRules().Apply(page)

	want := map[Field]string{
		FieldTitle:       "Data Engineer",
		FieldPublishedAt: "2024-03-05",
		FieldCompany:     "Acme Corp",
		FieldContract:    "Indefinido",
		FieldSalary:      "35.000€",
		FieldExperience:  "3 años",
		FieldLocation:    "Barcelona",
	}
	for field, value := range want {
		if got := values[field]; got != value {
			t.Fatalf("%s = %q, want %q", field, got, value)
		}
	}

	if !strings.HasPrefix(values[FieldDescription], "Oferta en Acme Corp - tecnoempleo.") {
		t.Fatalf("unexpected description: %q", values[FieldDescription])
	}

	skills := strings.Split(values[FieldSkills], ", ")
	for _, skill := range []string{"airflow", "docker", "python", "spark", "sql"} {
		if !containsString(skills, skill) {
			t.Fatalf("skills %q missing %q", values[FieldSkills], skill)
		}
	}
	if !sortedStrings(skills) {
		t.Fatalf("skills not sorted: %q", values[FieldSkills])
	}
}

func TestPostingRulesSentinels(t *testing.T) {
	page := NewPage(mustDoc(t, `<html><body><p>Nada que ver aquí</p></body></html>`))
	values := PostingRules().Apply(page)

	for _, field := range []Field{FieldTitle, FieldPublishedAt, FieldCompany, FieldContract, FieldSalary, FieldExperience, FieldLocation} {
		if values[field] != models.Sentinel {
			t.Fatalf("%s = %q, want sentinel", field, values[field])
		}
	}
	// Description falls back to the page text.
	if values[FieldDescription] != "Nada que ver aquí" {
		t.Fatalf("description = %q", values[FieldDescription])
	}
}

func TestDescriptionFallbackIsPrefix(t *testing.T) {
	body := strings.Repeat("ñ", 400)
	page := NewPage(mustDoc(t, "<html><body><p>"+body+"</p></body></html>"))

	got := PostingRules().Apply(page)[FieldDescription]
	if got != strings.Repeat("ñ", descriptionFallbackRunes) {
		t.Fatalf("unexpected fallback description length %d", len([]rune(got)))
	}
}

func TestExperienceRule(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Se requieren 3 años de experiencia", "3 años"},
		{"mínimo 1 año de experiencia", "1 años"},
		{"Puesto sin experiencia previa", "Sin experiencia"},
		{"Experiencia deseable", models.Sentinel},
	}

	for _, tc := range cases {
		page := NewPage(mustDoc(t, "<p>"+tc.text+"</p>"))
		if got := PostingRules().Apply(page)[FieldExperience]; got != tc.want {
			t.Fatalf("experience(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestContractAndLocationPriority(t *testing.T) {
	page := NewPage(mustDoc(t, "<p>Trabajo remoto desde Valencia, contrato Freelance</p>"))
	values := PostingRules().Apply(page)

	// Contract takes the first occurrence in the text, location the first keyword in list order.
	if values[FieldContract] != "Remoto" {
		t.Fatalf("contract = %q, want Remoto", values[FieldContract])
	}
	if values[FieldLocation] != "Valencia" {
		t.Fatalf("location = %q, want Valencia", values[FieldLocation])
	}
}

func TestSalaryRule(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Salario: 40.000 euros", "40.000euros"},
		{"Banda 45k-55k", "45k"},
		{"Hasta 1,500 €", "1,500€"},
		{"Salario a convenir", models.Sentinel},
	}

	for _, tc := range cases {
		page := NewPage(mustDoc(t, "<p>"+tc.text+"</p>"))
		if got := PostingRules().Apply(page)[FieldSalary]; got != tc.want {
			t.Fatalf("salary(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestVocabularyValues(t *testing.T) {
	page := NewPage(mustDoc(t, postingHTML))
	values := PostingRules().Apply(page)

	contracts := map[string]bool{}
	for _, keyword := range contractKeywords {
		contracts[Capitalize(keyword)] = true
	}
	if !contracts[values[FieldContract]] {
		t.Fatalf("contract %q outside vocabulary", values[FieldContract])
	}

	locations := map[string]bool{}
	for _, keyword := range locationKeywords {
		locations[Capitalize(keyword)] = true
	}
	if !locations[values[FieldLocation]] {
		t.Fatalf("location %q outside vocabulary", values[FieldLocation])
	}

	for _, skill := range strings.Split(values[FieldSkills], ", ") {
		if !containsString(skillKeywords, skill) {
			t.Fatalf("skill %q outside vocabulary", skill)
		}
	}
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}
