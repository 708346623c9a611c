package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/rs/zerolog"
)

const testBase = "https://www.tecnoempleo.com"

type fakeResponse struct {
	status int
	body   string
	err    error
}

// fakeSite serves canned pages keyed by URL; unknown URLs are 404.
type fakeSite struct {
	pages    map[string]fakeResponse
	requests []string
}

func newFakeSite() *fakeSite {
	return &fakeSite{pages: map[string]fakeResponse{}}
}

func (f *fakeSite) Do(req *fhttp.Request) (*fhttp.Response, error) {
	target := req.URL.String()
	f.requests = append(f.requests, target)

	page, ok := f.pages[target]
	if !ok {
		page = fakeResponse{status: 404}
	}
	if page.err != nil {
		return nil, page.err
	}
	return &fhttp.Response{
		StatusCode: page.status,
		Body:       io.NopCloser(strings.NewReader(page.body)),
		Request:    req,
	}, nil
}

func (f *fakeSite) listing(category string, page int, body string) {
	f.pages[listingURL(testBase, category, page)] = fakeResponse{status: 200, body: body}
}

func (f *fakeSite) detail(link string, body string) {
	f.pages[link] = fakeResponse{status: 200, body: body}
}

// listingHTML renders one result card per id, each carrying date.
func listingHTML(ids []int, date string) string {
	var b strings.Builder
	b.WriteString("<html><body><section>")
	for _, id := range ids {
		fmt.Fprintf(&b, `<div class="card"><h3><a href="/oferta-%d/rf-%d">Oferta %d</a></h3><span>%s</span></div>`, id, id, id, date)
	}
	b.WriteString(`<nav><a href="/ofertas-trabajo/?pagina=2">Siguiente</a></nav>`)
	b.WriteString("</section></body></html>")
	return b.String()
}

func postingURL(id int) string {
	return fmt.Sprintf("%s/oferta-%d/rf-%d", testBase, id, id)
}

func idRange(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

func newTestSite(t *testing.T, client Doer, cfg models.ScraperConfig) (*Tecnoempleo, *sleepRecorder) {
	t.Helper()
	if cfg.BaseURL == "" {
		cfg.BaseURL = testBase
	}
	site := NewTecnoempleo(client, cfg, zerolog.Nop())
	recorder := &sleepRecorder{}
	site.sleep = recorder.sleep
	return site, recorder
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

var errConnRefused = errors.New("connection refused")
