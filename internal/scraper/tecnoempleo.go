package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/extract"
	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://www.tecnoempleo.com"

const DefaultDetailDelay = 500 * time.Millisecond

// Posting pages carry an "/rf-<id>" segment in their path.
var postingHref = regexp.MustCompile(`(?i)/rf-`)

// Tecnoempleo walks the tecnoempleo.com listings and posting pages through a
// single shared client.
type Tecnoempleo struct {
	client Doer
	cfg    models.ScraperConfig
	rules  extract.Table
	logger zerolog.Logger
	sleep  func(context.Context, time.Duration) error
}

func NewTecnoempleo(client Doer, cfg models.ScraperConfig, logger zerolog.Logger) *Tecnoempleo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Tecnoempleo{
		client: client,
		cfg:    cfg,
		rules:  extract.PostingRules(),
		logger: logger.With().Str("site", SiteTecnoempleo).Logger(),
		sleep:  sleepContext,
	}
}

// listingURL builds the search page URL; hyphens in the slug become spaces in the query.
func listingURL(base string, category string, page int) string {
	query := url.QueryEscape(strings.ReplaceAll(category, "-", " "))
	return fmt.Sprintf("%s/ofertas-trabajo/?te=%s&pagina=%d", strings.TrimRight(base, "/"), query, page)
}

func isPostingHref(href string) bool {
	return postingHref.MatchString(href)
}

// ListingURL returns the URL of one results page for category.
func (t *Tecnoempleo) ListingURL(category string, page int) string {
	return listingURL(t.cfg.BaseURL, category, page)
}

// ResolveLink turns a posting href, relative or absolute, into a full URL.
func (t *Tecnoempleo) ResolveLink(href string) string {
	return absoluteURL(t.cfg.BaseURL, strings.TrimSpace(href))
}
