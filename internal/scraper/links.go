package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/tecnoscrape/internal/extract"
	"github.com/jimezsa/tecnoscrape/internal/models"
)

const (
	// Pages with fewer links than this count as low-yield.
	lowYieldLinks = 10
	// Consecutive low-yield pages that end a category.
	lowYieldPages = 2
)

// DiscoverLinks pages through the listings of category and returns every
// posting link found, paired with the date shown next to it. Pagination ends
// on a failed fetch, an empty page, a page identical to the previous one, two
// consecutive low-yield pages, or the MaxPages cap. Only context cancellation
// is reported as an error.
func (t *Tecnoempleo) DiscoverLinks(ctx context.Context, category string) ([]models.CandidateLink, error) {
	log := t.logger.With().Str("category", category).Logger()

	var (
		results   []models.CandidateLink
		previous  map[string]struct{}
		lowStreak int
	)

	for page := 1; ; {
		if t.cfg.MaxPages > 0 && page > t.cfg.MaxPages {
			log.Info().Int("page", page).Msg("page cap reached")
			break
		}

		target := listingURL(t.cfg.BaseURL, category, page)
		doc, err := fetchDocument(ctx, t.client, target, t.cfg.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			log.Warn().Err(err).Int("page", page).Str("url", target).Msg("end of listings")
			break
		}

		links := postingLinks(doc, t.cfg.BaseURL)
		if len(links) == 0 {
			log.Info().Int("page", page).Msg("no results, done")
			break
		}

		current := make(map[string]struct{}, len(links))
		pairs := make([]models.CandidateLink, 0, len(links))
		for _, link := range links {
			current[link] = struct{}{}
			pairs = append(pairs, models.CandidateLink{
				URL:         link,
				ListingDate: listingDate(doc, t.cfg.BaseURL, link),
			})
		}

		if sameLinks(current, previous) {
			log.Info().Int("page", page).Msg("repeated page, done")
			break
		}

		results = append(results, pairs...)
		previous = current
		log.Info().Int("page", page).Int("links", len(pairs)).Msg("listing page")

		page++
		if err := t.sleep(ctx, t.cfg.ListingDelay); err != nil {
			return results, err
		}

		if len(current) < lowYieldLinks {
			lowStreak++
			if lowStreak >= lowYieldPages {
				log.Info().Int("page", page-1).Msg("results dried up, done")
				break
			}
		} else {
			lowStreak = 0
		}
	}

	log.Info().Int("links", len(results)).Msg("links collected")
	return results, nil
}

// postingLinks returns the absolute posting URLs on a listing page, first occurrence order.
func postingLinks(doc *goquery.Document, base string) []string {
	var links []string
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if !isPostingHref(href) {
			return
		}
		link := absoluteURL(base, href)
		if link == "" {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}

// listingDate looks the link up again on the page and reads a date out of
// the nearest div around its first anchor.
func listingDate(doc *goquery.Document, base string, link string) string {
	path := strings.TrimPrefix(link, base)
	if path == "" {
		return models.Sentinel
	}

	anchor := doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.AttrOr("href", ""), path)
	}).First()
	if anchor.Length() == 0 {
		return models.Sentinel
	}

	block := anchor.ParentsFiltered("div").First()
	if block.Length() == 0 {
		return models.Sentinel
	}
	return extract.FindDate(extract.VisibleText(block))
}

func sameLinks(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for link := range a {
		if _, ok := b[link]; !ok {
			return false
		}
	}
	return true
}
