package scraper

import (
	"strings"

	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/rs/zerolog"
)

const SiteTecnoempleo = "tecnoempleo"

// New builds the site scraper and the harvester that drives it.
func New(client Doer, cfg models.ScraperConfig, logger zerolog.Logger, opts ...HarvesterOption) (*Tecnoempleo, *Harvester) {
	site := NewTecnoempleo(client, cfg, logger)
	base := []HarvesterOption{WithDetailDelay(cfg.DetailDelay)}
	return site, NewHarvester(site, site, logger, append(base, opts...)...)
}

// NormalizeCategories lower-cases and trims category slugs, dropping blanks
// and repeats while keeping order.
func NormalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := map[string]struct{}{}
	for _, category := range categories {
		category = strings.ToLower(strings.TrimSpace(category))
		category = strings.Join(strings.Fields(category), "-")
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	return out
}
