package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/rs/zerolog"
)

// Harvester runs categories one after another: discover the links, extract
// each posting, then hand everything to the sink.
type Harvester struct {
	links       LinkSource
	offers      OfferSource
	sink        Sink
	logger      zerolog.Logger
	detailDelay time.Duration
	skip        func(link string) bool
	progress    func(CategoryProgress)
	sleep       func(context.Context, time.Duration) error
}

// HarvesterOption customizes a Harvester.
type HarvesterOption func(*Harvester)

// WithDetailDelay sets the pause after every posting fetch.
func WithDetailDelay(d time.Duration) HarvesterOption {
	return func(h *Harvester) { h.detailDelay = d }
}

// WithSkip drops links for which skip returns true before they are fetched.
func WithSkip(skip func(link string) bool) HarvesterOption {
	return func(h *Harvester) { h.skip = skip }
}

// CategoryProgress reports how one category went once its postings are done.
type CategoryProgress struct {
	Category string
	Links    int
	Offers   int
}

// WithProgress registers a callback invoked after each completed category.
func WithProgress(progress func(CategoryProgress)) HarvesterOption {
	return func(h *Harvester) { h.progress = progress }
}

// WithSink sets where the records go once the run ends.
func WithSink(sink Sink) HarvesterOption {
	return func(h *Harvester) { h.sink = sink }
}

func NewHarvester(links LinkSource, offers OfferSource, logger zerolog.Logger, opts ...HarvesterOption) *Harvester {
	h := &Harvester{
		links:       links,
		offers:      offers,
		logger:      logger,
		detailDelay: DefaultDetailDelay,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run harvests categories in order. Each link is fetched at most once per
// run, so a posting listed under several categories keeps the first one.
// On cancellation the records gathered so far are still saved and returned
// together with the context error.
func (h *Harvester) Run(ctx context.Context, categories []string) ([]models.Offer, error) {
	var (
		offers    []models.Offer
		attempted = map[string]struct{}{}
		runErr    error
	)

categories:
	for _, category := range categories {
		log := h.logger.With().Str("category", category).Logger()
		log.Info().Msg("category start")

		candidates, err := h.links.DiscoverLinks(ctx, category)
		if err != nil {
			runErr = err
			break
		}
		log.Info().Int("links", len(candidates)).Msg("offers found")

		before := len(offers)
		for _, candidate := range candidates {
			if _, ok := attempted[candidate.URL]; ok {
				log.Debug().Str("url", candidate.URL).Msg("already harvested")
				continue
			}
			if h.skip != nil && h.skip(candidate.URL) {
				log.Debug().Str("url", candidate.URL).Msg("seen before")
				continue
			}
			attempted[candidate.URL] = struct{}{}

			offer, err := h.offers.ExtractOffer(ctx, candidate.URL, category)
			switch {
			case err == nil:
				offers = append(offers, withListingDate(offer, candidate))
			case ctx.Err() != nil:
				runErr = ctx.Err()
				break categories
			default:
				log.Warn().Err(err).Str("url", candidate.URL).Msg("offer skipped")
			}

			if err := h.sleep(ctx, h.detailDelay); err != nil {
				runErr = err
				break categories
			}
		}

		if h.progress != nil {
			h.progress(CategoryProgress{Category: category, Links: len(candidates), Offers: len(offers) - before})
		}
	}

	h.logger.Info().Int("offers", len(offers)).Msg("harvest finished")

	if h.sink != nil {
		if err := h.sink.Save(offers); err != nil {
			return offers, errors.Join(runErr, fmt.Errorf("save offers: %w", err))
		}
	}
	return offers, runErr
}

// withListingDate fills a missing publication date from the listing page.
// A date found on the posting itself always wins.
func withListingDate(offer models.Offer, candidate models.CandidateLink) models.Offer {
	if models.IsSentinel(offer.PublishedAt) && !models.IsSentinel(candidate.ListingDate) {
		offer.PublishedAt = candidate.ListingDate
	}
	return offer
}
