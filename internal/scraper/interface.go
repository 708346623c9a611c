package scraper

import (
	"context"
	"errors"

	"github.com/jimezsa/tecnoscrape/internal/models"
)

// ErrOfferUnavailable means a posting page could not be fetched; the link is skipped.
var ErrOfferUnavailable = errors.New("offer unavailable")

// LinkSource lists the postings of one category.
type LinkSource interface {
	DiscoverLinks(ctx context.Context, category string) ([]models.CandidateLink, error)
}

// OfferSource turns one posting link into a record.
type OfferSource interface {
	ExtractOffer(ctx context.Context, link string, category string) (models.Offer, error)
}

// Sink receives the records of a finished run.
type Sink interface {
	Save(offers []models.Offer) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(offers []models.Offer) error

func (f SinkFunc) Save(offers []models.Offer) error {
	return f(offers)
}
