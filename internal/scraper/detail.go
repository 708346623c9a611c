package scraper

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/tecnoscrape/internal/extract"
	"github.com/jimezsa/tecnoscrape/internal/models"
)

const descriptionRunes = 250

// ExtractOffer fetches one posting page and runs the field rules over it.
// A failed fetch returns an error wrapping ErrOfferUnavailable; missing
// fields never fail, they come back as the sentinel.
func (t *Tecnoempleo) ExtractOffer(ctx context.Context, link string, category string) (models.Offer, error) {
	doc, err := fetchDocument(ctx, t.client, link, t.cfg.Timeout)
	if err != nil {
		return models.Offer{}, fmt.Errorf("%w: %w", ErrOfferUnavailable, err)
	}
	offer := offerFromDocument(doc, t.rules, link, category)
	t.logger.Debug().Str("url", link).Str("title", offer.Title).Msg("offer extracted")
	return offer, nil
}

func offerFromDocument(doc *goquery.Document, rules extract.Table, link string, category string) models.Offer {
	values := rules.Apply(extract.NewPage(doc))
	return models.Offer{
		Category:    category,
		Title:       values[extract.FieldTitle],
		Company:     values[extract.FieldCompany],
		Location:    values[extract.FieldLocation],
		Contract:    values[extract.FieldContract],
		Salary:      values[extract.FieldSalary],
		Experience:  values[extract.FieldExperience],
		PublishedAt: values[extract.FieldPublishedAt],
		Skills:      values[extract.FieldSkills],
		Description: extract.TruncateRunes(values[extract.FieldDescription], descriptionRunes),
		Link:        link,
	}.Normalize()
}
