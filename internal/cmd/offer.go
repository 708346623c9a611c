package cmd

import (
	"fmt"

	"github.com/jimezsa/tecnoscrape/internal/export"
	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/jimezsa/tecnoscrape/internal/scraper"
)

type OfferCmd struct {
	URL      string `arg:"" help:"Offer URL or site path (for example /data-engineer/python/rf-1234)."`
	Category string `help:"Category recorded on the offer." default:""`
	Format   string `help:"Output format: csv, json, md, tsv." enum:",csv,json,md,tsv" default:""`
	Links    string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Proxies  string `help:"Comma-separated proxy URLs." env:"TECNOSCRAPE_PROXIES"`
}

func (o *OfferCmd) Run(ctx *Context) error {
	client, scfg, err := newSiteClient(ctx, o.Proxies)
	if err != nil {
		return err
	}

	site := scraper.NewTecnoempleo(client, scfg, ctx.Logger)
	link := site.ResolveLink(o.URL)
	if link == "" {
		return fmt.Errorf("offer URL is required")
	}

	category := o.Category
	if category == "" {
		category = models.Sentinel
	}

	offer, err := site.ExtractOffer(ctx.runContext(), link, category)
	if err != nil {
		return err
	}

	format := export.FormatMarkdown
	if o.Format != "" || ctx.JSONOutput || ctx.PlainText {
		format, err = resolveFormat(ctx, ScrapeOptions{Format: o.Format}, stdoutPath)
		if err != nil {
			return err
		}
	}
	return writeOffers(ctx, ctx.Out, []models.Offer{offer}, format, o.Links)
}
