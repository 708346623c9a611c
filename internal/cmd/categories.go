package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/tecnoscrape/internal/scraper"
)

type CategoriesCmd struct{}

type categoryRow struct {
	Category string `json:"category"`
	URL      string `json:"url"`
}

func (c *CategoriesCmd) Run(ctx *Context) error {
	site := scraper.NewTecnoempleo(nil, ctx.Config.ScraperConfig(nil), ctx.Logger)

	categories := scraper.NormalizeCategories(ctx.Config.Categories)
	rows := make([]categoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, categoryRow{Category: category, URL: site.ListingURL(category, 1)})
	}
	return writeCategoryRows(ctx, rows)
}

func writeCategoryRows(ctx *Context, rows []categoryRow) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if ctx.PlainText {
		for _, row := range rows {
			fmt.Fprintf(ctx.Out, "%s\t%s\n", row.Category, row.URL)
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "category\turl")
	for _, row := range rows {
		url := row.URL
		if ctx.UI != nil {
			url = ctx.UI.LinkText(url)
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Category, url)
	}
	return tw.Flush()
}
