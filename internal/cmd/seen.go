package cmd

import (
	"fmt"

	"github.com/jimezsa/tecnoscrape/internal/export"
	"github.com/jimezsa/tecnoscrape/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write unseen offers (A-B) to JSON."`
	Update SeenUpdateCmd `cmd:"" help:"Merge new offers into seen history JSON."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new offers JSON file (A)."`
	Seen  string `name:"seen" required:"" help:"Path to seen offers JSON file (B), keyed by link. Missing file is treated as empty."`
	Out   string `name:"out" help:"Output path for unseen offers JSON file (C). Without it the offers are printed."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to seen offers JSON file (B), keyed by link. Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to input offers JSON file to merge into seen history."`
	Out   string `name:"out" help:"Output path for updated seen offers JSON. Defaults to --seen."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	newOffers, err := seen.ReadOffers(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenOffers, err := seen.ReadOffersAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseenOffers, stats := seen.Diff(newOffers, seenOffers)
	if c.Out != "" {
		if err := seen.WriteOffers(c.Out, unseenOffers); err != nil {
			return fmt.Errorf("write --out: %w", err)
		}
	} else {
		format, err := resolveFormat(ctx, ScrapeOptions{}, stdoutPath)
		if err != nil {
			return err
		}
		if err := writeOffers(ctx, ctx.Out, unseenOffers, format, string(export.LinkStyleFull)); err != nil {
			return err
		}
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_new=%d total_seen=%d invalid_skipped=%d unseen_emitted=%d\n",
			stats.TotalNew,
			stats.TotalSeen,
			stats.InvalidSkipped(),
			stats.Unseen,
		)
		return err
	}

	return nil
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenOffers, err := seen.ReadOffersAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	inputOffers, err := seen.ReadOffers(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	out := c.Out
	if out == "" {
		out = c.Seen
	}

	mergedOffers, stats := seen.Merge(seenOffers, inputOffers)
	if err := seen.WriteOffers(out, mergedOffers); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
			stats.TotalSeen,
			stats.TotalInput,
			stats.InvalidSkipped(),
			stats.Added,
			stats.TotalOut,
		)
		return err
	}

	return nil
}
