package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/config"
	"github.com/jimezsa/tecnoscrape/internal/export"
	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/jimezsa/tecnoscrape/internal/scraper"
	"github.com/jimezsa/tecnoscrape/internal/seen"
	"github.com/jimezsa/tecnoscrape/internal/ui"
	"github.com/muesli/termenv"
)

type ScrapeCmd struct {
	Categories string `arg:"" optional:"" help:"Comma-separated category slugs (default: configured categories)."`
	ScrapeOptions
}

type ScrapeOptions struct {
	MaxPages   int    `help:"Stop each category after N listing pages (0 keeps the configured cap)."`
	Format     string `help:"Output format: csv, json, md, tsv." enum:",csv,json,md,tsv" default:""`
	Links      string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output     string `name:"output" short:"o" help:"Write output to a file; - writes to stdout. Defaults to the configured output file."`
	Out        string `name:"out" help:"Alias for --output."`
	Proxies    string `help:"Comma-separated proxy URLs." env:"TECNOSCRAPE_PROXIES"`
	Seen       string `help:"Path to seen offers JSON file."`
	NewOnly    bool   `help:"Skip offers already in --seen before fetching them (requires --seen)."`
	NewOut     string `help:"Write unseen offers JSON to a file (requires --seen)."`
	SeenUpdate bool   `help:"Merge the unseen offers into --seen after the run (requires --seen)."`
}

const stdoutPath = "-"

func (s *ScrapeCmd) Run(ctx *Context) error {
	return runScrape(ctx, s.Categories, s.ScrapeOptions)
}

func runScrape(ctx *Context, rawCategories string, opts ScrapeOptions) error {
	seenPath := strings.TrimSpace(opts.Seen)
	if opts.NewOnly && seenPath == "" {
		return fmt.Errorf("--new-only requires --seen")
	}
	if strings.TrimSpace(opts.NewOut) != "" && seenPath == "" {
		return fmt.Errorf("--new-out requires --seen")
	}
	if opts.SeenUpdate && seenPath == "" {
		return fmt.Errorf("--seen-update requires --seen")
	}

	categories, err := resolveCategories(rawCategories, ctx.Config.Categories)
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(ctx, opts)
	if !isStdout(outputPath) && pathsEqual(outputPath, opts.NewOut) {
		return fmt.Errorf("--new-out path must differ from --output")
	}
	if !isStdout(outputPath) && pathsEqual(outputPath, seenPath) {
		return fmt.Errorf("--output path must differ from --seen")
	}
	if pathsEqual(opts.NewOut, seenPath) {
		return fmt.Errorf("--new-out path must differ from --seen")
	}

	format, err := resolveFormat(ctx, opts, outputPath)
	if err != nil {
		return err
	}

	var seenOffers []models.Offer
	if seenPath != "" {
		seenOffers, err = seen.ReadOffersAllowMissing(seenPath)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
	}

	client, scfg, err := newSiteClient(ctx, opts.Proxies)
	if err != nil {
		return err
	}
	if opts.MaxPages > 0 {
		scfg.MaxPages = opts.MaxPages
	}

	indicator := startHarvestIndicator(ctx)

	saved := false
	sink := outputSink(ctx, outputPath, format, opts.Links)
	harvestOpts := []scraper.HarvesterOption{
		scraper.WithSink(scraper.SinkFunc(func(offers []models.Offer) error {
			indicator.stop()
			if err := sink.Save(offers); err != nil {
				return err
			}
			saved = true
			return nil
		})),
		scraper.WithProgress(func(p scraper.CategoryProgress) {
			reportProgress(ctx, indicator, p)
		}),
	}
	if opts.NewOnly {
		harvestOpts = append(harvestOpts, scraper.WithSkip(seen.NewSet(seenOffers).Contains))
	}

	_, harvester := scraper.New(client, scfg, ctx.Logger, harvestOpts...)
	offers, runErr := harvester.Run(ctx.runContext(), categories)
	indicator.stop()

	if !saved {
		return runErr
	}
	if !isStdout(outputPath) && ctx.UI != nil {
		ctx.UI.Successf("Saved %d offers to %s", len(offers), outputPath)
	}
	if errors.Is(runErr, context.Canceled) && ctx.UI != nil {
		ctx.UI.Warnf("Interrupted: kept the %d offers harvested so far.", len(offers))
	}

	unseenOffers := offers
	if seenPath != "" {
		unseenOffers, _ = seen.Diff(offers, seenOffers)
	}

	if strings.TrimSpace(opts.NewOut) != "" {
		if err := seen.WriteOffers(opts.NewOut, unseenOffers); err != nil {
			return fmt.Errorf("write --new-out: %w", err)
		}
	}

	if opts.SeenUpdate {
		if err := updateSeenHistory(seenPath, unseenOffers); err != nil {
			return err
		}
	}

	printScrapeSummary(ctx, unseenOffers)
	return runErr
}

func resolveCategories(raw string, configured []string) ([]string, error) {
	source := config.SplitCSV(raw)
	if len(source) == 0 {
		source = configured
	}
	categories := scraper.NormalizeCategories(source)
	if len(categories) == 0 {
		return nil, fmt.Errorf("at least one category is required")
	}
	return categories, nil
}

func isStdout(path string) bool {
	path = strings.TrimSpace(path)
	return path == "" || path == stdoutPath
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func updateSeenHistory(seenPath string, inputOffers []models.Offer) error {
	seenOffers, err := seen.ReadOffersAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	merged, _ := seen.Merge(seenOffers, inputOffers)
	if err := seen.WriteOffers(seenPath, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}

	return nil
}

func outputSink(ctx *Context, outputPath string, format export.Format, links string) scraper.Sink {
	if !isStdout(outputPath) {
		return export.NewFileSink(outputPath, format)
	}
	return scraper.SinkFunc(func(offers []models.Offer) error {
		return writeOffers(ctx, ctx.Out, offers, format, links)
	})
}

func writeOffers(ctx *Context, w io.Writer, offers []models.Offer, format export.Format, links string) error {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(w)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteOffers(w, offers, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func printScrapeSummary(ctx *Context, offers []models.Offer) {
	if ctx == nil || ctx.UI == nil {
		return
	}
	ctx.UI.Summary(len(offers), countOffersByCategory(offers))
}

func formatScrapeSummary(offers []models.Offer) string {
	return ui.FormatSummary(len(offers), countOffersByCategory(offers))
}

func countOffersByCategory(offers []models.Offer) []ui.CategoryCount {
	totals := make(map[string]int, len(offers))
	for _, offer := range offers {
		category := "unknown"
		if !models.IsSentinel(offer.Category) {
			category = strings.ToLower(strings.TrimSpace(offer.Category))
		}
		totals[category]++
	}

	counts := make([]ui.CategoryCount, 0, len(totals))
	for category, total := range totals {
		counts = append(counts, ui.CategoryCount{Category: category, Total: total})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Category < counts[j].Category
	})
	return counts
}

func resolveOutputPath(ctx *Context, opts ScrapeOptions) string {
	if opts.Output != "" {
		return opts.Output
	}
	if opts.Out != "" {
		return opts.Out
	}
	if ctx.JSONOutput || ctx.PlainText {
		return stdoutPath
	}
	if strings.TrimSpace(ctx.Config.Output) != "" {
		return ctx.Config.Output
	}
	return stdoutPath
}

func resolveFormat(ctx *Context, opts ScrapeOptions, outputPath string) (export.Format, error) {
	if !isStdout(outputPath) {
		if ctx.JSONOutput {
			return export.FormatJSON, nil
		}
		if ctx.PlainText {
			return export.FormatTSV, nil
		}
		if opts.Format == "" {
			return export.FormatFromPath(outputPath), nil
		}
		return parseFormat(opts.Format)
	}

	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if opts.Format != "" {
		return parseFormat(opts.Format)
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func reportProgress(ctx *Context, indicator *harvestIndicator, p scraper.CategoryProgress) {
	if ctx == nil || ctx.UI == nil {
		return
	}
	indicator.printLine(func() {
		ctx.UI.CategoryProgress(p.Category, p.Links, p.Offers)
	})
}

// harvestIndicator draws a spinner on stderr while a harvest runs. Lines
// printed through printLine clear the spinner row first.
type harvestIndicator struct {
	out      io.Writer
	mu       sync.Mutex
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func startHarvestIndicator(ctx *Context) *harvestIndicator {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	indicator := &harvestIndicator{
		out:     ctx.Err,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go indicator.loop()
	return indicator
}

func (h *harvestIndicator) loop() {
	defer close(h.stopped)
	start := time.Now()
	frames := []string{"|", "/", "-", "\\"}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for index := 0; ; index++ {
		select {
		case <-h.done:
			h.mu.Lock()
			fmt.Fprint(h.out, "\r\033[2K")
			h.mu.Unlock()
			return
		case <-ticker.C:
			seconds := int(time.Since(start).Seconds())
			h.mu.Lock()
			fmt.Fprintf(h.out, "\r\033[2KHarvesting... %ds %s", seconds, frames[index%len(frames)])
			h.mu.Unlock()
		}
	}
}

func (h *harvestIndicator) printLine(print func()) {
	if h == nil {
		print()
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprint(h.out, "\r\033[2K")
	print()
}

func (h *harvestIndicator) stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		close(h.done)
		<-h.stopped
	})
}
