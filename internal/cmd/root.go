package cmd

import (
	"github.com/alecthomas/kong"
)

const appName = "tecnoscrape"

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version    VersionCmd    `cmd:"" help:"Print version."`
	Config     ConfigCmd     `cmd:"" help:"Manage configuration."`
	Scrape     ScrapeCmd     `cmd:"" default:"withargs" help:"Harvest job offers for one or more categories."`
	Offer      OfferCmd      `cmd:"" help:"Extract a single job offer page."`
	Categories CategoriesCmd `cmd:"" help:"List the categories harvested by default."`
	Seen       SeenCmd       `cmd:"" help:"Seen offers utilities."`
	Proxies    ProxiesCmd    `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
