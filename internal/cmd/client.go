package cmd

import (
	"time"

	"github.com/jimezsa/tecnoscrape/internal/config"
	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/jimezsa/tecnoscrape/internal/network"
	"github.com/jimezsa/tecnoscrape/internal/scraper"
)

const proxyBanDuration = 10 * time.Minute

// newDoer builds the outbound client shared by scrape and offer.
var newDoer = func(opts network.Options) (scraper.Doer, error) {
	return network.NewClient(opts)
}

// newSiteClient loads proxies and returns the run client together with the
// scraper settings derived from the config.
func newSiteClient(ctx *Context, proxiesFlag string) (scraper.Doer, models.ScraperConfig, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, models.ScraperConfig{}, err
	}
	scfg := ctx.Config.ScraperConfig(proxies)

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, scfg, err
		}
	}

	client, err := newDoer(network.Options{
		Timeout:        scfg.Timeout,
		UserAgents:     scfg.UserAgents,
		AcceptLanguage: scfg.AcceptLanguage,
		MaxRPS:         scfg.MaxRPS,
		Rotator:        rotator,
	})
	if err != nil {
		return nil, scfg, err
	}
	return client, scfg, nil
}
