package models

import "time"

// ScraperConfig contains runtime options shared by the listing and detail scrapers.
type ScraperConfig struct {
	BaseURL        string
	Proxies        []string
	Timeout        time.Duration
	UserAgents     []string
	AcceptLanguage string
	MaxRPS         float64
	ListingDelay   time.Duration
	DetailDelay    time.Duration
	MaxPages       int
}
