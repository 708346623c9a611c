package seen

import (
	"net/url"
	"strings"

	"github.com/jimezsa/tecnoscrape/internal/models"
)

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// NormalizeLink drops the fragment, a trailing slash and the host case so the
// same posting reached through slightly different hrefs shares one key.
func NormalizeLink(value string) string {
	value = strings.TrimSpace(value)
	if models.IsSentinel(value) {
		return ""
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return strings.TrimRight(value, "/")
	}
	parsed.Fragment = ""
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String()
}

// Key builds the history key for an offer: its normalized link.
func Key(offer models.Offer) (string, bool) {
	key := NormalizeLink(offer.Link)
	if key == "" {
		return "", false
	}
	return key, true
}

// Set is a lookup of already seen offer links.
type Set map[string]struct{}

// NewSet indexes the valid keys of offers.
func NewSet(offers []models.Offer) Set {
	set := make(Set, len(offers))
	for _, offer := range offers {
		if key, ok := Key(offer); ok {
			set[key] = struct{}{}
		}
	}
	return set
}

// Contains reports whether link is already in the history.
func (s Set) Contains(link string) bool {
	key := NormalizeLink(link)
	if key == "" {
		return false
	}
	_, ok := s[key]
	return ok
}

// Diff returns unseen offers from newOffers using existing seenOffers keys.
func Diff(newOffers []models.Offer, seenOffers []models.Offer) ([]models.Offer, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newOffers),
		TotalSeen: len(seenOffers),
	}

	seenKeys := make(map[string]struct{}, len(seenOffers))
	for _, offer := range seenOffers {
		key, ok := Key(offer)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newOffers))
	unseen := make([]models.Offer, 0, len(newOffers))
	for _, offer := range newOffers {
		key, ok := Key(offer)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, offer)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends unique new offers into the seen history.
// Existing seen entries win collisions.
func Merge(existingSeen []models.Offer, inputOffers []models.Offer) ([]models.Offer, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existingSeen),
		TotalInput: len(inputOffers),
	}

	keys := make(map[string]struct{}, len(existingSeen)+len(inputOffers))
	out := make([]models.Offer, 0, len(existingSeen)+len(inputOffers))

	for _, offer := range existingSeen {
		key, ok := Key(offer)
		if !ok {
			stats.InvalidSeen++
			out = append(out, offer)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, offer)
	}

	for _, offer := range inputOffers {
		key, ok := Key(offer)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, offer)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
