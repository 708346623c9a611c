package models

import "strings"

// Sentinel marks a field whose extraction rule found nothing.
const Sentinel = "N/D"

// CandidateLink is a posting URL discovered on a listing page, with the
// date shown next to it when one could be recovered.
type CandidateLink struct {
	URL         string `json:"url"`
	ListingDate string `json:"listing_date"`
}

// Offer is the normalized posting produced by the detail extractor.
type Offer struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Contract    string `json:"contract"`
	Salary      string `json:"salary"`
	Experience  string `json:"experience"`
	PublishedAt string `json:"published_at"`
	Skills      string `json:"skills"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Normalize replaces blank fields with the sentinel.
func (o Offer) Normalize() Offer {
	for _, field := range []*string{
		&o.Category,
		&o.Title,
		&o.Company,
		&o.Location,
		&o.Contract,
		&o.Salary,
		&o.Experience,
		&o.PublishedAt,
		&o.Skills,
		&o.Description,
		&o.Link,
	} {
		if strings.TrimSpace(*field) == "" {
			*field = Sentinel
		}
	}
	return o
}

// IsSentinel reports whether value carries no extracted data.
func IsSentinel(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == Sentinel
}
