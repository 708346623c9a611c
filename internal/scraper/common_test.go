package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/network"
)

func TestAbsoluteURL(t *testing.T) {
	base := "https://www.tecnoempleo.com/ofertas-trabajo/"
	cases := []struct {
		href string
		want string
	}{
		{"/data-engineer/python/rf-1", "https://www.tecnoempleo.com/data-engineer/python/rf-1"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.tecnoempleo.com/asset", "https://cdn.tecnoempleo.com/asset"},
		{"rf-2", "https://www.tecnoempleo.com/ofertas-trabajo/rf-2"},
		{"", ""},
	}

	for _, tc := range cases {
		got := absoluteURL(base, tc.href)
		if got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestFetchDocument(t *testing.T) {
	site := newFakeSite()
	site.detail(postingURL(1), "<html><body><h1>Oferta</h1></body></html>")
	site.pages[postingURL(2)] = fakeResponse{status: 503}
	site.pages[postingURL(3)] = fakeResponse{err: errConnRefused}

	doc, err := fetchDocument(context.Background(), site, postingURL(1), time.Second)
	if err != nil {
		t.Fatalf("fetchDocument() error = %v", err)
	}
	if doc.Find("h1").Text() != "Oferta" {
		t.Fatalf("unexpected document")
	}

	_, err = fetchDocument(context.Background(), site, postingURL(2), 0)
	if !errors.Is(err, network.ErrRequestFailed) || err.Error() != "request failed: http 503" {
		t.Fatalf("expected wrapped http error, got %v", err)
	}

	_, err = fetchDocument(context.Background(), site, postingURL(3), 0)
	if !errors.Is(err, network.ErrRequestFailed) || !errors.Is(err, errConnRefused) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), 0); err != nil {
		t.Fatalf("zero pause should return immediately, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancelled pause should not wait")
	}
}
