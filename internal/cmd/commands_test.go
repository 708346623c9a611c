package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/jimezsa/tecnoscrape/internal/seen"
)

func TestOfferCmdExtractsSinglePosting(t *testing.T) {
	ctx, out, _ := newTestContext(t, "")
	ctx.JSONOutput = true
	withFakeDoer(t, pythonSite())

	cmd := &OfferCmd{URL: "/python-developer/python/rf-2", Category: "python"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var offers []models.Offer
	if err := json.Unmarshal(out.Bytes(), &offers); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(offers) != 1 {
		t.Fatalf("expected one offer, got %d", len(offers))
	}
	if offers[0].Title != "Python Developer" || offers[0].Category != "python" {
		t.Fatalf("unexpected offer: %+v", offers[0])
	}
	if offers[0].Link != testBase+"/python-developer/python/rf-2" {
		t.Fatalf("relative URL should be resolved, got %q", offers[0].Link)
	}
}

func TestOfferCmdUnavailable(t *testing.T) {
	ctx, _, _ := newTestContext(t, "")
	withFakeDoer(t, map[string]string{})

	err := (&OfferCmd{URL: testBase + "/gone/rf-9"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "offer unavailable") {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestCategoriesCmdPlain(t *testing.T) {
	ctx, out, _ := newTestContext(t, "")
	ctx.PlainText = true
	ctx.Config.Categories = []string{"Big Data", "python"}

	if err := (&CategoriesCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "big-data\t" + testBase + "/ofertas-trabajo/?te=big+data&pagina=1\n" +
		"python\t" + testBase + "/ofertas-trabajo/?te=python&pagina=1\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestProxyCheckReportsStatus(t *testing.T) {
	ctx, out, _ := newTestContext(t, "")
	ctx.JSONOutput = true
	withFakeDoer(t, map[string]string{testBase: "<html></html>"})

	cmd := &ProxyCheckCmd{Proxies: "http://127.0.0.1:8080, http://bad host:80", Timeout: 5}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var results []ProxyCheckResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != "200" {
		t.Fatalf("expected 200 for the first proxy, got %+v", results[0])
	}
	if results[1].Status != "error" || results[1].Error == "" {
		t.Fatalf("expected an error for the invalid proxy, got %+v", results[1])
	}
}

func TestSeenUpdateDefaultsOutToSeen(t *testing.T) {
	ctx, out, _ := newTestContext(t, "")
	dir := t.TempDir()
	seenPath := filepath.Join(dir, "seen.json")
	inputPath := filepath.Join(dir, "input.json")

	input := []models.Offer{{Link: "https://example.com/rf-1"}, {Link: "https://example.com/rf-2"}}
	if err := seen.WriteOffers(inputPath, input); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cmd := &SeenUpdateCmd{Seen: seenPath, Input: inputPath, Stats: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := seen.ReadOffers(seenPath)
	if err != nil {
		t.Fatalf("read seen: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 offers in history, got %d", len(got))
	}
	if !strings.Contains(out.String(), "added=2 total_out=2") {
		t.Fatalf("unexpected stats: %q", out.String())
	}
}

func TestSeenDiffPrintsUnseenWithoutOut(t *testing.T) {
	ctx, out, _ := newTestContext(t, "")
	ctx.JSONOutput = true
	dir := t.TempDir()
	newPath := filepath.Join(dir, "new.json")
	seenPath := filepath.Join(dir, "seen.json")

	if err := seen.WriteOffers(newPath, []models.Offer{
		{Title: "Old", Link: "https://example.com/rf-1"},
		{Title: "Fresh", Link: "https://example.com/rf-2"},
	}); err != nil {
		t.Fatalf("write new: %v", err)
	}
	if err := seen.WriteOffers(seenPath, []models.Offer{{Link: "https://example.com/rf-1"}}); err != nil {
		t.Fatalf("write seen: %v", err)
	}

	if err := (&SeenDiffCmd{New: newPath, Seen: seenPath}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var offers []models.Offer
	if err := json.Unmarshal(out.Bytes(), &offers); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(offers) != 1 || offers[0].Title != "Fresh" {
		t.Fatalf("unexpected unseen offers: %+v", offers)
	}
}
