package ui

import (
	"bytes"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":    ColorAlways,
		" NEVER ":   ColorNever,
		"":          ColorAuto,
		"sometimes": ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProgressfWritesToErr(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Progressf("python: links=%d offers=%d\n", 3, 2)

	if out.Len() != 0 {
		t.Fatalf("progress should not touch stdout, got %q", out.String())
	}
	if errOut.String() != "python: links=3 offers=2\n" {
		t.Fatalf("unexpected progress line %q", errOut.String())
	}
}

func TestDisableColorWins(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("disableColor should turn colors off")
	}
}

func TestCategoryProgress(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.CategoryProgress("big-data", 7, 5)

	if out.Len() != 0 {
		t.Fatalf("progress should not touch stdout, got %q", out.String())
	}
	if errOut.String() != "big-data: links=7 offers=5\n" {
		t.Fatalf("unexpected progress line %q", errOut.String())
	}
}

func TestSummary(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Summary(3, []CategoryCount{{Category: "java", Total: 1}, {Category: "python", Total: 2}})

	if out.Len() != 0 {
		t.Fatalf("summary should not touch stdout, got %q", out.String())
	}
	want := "summary: offers=3 by_category=java:1, python:2\n"
	if errOut.String() != want {
		t.Fatalf("Summary() wrote %q, want %q", errOut.String(), want)
	}
}

func TestFormatSummaryEmpty(t *testing.T) {
	if got := FormatSummary(0, nil); got != "summary: offers=0 by_category=none" {
		t.Fatalf("FormatSummary(0, nil) = %q", got)
	}
}

func TestLinkTextPlainWithoutColor(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever, false)
	if got := u.LinkText("https://example.com"); got != "https://example.com" {
		t.Fatalf("LinkText() = %q", got)
	}
}
