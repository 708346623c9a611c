package main

import (
	"testing"

	"github.com/jimezsa/tecnoscrape/internal/cmd"
)

func TestBuildVersion(t *testing.T) {
	defer func(v, c, d string) { version, commit, date = v, c, d }(version, commit, date)

	version, commit, date = "1.2.0", "", ""
	if got := buildVersion(); got != "1.2.0" {
		t.Fatalf("buildVersion() = %q", got)
	}
	version, commit, date = "1.2.0", "abc123", "2024-03-05"
	if got := buildVersion(); got != "1.2.0 (abc123, 2024-03-05)" {
		t.Fatalf("buildVersion() = %q", got)
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv("TECNOSCRAPE_JSON", "yes")
	t.Setenv("TECNOSCRAPE_VERBOSE", "0")
	t.Setenv("TECNOSCRAPE_COLOR", "never")

	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	if !cli.JSON || cli.Verbose || cli.Color != "never" {
		t.Fatalf("unexpected CLI defaults: json=%v verbose=%v color=%q", cli.JSON, cli.Verbose, cli.Color)
	}
}
