package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/tecnoscrape/internal/cmd"
	"github.com/jimezsa/tecnoscrape/internal/config"
	"github.com/jimezsa/tecnoscrape/internal/ui"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	cli := cmd.NewCLI()
	applyEnvDefaults(cli)
	versionString := buildVersion()

	parser, err := kong.New(cli,
		kong.Name("tecnoscrape"),
		kong.Description("Harvest job offers from tecnoempleo.com into CSV."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fallbackUI := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("TECNOSCRAPE_COLOR")), false)
		fallbackUI.Errorf("%v", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	disableColor := cli.JSON || cli.Plain
	userInterface := ui.New(os.Stdout, os.Stderr, colorMode, disableColor)

	// Progress goes through the UI; the log only carries warnings unless verbose.
	level := zerolog.WarnLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx := &cmd.Context{
		Ctx:        signalCtx,
		Out:        os.Stdout,
		Err:        os.Stderr,
		UI:         userInterface,
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    versionString,
		ColorMode:  colorMode,
	}

	if err := kctx.Run(runCtx); err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func applyEnvDefaults(cli *cmd.CLI) {
	if envBool("TECNOSCRAPE_JSON") {
		cli.JSON = true
	}
	if envBool("TECNOSCRAPE_VERBOSE") {
		cli.Verbose = true
	}
	if value := os.Getenv("TECNOSCRAPE_COLOR"); value != "" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
