package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

// ANSI palette slots for the message kinds.
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarn    = "3"
	colorInfo    = "4"
)

// UI prints human-facing messages. Progress and summaries go to Err; Out
// carries exported offers.
type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

// CategoryCount is how many offers a harvest produced for one category.
type CategoryCount struct {
	Category string
	Total    int
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    termenv.NewOutput(err),
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	u.println(u.Err, u.ErrOutput, colorError, format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.println(u.Err, u.ErrOutput, colorWarn, format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.println(u.Out, u.Output, colorInfo, format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.println(u.Out, u.Output, colorSuccess, format, args...)
}

// Progressf writes a dimmed status line to Err.
func (u *UI) Progressf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = u.ErrOutput.String(msg).Faint().String()
	}
	fmt.Fprintln(u.Err, msg)
}

// CategoryProgress reports one finished category of a harvest.
func (u *UI) CategoryProgress(category string, links, offers int) {
	u.Progressf("%s: links=%d offers=%d", category, links, offers)
}

// Summary prints the end-of-harvest totals line to Err, with a bold label when
// colors are on.
func (u *UI) Summary(total int, counts []CategoryCount) {
	line := FormatSummary(total, counts)
	if u.ColorEnabled {
		label, rest, _ := strings.Cut(line, " ")
		line = u.ErrOutput.String(label).Bold().String() + " " + rest
	}
	fmt.Fprintln(u.Err, line)
}

// FormatSummary renders "summary: offers=N by_category=a:1, b:2" in the order
// counts is given, or by_category=none when counts is empty.
func FormatSummary(total int, counts []CategoryCount) string {
	if len(counts) == 0 {
		return fmt.Sprintf("summary: offers=%d by_category=none", total)
	}

	parts := make([]string, 0, len(counts))
	for _, count := range counts {
		parts = append(parts, fmt.Sprintf("%s:%d", count.Category, count.Total))
	}
	return fmt.Sprintf("summary: offers=%d by_category=%s", total, strings.Join(parts, ", "))
}

func (u *UI) LinkText(text string) string {
	if !u.ColorEnabled || u.Output == nil {
		return text
	}
	return u.Output.String(text).Foreground(u.Output.Color(LinkColor)).String()
}

func (u *UI) println(w io.Writer, output *termenv.Output, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	fmt.Fprintln(w, msg)
}

func NormalizeColorMode(value string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}
