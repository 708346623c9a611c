package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// utf8BOM lets spreadsheet applications detect the encoding of CSV exports.
const utf8BOM = "\ufeff"

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// FormatFromPath picks the export format from a file extension, falling back
// to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".tsv":
		return FormatTSV
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatCSV
	}
}

func WriteOffers(w io.Writer, offers []models.Offer, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, offers)
	case FormatCSV:
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
		return writeCSV(w, offers, ',')
	case FormatTSV:
		return writeCSV(w, offers, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, offers)
	default:
		return writeTable(w, offers, opts)
	}
}

// FileSink writes the harvested offers to a single file once a run ends.
type FileSink struct {
	Path   string
	Format Format
}

func NewFileSink(path string, format Format) *FileSink {
	if format == "" {
		format = FormatFromPath(path)
	}
	return &FileSink{Path: path, Format: format}
}

func (s *FileSink) Save(offers []models.Offer) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	if err := WriteOffers(file, offers, s.Format, WriteOptions{}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeJSON(w io.Writer, offers []models.Offer) error {
	if offers == nil {
		offers = []models.Offer{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(offers)
}

func writeCSV(w io.Writer, offers []models.Offer, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, offer := range offers {
		if err := writer.Write(csvRow(offer)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, offers []models.Offer, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, offer := range offers {
		fmt.Fprintln(tw, strings.Join(tableRow(offer, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, offers []models.Offer) error {
	if len(offers) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, offer := range offers {
		urlLine := "  URL: -"
		if link := present(offer.Link); link != "" {
			urlLine = fmt.Sprintf("  URL: [Ver oferta](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(offer.Title), safe(offer.Company)),
			fmt.Sprintf("  Categoría: %s", safe(offer.Category)),
			fmt.Sprintf("  Ubicación: %s", safe(offer.Location)),
			urlLine,
		}
		optional := []struct {
			label string
			value string
		}{
			{"Contrato", offer.Contract},
			{"Salario", offer.Salary},
			{"Experiencia", offer.Experience},
			{"Publicada", offer.PublishedAt},
			{"Habilidades", offer.Skills},
		}
		for _, field := range optional {
			if value := present(field.value); value != "" {
				lines = append(lines, fmt.Sprintf("  %s: %s", field.label, value))
			}
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"Categoría",
		"Título",
		"Empresa",
		"Ubicación",
		"Contrato",
		"Salario",
		"Experiencia",
		"Fecha publicación",
		"Habilidades",
		"Descripción",
		"Enlace",
	}
}

func csvRow(offer models.Offer) []string {
	return []string{
		offer.Category,
		offer.Title,
		offer.Company,
		offer.Location,
		offer.Contract,
		offer.Salary,
		offer.Experience,
		offer.PublishedAt,
		offer.Skills,
		offer.Description,
		offer.Link,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

// present hides the missing-value sentinel.
func present(value string) string {
	if models.IsSentinel(strings.TrimSpace(value)) {
		return ""
	}
	return safe(value)
}

func tableHeader() []string {
	return []string{
		"category",
		"title",
		"company",
		"location",
		"url",
	}
}

func tableRow(offer models.Offer, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	link := present(offer.Link)
	displayURL := "-"
	if link != "" {
		displayURL = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(link)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}
	return []string{
		safe(offer.Category),
		safe(offer.Title),
		safe(offer.Company),
		safe(offer.Location),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
