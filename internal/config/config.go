package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/tecnoscrape/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "tecnoscrape"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

const (
	defaultBaseURL        = "https://www.tecnoempleo.com"
	defaultTimeoutSeconds = 15
	defaultListingDelayMS = 600
	defaultDetailDelayMS  = 500
	defaultMaxRPS         = 2
	defaultOutput         = "tecnoempleo_ofertas.csv"
)

// DefaultCategories are the search slugs harvested when none are configured.
var DefaultCategories = []string{
	"big-data",
	"data-science",
	"inteligencia-artificial",
	"machine-learning",
	"analisis-de-datos",
	"python",
	"business-intelligence",
}

// Config contains the harvest settings.
type Config struct {
	BaseURL        string   `json:"base_url"`
	Categories     []string `json:"categories"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	ListingDelayMS int      `json:"listing_delay_ms"`
	DetailDelayMS  int      `json:"detail_delay_ms"`
	MaxRPS         float64  `json:"max_rps"`
	MaxPages       int      `json:"max_pages"`
	UserAgents     []string `json:"user_agents,omitempty"`
	AcceptLanguage string   `json:"accept_language,omitempty"`
	Output         string   `json:"output"`
}

func DefaultConfig() Config {
	categories := DefaultCategories
	if env := strings.TrimSpace(os.Getenv("TECNOSCRAPE_CATEGORIES")); env != "" {
		categories = splitCSV(env)
	}
	return Config{
		BaseURL:        envString("TECNOSCRAPE_BASE_URL", defaultBaseURL),
		Categories:     append([]string(nil), categories...),
		TimeoutSeconds: envInt("TECNOSCRAPE_TIMEOUT", defaultTimeoutSeconds),
		ListingDelayMS: envInt("TECNOSCRAPE_LISTING_DELAY_MS", defaultListingDelayMS),
		DetailDelayMS:  envInt("TECNOSCRAPE_DETAIL_DELAY_MS", defaultDetailDelayMS),
		MaxRPS:         defaultMaxRPS,
		MaxPages:       envInt("TECNOSCRAPE_MAX_PAGES", 0),
		Output:         envString("TECNOSCRAPE_OUTPUT", defaultOutput),
	}
}

// ScraperConfig converts the file settings into scraper runtime options.
func (c Config) ScraperConfig(proxies []string) models.ScraperConfig {
	return models.ScraperConfig{
		BaseURL:        c.BaseURL,
		Proxies:        proxies,
		Timeout:        time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgents:     c.UserAgents,
		AcceptLanguage: c.AcceptLanguage,
		MaxRPS:         c.MaxRPS,
		ListingDelay:   time.Duration(c.ListingDelayMS) * time.Millisecond,
		DetailDelay:    time.Duration(c.DetailDelayMS) * time.Millisecond,
		MaxPages:       c.MaxPages,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a JSON5 config file over the defaults. A missing or empty
// file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg.withDefaults(), nil
}

// withDefaults restores defaults a config file zeroed out.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaults.BaseURL
	}
	if len(c.Categories) == 0 {
		c.Categories = defaults.Categories
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if c.ListingDelayMS < 0 {
		c.ListingDelayMS = defaults.ListingDelayMS
	}
	if c.DetailDelayMS < 0 {
		c.DetailDelayMS = defaults.DetailDelayMS
	}
	if strings.TrimSpace(c.Output) == "" {
		c.Output = defaults.Output
	}
	return c
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("TECNOSCRAPE_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

// SplitCSV splits a comma-separated list, dropping blanks.
func SplitCSV(value string) []string {
	return splitCSV(value)
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
