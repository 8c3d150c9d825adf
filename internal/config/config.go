package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // the default zone must resolve on hosts without zoneinfo

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken is returned by RequireToken when API_TOKEN is not set.
var ErrMissingToken = errors.New("API_TOKEN is required")

// Config is the root configuration for togglpie. Values come from built-in
// defaults, then the config file, then the environment.
type Config struct {
	// BaseURL is the Toggl Track API root.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	// Timezone is the IANA zone every timestamp is interpreted in.
	Timezone string `json:"timezone" yaml:"timezone" toml:"timezone"`
	// HoursPerWorkday is the daily quota used for the unaccounted bucket.
	HoursPerWorkday float64 `json:"hours_per_workday" yaml:"hours_per_workday" toml:"hours_per_workday"`
	// UnaccountedLabel names the bucket holding quota minus tracked time.
	UnaccountedLabel string `json:"unaccounted_label" yaml:"unaccounted_label" toml:"unaccounted_label"`
	// ChartFilename is the default output path of the png command.
	ChartFilename string `json:"chart_filename" yaml:"chart_filename" toml:"chart_filename"`
	ChartWidth    int    `json:"chart_width" yaml:"chart_width" toml:"chart_width"`
	ChartHeight   int    `json:"chart_height" yaml:"chart_height" toml:"chart_height"`
	// Timeout is the HTTP client timeout as a Go duration string.
	Timeout string `json:"timeout" yaml:"timeout" toml:"timeout"`

	// APIToken is only ever read from the environment.
	APIToken string `json:"-" yaml:"-" toml:"-"`
}

const (
	DefaultBaseURL          = "https://api.track.toggl.com"
	DefaultTimezone         = "Europe/Moscow"
	DefaultHoursPerWorkday  = 8
	DefaultUnaccountedLabel = "без разметки"
	DefaultChartFilename    = "res.png"
	DefaultChartWidth       = 1024
	DefaultChartHeight      = 768
	DefaultTimeout          = 30 * time.Second
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		Timezone:         DefaultTimezone,
		HoursPerWorkday:  DefaultHoursPerWorkday,
		UnaccountedLabel: DefaultUnaccountedLabel,
		ChartFilename:    DefaultChartFilename,
		ChartWidth:       DefaultChartWidth,
		ChartHeight:      DefaultChartHeight,
		Timeout:          DefaultTimeout.String(),
	}
}

// configTemplate is written on first run. Lines whose trimmed content starts
// with // are stripped before JSON parsing.
const configTemplate = `// togglpie configuration
//
// All settings are optional. The same keys may be kept in config.toml or
// config.yaml next to this file instead.
{
  // Toggl Track API root.
  "base_url": "https://api.track.toggl.com",

  // IANA timezone used for command-line timestamps and day boundaries.
  "timezone": "Europe/Moscow",

  // Expected tracked hours per working day.
  "hours_per_workday": 8,

  // Bucket name for quota minus tracked time.
  "unaccounted_label": "без разметки",

  // Default output of "togglpie png" and its size in pixels.
  "chart_filename": "res.png",
  "chart_width": 1024,
  "chart_height": 768,

  // HTTP client timeout.
  "timeout": "30s"
}
`

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Dir returns the togglpie config directory.
func Dir() string {
	return filepath.Join(XDGConfigHome(), "togglpie")
}

// defaultFiles lists the candidate config files, most preferred first.
func defaultFiles() []string {
	dir := Dir()
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.json"),
	}
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load builds the configuration. An empty path selects the first existing
// default file; when none exists an annotated JSON template is written and
// the defaults are used. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range defaultFiles() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		jsonPath := filepath.Join(Dir(), "config.json")
		if err := writeDefault(jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", jsonPath, err)
		}
	} else if err := decodeFile(path, &cfg); err != nil {
		return Default(), err
	}

	applyEnv(&cfg)
	if err := cfg.fillDefaults(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// decodeFile overlays the file at path onto cfg, picking the format by extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(stripLineComments(data), cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.APIToken = os.Getenv("API_TOKEN")
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TOGGLPIE_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("TOGGLPIE_HOURS_PER_WORKDAY"); v != "" {
		if h, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HoursPerWorkday = h
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring TOGGLPIE_HOURS_PER_WORKDAY=%q: not a number\n", v)
		}
	}
}

// fillDefaults replaces zero values left by a partial file and validates the rest.
func (c *Config) fillDefaults() error {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.HoursPerWorkday == 0 {
		c.HoursPerWorkday = d.HoursPerWorkday
	}
	if c.UnaccountedLabel == "" {
		c.UnaccountedLabel = d.UnaccountedLabel
	}
	if c.ChartFilename == "" {
		c.ChartFilename = d.ChartFilename
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = d.ChartWidth
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = d.ChartHeight
	}
	if c.Timeout == "" {
		c.Timeout = d.Timeout
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// HTTPTimeout parses the configured HTTP timeout.
func (c Config) HTTPTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// RequireToken fails when no API token was found in the environment.
func (c Config) RequireToken() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
