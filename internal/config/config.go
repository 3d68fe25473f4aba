package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NOTE: This file provides the configuration model and YAML-based
// load/save behavior, including first-run config creation.

// FeedConfig describes an ICS calendar whose events fill one data table.
type FeedConfig struct {
	// ID is an internal identifier used in logs.
	ID string `yaml:"id"`
	// Table is the data table the events go into (e.g. "Public_Holidays").
	Table string `yaml:"table"`
	// URL is an ICS subscription endpoint. Mutually exclusive with Path.
	URL string `yaml:"url,omitempty"`
	// Path is a local .ics file.
	Path string `yaml:"path,omitempty"`
	// GridColor and TextColor are applied to every event of the feed.
	GridColor string `yaml:"grid_color"`
	TextColor string `yaml:"text_color"`
}

// Config is the top-level application configuration.
type Config struct {
	// Data is the YAML event dataset.
	Data string `yaml:"data"`

	// OutputDir receives the generated documents.
	OutputDir string `yaml:"output_dir"`

	// Modes lists the page sizes to produce. Supported values:
	//   - "A4" (compact, one month per page)
	//   - "A0" (poster, all months on one page)
	Modes []string `yaml:"modes"`

	// FontFamily is a core PDF font: Times, Helvetica or Courier.
	FontFamily string `yaml:"font_family"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WrapWidth is the event text wrap width in characters, keyed by mode.
	WrapWidth map[string]int `yaml:"wrap_width"`

	// WeekendColor shades weekend days without events.
	WeekendColor string `yaml:"weekend_color"`

	// BandAlpha is the opacity of event and weekend backgrounds.
	BandAlpha float64 `yaml:"band_alpha"`

	// Feeds are ICS calendars merged into the dataset.
	Feeds []FeedConfig `yaml:"feeds"`

	// CacheDir stores downloaded feeds. Empty means the system temp dir.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data:         "data/events.yaml",
		OutputDir:    ".",
		Modes:        []string{"A4", "A0"},
		FontFamily:   "Times",
		LogLevel:     "info",
		WrapWidth:    map[string]int{"A4": 20, "A0": 24},
		WeekendColor: "#808080",
		BandAlpha:    0.5,
		Feeds:        []FeedConfig{},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Data == "" {
		c.Data = def.Data
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if len(c.Modes) == 0 {
		c.Modes = def.Modes
	}
	switch strings.ToLower(c.FontFamily) {
	case "times", "helvetica", "courier":
		// ok
	default:
		// Only core fonts are available without embedding.
		c.FontFamily = def.FontFamily
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = def.LogLevel
	}
	if c.WrapWidth == nil {
		c.WrapWidth = map[string]int{}
	}
	for mode, w := range def.WrapWidth {
		if c.WrapWidth[mode] <= 0 {
			c.WrapWidth[mode] = w
		}
	}
	if c.WeekendColor == "" {
		c.WeekendColor = def.WeekendColor
	}
	if c.BandAlpha <= 0 || c.BandAlpha > 1 {
		c.BandAlpha = def.BandAlpha
	}
	if c.Feeds == nil {
		c.Feeds = []FeedConfig{}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// via a temp file + rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".wallcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
