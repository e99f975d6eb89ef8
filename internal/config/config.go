package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/logging"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/rules"
)

// DefaultFileName is the config file looked up in the working directory and
// under the XDG config home.
const DefaultFileName = "calendar.toml"

const appDirName = "compact-calendar"

// Config is the raw TOML shape of a highlight configuration.
//
//	[dates."2025-12-25"]        # absolute: YYYY-MM-DD
//	description = "Christmas"
//	color = "red"
//
//	[dates."12-25"]             # recurring: MM-DD, matched every year
//
//	[[ranges]]
//	start = "2025-06-01"        # MM-DD on both ends makes the range recurring
//	end = "2025-06-14"
//	color = "blue"
//	description = "Sprint 12"
type Config struct {
	Dates  map[string]RawDate `toml:"dates"`
	Ranges []RawRange         `toml:"ranges"`
}

type RawDate struct {
	Description string `toml:"description"`
	Color       string `toml:"color"`
}

type RawRange struct {
	Start       string `toml:"start"`
	End         string `toml:"end"`
	Color       string `toml:"color"`
	Description string `toml:"description"`
}

// Empty returns a configuration with no rules.
func Empty() *Config {
	return &Config{}
}

// Locate resolves the config path to load. An explicitly given path is
// returned as-is; otherwise the working directory is tried first, then the
// XDG config home. ok is false when nothing was found.
func Locate(explicit string) (path string, ok bool) {
	if explicit != "" {
		return explicit, true
	}
	candidates := []string{
		DefaultFileName,
		filepath.Join(xdg.ConfigHome, appDirName, DefaultFileName),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Load reads and decodes a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	log := logging.GetLogger("config")
	log.Debug().Str("path", path).
		Int("dates", len(cfg.Dates)).
		Int("ranges", len(cfg.Ranges)).
		Msg("loaded configuration")

	return &cfg, nil
}

// Rules converts the raw entries into typed highlight rules. Range entries
// keep their declaration order; date entries are keyed by date string, so
// duplicates are impossible and keys are taken in sorted order for
// deterministic loads.
func (c *Config) Rules() ([]rules.RangeRule, []rules.DateRule, error) {
	rangeRules := make([]rules.RangeRule, 0, len(c.Ranges))
	for _, raw := range c.Ranges {
		r, err := parseRange(raw)
		if err != nil {
			return nil, nil, err
		}
		rangeRules = append(rangeRules, r)
	}

	keys := make([]string, 0, len(c.Dates))
	for k := range c.Dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dateRules := make([]rules.DateRule, 0, len(keys))
	for _, k := range keys {
		d, err := parseDate(k, c.Dates[k])
		if err != nil {
			return nil, nil, err
		}
		dateRules = append(dateRules, d)
	}

	return rangeRules, dateRules, nil
}

func parseRange(raw RawRange) (rules.RangeRule, error) {
	color, err := rules.ParseColor(raw.Color)
	if err != nil {
		return rules.RangeRule{}, fmt.Errorf("range %s..%s: %w", raw.Start, raw.End, err)
	}

	if start, err := calendar.ParseDate(raw.Start); err == nil {
		end, err := calendar.ParseDate(raw.End)
		if err != nil {
			return rules.RangeRule{}, fmt.Errorf("range starting %s mixes date kinds: %w", raw.Start, err)
		}
		return rules.AbsoluteRange(start, end, color, raw.Description), nil
	}

	start, err := calendar.ParseMonthDay(raw.Start)
	if err != nil {
		return rules.RangeRule{}, fmt.Errorf("range start: %w", err)
	}
	end, err := calendar.ParseMonthDay(raw.End)
	if err != nil {
		return rules.RangeRule{}, fmt.Errorf("range starting %s mixes date kinds: %w", raw.Start, err)
	}
	return rules.RecurringRange(start, end, color, raw.Description), nil
}

func parseDate(key string, raw RawDate) (rules.DateRule, error) {
	color := rules.ColorNone
	if raw.Color != "" {
		var err error
		color, err = rules.ParseColor(raw.Color)
		if err != nil {
			return rules.DateRule{}, fmt.Errorf("date %q: %w", key, err)
		}
	}

	if date, err := calendar.ParseDate(key); err == nil {
		return rules.AbsoluteDate(date, color, raw.Description), nil
	}
	day, err := calendar.ParseMonthDay(key)
	if err != nil {
		return rules.DateRule{}, fmt.Errorf("date key: %w", err)
	}
	return rules.RecurringDate(day, color, raw.Description), nil
}
