// Package config resolves server settings from defaults, a .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lifeexp/internal/engine"
	"lifeexp/internal/geo"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "LIFEEXP_"

type Config struct {
	Addr          string
	DataSource    string
	WorldSource   string
	PreferredYear int
	FetchTimeout  time.Duration
	RateLimit     float64
	Debug         bool
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		Addr:          ":8080",
		DataSource:    engine.DefaultSource,
		WorldSource:   geo.DefaultSource,
		PreferredYear: 2014,
		RateLimit:     20,
	}
}

// Load applies .env (if present), the environment and args on top of the defaults.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	cfg := Defaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("lifeexp", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DataSource, "data", cfg.DataSource, "life expectancy CSV (URL or path)")
	fs.StringVar(&cfg.WorldSource, "world", cfg.WorldSource, "world-110m TopoJSON (URL or path)")
	fs.IntVar(&cfg.PreferredYear, "year", cfg.PreferredYear, "initial slider year")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "timeout for startup downloads (0 = none)")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "requests per second per client (0 = unlimited)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := get("DATA"); ok {
		c.DataSource = v
	}
	if v, ok := get("WORLD"); ok {
		c.WorldSource = v
	}
	if v, ok := get("YEAR"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sYEAR: %w", EnvPrefix, err)
		}
		c.PreferredYear = n
	}
	if v, ok := get("FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sFETCH_TIMEOUT: %w", EnvPrefix, err)
		}
		c.FetchTimeout = d
	}
	if v, ok := get("RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRATE: %w", EnvPrefix, err)
		}
		c.RateLimit = f
	}
	if v, ok := get("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: empty listen address")
	}
	if strings.TrimSpace(c.DataSource) == "" {
		return errors.New("config: empty data source")
	}
	if strings.TrimSpace(c.WorldSource) == "" {
		return errors.New("config: empty world source")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("config: negative fetch timeout %v", c.FetchTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: negative rate limit %v", c.RateLimit)
	}
	return nil
}
