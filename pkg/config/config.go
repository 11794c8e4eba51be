package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/commute/pkg/ctdf"
	"github.com/travigo/commute/pkg/geo"
	"github.com/travigo/commute/pkg/osrm"
	"github.com/travigo/commute/pkg/session"
	"github.com/travigo/commute/pkg/tfl"
	"github.com/travigo/commute/pkg/upstream"
	"github.com/travigo/commute/pkg/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TfLAppKey   string
	TfLBaseURL  string
	OSRMBaseURL string

	UpstreamTimeout time.Duration
	UpstreamRate    float64
	UpstreamBurst   int

	SessionExpiration time.Duration

	Defaults Defaults
}

// Defaults can be overridden from a YAML file named by TRAVIGO_CONFIG_FILE
type Defaults struct {
	DaysPerWeek       int            `yaml:"days_per_week"`
	Mode              string         `yaml:"mode"`
	JourneyPreference string         `yaml:"journey_preference"`
	MapCentre         geo.Coordinate `yaml:"map_centre"`
	MapZoom           int            `yaml:"map_zoom"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		DaysPerWeek: ctdf.DefaultDaysPerWeek,
		MapCentre:   geo.Coordinate{Longitude: -0.1278, Latitude: 51.5074},
		MapZoom:     12,
	}
}

// Load reads .env if present, then the environment and optional defaults file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	cfg := &Config{
		TfLAppKey:         util.FirstNonEmpty(env["TRAVIGO_TFL_API_KEY"], env["TFL_APP_KEY"]),
		TfLBaseURL:        util.FirstNonEmpty(env["TRAVIGO_TFL_BASE_URL"], tfl.DefaultBaseURL),
		OSRMBaseURL:       util.FirstNonEmpty(env["TRAVIGO_OSRM_BASE_URL"], osrm.DefaultBaseURL),
		UpstreamTimeout:   upstream.DefaultTimeout,
		UpstreamRate:      5,
		UpstreamBurst:     5,
		SessionExpiration: session.DefaultExpiration,
		Defaults:          DefaultDefaults(),
	}

	if v := env["TRAVIGO_UPSTREAM_TIMEOUT"]; v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("invalid TRAVIGO_UPSTREAM_TIMEOUT: %q", v)
		}
		cfg.UpstreamTimeout = timeout
	}

	if v := env["TRAVIGO_UPSTREAM_RATE"]; v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("invalid TRAVIGO_UPSTREAM_RATE: %q", v)
		}
		cfg.UpstreamRate = rate
	}

	if v := env["TRAVIGO_SESSION_EXPIRATION"]; v != "" {
		expiration, err := time.ParseDuration(v)
		if err != nil || expiration <= 0 {
			return nil, fmt.Errorf("invalid TRAVIGO_SESSION_EXPIRATION: %q", v)
		}
		cfg.SessionExpiration = expiration
	}

	if path := env["TRAVIGO_CONFIG_FILE"]; path != "" {
		defaults, err := LoadDefaults(path)
		if err != nil {
			return nil, err
		}
		cfg.Defaults = defaults
	}

	return cfg, nil
}

// LoadDefaults reads a YAML defaults file, keeping built-in values for
// anything it leaves out
func LoadDefaults(path string) (Defaults, error) {
	defaults := DefaultDefaults()

	contents, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(contents, &defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if defaults.DaysPerWeek < 1 || defaults.DaysPerWeek > 7 {
		return defaults, fmt.Errorf("days_per_week in %s must be between 1 and 7", path)
	}

	if defaults.JourneyPreference != "" {
		if err := (tfl.JourneyOptions{JourneyPreference: defaults.JourneyPreference}).Validate(); err != nil {
			return defaults, fmt.Errorf("%s: %w", path, err)
		}
	}

	return defaults, nil
}

func (c *Config) UpstreamOptions(baseURL string) []upstream.Option {
	return []upstream.Option{
		upstream.WithBaseURL(baseURL),
		upstream.WithTimeout(c.UpstreamTimeout),
		upstream.WithRateLimit(c.UpstreamRate, c.UpstreamBurst),
	}
}
