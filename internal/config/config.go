// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/units"
)

const (
	configEnv = "WEATHERDASH"
	appName   = "weather-dash"

	WeatherOpenMeteo = "open-meteo"

	GeocoderOpenMeteo    = "open-meteo"
	GeocoderNominatim    = "osm-nominatim"
	GeocoderOpenCage     = "opencage"
	GeocoderGeocodeEarth = "geocode-earth"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	// Allowed values: metric, imperial
	Units struct {
		Temperature   string `fig:"temperature" default:"metric"`
		Wind          string `fig:"wind" default:"metric"`
		Precipitation string `fig:"precipitation" default:"metric"`
	} `fig:"units"`

	Server struct {
		ListenAddr      string        `fig:"listen_addr" default:"127.0.0.1:8080"`
		ReadTimeout     time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `fig:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"10s"`
	} `fig:"server"`

	Weather struct {
		// Allowed value: open-meteo
		Provider string        `fig:"provider" default:"open-meteo"`
		Timeout  time.Duration `fig:"timeout" default:"10s"`
	} `fig:"weather"`

	Geocoder struct {
		// Allowed values: open-meteo, osm-nominatim, opencage, geocode-earth
		Provider string `fig:"provider" default:"open-meteo"`
		APIKey   string `fig:"apikey"`
		// Allowed value: 1 to 20
		Results      int           `fig:"results" default:"5"`
		CacheTTL     time.Duration `fig:"cache_ttl" default:"24h"`
		CacheMissTTL time.Duration `fig:"cache_miss_ttl" default:"15m"`
	} `fig:"geocoder"`

	GeoLocation struct {
		File                   string        `fig:"file"`
		DisableGeoIP           bool          `fig:"disable_geoip"`
		DisableGeolocationFile bool          `fig:"disable_geolocation_file"`
		DisableGPSD            bool          `fig:"disable_gpsd"`
		GPSDHost               string        `fig:"gpsd_host" default:"localhost"`
		GPSDPort               string        `fig:"gpsd_port" default:"2947"`
		Timeout                time.Duration `fig:"timeout" default:"8s"`
		DefaultName            string        `fig:"default_name" default:"Tokyo"`
		DefaultCountry         string        `fig:"default_country" default:"Japan"`
		DefaultLat             float64       `fig:"default_lat" default:"35.68"`
		DefaultLon             float64       `fig:"default_lon" default:"139.65"`
	} `fig:"geolocation"`

	Radar struct {
		RefreshInterval  time.Duration `fig:"refresh_interval" default:"5m"`
		AutoplayInterval time.Duration `fig:"autoplay_interval" default:"500ms"`
		// Allowed value: 1 to 18
		Zoom        int           `fig:"zoom" default:"8"`
		SessionIdle time.Duration `fig:"session_idle" default:"10m"`
		MaxSessions int           `fig:"max_sessions" default:"100"`
	} `fig:"radar"`

	Storage struct {
		Path string `fig:"path"`
	} `fig:"storage"`

	RateLimit struct {
		RequestsPerSecond float64 `fig:"rps" default:"5"`
		Burst             int     `fig:"burst" default:"10"`
	} `fig:"ratelimit"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Discover loads the configuration from the user config directory if a config file is present
// there and falls back to the defaults and the environment otherwise.
func Discover() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return New()
	}
	dir = filepath.Join(dir, appName)
	for _, file := range []string{"config.toml", "config.yaml", "config.json"} {
		if _, err = os.Stat(filepath.Join(dir, file)); err == nil {
			return NewFromFile(dir, file)
		}
	}
	return New()
}

func (c *Config) Validate() error {
	for _, val := range []string{c.Units.Temperature, c.Units.Wind, c.Units.Precipitation} {
		if _, err := units.ParseSystem(val); err != nil {
			return fmt.Errorf("invalid units: %s", val)
		}
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}

	if c.Weather.Provider != WeatherOpenMeteo {
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("invalid weather timeout: %s", c.Weather.Timeout)
	}

	switch c.Geocoder.Provider {
	case GeocoderOpenMeteo, GeocoderNominatim:
	case GeocoderOpenCage, GeocoderGeocodeEarth:
		if c.Geocoder.APIKey == "" {
			return fmt.Errorf("geocoder %s requires an API key", c.Geocoder.Provider)
		}
	default:
		return fmt.Errorf("invalid geocoder provider: %s", c.Geocoder.Provider)
	}
	if c.Geocoder.Results < 1 || c.Geocoder.Results > 20 {
		return fmt.Errorf("invalid geocoder result count: %d", c.Geocoder.Results)
	}

	if c.GeoLocation.File == "" {
		home, _ := os.UserHomeDir()
		c.GeoLocation.File = filepath.Join(home, ".config", appName, "geolocation")
	}
	if c.GeoLocation.Timeout <= 0 {
		return fmt.Errorf("invalid geolocation timeout: %s", c.GeoLocation.Timeout)
	}
	if !c.DefaultLocation().Valid() {
		return fmt.Errorf("invalid default location: %s", c.DefaultLocation())
	}

	if c.Radar.AutoplayInterval <= 0 || c.Radar.RefreshInterval <= 0 {
		return fmt.Errorf("invalid radar intervals: autoplay %s, refresh %s", c.Radar.AutoplayInterval,
			c.Radar.RefreshInterval)
	}
	if c.Radar.Zoom < 1 || c.Radar.Zoom > 18 {
		return fmt.Errorf("invalid radar zoom level: %d", c.Radar.Zoom)
	}
	if c.Radar.SessionIdle <= 0 || c.Radar.MaxSessions < 1 {
		return fmt.Errorf("invalid radar session limits: idle %s, max sessions %d", c.Radar.SessionIdle,
			c.Radar.MaxSessions)
	}

	if c.Storage.Path == "" {
		home, _ := os.UserHomeDir()
		c.Storage.Path = filepath.Join(home, ".local", "share", appName, appName+".db")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid rate limit: %f", c.RateLimit.RequestsPerSecond)
	}

	return nil
}

// UnitPolicy returns the configured default unit policy.
func (c *Config) UnitPolicy() units.Policy {
	temp, _ := units.ParseSystem(c.Units.Temperature)
	wind, _ := units.ParseSystem(c.Units.Wind)
	precip, _ := units.ParseSystem(c.Units.Precipitation)
	return units.Policy{Temperature: temp, Wind: wind, Precipitation: precip}
}

// DefaultLocation returns the coordinates used when the position could not be determined.
func (c *Config) DefaultLocation() geo.Coordinate {
	return geo.Coordinate{Lat: c.GeoLocation.DefaultLat, Lon: c.GeoLocation.DefaultLon}
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
