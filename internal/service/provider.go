// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-dash/internal/config"
	"github.com/wneessen/weather-dash/internal/geocode"
	geocodeearth "github.com/wneessen/weather-dash/internal/geocode/provider/geocode-earth"
	geocodeopenmeteo "github.com/wneessen/weather-dash/internal/geocode/provider/open-meteo"
	"github.com/wneessen/weather-dash/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/weather-dash/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/geolocation/provider/geoip"
	"github.com/wneessen/weather-dash/internal/geolocation/provider/geolocation_file"
	"github.com/wneessen/weather-dash/internal/geolocation/provider/gpsd"
	openmeteo "github.com/wneessen/weather-dash/internal/weather/provider/open-meteo"
)

// selectGeolocationProviders returns the enabled geolocation providers. An empty list is valid,
// every lookup then fails and the default location is shown.
func (s *Service) selectGeolocationProviders() []geolocation.Provider {
	var provider []geolocation.Provider

	if !s.config.GeoLocation.DisableGeolocationFile {
		provider = append(provider, geolocation_file.NewGeolocationFileProvider(s.config.GeoLocation.File))
	}

	if !s.config.GeoLocation.DisableGPSD {
		provider = append(provider, gpsd.NewGeolocationGPSDProvider(s.logger, s.config.GeoLocation.GPSDHost,
			s.config.GeoLocation.GPSDPort))
	}

	if !s.config.GeoLocation.DisableGeoIP {
		provider = append(provider, geoip.NewGeolocationGeoIPProvider(s.http))
	}

	if len(provider) == 0 {
		s.logger.Warn("no geolocation providers enabled, falling back to the default location")
	}
	return provider
}

// selectGeocodeProvider returns the configured geocoder wrapped in a result cache.
func (s *Service) selectGeocodeProvider(conf *config.Config, lang language.Tag) (*geocode.CachedGeocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.Geocoder.Provider) {
	case config.GeocoderOpenMeteo:
		geocoder = geocodeopenmeteo.New(s.http, lang)
	case config.GeocoderNominatim:
		geocoder = nominatim.New(s.http, lang)
	case config.GeocoderOpenCage:
		if conf.Geocoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(s.http, lang, conf.Geocoder.APIKey)
	case config.GeocoderGeocodeEarth:
		if conf.Geocoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		geocoder = geocodeearth.New(s.http, lang, conf.Geocoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.Geocoder.Provider)
	}

	return geocode.NewCachedGeocoder(geocoder, conf.Geocoder.CacheTTL, conf.Geocoder.CacheMissTTL), nil
}

// selectWeatherProvider returns the configured forecast provider. The provider also serves the
// weekly history and outlook.
func (s *Service) selectWeatherProvider() (provider *openmeteo.OpenMeteo, err error) {
	switch strings.ToLower(s.config.Weather.Provider) {
	case config.WeatherOpenMeteo:
		provider, err = openmeteo.New(s.http, s.logger)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", s.config.Weather.Provider)
	}
	return provider, nil
}
