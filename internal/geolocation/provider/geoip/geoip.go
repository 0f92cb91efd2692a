// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geoip

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/http"
)

const (
	APIEndpoint   = "https://reallyfreegeoip.org/json/"
	LookupTimeout = time.Second * 5
	name          = "geoip"
)

type GeolocationGeoIPProvider struct {
	name     string
	http     *http.Client
	endpoint string
}

type APIResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	RegionCode  string  `json:"region_code,omitempty"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	ZipCode     string  `json:"zip_code,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MetroCode   int     `json:"metro_code"`
}

func NewGeolocationGeoIPProvider(http *http.Client) *GeolocationGeoIPProvider {
	return &GeolocationGeoIPProvider{
		name:     name,
		http:     http,
		endpoint: APIEndpoint,
	}
}

func (p *GeolocationGeoIPProvider) Name() string {
	return p.name
}

// Locate looks up the position of the public IP address of the host.
func (p *GeolocationGeoIPProvider) Locate(ctx context.Context) (geolocation.Result, error) {
	result := new(APIResult)
	code, err := p.http.GetWithTimeout(ctx, p.endpoint, result, nil, nil, LookupTimeout)
	if err != nil {
		return geolocation.Result{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}
	if code != 200 {
		return geolocation.Result{}, fmt.Errorf("geolocation API returned non-positive response code: %d", code)
	}
	if result.CountryCode == "" && result.Latitude == 0 && result.Longitude == 0 {
		return geolocation.Result{}, fmt.Errorf("geolocation API returned no position for %q", result.IP)
	}

	return geolocation.Result{
		Coordinate: geo.Coordinate{
			Lat: geolocation.Truncate(result.Latitude, geolocation.TruncPrecision),
			Lon: geolocation.Truncate(result.Longitude, geolocation.TruncPrecision),
		},
		AccuracyMeters: accuracy(result),
		City:           result.City,
		Country:        result.Country,
		Source:         p.name,
		At:             time.Now(),
	}, nil
}

func accuracy(result *APIResult) float64 {
	switch {
	case result.ZipCode != "":
		return geolocation.AccuracyZip
	case result.City != "":
		return geolocation.AccuracyCity
	case result.RegionCode != "":
		return geolocation.AccuracyRegion
	case result.CountryCode != "":
		return geolocation.AccuracyCountry
	default:
		return geolocation.AccuracyUnknown
	}
}
