// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/wneessen/weather-dash/internal/geo"
)

// MinQueryLength is the minimum number of characters a search query needs before a lookup
// is performed.
const MinQueryLength = 2

// ErrNoResults is returned when a lookup did not yield a single place.
var ErrNoResults = errors.New("no results found")

// Place is a single geocoding match.
type Place struct {
	Name        string  `json:"name"`
	Region      string  `json:"region,omitempty"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// Geocoder resolves free-form place names into coordinates. A lookup that yields no match
// returns an empty slice and no error.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]Place, error)
}

// Coordinate returns the coordinates of the place.
func (p Place) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
}

// Label returns the suggestion text for the place.
func (p Place) Label() string {
	parts := []string{p.Name}
	if p.Region != "" && p.Region != p.Name {
		parts = append(parts, p.Region)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	return strings.Join(parts, ", ")
}

// NormalizeQuery trims and lower-cases the query. The second return value is false if the
// query is too short to be looked up.
func NormalizeQuery(query string) (string, bool) {
	query = strings.ToLower(strings.Join(strings.Fields(query), " "))
	return query, utf8.RuneCountInString(query) >= MinQueryLength
}

// LocationText returns "name, country", or only the name if the country is empty or repeats
// the name. An empty name yields an empty string.
func LocationText(name, country string) string {
	if name == "" {
		return ""
	}
	if country == "" || country == name {
		return name
	}
	return name + ", " + country
}
