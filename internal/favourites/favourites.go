// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package favourites persists the favourite locations and the theme preference of the dashboard.
package favourites

import (
	"context"
	"errors"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geocode"
)

// CurrentLocation is the name of a favourite that was added from the device location.
const CurrentLocation = "Current Location"

// ErrInvalidTheme is returned when an unknown theme is stored.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is the colour scheme of the dashboard.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme parses a theme name. An empty name yields the dark theme.
func ParseTheme(val string) (Theme, error) {
	switch Theme(val) {
	case ThemeDark, "":
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return ThemeDark, ErrInvalidTheme
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Dark reports whether the theme uses the dark base map.
func (t Theme) Dark() bool {
	return t != ThemeLight
}

// Favourite is a saved location. Two favourites are the same if their coordinates are equal.
type Favourite struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// New returns a favourite for the given place. A missing country is replaced by the name.
func New(name, country string, coords geo.Coordinate) Favourite {
	if country == "" {
		country = name
	}
	return Favourite{Name: name, Country: country, Lat: coords.Lat, Lon: coords.Lon}
}

// Coordinate returns the coordinates of the favourite.
func (f Favourite) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: f.Lat, Lon: f.Lon}
}

// IsCurrentLocation reports whether the favourite was added from the device location.
func (f Favourite) IsCurrentLocation() bool {
	return f.Name == CurrentLocation
}

// Text returns the display text of the favourite.
func (f Favourite) Text() string {
	if f.IsCurrentLocation() {
		return CurrentLocation
	}
	return geocode.LocationText(f.Name, f.Country)
}

// Store persists favourites and the theme preference.
type Store interface {
	List(ctx context.Context) ([]Favourite, error)
	Contains(ctx context.Context, coords geo.Coordinate) (bool, error)
	Add(ctx context.Context, fav Favourite) error
	Remove(ctx context.Context, coords geo.Coordinate) error
	// Toggle removes the favourite with the same coordinates if present, otherwise it adds fav.
	// It returns true if fav is a favourite afterwards.
	Toggle(ctx context.Context, fav Favourite) (bool, error)
	Theme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
	Close() error
}
