// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geolocation resolves the position of the dashboard host from a set of providers.
package geolocation

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/wneessen/weather-dash/internal/geo"
)

const accuracyEpsilon = 1e-6

const (
	AccuracyCountry = 300000
	AccuracyRegion  = 100000
	AccuracyCity    = 15000
	AccuracyZip     = 3000
	AccuracyUnknown = 1000000
	TruncPrecision  = 4
)

// ErrLocationUnavailable is returned when no provider could determine a position. Permission,
// timeout and provider failures are all reported with this error.
var ErrLocationUnavailable = errors.New("location unavailable")

// Provider determines the current position once per call.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (Result, error)
}

// Starter is implemented by providers that track the position in the background.
type Starter interface {
	Start(ctx context.Context)
}

// Result is a single position fix.
type Result struct {
	Coordinate     geo.Coordinate
	AccuracyMeters float64
	City           string
	Country        string
	Source         string
	At             time.Time
}

// BetterThan reports whether r is more accurate than prev. On equal accuracy the more recent
// result wins.
func (r Result) BetterThan(prev Result) bool {
	if prev.Source == "" {
		return true
	}
	if r.AccuracyMeters < prev.AccuracyMeters-accuracyEpsilon {
		return true
	}
	if prev.AccuracyMeters < r.AccuracyMeters-accuracyEpsilon {
		return false
	}
	return r.At.After(prev.At)
}

// Truncate cuts x to the given number of decimal places.
func Truncate(x float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Trunc(x*p) / p
}
