// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
)

// Provider is implemented by each forecast API backend.
type Provider interface {
	Name() string
	GetForecast(ctx context.Context, coords geo.Coordinate, policy units.Policy) (*Payload, error)
}

// HistoryProvider returns observed daily values for a past date range.
type HistoryProvider interface {
	GetDailySummary(ctx context.Context, coords geo.Coordinate, start, end time.Time,
		policy units.Policy) (DailySummary, error)
}

// OutlookProvider returns forecasted daily values starting today.
type OutlookProvider interface {
	GetDailyOutlook(ctx context.Context, coords geo.Coordinate, policy units.Policy) (DailySummary, error)
}

// Payload is the forecast bundle for one location. All hourly series are aligned to
// Hourly.Time, all daily series to Daily.Time. A Payload is read-only once returned by a Provider.
type Payload struct {
	GeneratedAt time.Time
	Coordinates geo.Coordinate
	Timezone    string
	Location    *time.Location

	Current Current
	Hourly  Hourly
	Daily   Daily
}

// Current holds the current conditions.
type Current struct {
	Time        time.Time
	Temperature float64
	WindSpeed   float64
	WeatherCode int
}

// Hourly holds the hourly series. Entries that the API did not deliver are unset.
type Hourly struct {
	Time                []time.Time
	Temperature         []vartype.VarFloat64
	RelativeHumidity    []vartype.VarFloat64
	ApparentTemperature []vartype.VarFloat64
	Precipitation       []vartype.VarFloat64
	WeatherCode         []vartype.VarInt
	WindSpeed           []vartype.VarFloat64
	Visibility          []vartype.VarFloat64
	PressureMSL         []vartype.VarFloat64
	UVIndex             []vartype.VarFloat64
	DewPoint            []vartype.VarFloat64
}

// Daily holds the daily series. Sunrise and Sunset are empty if the API did not deliver them.
type Daily struct {
	Time           []time.Time
	TemperatureMax []vartype.VarFloat64
	TemperatureMin []vartype.VarFloat64
	WeatherCode    []vartype.VarInt
	Sunrise        []time.Time
	Sunset         []time.Time
}

// DailySummary is a short series of daily aggregates used for the weekly trend.
type DailySummary struct {
	TemperatureMax   []float64
	TemperatureMin   []float64
	PrecipitationSum []float64
}

// Len returns the number of hourly samples.
func (h Hourly) Len() int {
	return len(h.Time)
}

// Len returns the number of days.
func (d Daily) Len() int {
	return len(d.Time)
}

// Window returns the first n days of the summary.
func (s DailySummary) Window(n int) DailySummary {
	return DailySummary{
		TemperatureMax:   head(s.TemperatureMax, n),
		TemperatureMin:   head(s.TemperatureMin, n),
		PrecipitationSum: head(s.PrecipitationSum, n),
	}
}

// Empty reports whether any of the series is missing.
func (s DailySummary) Empty() bool {
	return len(s.TemperatureMax) == 0 || len(s.TemperatureMin) == 0 || len(s.PrecipitationSum) == 0
}

func head(values []float64, n int) []float64 {
	if n < len(values) {
		return values[:n]
	}
	return values
}
