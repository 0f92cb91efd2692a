// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

// CurrentView holds the display values of the current conditions. Every hourly field falls back
// to vartype.NoData on its own if the payload does not carry it.
type CurrentView struct {
	Time          time.Time
	Temperature   string
	WeatherCode   int
	Condition     string
	Icon          string
	Night         bool
	Wind          string
	FeelsLike     string
	Humidity      string
	Precipitation string
	UV            UV
	Visibility    string
	Pressure      string
	DewPoint      string
}

// Current extracts the display values of the current conditions for the hour index idx.
func Current(p *weather.Payload, idx int, policy units.Policy, night bool) CurrentView {
	labels := policy.Labels()
	hourly := p.Hourly

	return CurrentView{
		Time:          p.Current.Time,
		Temperature:   degrees(vartype.NewVariable(p.Current.Temperature)),
		WeatherCode:   p.Current.WeatherCode,
		Condition:     Condition(p.Current.WeatherCode),
		Icon:          Icon(p.Current.WeatherCode, night),
		Night:         night,
		Wind:          fmt.Sprintf("%.0f %s", Round(p.Current.WindSpeed), labels.Wind),
		FeelsLike:     degrees(vartype.At(hourly.ApparentTemperature, idx)),
		Humidity:      rounded(vartype.At(hourly.RelativeHumidity, idx), "%.0f%%"),
		Precipitation: precipitation(vartype.At(hourly.Precipitation, idx), labels.Precipitation),
		UV:            UVLevel(vartype.At(hourly.UVIndex, idx)),
		Visibility:    Visibility(vartype.At(hourly.Visibility, idx), policy.IsMetric()),
		Pressure:      rounded(vartype.At(hourly.PressureMSL, idx), "%.0f hPa"),
		DewPoint:      degrees(vartype.At(hourly.DewPoint, idx)),
	}
}

// Visibility converts a visibility in meters to kilometers or miles and rounds it.
func Visibility(meters vartype.VarFloat64, metric bool) string {
	if !meters.IsSet() {
		return vartype.NoData
	}
	if metric {
		return fmt.Sprintf("%.0f km", Round(meters.Value()/units.MetersPerKM))
	}
	return fmt.Sprintf("%.0f mi", Round(meters.Value()/units.MetersPerMile))
}

// Round rounds half values towards positive infinity.
func Round(val float64) float64 {
	rounded := math.Floor(val + 0.5)
	if rounded == 0 {
		return 0
	}
	return rounded
}

func degrees(val vartype.VarFloat64) string {
	return rounded(val, "%.0f°")
}

func rounded(val vartype.VarFloat64, format string) string {
	if !val.IsSet() {
		return vartype.NoData
	}
	return fmt.Sprintf(format, Round(val.Value()))
}

func precipitation(val vartype.VarFloat64, unit string) string {
	if !val.IsSet() {
		return vartype.NoData
	}
	return strconv.FormatFloat(val.Value(), 'f', -1, 64) + " " + unit
}
