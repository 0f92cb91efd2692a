// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package compare ranks the conditions of two locations against each other.
package compare

import (
	"fmt"
	"time"

	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/presenter"
	"github.com/wneessen/weather-dash/internal/timealign"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

// UnknownLocation is the label of a snapshot without a place name.
const UnknownLocation = "Unknown location"

// Metric is a compared quantity.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricFeelsLike   Metric = "feels_like"
	MetricHumidity    Metric = "humidity"
	MetricWind        Metric = "wind"
	MetricUV          Metric = "uv"
	MetricVisibility  Metric = "visibility"
)

// Metrics lists the compared metrics in display order.
var Metrics = []Metric{MetricTemperature, MetricFeelsLike, MetricHumidity, MetricWind, MetricUV, MetricVisibility}

// Tag marks a metric as better or worse than the other side.
type Tag int

const (
	None Tag = iota
	Better
	Worse
)

// String returns the CSS class of the tag.
func (t Tag) String() string {
	switch t {
	case Better:
		return "metric-better"
	case Worse:
		return "metric-worse"
	default:
		return ""
	}
}

// Snapshot holds the current conditions of one location. Values are rounded the way they are
// displayed.
type Snapshot struct {
	Label       string
	Date        time.Time
	WeatherCode int
	Icon        string
	Condition   string
	Labels      units.Labels

	Temperature vartype.VarFloat64
	FeelsLike   vartype.VarFloat64
	Min         vartype.VarFloat64
	Max         vartype.VarFloat64
	Humidity    vartype.VarFloat64
	Wind        vartype.VarFloat64
	UV          presenter.UV
	Visibility  vartype.VarFloat64
}

// NewSnapshot extracts the current conditions of a payload at the hour closest to the current
// weather time.
func NewSnapshot(name, country string, data *weather.Payload, policy units.Policy) Snapshot {
	label := geocode.LocationText(name, country)
	if label == "" {
		label = UnknownLocation
	}
	idx := timealign.FindClosestHourIndex(data.Hourly.Time, data.Current.Time)

	return Snapshot{
		Label:       label,
		Date:        data.Current.Time,
		WeatherCode: data.Current.WeatherCode,
		Icon:        presenter.Icon(data.Current.WeatherCode, false),
		Condition:   presenter.Condition(data.Current.WeatherCode),
		Labels:      policy.Labels(),
		Temperature: rounded(vartype.NewVariable(data.Current.Temperature)),
		FeelsLike:   rounded(vartype.At(data.Hourly.ApparentTemperature, idx)),
		Min:         rounded(vartype.At(data.Daily.TemperatureMin, 0)),
		Max:         rounded(vartype.At(data.Daily.TemperatureMax, 0)),
		Humidity:    rounded(vartype.At(data.Hourly.RelativeHumidity, idx)),
		Wind:        rounded(vartype.NewVariable(data.Current.WindSpeed)),
		UV:          presenter.UVLevel(vartype.At(data.Hourly.UVIndex, idx)),
		Visibility:  visibility(vartype.At(data.Hourly.Visibility, idx), policy.IsMetric()),
	}
}

// Value returns the compared value of a metric. A missing value is unset.
func (s Snapshot) Value(metric Metric) vartype.VarFloat64 {
	switch metric {
	case MetricTemperature:
		return s.Temperature
	case MetricFeelsLike:
		return s.FeelsLike
	case MetricHumidity:
		return s.Humidity
	case MetricWind:
		return s.Wind
	case MetricUV:
		if !s.UV.Set {
			return vartype.VarFloat64{}
		}
		return vartype.NewVariable(float64(s.UV.Value))
	case MetricVisibility:
		return s.Visibility
	default:
		return vartype.VarFloat64{}
	}
}

// Text returns the display text of a metric.
func (s Snapshot) Text(metric Metric) string {
	switch metric {
	case MetricTemperature, MetricFeelsLike:
		return format(s.Value(metric), "%.0f°")
	case MetricHumidity:
		return format(s.Humidity, "%.0f%%")
	case MetricWind:
		return format(s.Wind, "%.0f "+s.Labels.Wind)
	case MetricUV:
		return s.UV.String()
	case MetricVisibility:
		return format(s.Visibility, "%.0f "+s.Labels.Distance)
	default:
		return vartype.NoData
	}
}

// MinMax returns the display text of the daily temperature range.
func (s Snapshot) MinMax() string {
	return format(s.Min, "%.0f°") + " / " + format(s.Max, "%.0f°")
}

// Result holds the tags of both sides.
type Result struct {
	A map[Metric]Tag
	B map[Metric]Tag
}

// Compare tags every metric of a and b. Humidity, wind and UV are better when lower,
// visibility is better when higher. A temperature inside the comfortable band of the policy beats
// one outside of it. Equal values, and a value missing on either side, yield no tag.
func Compare(a, b Snapshot, policy units.Policy) Result {
	res := Result{A: make(map[Metric]Tag), B: make(map[Metric]Tag)}
	low, high := policy.IdealTemperature()

	for _, metric := range Metrics {
		va, vb := a.Value(metric), b.Value(metric)
		if !va.IsSet() || !vb.IsSet() {
			res.A[metric], res.B[metric] = None, None
			continue
		}

		var ta, tb Tag
		switch metric {
		case MetricTemperature, MetricFeelsLike:
			ta, tb = rankBand(va.Value(), vb.Value(), low, high)
		case MetricVisibility:
			ta, tb = rank(vb.Value(), va.Value())
		default:
			ta, tb = rank(va.Value(), vb.Value())
		}
		res.A[metric], res.B[metric] = ta, tb
	}
	return res
}

// rank tags the smaller value as better.
func rank(a, b float64) (Tag, Tag) {
	switch {
	case a < b:
		return Better, Worse
	case a > b:
		return Worse, Better
	default:
		return None, None
	}
}

func rankBand(a, b, low, high float64) (Tag, Tag) {
	inA := a >= low && a <= high
	inB := b >= low && b <= high
	switch {
	case inA && !inB:
		return Better, Worse
	case !inA && inB:
		return Worse, Better
	default:
		return None, None
	}
}

func rounded(val vartype.VarFloat64) vartype.VarFloat64 {
	if !val.IsSet() {
		return val
	}
	return vartype.NewVariable(presenter.Round(val.Value()))
}

func format(val vartype.VarFloat64, layout string) string {
	if !val.IsSet() {
		return vartype.NoData
	}
	return fmt.Sprintf(layout, val.Value())
}

func visibility(meters vartype.VarFloat64, metric bool) vartype.VarFloat64 {
	if !meters.IsSet() || meters.Value() == 0 {
		return vartype.VarFloat64{}
	}
	divisor := float64(units.MetersPerMile)
	if metric {
		divisor = units.MetersPerKM
	}
	return vartype.NewVariable(presenter.Round(meters.Value() / divisor))
}
