// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package units resolves the measurement systems used for temperature, wind speed and
// precipitation. Each category can be switched independently.
package units

import (
	"fmt"
	"net/url"
	"strings"
)

// System is a measurement system.
type System int

const (
	Metric System = iota
	Imperial
)

const (
	// MetersPerMile is the rounded divisor used for the visibility conversion.
	MetersPerMile = 1609
	MetersPerKM   = 1000
)

// Policy is the active unit selection. It is recomputed from the UI controls for every request
// and never persisted.
type Policy struct {
	Temperature   System
	Wind          System
	Precipitation System
}

// Default returns a policy with all categories set to the given system.
func Default(system System) Policy {
	return Policy{Temperature: system, Wind: system, Precipitation: system}
}

// ParseSystem parses "metric" or "imperial".
func ParseSystem(val string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return Metric, fmt.Errorf("invalid unit system: %q", val)
	}
}

// String implements the fmt.Stringer interface.
func (s System) String() string {
	if s == Imperial {
		return "imperial"
	}
	return "metric"
}

// FromQuery resolves the policy from the query parameters of a request. "units" switches all
// categories at once, "temp", "wind" and "precip" override single categories. Unknown values
// keep the fallback.
func FromQuery(query url.Values, fallback Policy) Policy {
	policy := fallback
	if system, err := ParseSystem(query.Get("units")); err == nil {
		policy = Default(system)
	}
	switch strings.ToLower(query.Get("temp")) {
	case "c", "celsius":
		policy.Temperature = Metric
	case "f", "fahrenheit":
		policy.Temperature = Imperial
	}
	switch strings.ToLower(query.Get("wind")) {
	case "kmh":
		policy.Wind = Metric
	case "mph":
		policy.Wind = Imperial
	}
	switch strings.ToLower(query.Get("precip")) {
	case "mm":
		policy.Precipitation = Metric
	case "in", "inch":
		policy.Precipitation = Imperial
	}
	return policy
}

// IsMetric reports whether all three categories are metric.
func (p Policy) IsMetric() bool {
	return p.Temperature == Metric && p.Wind == Metric && p.Precipitation == Metric
}

// Toggle switches all categories to the opposite of the combined system. A mixed policy counts
// as imperial and therefore becomes fully metric.
func (p Policy) Toggle() Policy {
	if p.IsMetric() {
		return Default(Imperial)
	}
	return Default(Metric)
}

// Query returns the query parameters that reproduce the policy via FromQuery.
func (p Policy) Query() url.Values {
	query := url.Values{}
	query.Set("temp", map[System]string{Metric: "c", Imperial: "f"}[p.Temperature])
	query.Set("wind", map[System]string{Metric: "kmh", Imperial: "mph"}[p.Wind])
	query.Set("precip", map[System]string{Metric: "mm", Imperial: "in"}[p.Precipitation])
	return query
}

// APIParams returns the Open-Meteo unit selectors for the policy.
func (p Policy) APIParams() url.Values {
	query := url.Values{}
	query.Set("temperature_unit", p.TemperatureUnit())
	query.Set("windspeed_unit", p.WindUnit())
	query.Set("precipitation_unit", p.PrecipitationUnit())
	return query
}

// TemperatureUnit returns the Open-Meteo temperature_unit value.
func (p Policy) TemperatureUnit() string {
	if p.Temperature == Imperial {
		return "fahrenheit"
	}
	return "celsius"
}

// WindUnit returns the Open-Meteo windspeed_unit value.
func (p Policy) WindUnit() string {
	if p.Wind == Imperial {
		return "mph"
	}
	return "kmh"
}

// PrecipitationUnit returns the Open-Meteo precipitation_unit value.
func (p Policy) PrecipitationUnit() string {
	if p.Precipitation == Imperial {
		return "inch"
	}
	return "mm"
}

// Labels holds the display suffixes for the active policy.
type Labels struct {
	Temperature   string
	Wind          string
	Precipitation string
	Distance      string
}

// Labels returns the display suffixes of the policy. The distance unit follows the combined
// system, so a mixed policy renders miles.
func (p Policy) Labels() Labels {
	labels := Labels{Temperature: "°C", Wind: "km/h", Precipitation: "mm", Distance: "km"}
	if p.Temperature == Imperial {
		labels.Temperature = "°F"
	}
	if p.Wind == Imperial {
		labels.Wind = "mph"
	}
	if p.Precipitation == Imperial {
		labels.Precipitation = "in"
	}
	if !p.IsMetric() {
		labels.Distance = "mi"
	}
	return labels
}

// TrendThresholds returns the minimum temperature and precipitation differences for the
// weekly trend to report a change. Each threshold follows the unit of its own category.
func (p Policy) TrendThresholds() (temp, precip float64) {
	temp, precip = 1, 1
	if p.Temperature == Imperial {
		temp = 1.8
	}
	if p.Precipitation == Imperial {
		precip = 0.04
	}
	return temp, precip
}

// IdealTemperature returns the temperature band that is considered comfortable, in the
// temperature unit of the policy.
func (p Policy) IdealTemperature() (low, high float64) {
	if p.Temperature == Imperial {
		return 68, 77
	}
	return 20, 25
}

// ToCelsius converts a temperature in the policy's temperature unit to Celsius.
func (p Policy) ToCelsius(val float64) float64 {
	if p.Temperature == Imperial {
		return (val - 32) * 5 / 9
	}
	return val
}

// ToKMH converts a wind speed in the policy's wind unit to km/h.
func (p Policy) ToKMH(val float64) float64 {
	if p.Wind == Imperial {
		return val * 1.609344
	}
	return val
}
