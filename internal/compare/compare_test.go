// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package compare

import (
	"testing"
	"time"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

var now = time.Date(2026, 1, 18, 12, 0, 0, 0, time.UTC)

func TestNewSnapshot(t *testing.T) {
	t.Run("values are rounded and aligned to the current hour", func(t *testing.T) {
		snap := NewSnapshot("Tokyo", "Japan", testPayload(21.6, 40.4, 12.5, 6.6, 24140), units.Default(units.Metric))
		if snap.Label != "Tokyo, Japan" {
			t.Errorf("unexpected label: %s", snap.Label)
		}
		if snap.Temperature.Value() != 22 || snap.Humidity.Value() != 40 || snap.Wind.Value() != 13 {
			t.Errorf("unexpected rounded values: %+v", snap)
		}
		if snap.UV.Value != 7 || snap.Visibility.Value() != 24 {
			t.Errorf("unexpected UV or visibility: %+v", snap)
		}
		if snap.Text(MetricVisibility) != "24 km" || snap.Text(MetricUV) != "7 (High)" {
			t.Errorf("unexpected texts: %s, %s", snap.Text(MetricVisibility), snap.Text(MetricUV))
		}
		if snap.MinMax() != "10° / 24°" {
			t.Errorf("unexpected min/max: %s", snap.MinMax())
		}
		if snap.Text(MetricWind) != "13 km/h" || snap.Text(MetricHumidity) != "40%" {
			t.Errorf("unexpected texts: %s, %s", snap.Text(MetricWind), snap.Text(MetricHumidity))
		}
	})
	t.Run("missing name yields unknown location", func(t *testing.T) {
		snap := NewSnapshot("", "", testPayload(20, 50, 5, 1, 1000), units.Default(units.Metric))
		if snap.Label != UnknownLocation {
			t.Errorf("unexpected label: %s", snap.Label)
		}
	})
	t.Run("zero uv and visibility render as placeholder", func(t *testing.T) {
		snap := NewSnapshot("A", "", testPayload(20, 50, 5, 0, 0), units.Default(units.Metric))
		if snap.Text(MetricUV) != vartype.NoData || snap.Text(MetricVisibility) != vartype.NoData {
			t.Errorf("expected placeholders, got %s and %s", snap.Text(MetricUV), snap.Text(MetricVisibility))
		}
	})
	t.Run("imperial visibility in miles", func(t *testing.T) {
		snap := NewSnapshot("A", "", testPayload(70, 50, 5, 1, 24140), units.Default(units.Imperial))
		if snap.Text(MetricVisibility) != "15 mi" || snap.Text(MetricWind) != "5 mph" {
			t.Errorf("unexpected texts: %s, %s", snap.Text(MetricVisibility), snap.Text(MetricWind))
		}
	})
}

func TestCompare(t *testing.T) {
	metric := units.Default(units.Metric)

	t.Run("lower humidity, wind and uv and higher visibility win", func(t *testing.T) {
		a := NewSnapshot("A", "", testPayload(10, 40, 5, 2, 20000), metric)
		b := NewSnapshot("B", "", testPayload(10, 60, 15, 8, 10000), metric)
		res := Compare(a, b, metric)
		for _, m := range []Metric{MetricHumidity, MetricWind, MetricUV, MetricVisibility} {
			if res.A[m] != Better || res.B[m] != Worse {
				t.Errorf("%s: expected A better and B worse, got %s/%s", m, res.A[m], res.B[m])
			}
		}
		if res.A[MetricTemperature] != None || res.B[MetricTemperature] != None {
			t.Error("expected equal temperatures to be untagged")
		}
	})
	t.Run("temperature inside the ideal band wins", func(t *testing.T) {
		tests := []struct {
			name  string
			a, b  float64
			wantA Tag
			wantB Tag
		}{
			{"a inside, b too cold", 22, 10, Better, Worse},
			{"a too hot, b inside", 30, 20, Worse, Better},
			{"upper bound is inside", 25, 26, Better, Worse},
			{"both inside", 21, 24, None, None},
			{"both outside", 5, 35, None, None},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				a := NewSnapshot("A", "", testPayload(tt.a, 50, 5, 1, 1000), metric)
				b := NewSnapshot("B", "", testPayload(tt.b, 50, 5, 1, 1000), metric)
				res := Compare(a, b, metric)
				if res.A[MetricTemperature] != tt.wantA || res.B[MetricTemperature] != tt.wantB {
					t.Errorf("unexpected tags: got %s/%s, want %s/%s", res.A[MetricTemperature],
						res.B[MetricTemperature], tt.wantA, tt.wantB)
				}
			})
		}
	})
	t.Run("imperial ideal band", func(t *testing.T) {
		imperial := units.Default(units.Imperial)
		a := NewSnapshot("A", "", testPayload(72, 50, 5, 1, 1000), imperial)
		b := NewSnapshot("B", "", testPayload(22, 50, 5, 1, 1000), imperial)
		res := Compare(a, b, imperial)
		if res.A[MetricTemperature] != Better || res.B[MetricTemperature] != Worse {
			t.Errorf("unexpected tags: %s/%s", res.A[MetricTemperature], res.B[MetricTemperature])
		}
	})
	t.Run("mixed policy uses the band of the temperature unit", func(t *testing.T) {
		mixed := units.Policy{Temperature: units.Metric, Wind: units.Imperial, Precipitation: units.Metric}
		a := NewSnapshot("A", "", testPayload(22, 50, 5, 1, 1000), mixed)
		b := NewSnapshot("B", "", testPayload(30, 50, 5, 1, 1000), mixed)
		res := Compare(a, b, mixed)
		if res.A[MetricTemperature] != Better || res.B[MetricTemperature] != Worse {
			t.Errorf("unexpected tags: %s/%s", res.A[MetricTemperature], res.B[MetricTemperature])
		}
	})
	t.Run("missing value yields no tag", func(t *testing.T) {
		a := NewSnapshot("A", "", testPayload(10, 40, 5, 0, 0), metric)
		b := NewSnapshot("B", "", testPayload(10, 60, 15, 8, 10000), metric)
		res := Compare(a, b, metric)
		for _, m := range []Metric{MetricUV, MetricVisibility} {
			if res.A[m] != None || res.B[m] != None {
				t.Errorf("%s: expected no tags, got %s/%s", m, res.A[m], res.B[m])
			}
		}
	})
	t.Run("negative temperatures keep their sign", func(t *testing.T) {
		a := NewSnapshot("A", "", testPayload(-22, 40, 5, 1, 1000), metric)
		b := NewSnapshot("B", "", testPayload(22, 40, 5, 1, 1000), metric)
		res := Compare(a, b, metric)
		if res.A[MetricTemperature] != Worse || res.B[MetricTemperature] != Better {
			t.Errorf("unexpected tags: %s/%s", res.A[MetricTemperature], res.B[MetricTemperature])
		}
	})
}

func TestTag_String(t *testing.T) {
	if Better.String() != "metric-better" || Worse.String() != "metric-worse" || None.String() != "" {
		t.Error("unexpected tag classes")
	}
}

// testPayload returns a payload with three hourly samples around now.
func testPayload(temp, humidity, wind, uv, visibility float64) *weather.Payload {
	hours := []time.Time{now.Add(-time.Hour), now, now.Add(time.Hour)}
	payload := &weather.Payload{
		Current: weather.Current{Time: now.Add(10 * time.Minute), Temperature: temp, WindSpeed: wind, WeatherCode: 1},
		Hourly:  weather.Hourly{Time: hours},
		Daily: weather.Daily{
			Time:           []time.Time{now.Truncate(24 * time.Hour)},
			TemperatureMax: []vartype.VarFloat64{vartype.NewVariable(23.5)},
			TemperatureMin: []vartype.VarFloat64{vartype.NewVariable(9.6)},
		},
	}
	for range hours {
		payload.Hourly.ApparentTemperature = append(payload.Hourly.ApparentTemperature, vartype.NewVariable(temp))
		payload.Hourly.RelativeHumidity = append(payload.Hourly.RelativeHumidity, vartype.NewVariable(humidity))
		payload.Hourly.UVIndex = append(payload.Hourly.UVIndex, vartype.NewVariable(uv))
		payload.Hourly.Visibility = append(payload.Hourly.Visibility, vartype.NewVariable(visibility))
	}
	return payload
}
