// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
)

func TestTips(t *testing.T) {
	metric := units.Default(units.Metric)
	imperial := units.Default(units.Imperial)

	t.Run("temperature bands", func(t *testing.T) {
		tests := []struct {
			name   string
			temp   float64
			policy units.Policy
			want   Tip
		}{
			{"freezing", 0, metric, temperatureTips[0].tips[0]},
			{"chilly", 10, metric, temperatureTips[1].tips[0]},
			{"mild", 14.9, metric, temperatureTips[2].tips[0]},
			{"pleasant", 22, metric, temperatureTips[3].tips[0]},
			{"warm", 28, metric, temperatureTips[4].tips[0]},
			{"hot", 28.1, metric, hotTips[0]},
			{"freezing in fahrenheit", 32, imperial, temperatureTips[0].tips[0]},
			{"pleasant in fahrenheit", 70, imperial, temperatureTips[3].tips[0]},
			{"hot in fahrenheit", 95, imperial, hotTips[0]},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				payload := testPayload()
				payload.Current.Temperature = tt.temp
				tips := Tips(payload, 12, tt.policy)
				if len(tips) == 0 || tips[0] != tt.want {
					t.Errorf("unexpected first tip: got %+v, want %+v", tips, tt.want)
				}
			})
		}
	})
	t.Run("weather code bucket adds two tips", func(t *testing.T) {
		payload := testPayload()
		payload.Current.WeatherCode = 45
		tips := Tips(payload, 12, metric)
		if len(tips) != 4 {
			t.Fatalf("expected 4 tips, got %d", len(tips))
		}
		if !slices.Contains(tips, bucketTips[BucketFog][1]) {
			t.Error("expected fog tip to be a candidate")
		}
	})
	t.Run("unknown weather code adds no bucket tips", func(t *testing.T) {
		payload := testPayload()
		payload.Current.WeatherCode = 42
		if tips := Tips(payload, 12, metric); len(tips) != 2 {
			t.Errorf("expected 2 tips, got %d", len(tips))
		}
	})
	t.Run("high uv, wind and humidity add tips", func(t *testing.T) {
		payload := testPayload()
		payload.Hourly.UVIndex[12] = vartype.NewVariable(6.0)
		payload.Hourly.RelativeHumidity[12] = vartype.NewVariable(85.1)
		payload.Current.WindSpeed = 30.1
		tips := Tips(payload, 12, metric)
		if len(tips) != 10 {
			t.Fatalf("expected 10 tips, got %d", len(tips))
		}
		for _, want := range []Tip{uvTips[0], windTips[1], humidityTips[0]} {
			if !slices.Contains(tips, want) {
				t.Errorf("expected %q to be a candidate", want.Text)
			}
		}
	})
	t.Run("wind threshold uses km/h equivalent", func(t *testing.T) {
		payload := testPayload()
		payload.Current.Temperature = 50
		payload.Current.WindSpeed = 20
		if tips := Tips(payload, 12, imperial); !slices.Contains(tips, windTips[0]) {
			t.Error("expected 20 mph to count as strong wind")
		}
	})
	t.Run("boundary values add no tips", func(t *testing.T) {
		payload := testPayload()
		payload.Hourly.UVIndex[12] = vartype.NewVariable(5.9)
		payload.Hourly.RelativeHumidity[12] = vartype.NewVariable(85.0)
		payload.Current.WindSpeed = 30
		if tips := Tips(payload, 12, metric); len(tips) != 4 {
			t.Errorf("expected 4 tips, got %d", len(tips))
		}
	})
	t.Run("missing hourly values add no tips", func(t *testing.T) {
		payload := testPayload()
		payload.Hourly.UVIndex = nil
		payload.Hourly.RelativeHumidity = nil
		if tips := Tips(payload, 12, metric); len(tips) != 4 {
			t.Errorf("expected 4 tips, got %d", len(tips))
		}
	})
}

func TestPickTip(t *testing.T) {
	candidates := Tips(testPayload(), 12, units.Default(units.Metric))

	t.Run("result is one of the candidates", func(t *testing.T) {
		for range 50 {
			if tip := PickTip(candidates, nil); !slices.Contains(candidates, tip) {
				t.Fatalf("tip %+v is not a candidate", tip)
			}
		}
	})
	t.Run("seeded source is deterministic", func(t *testing.T) {
		first := PickTip(candidates, rand.New(rand.NewPCG(42, 7)))
		second := PickTip(candidates, rand.New(rand.NewPCG(42, 7)))
		if first != second {
			t.Errorf("expected equal tips for equal seeds, got %+v and %+v", first, second)
		}
	})
	t.Run("every candidate is reachable", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(1, 1))
		seen := make(map[Tip]bool)
		for range 500 {
			seen[PickTip(candidates, rnd)] = true
		}
		if len(seen) != len(candidates) {
			t.Errorf("expected %d distinct tips, got %d", len(candidates), len(seen))
		}
	})
	t.Run("no candidates yields the fallback", func(t *testing.T) {
		if tip := PickTip(nil, nil); tip != FallbackTip {
			t.Errorf("expected fallback tip, got %+v", tip)
		}
	})
}
