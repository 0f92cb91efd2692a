// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"math/rand/v2"

	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

const (
	tipHighUV       = 6
	tipHighWindKMH  = 30
	tipHighHumidity = 85
)

// Tip is a short weather hint with an emoji.
type Tip struct {
	Emoji string
	Text  localize.MsgID
}

// FallbackTip is shown when no rule produced a candidate.
var FallbackTip = Tip{Emoji: "💡", Text: "Stay prepared for changing weather conditions!"}

var temperatureTips = []struct {
	maxCelsius float64
	tips       []Tip
}{
	{0, []Tip{
		{"❄️", "Stay cozy! It's freezing cold today."},
		{"🧣", "Layer up, it's freezing outside."},
	}},
	{10, []Tip{
		{"🧥", "Grab a jacket, it's chilly outside!"},
		{"☕", "Perfect weather for a hot drink."},
	}},
	{15, []Tip{
		{"🧥", "A thin jacket would be a good idea today."},
		{"🚶", "Great weather for an afternoon walk."},
	}},
	{22, []Tip{
		{"👌", "Perfect temperature outside, make the most of it!"},
		{"🍃", "Have a restful day in nature today!"},
	}},
	{28, []Tip{
		{"👕", "Perfect weather for a t-shirt!"},
		{"🍦", "Enjoy an ice cream today!"},
	}},
}

var hotTips = []Tip{
	{"☀️", "It's hot today, stay hydrated and seek shade."},
	{"🧢", "Make sure to use sunscreen and a hat!"},
}

var bucketTips = map[Bucket][]Tip{
	BucketClear: {
		{"☀️", "Clear skies today, perfect weather to be outside!"},
		{"😎", "Don't forget your sunglasses today."},
	},
	BucketPartlyCloudy: {
		{"⛅", "Partly cloudy, a good day for outdoor plans."},
		{"📸", "Beautiful clouds today, perfect for gazing at."},
	},
	BucketOvercast: {
		{"☁️", "Overcast today, good for a peaceful walk."},
		{"📚", "Cloudy day, perfect for catching up on errands."},
	},
	BucketFog: {
		{"🌫️", "It's foggy, drive carefully if you're on the road."},
		{"🚗", "Reduced visibility due to fog, use headlights when driving."},
	},
	BucketDrizzle: {
		{"🌦️", "Light drizzle, an umbrella might be useful."},
		{"👢", "Light rain, dress appropriately!"},
	},
	BucketRain: {
		{"🌧️", "Rainy day, don't forget your umbrella!"},
		{"☂️", "Rain expected, dress appropriately!"},
	},
	BucketSnow: {
		{"❄️", "Snow is falling, enjoy the winter wonderland!"},
		{"🧣", "Snowy conditions, dress warmly and watch your step."},
	},
	BucketStorm: {
		{"⛈️", "Stormy weather, best to stay indoors if possible."},
		{"🌩️", "Thunderstorms expected, keep devices charged."},
	},
}

var (
	uvTips = []Tip{
		{"☀️", "High UV today, apply sunscreen regularly."},
		{"🧢", "UV is strong, wear a hat and sunglasses."},
	}
	windTips = []Tip{
		{"💨", "Strong winds today, secure loose items outdoors."},
		{"🌬️", "Windy conditions, hold onto your hat!"},
	}
	humidityTips = []Tip{
		{"💧", "High humidity, it might feel warmer than it is."},
		{"💦", "Humid conditions, stay hydrated and dress lightly."},
	}
)

// Tips collects the candidate tips for the current conditions. Temperature and wind speed are
// compared on their Celsius and km/h equivalents, so every unit policy yields the same candidates.
func Tips(p *weather.Payload, idx int, policy units.Policy) []Tip {
	var tips []Tip

	celsius := policy.ToCelsius(p.Current.Temperature)
	band := hotTips
	for _, group := range temperatureTips {
		if celsius <= group.maxCelsius {
			band = group.tips
			break
		}
	}
	tips = append(tips, band...)
	tips = append(tips, bucketTips[BucketFor(p.Current.WeatherCode)]...)

	if uv := vartype.At(p.Hourly.UVIndex, idx); uv.IsSet() && uv.Value() >= tipHighUV {
		tips = append(tips, uvTips...)
	}
	if policy.ToKMH(p.Current.WindSpeed) > tipHighWindKMH {
		tips = append(tips, windTips...)
	}
	if hum := vartype.At(p.Hourly.RelativeHumidity, idx); hum.IsSet() && hum.Value() > tipHighHumidity {
		tips = append(tips, humidityTips...)
	}
	return tips
}

// PickTip chooses one of the candidates uniformly at random. It returns FallbackTip if there
// are no candidates. A nil rnd uses the global source.
func PickTip(tips []Tip, rnd *rand.Rand) Tip {
	if len(tips) == 0 {
		return FallbackTip
	}
	if rnd == nil {
		return tips[rand.IntN(len(tips))]
	}
	return tips[rnd.IntN(len(tips))]
}
