// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// MoonPhaseIcon maps the moon phase names to their emoji.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "\U0001F311",
	"Waxing Crescent": "\U0001F312",
	"First Quarter":   "\U0001F313",
	"Waxing Gibbous":  "\U0001F314",
	"Full Moon":       "\U0001F315",
	"Waning Gibbous":  "\U0001F316",
	"Third Quarter":   "\U0001F317",
	"Waning Crescent": "\U0001F318",
}

// WMOWeatherCodes maps WMO weather codes to their descriptions
var WMOWeatherCodes = map[int]localize.MsgID{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// bucketCodes partitions the WMO weather codes into the icon buckets.
var bucketCodes = map[Bucket][]int{
	BucketClear:        {0},
	BucketPartlyCloudy: {1, 2},
	BucketOvercast:     {3},
	BucketFog:          {45, 48},
	BucketDrizzle:      {51, 53, 55, 56, 57},
	BucketRain:         {61, 63, 65, 66, 67},
	BucketSnow:         {71, 73, 75, 77, 85, 86},
	BucketStorm:        {80, 81, 82, 95, 96, 99},
}

var bucketIcons = map[Bucket]string{
	BucketClear:        "icon-sunny.webp",
	BucketPartlyCloudy: "icon-partly-cloudy.webp",
	BucketOvercast:     "icon-overcast.webp",
	BucketFog:          "icon-fog.webp",
	BucketDrizzle:      "icon-drizzle.webp",
	BucketRain:         "icon-rain.webp",
	BucketSnow:         "icon-snow.webp",
	BucketStorm:        "icon-storm.webp",
}

var i18nVars = map[string]localize.MsgID{
	"current location": "Current Location",
	"temperature":      "Temperature",
	"unknown location": "Unknown location",
	"today":            "Today",
	"feels like":       "Feels Like",
	"humidity":         "Humidity",
	"wind":             "Wind",
	"precipitation":    "Precipitation",
	"uv index":         "UV Index",
	"visibility":       "Visibility",
	"pressure":         "Pressure",
	"dew point":        "Dew Point",
	"min/max":          "Min/Max",
	"sunrise":          "Sunrise",
	"sunset":           "Sunset",
	"moonphase":        "Moonphase",
	"updated":          "Updated",
	"daily forecast":   "Daily forecast",
	"hourly forecast":  "Hourly forecast",
	"weekly trend":     "Weekly trend",
	"favourites":       "Favourites",
	"compare":          "Compare",
	"radar":            "Radar",
	"search":           "Search for a place...",
	"no results":       "No results found",
	"new moon":         "New moon",
	"waxing crescent":  "Waxing crescent",
	"first quarter":    "First quarter",
	"waxing gibbous":   "Waxing gibbous",
	"full moon":        "Full moon",
	"waning gibbous":   "Waning gibbous",
	"third quarter":    "Third quarter",
	"waning crescent":  "Waning crescent",
	"low":              "Low",
	"moderate":         "Moderate",
	"high":             "High",
	"very high":        "Very High",
	"extreme":          "Extreme",
}
