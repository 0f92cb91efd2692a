// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/http"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

const (
	name            = "open-meteo"
	apiEndpoint     = "https://api.open-meteo.com/v1/forecast"
	archiveEndpoint = "https://archive-api.open-meteo.com/v1/archive"
	apiTimeout      = time.Second * 10
	dateFormat      = "2006-01-02"
	outlookDays     = 7
)

var (
	hourlyFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "precipitation", "weathercode",
		"windspeed_10m", "visibility", "pressure_msl", "uv_index", "dewpoint_2m",
	}
	dailyFields = []string{
		"temperature_2m_max", "temperature_2m_min", "weathercode", "sunrise", "sunset",
	}
	summaryFields = []string{"temperature_2m_max", "temperature_2m_min", "precipitation_sum"}
)

type OpenMeteo struct {
	log      *logger.Logger
	http     *http.Client
	omclient omgo.Client
}

type resTime struct {
	time.Time
}

type forecastResponse struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	CurrentWeather       struct {
		Time        resTime `json:"time"`
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Time                []resTime            `json:"time"`
		Temperature         []vartype.VarFloat64 `json:"temperature_2m"`
		RelativeHumidity    []vartype.VarFloat64 `json:"relative_humidity_2m"`
		ApparentTemperature []vartype.VarFloat64 `json:"apparent_temperature"`
		Precipitation       []vartype.VarFloat64 `json:"precipitation"`
		WeatherCode         []vartype.VarInt     `json:"weathercode"`
		WindSpeed           []vartype.VarFloat64 `json:"windspeed_10m"`
		Visibility          []vartype.VarFloat64 `json:"visibility"`
		PressureMSL         []vartype.VarFloat64 `json:"pressure_msl"`
		UVIndex             []vartype.VarFloat64 `json:"uv_index"`
		DewPoint            []vartype.VarFloat64 `json:"dewpoint_2m"`
	} `json:"hourly"`
	Daily struct {
		Time           []resTime            `json:"time"`
		TemperatureMax []vartype.VarFloat64 `json:"temperature_2m_max"`
		TemperatureMin []vartype.VarFloat64 `json:"temperature_2m_min"`
		WeatherCode    []vartype.VarInt     `json:"weathercode"`
		Sunrise        []resTime            `json:"sunrise"`
		Sunset         []resTime            `json:"sunset"`
	} `json:"daily"`
}

type summaryResponse struct {
	Daily struct {
		Time             []resTime            `json:"time"`
		TemperatureMax   []vartype.VarFloat64 `json:"temperature_2m_max"`
		TemperatureMin   []vartype.VarFloat64 `json:"temperature_2m_min"`
		PrecipitationSum []vartype.VarFloat64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func New(http *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	omclient, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}

	return &OpenMeteo{http: http, log: log, omclient: omclient}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// GetForecast fetches current conditions plus the hourly and daily series for the given
// coordinates. All timestamps are returned in the location's timezone.
func (o *OpenMeteo) GetForecast(ctx context.Context, coords geo.Coordinate, policy units.Policy) (*weather.Payload, error) {
	res := new(forecastResponse)

	query := policy.APIParams()
	query.Set("latitude", geo.FormatFloat(coords.Lat))
	query.Set("longitude", geo.FormatFloat(coords.Lon))
	query.Set("current_weather", "true")
	query.Set("hourly", strings.Join(hourlyFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", "auto")

	code, err := o.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("Open-Meteo API returned non-positive response code: %d", code)
	}

	loc := location(res.Timezone, res.TimezoneAbbreviation, res.UTCOffsetSeconds)
	payload := &weather.Payload{
		GeneratedAt: time.Now(),
		Coordinates: coords,
		Timezone:    res.Timezone,
		Location:    loc,
		Current: weather.Current{
			Time:        res.CurrentWeather.Time.in(loc),
			Temperature: res.CurrentWeather.Temperature,
			WindSpeed:   res.CurrentWeather.WindSpeed,
			WeatherCode: res.CurrentWeather.WeatherCode,
		},
		Hourly: weather.Hourly{
			Time:                times(res.Hourly.Time, loc),
			Temperature:         res.Hourly.Temperature,
			RelativeHumidity:    res.Hourly.RelativeHumidity,
			ApparentTemperature: res.Hourly.ApparentTemperature,
			Precipitation:       res.Hourly.Precipitation,
			WeatherCode:         res.Hourly.WeatherCode,
			WindSpeed:           res.Hourly.WindSpeed,
			Visibility:          res.Hourly.Visibility,
			PressureMSL:         res.Hourly.PressureMSL,
			UVIndex:             res.Hourly.UVIndex,
			DewPoint:            res.Hourly.DewPoint,
		},
		Daily: weather.Daily{
			Time:           times(res.Daily.Time, loc),
			TemperatureMax: res.Daily.TemperatureMax,
			TemperatureMin: res.Daily.TemperatureMin,
			WeatherCode:    res.Daily.WeatherCode,
			Sunrise:        times(res.Daily.Sunrise, loc),
			Sunset:         times(res.Daily.Sunset, loc),
		},
	}
	o.log.Debug("forecast retrieved", "provider", name, "timezone", res.Timezone,
		"hours", payload.Hourly.Len(), "days", payload.Daily.Len())

	return payload, nil
}

// GetDailySummary fetches observed daily values from the archive API for the inclusive date
// range start to end.
func (o *OpenMeteo) GetDailySummary(ctx context.Context, coords geo.Coordinate, start, end time.Time,
	policy units.Policy,
) (weather.DailySummary, error) {
	res := new(summaryResponse)

	query := url.Values{}
	query.Set("latitude", geo.FormatFloat(coords.Lat))
	query.Set("longitude", geo.FormatFloat(coords.Lon))
	query.Set("start_date", start.Format(dateFormat))
	query.Set("end_date", end.Format(dateFormat))
	query.Set("daily", strings.Join(summaryFields, ","))
	query.Set("timezone", "auto")
	query.Set("temperature_unit", policy.TemperatureUnit())
	query.Set("precipitation_unit", policy.PrecipitationUnit())

	code, err := o.http.GetWithTimeout(ctx, archiveEndpoint, res, query, nil, apiTimeout)
	if err != nil {
		return weather.DailySummary{}, fmt.Errorf("failed to retrieve history from Open-Meteo archive API: %w", err)
	}
	if code != 200 {
		return weather.DailySummary{}, fmt.Errorf("Open-Meteo archive API returned non-positive response code: %d", code)
	}

	return weather.DailySummary{
		TemperatureMax:   values(res.Daily.TemperatureMax),
		TemperatureMin:   values(res.Daily.TemperatureMin),
		PrecipitationSum: values(res.Daily.PrecipitationSum),
	}, nil
}

// GetDailyOutlook fetches the daily forecast aggregates for the next seven days, starting today.
func (o *OpenMeteo) GetDailyOutlook(ctx context.Context, coords geo.Coordinate, policy units.Policy) (weather.DailySummary, error) {
	loc, err := omgo.NewLocation(coords.Lat, coords.Lon)
	if err != nil {
		return weather.DailySummary{}, fmt.Errorf("failed create Open-Meteo location from coordinates: %w", err)
	}
	opts := &omgo.Options{
		TemperatureUnit:   policy.TemperatureUnit(),
		WindspeedUnit:     policy.WindUnit(),
		PrecipitationUnit: policy.PrecipitationUnit(),
		Timezone:          "auto",
		DailyMetrics:      summaryFields,
	}

	ctxFetch, cancelFetch := context.WithTimeout(ctx, apiTimeout)
	defer cancelFetch()
	forecast, err := o.omclient.Forecast(ctxFetch, loc, opts)
	if err != nil {
		return weather.DailySummary{}, fmt.Errorf("failed to get daily outlook from Open-Meteo API: %w", err)
	}

	summary := weather.DailySummary{
		TemperatureMax:   forecast.DailyMetrics["temperature_2m_max"],
		TemperatureMin:   forecast.DailyMetrics["temperature_2m_min"],
		PrecipitationSum: forecast.DailyMetrics["precipitation_sum"],
	}
	return summary.Window(outlookDays), nil
}

// location resolves the timezone of the forecast. If the IANA name is unknown to the local
// zoneinfo database, a fixed zone with the reported offset is used instead.
func location(tz, abbr string, offset int) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if abbr == "" {
		abbr = tz
	}
	return time.FixedZone(abbr, offset)
}

func times(list []resTime, loc *time.Location) []time.Time {
	out := make([]time.Time, 0, len(list))
	for _, t := range list {
		out = append(out, t.in(loc))
	}
	return out
}

// values flattens a daily series. Null days count as 0 so that means cover every requested day.
// A series without any value is returned empty.
func values(list []vartype.VarFloat64) []float64 {
	out := make([]float64, len(list))
	set := false
	for i, v := range list {
		if v.IsSet() {
			out[i] = v.Value()
			set = true
		}
	}
	if !set {
		return nil
	}
	return out
}

// in reinterprets the zone-less wall clock time from the API in loc.
func (r resTime) in(loc *time.Location) time.Time {
	if r.IsZero() {
		return time.Time{}
	}
	return time.Date(r.Year(), r.Month(), r.Day(), r.Hour(), r.Minute(), r.Second(), 0, loc)
}

func (r *resTime) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty time")
	}
	if string(b) == "null" {
		return nil
	}
	if b[0] != '"' || len(b) < 2 {
		return fmt.Errorf("invalid time format: %s", string(b))
	}

	raw := string(b[1 : len(b)-1])
	layout := "2006-01-02T15:04"
	if len(raw) == len(dateFormat) {
		layout = dateFormat
	}
	apiTime, err := time.Parse(layout, raw)
	if err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}
	r.Time = apiTime

	return nil
}
