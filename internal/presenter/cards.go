// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"time"

	"github.com/wneessen/weather-dash/internal/timealign"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

// HoursToShow is the number of hourly cards rendered from the start index.
const HoursToShow = 24

const hourLabelFormat = "15:04"

// CardKind distinguishes the entries of the hourly list.
type CardKind int

const (
	CardHour CardKind = iota
	CardSeparator
	CardSunrise
	CardSunset
)

// DailyCard is one day of the daily forecast.
type DailyCard struct {
	Date    time.Time
	Weekday time.Weekday
	Icon    string
	Max     string
	Min     string
}

// HourlyCard is one entry of the hourly forecast list.
type HourlyCard struct {
	Kind        CardKind
	Time        time.Time
	Label       string
	Icon        string
	Temperature string
	Night       bool
}

// DayOption is an entry of the hourly day selector.
type DayOption struct {
	Index   int
	Date    time.Time
	Weekday time.Weekday
	Today   bool
}

// DayWindow returns the sunrise and sunset for the day that contains t. It uses the daily series
// of the payload and falls back to the computed solar times if the payload has no sunrise data.
func DayWindow(p *weather.Payload, t time.Time) (timealign.DayWindow, bool) {
	if len(p.Daily.Sunrise) == 0 && len(p.Daily.Sunset) == 0 {
		return timealign.SolarWindow(p.Coordinates.Lat, p.Coordinates.Lon, t)
	}
	return timealign.ResolveDayWindow(p.Daily.Time, p.Daily.Sunrise, p.Daily.Sunset, t)
}

// IsNight reports whether t is at night at the payload location. Unresolvable days count as day.
func IsNight(p *weather.Payload, t time.Time) bool {
	window, ok := DayWindow(p, t)
	if !ok {
		return false
	}
	return timealign.IsNight(t, window)
}

// DailyCards returns one card per forecast day.
func DailyCards(p *weather.Payload) []DailyCard {
	cards := make([]DailyCard, 0, p.Daily.Len())
	for i, date := range p.Daily.Time {
		code := vartype.At(p.Daily.WeatherCode, i)
		cards = append(cards, DailyCard{
			Date:    date,
			Weekday: date.Weekday(),
			Icon:    Icon(code.Value(), false),
			Max:     degrees(vartype.At(p.Daily.TemperatureMax, i)),
			Min:     degrees(vartype.At(p.Daily.TemperatureMin, i)),
		})
	}
	return cards
}

// HourlyCards returns up to count hours starting at start. A separator precedes the first hour
// of each new day. A sunrise or sunset card follows the hour that contains it.
func HourlyCards(p *weather.Payload, start, count int) []HourlyCard {
	if start < 0 || start >= p.Hourly.Len() {
		return nil
	}
	end := min(start+count, p.Hourly.Len())

	cards := make([]HourlyCard, 0, end-start)
	for i := start; i < end; i++ {
		hour := p.Hourly.Time[i]
		if i > start && hour.Day() != p.Hourly.Time[i-1].Day() {
			cards = append(cards, HourlyCard{Kind: CardSeparator, Time: hour})
		}

		window, ok := DayWindow(p, hour)
		night := ok && timealign.IsNight(hour, window)
		code := vartype.At(p.Hourly.WeatherCode, i)
		cards = append(cards, HourlyCard{
			Kind:        CardHour,
			Time:        hour,
			Label:       hour.Format(hourLabelFormat),
			Icon:        Icon(code.Value(), night),
			Temperature: degrees(vartype.At(p.Hourly.Temperature, i)),
			Night:       night,
		})
		if !ok {
			continue
		}

		switch hour.Hour() {
		case window.Sunrise.Hour():
			cards = append(cards, HourlyCard{
				Kind:  CardSunrise,
				Time:  window.Sunrise,
				Label: window.Sunrise.Format(hourLabelFormat),
				Icon:  iconSunrise,
			})
		case window.Sunset.Hour():
			cards = append(cards, HourlyCard{
				Kind:  CardSunset,
				Time:  window.Sunset,
				Label: window.Sunset.Format(hourLabelFormat),
				Icon:  iconSunset,
			})
		}
	}
	return cards
}

// DayOptions returns the entries of the hourly day selector. The first day is today.
func DayOptions(p *weather.Payload) []DayOption {
	options := make([]DayOption, 0, p.Daily.Len())
	for i, date := range p.Daily.Time {
		options = append(options, DayOption{Index: i, Date: date, Weekday: date.Weekday(), Today: i == 0})
	}
	return options
}

// DayStartIndex returns the hourly index the list starts at for the selected day. Today starts
// at current, every other day at its first hour. It returns -1 if the day is unknown.
func DayStartIndex(p *weather.Payload, day, current int) int {
	if day < 0 || day >= p.Daily.Len() {
		return -1
	}
	if day == 0 {
		return current
	}
	date := p.Daily.Time[day]
	for i, hour := range p.Hourly.Time {
		if sameDay(hour, date) {
			return i
		}
	}
	return -1
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
