// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package timealign maps instants onto the hourly and daily series of a forecast.
package timealign

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// endOfDay is the last instant that still belongs to a calendar day. Instants between
// 23:59:59 and the following midnight belong to no day.
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// DayWindow is the daylight span of one calendar day.
type DayWindow struct {
	Sunrise time.Time
	Sunset  time.Time
}

// FindClosestHourIndex returns the index of the sample closest to target. On equal distance the
// lowest index wins. Targets outside the series resolve to the nearest boundary. An empty series
// returns -1.
func FindClosestHourIndex(times []time.Time, target time.Time) int {
	if len(times) == 0 {
		return -1
	}

	closest := 0
	minDiff := absDuration(times[0].Sub(target))
	for i := 1; i < len(times); i++ {
		diff := absDuration(times[i].Sub(target))
		if diff < minDiff {
			minDiff = diff
			closest = i
		}
	}
	return closest
}

// ResolveDayWindow returns the sunrise and sunset of the day that contains t. The second return
// value is false if no day contains t or if the sunrise or sunset of that day is missing.
func ResolveDayWindow(dates, sunrise, sunset []time.Time, t time.Time) (DayWindow, bool) {
	for i, date := range dates {
		start := startOfDay(date)
		if t.Before(start) || t.After(start.Add(endOfDay)) {
			continue
		}
		if i >= len(sunrise) || i >= len(sunset) {
			return DayWindow{}, false
		}
		if sunrise[i].IsZero() || sunset[i].IsZero() {
			return DayWindow{}, false
		}
		return DayWindow{Sunrise: sunrise[i], Sunset: sunset[i]}, true
	}
	return DayWindow{}, false
}

// IsNight reports whether t lies before sunrise or at or after sunset.
func IsNight(t time.Time, window DayWindow) bool {
	return t.Before(window.Sunrise) || !t.Before(window.Sunset)
}

// NightAt resolves the day window for t and reports whether t is at night. It reports day if no
// window can be resolved.
func NightAt(dates, sunrise, sunset []time.Time, t time.Time) bool {
	window, ok := ResolveDayWindow(dates, sunrise, sunset, t)
	if !ok {
		return false
	}
	return IsNight(t, window)
}

// SolarWindow computes the sunrise and sunset for the calendar day of date at the given
// coordinates. The returned times are in the location of date. During polar day or night the
// second return value is false.
func SolarWindow(lat, lon float64, date time.Time) (DayWindow, bool) {
	rise, set := sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return DayWindow{}, false
	}
	loc := date.Location()
	return DayWindow{Sunrise: rise.In(loc), Sunset: set.In(loc)}, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
