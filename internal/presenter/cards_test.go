// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"testing"
	"time"

	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

func TestDailyCards(t *testing.T) {
	cards := DailyCards(testPayload())
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Weekday != time.Sunday {
		t.Errorf("expected first day to be a Sunday, got %s", cards[0].Weekday)
	}
	if cards[0].Max != "15°" || cards[0].Min != "2°" {
		t.Errorf("unexpected temperatures: %s/%s", cards[0].Max, cards[0].Min)
	}
	if cards[1].Min != "-1°" {
		t.Errorf("unexpected min temperature: %s", cards[1].Min)
	}
	if cards[1].Icon != "icon-rain.webp" {
		t.Errorf("unexpected icon: %s", cards[1].Icon)
	}
}

func TestHourlyCards(t *testing.T) {
	t.Run("24 hours with sunrise, sunset and a day separator", func(t *testing.T) {
		payload := testPayload()
		cards := HourlyCards(payload, 6, HoursToShow)

		var hours, separators, rises, sets int
		for _, card := range cards {
			switch card.Kind {
			case CardHour:
				hours++
			case CardSeparator:
				separators++
				if !card.Time.Equal(dayTwo) {
					t.Errorf("expected separator at %s, got %s", dayTwo, card.Time)
				}
			case CardSunrise:
				rises++
			case CardSunset:
				sets++
				if card.Label != "17:39" {
					t.Errorf("unexpected sunset label: %s", card.Label)
				}
			}
		}
		if hours != HoursToShow {
			t.Errorf("expected %d hours, got %d", HoursToShow, hours)
		}
		if separators != 1 {
			t.Errorf("expected 1 separator, got %d", separators)
		}
		if rises != 1 || sets != 1 {
			t.Errorf("expected 1 sunrise and 1 sunset, got %d and %d", rises, sets)
		}
		if cards[0].Label != "06:00" || !cards[0].Night {
			t.Errorf("expected first card to be a night hour at 06:00, got %+v", cards[0])
		}
		if cards[1].Kind != CardHour || cards[2].Kind != CardSunrise {
			t.Errorf("expected sunrise card to follow the 07:00 hour, got %+v", cards[2])
		}
		if cards[1].Night {
			t.Error("expected 07:00 to be before sunrise at 07:01 and therefore night")
		}
	})
	t.Run("list is cut at the end of the series", func(t *testing.T) {
		cards := HourlyCards(testPayload(), 40, HoursToShow)
		hours := 0
		for _, card := range cards {
			if card.Kind == CardHour {
				hours++
			}
		}
		if hours != 8 {
			t.Errorf("expected 8 hours, got %d", hours)
		}
	})
	t.Run("invalid start yields no cards", func(t *testing.T) {
		if cards := HourlyCards(testPayload(), -1, HoursToShow); cards != nil {
			t.Errorf("expected no cards, got %d", len(cards))
		}
	})
	t.Run("payload without sunrise data uses the solar window", func(t *testing.T) {
		payload := testPayload()
		payload.Daily.Sunrise = nil
		payload.Daily.Sunset = nil
		cards := HourlyCards(payload, 0, HoursToShow)
		if !cards[0].Night {
			t.Error("expected midnight in Berlin to be at night")
		}
	})
	t.Run("missing temperature renders as placeholder", func(t *testing.T) {
		payload := testPayload()
		payload.Hourly.Temperature[3] = vartype.VarFloat64{}
		cards := HourlyCards(payload, 3, 1)
		if cards[0].Temperature != vartype.NoData {
			t.Errorf("expected placeholder, got %s", cards[0].Temperature)
		}
	})
}

func TestIsNight(t *testing.T) {
	payload := testPayload()
	tests := []struct {
		name string
		time time.Time
		want bool
	}{
		{"before sunrise", sunrise.Add(-time.Minute), true},
		{"at sunrise", sunrise, false},
		{"before sunset", sunset.Add(-time.Second), false},
		{"at sunset", sunset, true},
		{"outside the forecast", dayOne.AddDate(0, 0, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNight(payload, tt.time); got != tt.want {
				t.Errorf("IsNight(%s): got %t, want %t", tt.time, got, tt.want)
			}
		})
	}
}

func TestDayOptions(t *testing.T) {
	options := DayOptions(testPayload())
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if !options[0].Today || options[1].Today {
		t.Error("expected only the first option to be today")
	}
	if options[1].Weekday != time.Monday {
		t.Errorf("unexpected weekday: %s", options[1].Weekday)
	}
}

func TestDayStartIndex(t *testing.T) {
	payload := testPayload()
	tests := []struct {
		name    string
		day     int
		current int
		want    int
	}{
		{"today starts at the current hour", 0, 13, 13},
		{"tomorrow starts at midnight", 1, 13, 24},
		{"negative day", -1, 13, -1},
		{"day out of range", 2, 13, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayStartIndex(payload, tt.day, tt.current); got != tt.want {
				t.Errorf("DayStartIndex: got %d, want %d", got, tt.want)
			}
		})
	}
	t.Run("day without hourly data", func(t *testing.T) {
		sparse := &weather.Payload{Daily: weather.Daily{Time: []time.Time{dayOne, dayTwo}}}
		if got := DayStartIndex(sparse, 1, 0); got != -1 {
			t.Errorf("expected -1, got %d", got)
		}
	})
}
