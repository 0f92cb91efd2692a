// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/weather"
)

const emojiCells = 2

var ErrNilLocalizer = errors.New("localizer must not be nil")

// Input carries the alignment results the dashboard is rendered for.
type Input struct {
	Policy    units.Policy
	HourIndex int
	Night     bool
	Day       int
	Trend     Trend
	Rand      *rand.Rand
}

// Dashboard is the view model of the main page.
type Dashboard struct {
	GeneratedAt   time.Time
	Policy        units.Policy
	Labels        units.Labels
	Current       CurrentView
	Tip           Tip
	Daily         []DailyCard
	Hourly        []HourlyCard
	Days          []DayOption
	SelectedDay   int
	Trend         Trend
	Background    Background
	MoonPhase     string
	MoonPhaseIcon string
}

// Presenter turns forecast payloads into view models and localizes their labels.
type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
}

// New returns a Presenter that localizes with the given localizer.
func New(localizer *spreak.Localizer) (*Presenter, error) {
	if localizer == nil {
		return nil, ErrNilLocalizer
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	return &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(localizer.Language()),
	}, nil
}

// Dashboard renders the view model for a payload. The hourly list starts at the current hour for
// today and at the first hour of any other selected day.
func (p *Presenter) Dashboard(data *weather.Payload, in Input) Dashboard {
	day := in.Day
	start := DayStartIndex(data, day, in.HourIndex)
	if start < 0 {
		day = 0
		start = in.HourIndex
	}
	phase := moonphase.New(data.Current.Time).PhaseName()

	return Dashboard{
		GeneratedAt:   data.GeneratedAt,
		Policy:        in.Policy,
		Labels:        in.Policy.Labels(),
		Current:       Current(data, in.HourIndex, in.Policy, in.Night),
		Tip:           PickTip(Tips(data, in.HourIndex, in.Policy), in.Rand),
		Daily:         DailyCards(data),
		Hourly:        HourlyCards(data, start, HoursToShow),
		Days:          DayOptions(data),
		SelectedDay:   day,
		Trend:         in.Trend,
		Background:    NewBackground(data.Current.WeatherCode, in.Night, in.Rand),
		MoonPhase:     phase,
		MoonPhaseIcon: MoonPhaseIcon[phase],
	}
}

// Loc returns the localized UI label for key. Unknown keys are returned unchanged.
func (p *Presenter) Loc(key string) string {
	if raw, ok := i18nVars[strings.ToLower(key)]; ok {
		return p.localizer.Get(raw)
	}
	return key
}

// Translate localizes a message.
func (p *Presenter) Translate(msg localize.MsgID) string {
	return p.localizer.Get(msg)
}

// Sentence localizes a message with format arguments.
func (p *Presenter) Sentence(s Sentence) string {
	if len(s.Args) == 0 {
		return p.localizer.Get(s.Format)
	}
	return p.localizer.Getf(s.Format, s.Args...)
}

// TrendMessage localizes the weekly trend.
func (p *Presenter) TrendMessage(t Trend) string {
	if !t.Available {
		return p.localizer.Get(TrendUnavailable)
	}
	return p.Sentence(t.Temperature) + " " + p.Sentence(t.Precipitation)
}

// TipText localizes a tip and prefixes it with its padded emoji.
func (p *Presenter) TipText(t Tip) string {
	return EmojiWithSpace(t.Emoji) + p.localizer.Get(t.Text)
}

// Condition localizes the description of a weather code.
func (p *Presenter) Condition(code int) string {
	return p.localizer.Get(Condition(code))
}

// MoonPhaseName localizes a moon phase name.
func (p *Presenter) MoonPhaseName(phase string) string {
	return p.Loc(phase)
}

// UVName localizes the full band name of a UV index.
func (p *Presenter) UVName(uv UV) string {
	if !uv.Set {
		return ""
	}
	return p.localizer.Get(uv.Band.Name)
}

// Weekday returns the localized weekday name of t. Short returns the abbreviated name.
func (p *Presenter) Weekday(t time.Time, short bool) string {
	if short {
		return p.humanizer.FormatTime(t, "D")
	}
	return p.humanizer.FormatTime(t, "l")
}

// LocalizedTime formats t as a localized time of day.
func (p *Presenter) LocalizedTime(t time.Time) string {
	return p.humanizer.FormatTime(t, humanize.TimeFormat)
}

// NaturalTime formats t relative to now, e.g. "5 minutes ago".
func (p *Presenter) NaturalTime(t time.Time) string {
	return p.humanizer.NaturalTime(t)
}

// FuncMap returns the template helpers of the presenter.
func (p *Presenter) FuncMap() map[string]any {
	return map[string]any{
		"loc":           p.Loc,
		"tr":            p.Translate,
		"sentence":      p.Sentence,
		"trend":         p.TrendMessage,
		"tip":           p.TipText,
		"condition":     p.Condition,
		"moonphase":     p.MoonPhaseName,
		"uvName":        p.UVName,
		"weekday":       p.Weekday,
		"localizedTime": p.LocalizedTime,
		"naturalTime":   p.NaturalTime,
		"timeFormat":    timeFormat,
		"floatFormat":   floatFormat,
		"emoji":         EmojiWithSpace,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

// EmojiWithSpace pads an emoji to two cells plus a separating space.
func EmojiWithSpace(emoji string) string {
	if emoji == "" {
		return ""
	}
	width := runewidth.StringWidth(emoji)
	return emoji + strings.Repeat(" ", max(emojiCells-width, 0)+1)
}

func timeFormat(val time.Time, format string) string {
	return val.Format(format)
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}
