// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"

	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/weather"
)

const (
	TrendClass       = "trend-message"
	TrendClassWarmer = "trend-warmer"
	TrendClassCooler = "trend-cooler"
	TrendClassWetter = "trend-wetter"
	TrendClassDrier  = "trend-drier"

	// drierFactor is the multiple of the precipitation threshold last week must exceed for a
	// nearly dry week to be reported as "much drier".
	drierFactor = 5
)

// TrendUnavailable is the message shown when the weekly comparison could not be computed.
const TrendUnavailable localize.MsgID = "Weekly comparison not available"

// Sentence is a translatable message with its format arguments.
type Sentence struct {
	Format localize.MsgID
	Args   []any
}

// String renders the untranslated sentence.
func (s Sentence) String() string {
	if len(s.Args) == 0 {
		return s.Format
	}
	return fmt.Sprintf(s.Format, s.Args...)
}

// Trend is the result of the weekly comparison.
type Trend struct {
	Available     bool
	Temperature   Sentence
	Precipitation Sentence
	Classes       []string
}

// UnavailableTrend returns the trend shown when history or outlook could not be loaded.
func UnavailableTrend() Trend {
	return Trend{Temperature: Sentence{Format: TrendUnavailable}, Classes: []string{TrendClass}}
}

// WeeklyTrend compares the mean temperature and the precipitation sum of the last week with the
// forecast of this week. An empty series on either side yields an unavailable trend.
func WeeklyTrend(last, this weather.DailySummary, policy units.Policy) Trend {
	if last.Empty() || this.Empty() {
		return UnavailableTrend()
	}
	tempThreshold, precipThreshold := policy.TrendThresholds()
	precipUnit := policy.Labels().Precipitation

	lastMean := (mean(last.TemperatureMax) + mean(last.TemperatureMin)) / 2
	thisMean := (mean(this.TemperatureMax) + mean(this.TemperatureMin)) / 2
	tempDiff := thisMean - lastMean
	lastPrecip, thisPrecip := sum(last.PrecipitationSum), sum(this.PrecipitationSum)
	precipDiff := thisPrecip - lastPrecip

	trend := Trend{Available: true, Classes: []string{TrendClass}}
	switch {
	case math.Abs(tempDiff) < tempThreshold:
		trend.Temperature = Sentence{Format: "This week's temperature will be similar to last week."}
	case tempDiff > 0:
		trend.Temperature = Sentence{Format: "This week will be %.1f° warmer than last week.", Args: []any{tempDiff}}
		trend.Classes = append(trend.Classes, TrendClassWarmer)
	default:
		trend.Temperature = Sentence{Format: "This week will be %.1f° cooler than last week.", Args: []any{-tempDiff}}
		trend.Classes = append(trend.Classes, TrendClassCooler)
	}

	switch {
	case math.Abs(precipDiff) < precipThreshold:
		trend.Precipitation = Sentence{Format: "Expect similar amounts of precipitation."}
	case precipDiff > 0:
		trend.Precipitation = Sentence{Format: "Expect %.1f%s more precipitation.", Args: []any{precipDiff, precipUnit}}
		trend.Classes = append(trend.Classes, TrendClassWetter)
	case thisPrecip < precipThreshold && lastPrecip > precipThreshold*drierFactor:
		trend.Precipitation = Sentence{Format: "This week will be much drier than last week."}
		trend.Classes = append(trend.Classes, TrendClassDrier)
	default:
		trend.Precipitation = Sentence{Format: "Expect %.1f%s less precipitation.", Args: []any{-precipDiff, precipUnit}}
		trend.Classes = append(trend.Classes, TrendClassDrier)
	}
	return trend
}

// String renders the untranslated trend message.
func (t Trend) String() string {
	if !t.Available {
		return TrendUnavailable
	}
	return t.Temperature.String() + " " + t.Precipitation.String()
}

// Class returns the CSS classes of the trend message.
func (t Trend) Class() string {
	return strings.Join(t.Classes, " ")
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func sum(values []float64) float64 {
	var total float64
	for _, val := range values {
		total += val
	}
	return total
}
