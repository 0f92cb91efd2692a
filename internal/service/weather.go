// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"

	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/presenter"
	"github.com/wneessen/weather-dash/internal/timealign"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/weather"
)

const trendDays = 7

// ViewOptions are the UI control values a view is rendered for.
type ViewOptions struct {
	Policy units.Policy
	// Day is the index of the day selected in the hourly forecast dropdown.
	Day int
}

// View is a rendered dashboard for one location.
type View struct {
	Sequence  uint64
	Location  Location
	Title     string
	Timezone  string
	Favourite bool
	Theme     favourites.Theme
	Dashboard presenter.Dashboard
}

// ShowLocation fetches the forecast for loc and renders the dashboard. The weekly trend is best
// effort; if it cannot be computed the dashboard shows the trend as unavailable. The shared state
// only takes over the view if no newer request was issued in the meantime; the caller receives
// its view either way.
func (s *Service) ShowLocation(ctx context.Context, loc Location, opts ViewOptions) (*View, error) {
	seq := s.nextSequence()

	data, err := s.forecastFor(ctx, loc, opts.Policy)
	if err != nil {
		return nil, err
	}

	idx := timealign.FindClosestHourIndex(data.Hourly.Time, data.Current.Time)
	night := presenter.IsNight(data, data.Current.Time)
	trend := s.weeklyTrend(ctx, loc.Coordinate, opts.Policy, data)

	view := &View{
		Sequence: seq,
		Location: loc,
		Title:    loc.Text(),
		Timezone: data.Timezone,
		Theme:    s.Theme(ctx),
		Dashboard: s.presenter.Dashboard(data, presenter.Input{
			Policy:    opts.Policy,
			HourIndex: idx,
			Night:     night,
			Day:       opts.Day,
			Trend:     trend,
			Rand:      s.rand,
		}),
	}
	if view.Favourite, err = s.store.Contains(ctx, loc.Coordinate); err != nil {
		s.logger.Error("failed to look up favourite", logger.Err(err))
	}

	if !s.applyView(seq, view) {
		s.logger.Debug("view superseded by a newer request", "sequence", seq, "location", loc.Text())
	}
	return view, nil
}

// weeklyTrend compares the observed last seven days with the forecast of the next seven days.
func (s *Service) weeklyTrend(ctx context.Context, coords geo.Coordinate, policy units.Policy,
	data *weather.Payload,
) presenter.Trend {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, s.config.Weather.Timeout)
	defer cancelFetch()

	now := s.now()
	if data.Location != nil {
		now = now.In(data.Location)
	}
	end := now.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(trendDays - 1))

	last, err := s.historyProv.GetDailySummary(ctxFetch, coords, start, end, policy)
	if err != nil {
		s.logger.Warn("failed to fetch weekly history", logger.Err(err))
		return presenter.UnavailableTrend()
	}
	this, err := s.outlookProv.GetDailyOutlook(ctxFetch, coords, policy)
	if err != nil {
		s.logger.Warn("failed to fetch weekly outlook", logger.Err(err))
		return presenter.UnavailableTrend()
	}
	return presenter.WeeklyTrend(last, this.Window(trendDays), policy)
}

// Refresh renders the latest shown location again with opts.
func (s *Service) Refresh(ctx context.Context, opts ViewOptions) (*View, error) {
	state := s.State()
	if state.View == nil {
		return s.ShowLocation(ctx, s.StartLocation(ctx), opts)
	}
	return s.ShowLocation(ctx, state.Location, opts)
}

// forecastFor fetches the forecast of a location without touching the shared state.
func (s *Service) forecastFor(ctx context.Context, loc Location, policy units.Policy) (*weather.Payload, error) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, s.config.Weather.Timeout)
	defer cancelFetch()
	data, err := s.weatherProv.GetForecast(ctxFetch, loc.Coordinate, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", loc.Text(), err)
	}
	return data, nil
}
