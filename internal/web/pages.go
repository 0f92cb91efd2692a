// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/service"
	"github.com/wneessen/weather-dash/internal/template"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	policy := s.policy(r)
	page := s.basePage(r, policy)

	loc, notice, err := s.requestLocation(r)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			page.Notice = MessageNoResults
			s.render(w, http.StatusNotFound, template.PageDashboard, page)
			return
		}
		s.logger.Warn("failed to resolve the requested location", logger.Err(err))
		page.Error = err.Error()
		s.render(w, statusFor(err), template.PageError, page)
		return
	}
	page.Notice = notice

	day, _ := strconv.Atoi(r.URL.Query().Get("day"))
	view, err := s.ctrl.ShowLocation(r.Context(), loc, service.ViewOptions{Policy: policy, Day: day})
	if err != nil {
		s.logger.Error("failed to show location", logger.Err(err), "location", loc.Text())
		page.Title = loc.Text()
		page.Error = err.Error()
		s.render(w, statusFor(err), template.PageError, page)
		return
	}

	page.Title = view.Title
	page.View = view
	page.Theme = view.Theme
	for _, option := range view.Dashboard.Days {
		page.Links.Days = append(page.Links.Days, dashboardURL(loc, policy, option.Index))
	}
	if loc.Current || r.URL.Query().Has("q") {
		page.Links.Self = dashboardURL(loc, policy, view.Dashboard.SelectedDay)
	}
	s.render(w, http.StatusOK, template.PageDashboard, page)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	policy := s.policy(r)
	page := s.basePage(r, policy)
	page.Title = "Compare"

	query := r.URL.Query()
	page.CompareA = strings.TrimSpace(query.Get("a"))
	page.CompareB = strings.TrimSpace(query.Get("b"))
	if page.CompareA == "" || page.CompareB == "" {
		s.render(w, http.StatusOK, template.PageCompare, page)
		return
	}

	comparison, err := s.ctrl.CompareQueries(r.Context(), page.CompareA, page.CompareB, policy)
	if err != nil {
		page.Error = err.Error()
		if errors.Is(err, geocode.ErrNoResults) {
			page.Error = MessageNoResults
		} else {
			s.logger.Error("failed to compare locations", logger.Err(err))
		}
		s.render(w, statusFor(err), template.PageCompare, page)
		return
	}
	page.Comparison = comparison
	s.render(w, http.StatusOK, template.PageCompare, page)
}

func (s *Server) handleToggleFavourite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	coords, err := geo.Parse(r.PostFormValue("lat"), r.PostFormValue("lon"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	loc := service.Location{
		Name:       r.PostFormValue("name"),
		Country:    r.PostFormValue("country"),
		Coordinate: coords,
		Current:    r.PostFormValue("current") == "1",
	}
	if _, err = s.ctrl.ToggleFavourite(r.Context(), loc); err != nil {
		s.logger.Error("failed to toggle favourite", logger.Err(err))
		http.Error(w, "failed to toggle favourite", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	if _, err := s.ctrl.ToggleTheme(r.Context()); err != nil {
		s.logger.Error("failed to toggle theme", logger.Err(err))
		http.Error(w, "failed to toggle theme", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}
