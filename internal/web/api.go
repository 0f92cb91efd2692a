// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/service"
)

// Suggestion is one entry of the search suggestion list.
type Suggestion struct {
	Label   string  `json:"label"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	URL     string  `json:"url"`
}

// SearchResponse is the response of the search API. Message is set if there are no suggestions.
type SearchResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
	Message     string       `json:"message,omitempty"`
}

// FavouriteEntry is one entry of the favourites API.
type FavouriteEntry struct {
	Text    string  `json:"text"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Current bool    `json:"current"`
	URL     string  `json:"url"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	policy := s.policy(r)
	resp := SearchResponse{Query: query, Suggestions: []Suggestion{}}

	places, err := s.ctrl.Search(r.Context(), query)
	switch {
	case errors.Is(err, geocode.ErrNoResults):
		resp.Message = MessageNoResults
		s.writeJSON(w, http.StatusOK, resp)
		return
	case err != nil:
		s.logger.Error("failed to search for places", logger.Err(err))
		s.writeError(w, statusFor(err), err)
		return
	}

	for _, place := range places {
		resp.Suggestions = append(resp.Suggestions, Suggestion{
			Label:   place.Label(),
			Name:    place.Name,
			Country: place.Country,
			Lat:     place.Latitude,
			Lon:     place.Longitude,
			URL:     dashboardURL(service.LocationFromPlace(place), policy, 0),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	loc, _, err := s.requestLocation(r)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	day, _ := strconv.Atoi(r.URL.Query().Get("day"))
	view, err := s.ctrl.ShowLocation(r.Context(), loc, service.ViewOptions{Policy: s.policy(r), Day: day})
	if err != nil {
		s.logger.Error("failed to show location", logger.Err(err), "location", loc.Text())
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleFavourites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.ctrl.Favourites(r.Context())
	if err != nil {
		s.logger.Error("failed to list favourites", logger.Err(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	policy := s.policy(r)
	entries := make([]FavouriteEntry, 0, len(favs))
	for _, fav := range favs {
		loc := service.LocationFromFavourite(fav)
		entries = append(entries, FavouriteEntry{
			Text:    fav.Text(),
			Name:    fav.Name,
			Country: fav.Country,
			Lat:     fav.Lat,
			Lon:     fav.Lon,
			Current: loc.Current,
			URL:     dashboardURL(loc, policy, 0),
		})
	}
	s.writeJSON(w, http.StatusOK, entries)
}
