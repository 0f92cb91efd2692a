// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geocode"
)

// Location is a place the dashboard is shown for.
type Location struct {
	Name       string         `json:"name"`
	Country    string         `json:"country"`
	Coordinate geo.Coordinate `json:"coordinates"`
	// Current is set if the coordinates are the position of the dashboard host.
	Current bool `json:"current"`
}

// LocationFromPlace returns the location of a geocoding match.
func LocationFromPlace(place geocode.Place) Location {
	return Location{Name: place.Name, Country: place.Country, Coordinate: place.Coordinate()}
}

// LocationFromFavourite returns the location of a favourite.
func LocationFromFavourite(fav favourites.Favourite) Location {
	if fav.IsCurrentLocation() {
		return Location{Coordinate: fav.Coordinate(), Current: true}
	}
	return Location{Name: fav.Name, Country: fav.Country, Coordinate: fav.Coordinate()}
}

// Text returns the display name of the location.
func (l Location) Text() string {
	if l.Current {
		return favourites.CurrentLocation
	}
	if text := geocode.LocationText(l.Name, l.Country); text != "" {
		return text
	}
	return l.Coordinate.String()
}

// Favourite returns the favourite entry for the location.
func (l Location) Favourite() favourites.Favourite {
	if l.Current {
		return favourites.New(favourites.CurrentLocation, "", l.Coordinate)
	}
	return favourites.New(l.Name, l.Country, l.Coordinate)
}

// State is the application state owned by the Service. It is only accessed through the methods
// of the Service while holding its state lock.
type State struct {
	// Location is the location of the latest applied view.
	Location Location
	// Position is the last known position of the dashboard host.
	Position    geo.Coordinate
	HasPosition bool
	// View is the latest applied view.
	View *View

	issued  uint64
	applied uint64
}

// IsCurrentLocation reports whether the latest applied view shows the host position.
func (s State) IsCurrentLocation() bool {
	return s.Location.Current
}

// State returns a copy of the application state.
func (s *Service) State() State {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	return s.state
}

// nextSequence issues the sequence number of a new view request.
func (s *Service) nextSequence() uint64 {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	s.state.issued++
	return s.state.issued
}

// applyView stores view as the latest view if it belongs to the most recently issued request. It
// reports whether the view was applied.
func (s *Service) applyView(seq uint64, view *View) bool {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	if seq != s.state.issued {
		return false
	}
	s.state.View = view
	s.state.Location = view.Location
	s.state.applied = seq
	if view.Location.Current {
		s.state.Position = view.Location.Coordinate
		s.state.HasPosition = true
	}
	return true
}

// setPosition records the position of the dashboard host.
func (s *Service) setPosition(coords geo.Coordinate) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	s.state.Position = coords
	s.state.HasPosition = true
}
