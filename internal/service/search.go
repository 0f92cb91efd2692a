// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/logger"
)

// Search returns the place suggestions for query. Queries shorter than the minimum query length
// yield no suggestions and no error. A lookup without a match returns geocode.ErrNoResults.
func (s *Service) Search(ctx context.Context, query string) ([]geocode.Place, error) {
	if _, ok := geocode.NormalizeQuery(query); !ok {
		return []geocode.Place{}, nil
	}
	places, err := s.geocoder.Search(ctx, strings.TrimSpace(query), s.config.Geocoder.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	if len(places) == 0 {
		return nil, geocode.ErrNoResults
	}
	return places, nil
}

// Resolve returns the location of the best match for query.
func (s *Service) Resolve(ctx context.Context, query string) (Location, error) {
	if _, ok := geocode.NormalizeQuery(query); !ok {
		return Location{}, geocode.ErrNoResults
	}
	places, err := s.geocoder.Search(ctx, strings.TrimSpace(query), 1)
	if err != nil {
		return Location{}, fmt.Errorf("failed to resolve %q: %w", query, err)
	}
	if len(places) == 0 {
		return Location{}, geocode.ErrNoResults
	}
	return LocationFromPlace(places[0]), nil
}

// Locate determines the position of the dashboard host once. Every failure of the geolocation
// providers is reported as geolocation.ErrLocationUnavailable.
func (s *Service) Locate(ctx context.Context) (Location, error) {
	result, err := s.locator.Locate(ctx)
	if err != nil {
		s.logger.Warn("failed to determine the current location", logger.Err(err))
		return Location{}, geolocation.ErrLocationUnavailable
	}
	s.setPosition(result.Coordinate)
	return Location{
		Name:       result.City,
		Country:    result.Country,
		Coordinate: result.Coordinate,
		Current:    true,
	}, nil
}

// StartLocation returns the location shown when no location was requested: the last known host
// position, a freshly located one, or the configured default location.
func (s *Service) StartLocation(ctx context.Context) Location {
	state := s.State()
	if state.HasPosition {
		return Location{Coordinate: state.Position, Current: true}
	}
	loc, err := s.Locate(ctx)
	if err != nil {
		return s.DefaultLocation()
	}
	return loc
}

// DefaultLocation returns the configured fallback location.
func (s *Service) DefaultLocation() Location {
	return Location{
		Name:       s.config.GeoLocation.DefaultName,
		Country:    s.config.GeoLocation.DefaultCountry,
		Coordinate: s.config.DefaultLocation(),
	}
}
