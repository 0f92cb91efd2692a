// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"

	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/logger"
)

// Favourites returns the saved locations.
func (s *Service) Favourites(ctx context.Context) ([]favourites.Favourite, error) {
	favs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	return favs, nil
}

// ToggleFavourite saves loc as a favourite or removes the favourite with the same coordinates.
// It returns true if loc is a favourite afterwards.
func (s *Service) ToggleFavourite(ctx context.Context, loc Location) (bool, error) {
	added, err := s.store.Toggle(ctx, loc.Favourite())
	if err != nil {
		return false, fmt.Errorf("failed to toggle favourite: %w", err)
	}
	s.logger.Debug("favourite toggled", "location", loc.Text(), "favourite", added)
	return added, nil
}

// Theme returns the stored theme. Storage failures yield the dark theme.
func (s *Service) Theme(ctx context.Context) favourites.Theme {
	theme, err := s.store.Theme(ctx)
	if err != nil {
		s.logger.Error("failed to read theme preference", logger.Err(err))
		return favourites.ThemeDark
	}
	return theme
}

// ToggleTheme switches to the opposite theme and updates the base map of all radar sessions.
func (s *Service) ToggleTheme(ctx context.Context) (favourites.Theme, error) {
	theme := s.Theme(ctx).Toggle()
	if err := s.store.SetTheme(ctx, theme); err != nil {
		return s.Theme(ctx), fmt.Errorf("failed to store theme preference: %w", err)
	}
	s.radar.SetTheme(theme.Dark())
	return theme, nil
}
