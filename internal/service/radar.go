// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wneessen/weather-dash/internal/radar"
)

// OpenRadar opens a radar session centered on the latest shown location. The frame labels are
// rendered in the timezone of that location.
func (s *Service) OpenRadar(ctx context.Context) (string, radar.Status, error) {
	state := s.State()
	loc, timezone := state.Location, ""
	if state.View != nil {
		timezone = state.View.Timezone
	} else {
		loc = s.DefaultLocation()
	}
	id, status, err := s.radar.Open(ctx, loc.Coordinate, timezone, s.Theme(ctx).Dark())
	if err != nil {
		return "", radar.Status{}, err
	}
	return id.String(), status, nil
}

// RadarStatus returns the state of a radar session.
func (s *Service) RadarStatus(id string) (radar.Status, error) {
	player, err := s.player(id)
	if err != nil {
		return radar.Status{}, err
	}
	return player.Status(), nil
}

// SelectRadarFrame stops the autoplay of a radar session and shows the frame at idx.
func (s *Service) SelectRadarFrame(id string, idx int) (radar.Status, error) {
	player, err := s.player(id)
	if err != nil {
		return radar.Status{}, err
	}
	return player.Scrub(idx)
}

// ToggleRadar starts or stops the autoplay of a radar session.
func (s *Service) ToggleRadar(id string) (radar.Status, error) {
	player, err := s.player(id)
	if err != nil {
		return radar.Status{}, err
	}
	return player.Toggle()
}

// CloseRadar closes a radar session.
func (s *Service) CloseRadar(id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %w", radar.ErrSessionNotFound, err)
	}
	return s.radar.Close(sessionID)
}

func (s *Service) player(id string) (*radar.Player, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", radar.ErrSessionNotFound, err)
	}
	return s.radar.Get(sessionID)
}
