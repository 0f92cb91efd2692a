// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/radar"
)

var ErrInvalidFrameIndex = errors.New("invalid radar frame index")

// RadarSession is the response of the radar API.
type RadarSession struct {
	ID     string       `json:"id"`
	Status radar.Status `json:"status"`
}

func (s *Server) handleRadarOpen(w http.ResponseWriter, r *http.Request) {
	id, status, err := s.ctrl.OpenRadar(r.Context())
	if err != nil {
		s.logger.Error("failed to open radar session", logger.Err(err))
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, RadarSession{ID: id, Status: status})
}

func (s *Server) handleRadarStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status, err := s.ctrl.RadarStatus(id)
	s.writeRadar(w, id, status, err)
}

func (s *Server) handleRadarFrame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	idx, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFrameIndex, err))
		return
	}
	status, err := s.ctrl.SelectRadarFrame(id, idx)
	s.writeRadar(w, id, status, err)
}

func (s *Server) handleRadarToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status, err := s.ctrl.ToggleRadar(id)
	s.writeRadar(w, id, status, err)
}

func (s *Server) handleRadarClose(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.CloseRadar(r.PathValue("id")); err != nil {
		s.writeError(w, radarStatusCode(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeRadar(w http.ResponseWriter, id string, status radar.Status, err error) {
	if err != nil {
		s.writeError(w, radarStatusCode(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, RadarSession{ID: id, Status: status})
}

func radarStatusCode(err error) int {
	if errors.Is(err, radar.ErrNotLoaded) {
		return http.StatusConflict
	}
	return statusFor(err)
}
