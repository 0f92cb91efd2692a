// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package radar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/logger"
)

var (
	ErrSessionNotFound = errors.New("radar session not found")
	ErrTooManySessions = errors.New("too many open radar sessions")
)

// DefaultMaxSessions is the number of radar sessions that can be open at the same time.
const DefaultMaxSessions = 100

type session struct {
	player     *Player
	lastAccess time.Time
}

// Sessions is the registry of open radar sessions. Every open of the radar view creates a
// session with its own Player.
type Sessions struct {
	mu       sync.RWMutex
	ctx      context.Context
	loader   Loader
	log      *logger.Logger
	interval time.Duration
	zoom     int
	limit    int
	sessions map[uuid.UUID]*session
}

// NewSessions returns an empty registry. Players of the registry stop autoplay when ctx is
// cancelled.
func NewSessions(ctx context.Context, loader Loader, log *logger.Logger, interval time.Duration) *Sessions {
	return &Sessions{
		ctx:      ctx,
		loader:   loader,
		log:      log,
		interval: interval,
		zoom:     DefaultZoom,
		limit:    DefaultMaxSessions,
		sessions: make(map[uuid.UUID]*session),
	}
}

// SetZoom sets the zoom level of sessions opened afterwards.
func (s *Sessions) SetZoom(zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = zoom
}

// SetLimit sets the maximum number of open sessions. Values below 1 are ignored.
func (s *Sessions) SetLimit(limit int) {
	if limit < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = limit
}

// Open loads the current timeline and registers a new session centered on center.
func (s *Sessions) Open(ctx context.Context, center geo.Coordinate, timezone string, dark bool) (uuid.UUID, Status, error) {
	s.mu.RLock()
	full := len(s.sessions) >= s.limit
	s.mu.RUnlock()
	if full {
		return uuid.Nil, Status{}, ErrTooManySessions
	}

	timeline, err := s.loader.LoadTimeline(ctx)
	if err != nil {
		return uuid.Nil, Status{}, fmt.Errorf("failed to open radar session: %w", err)
	}

	view := NewMapView(center, dark)
	s.mu.RLock()
	view.SetZoom(s.zoom)
	s.mu.RUnlock()
	player := NewPlayer(s.ctx, view, timezone, s.interval)
	if err = player.Load(timeline); err != nil {
		return uuid.Nil, Status{}, fmt.Errorf("failed to open radar session: %w", err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, Status{}, fmt.Errorf("failed to generate radar session ID: %w", err)
	}
	s.mu.Lock()
	if len(s.sessions) >= s.limit {
		s.mu.Unlock()
		return uuid.Nil, Status{}, ErrTooManySessions
	}
	s.sessions[id] = &session{player: player, lastAccess: time.Now()}
	s.mu.Unlock()

	s.log.Debug("radar session opened", "session", id.String(), "frames", timeline.Len())
	return id, player.Status(), nil
}

// Get returns the player of a session and marks the session as accessed.
func (s *Sessions) Get(id uuid.UUID) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastAccess = time.Now()
	return sess.player, nil
}

// Close stops the player of a session and removes the session.
func (s *Sessions) Close(id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.player.Close()
	s.log.Debug("radar session closed", "session", id.String())
	return nil
}

// Expire closes every session that was not accessed within idle and returns the number of
// closed sessions.
func (s *Sessions) Expire(idle time.Duration) int {
	now := time.Now()
	var expired []*Player

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastAccess) >= idle {
			expired = append(expired, sess.player)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, player := range expired {
		player.Close()
	}
	return len(expired)
}

// CloseAll closes every session.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.player.Close()
	}
}

// Refresh loads the current timeline once and hands it to every open session. The sessions
// restart at their default frame.
func (s *Sessions) Refresh(ctx context.Context) error {
	s.mu.RLock()
	open := len(s.sessions)
	s.mu.RUnlock()
	if open == 0 {
		return nil
	}

	timeline, err := s.loader.LoadTimeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh radar timeline: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, sess := range s.sessions {
		if err = sess.player.Load(timeline); err != nil {
			s.log.Warn("failed to refresh radar session", logger.Err(err), "session", id.String())
		}
	}
	return nil
}

// SetTheme switches the base layer of every open session.
func (s *Sessions) SetTheme(dark bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.player.SetTheme(dark)
	}
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
