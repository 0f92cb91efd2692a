// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package radar

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wneessen/weather-dash/internal/job"
)

// DefaultInterval is the autoplay cadence.
const DefaultInterval = time.Millisecond * 500

var ErrNotLoaded = errors.New("radar player has no timeline loaded")

// State is the playback state of a Player.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StatePlaying
	StatePaused
)

// String implements the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Status is a snapshot of a Player.
type Status struct {
	State      State    `json:"-"`
	StateName  string   `json:"state"`
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Timestamp  int64    `json:"timestamp"`
	IsForecast bool     `json:"is_forecast"`
	Label      string   `json:"label"`
	TileURL    string   `json:"tile_url"`
	Map        MapState `json:"map"`
}

// Player drives the frame selection of one radar session. Autoplay advances the frame on a
// single ticker owned by the Player.
type Player struct {
	// ctl serializes state transitions that start or stop autoplay. advance never takes it.
	ctl      sync.Mutex
	mu       sync.Mutex
	ctx      context.Context
	interval time.Duration
	timezone string
	view     *MapView
	autoplay job.Singleton

	timeline *Timeline
	index    int
	state    State
	// generation is bumped whenever autoplay stops, so that ticks of a stopped ticker are dropped
	generation uint64
}

// NewPlayer returns an idle Player. Autoplay runs until ctx is cancelled or the Player is closed.
// Frame labels are rendered in timezone.
func NewPlayer(ctx context.Context, view *MapView, timezone string, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{ctx: ctx, view: view, timezone: timezone, interval: interval}
}

// Load replaces the timeline and selects its default frame. An idle player becomes loaded, a
// playing player keeps playing from the default frame.
func (p *Player) Load(timeline *Timeline) error {
	if timeline == nil || timeline.Len() == 0 {
		return ErrEmptyTimeline
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeline = timeline
	if p.state == StateIdle {
		p.state = StateLoaded
	}
	p.selectLocked(timeline.DefaultIndex())
	return nil
}

// Select shows the frame at idx. Out of range indices are clamped. Selecting the shown frame
// again leaves the map unchanged.
func (p *Player) Select(idx int) (Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timeline == nil {
		return Status{}, ErrNotLoaded
	}
	p.selectLocked(idx)
	return p.statusLocked(), nil
}

// Scrub stops autoplay and shows the frame at idx.
func (p *Player) Scrub(idx int) (Status, error) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	if p.timeline == nil {
		p.mu.Unlock()
		return Status{}, ErrNotLoaded
	}
	if p.state == StatePlaying {
		p.state = StatePaused
		p.generation++
	}
	p.selectLocked(idx)
	status := p.statusLocked()
	p.mu.Unlock()

	p.autoplay.Stop()
	return status, nil
}

// Toggle starts autoplay if the player is loaded or paused and pauses it if it is playing.
func (p *Player) Toggle() (Status, error) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	if p.timeline == nil {
		p.mu.Unlock()
		return Status{}, ErrNotLoaded
	}

	if p.state == StatePlaying {
		p.state = StatePaused
		p.generation++
		status := p.statusLocked()
		p.mu.Unlock()
		p.autoplay.Stop()
		return status, nil
	}

	p.state = StatePlaying
	generation := p.generation
	status := p.statusLocked()
	p.mu.Unlock()

	p.autoplay.Start(p.ctx, job.New(p.interval, func(context.Context) {
		p.advance(generation)
	}))
	return status, nil
}

// Close stops autoplay, removes the radar layer and returns the player to idle.
func (p *Player) Close() {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	p.state = StateIdle
	p.timeline = nil
	p.index = 0
	p.generation++
	p.mu.Unlock()

	p.autoplay.Stop()
	p.view.RemoveRadarLayer()
}

// SetTheme switches the base layer of the map.
func (p *Player) SetTheme(dark bool) {
	p.view.SetTheme(dark)
}

// Status returns a snapshot of the player.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

func (p *Player) advance(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying || p.generation != generation || p.timeline == nil {
		return
	}
	p.selectLocked(p.timeline.Next(p.index))
}

func (p *Player) selectLocked(idx int) {
	p.index = p.timeline.Clamp(idx)
	frame, err := p.timeline.Frame(p.index)
	if err != nil {
		return
	}
	p.view.ReplaceRadarLayer(p.timeline.TileURL(frame))
}

func (p *Player) statusLocked() Status {
	status := Status{State: p.state, StateName: p.state.String(), Index: p.index, Map: p.view.State()}
	if p.timeline == nil {
		return status
	}
	status.Total = p.timeline.Len()
	if frame, err := p.timeline.Frame(p.index); err == nil {
		status.Timestamp = frame.Timestamp
		status.IsForecast = frame.IsForecast
		status.TileURL = p.timeline.TileURL(frame)
		status.Label = p.timeline.Label(p.index, p.timezone)
	}
	return status
}
