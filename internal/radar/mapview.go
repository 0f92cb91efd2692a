// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package radar

import (
	"sync"

	"github.com/wneessen/weather-dash/internal/geo"
)

const (
	DefaultZoom   = 8
	LayerOpacity  = 0.7
	LayerTileSize = 256

	baseLayerDark  = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
	baseLayerLight = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
)

// BaseLayerURL returns the base map tile template for the theme.
func BaseLayerURL(dark bool) string {
	if dark {
		return baseLayerDark
	}
	return baseLayerLight
}

// MapView is the state of the map widget a radar session renders into. It holds at most one
// radar layer.
type MapView struct {
	mu            sync.RWMutex
	center        geo.Coordinate
	zoom          int
	dark          bool
	radarLayer    string
	invalidations int
}

// MapState is a copy of the MapView state.
type MapState struct {
	Center        geo.Coordinate `json:"center"`
	Zoom          int            `json:"zoom"`
	BaseLayer     string         `json:"base_layer"`
	RadarLayer    string         `json:"radar_layer,omitempty"`
	Opacity       float64        `json:"opacity"`
	TileSize      int            `json:"tile_size"`
	Invalidations int            `json:"invalidations"`
}

// NewMapView returns a MapView centered on center with the default zoom.
func NewMapView(center geo.Coordinate, dark bool) *MapView {
	return &MapView{center: center, zoom: DefaultZoom, dark: dark}
}

// SetTheme switches the base layer and invalidates the map size.
func (m *MapView) SetTheme(dark bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dark = dark
	m.invalidations++
}

// SetZoom changes the zoom level. Levels outside of 1 to 18 are ignored.
func (m *MapView) SetZoom(zoom int) {
	if zoom < 1 || zoom > 18 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zoom = zoom
}

// SetCenter moves the map to center.
func (m *MapView) SetCenter(center geo.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.invalidations++
}

// ReplaceRadarLayer swaps the radar layer for url. Replacing a layer with the same url leaves
// the map unchanged.
func (m *MapView) ReplaceRadarLayer(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.radarLayer == url {
		return
	}
	m.radarLayer = url
	m.invalidations++
}

// RemoveRadarLayer removes the radar layer.
func (m *MapView) RemoveRadarLayer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.radarLayer = ""
}

// State returns a copy of the map state.
func (m *MapView) State() MapState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MapState{
		Center:        m.center,
		Zoom:          m.zoom,
		BaseLayer:     BaseLayerURL(m.dark),
		RadarLayer:    m.radarLayer,
		Opacity:       LayerOpacity,
		TileSize:      LayerTileSize,
		Invalidations: m.invalidations,
	}
}
