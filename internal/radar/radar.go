// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package radar loads the RainViewer radar manifest and drives the playback of its frames.
package radar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/weather-dash/internal/http"
)

const (
	ManifestEndpoint = "https://api.rainviewer.com/public/weather-maps.json"
	DefaultTileHost  = "https://tilecache.rainviewer.com"
	tileSuffix       = "/256/{z}/{x}/{y}/8/1_1.png"
	apiTimeout       = time.Second * 10
	labelFormat      = "15:04"
	forecastSuffix   = " (Forecast)"
)

var (
	ErrEmptyTimeline = errors.New("radar timeline has no frames")
	ErrNilClient     = errors.New("http client must not be nil")
)

// Frame is one radar image. Past frames are observations, nowcast frames are extrapolations.
type Frame struct {
	Timestamp  int64
	Path       string
	IsForecast bool
}

// Time returns the capture time of the frame.
func (f Frame) Time() time.Time {
	return time.Unix(f.Timestamp, 0)
}

// Timeline is the concatenation of the past frames and the nowcast frames, both in ascending
// order. A single zero-based index addresses the concatenation.
type Timeline struct {
	Host      string
	Generated time.Time
	Past      []Frame
	Nowcast   []Frame
}

// Len returns the total number of frames.
func (t *Timeline) Len() int {
	return len(t.Past) + len(t.Nowcast)
}

// DefaultIndex returns the index of the latest observed frame. For a timeline without past
// frames it is 0.
func (t *Timeline) DefaultIndex() int {
	return max(len(t.Past)-1, 0)
}

// Clamp limits idx to the valid frame range.
func (t *Timeline) Clamp(idx int) int {
	return min(max(idx, 0), max(t.Len()-1, 0))
}

// Frame returns the frame at idx after clamping it to the valid range.
func (t *Timeline) Frame(idx int) (Frame, error) {
	if t.Len() == 0 {
		return Frame{}, ErrEmptyTimeline
	}
	idx = t.Clamp(idx)
	if idx < len(t.Past) {
		return t.Past[idx], nil
	}
	return t.Nowcast[idx-len(t.Past)], nil
}

// Next returns the index that follows idx during autoplay. The last nowcast frame wraps around to
// the first past frame.
func (t *Timeline) Next(idx int) int {
	if t.Len() == 0 {
		return 0
	}
	return (t.Clamp(idx) + 1) % t.Len()
}

// TileURL returns the tile URL template of a frame.
func (t *Timeline) TileURL(frame Frame) string {
	host := t.Host
	if host == "" {
		host = DefaultTileHost
	}
	return host + frame.Path + tileSuffix
}

// Label returns the time label of the frame at idx in the given IANA timezone. An empty or
// invalid timezone falls back to the local timezone. Nowcast frames carry a forecast suffix.
func (t *Timeline) Label(idx int, timezone string) string {
	frame, err := t.Frame(idx)
	if err != nil {
		return ""
	}
	label := frame.Time().In(labelLocation(timezone)).Format(labelFormat)
	if frame.IsForecast {
		label += forecastSuffix
	}
	return label
}

func labelLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Loader loads a radar timeline.
type Loader interface {
	LoadTimeline(ctx context.Context) (*Timeline, error)
}

// Client loads the radar manifest from RainViewer.
type Client struct {
	http     *http.Client
	endpoint string
}

// APIResult represents the RainViewer weather maps manifest.
type APIResult struct {
	Version   string `json:"version"`
	Generated int64  `json:"generated"`
	Host      string `json:"host"`
	Radar     struct {
		Past    []APIFrame `json:"past"`
		Nowcast []APIFrame `json:"nowcast"`
	} `json:"radar"`
}

// APIFrame is a frame entry of the manifest.
type APIFrame struct {
	Time int64  `json:"time"`
	Path string `json:"path"`
}

// NewClient returns a Client for the RainViewer manifest endpoint.
func NewClient(client *http.Client) (*Client, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Client{http: client, endpoint: ManifestEndpoint}, nil
}

// LoadTimeline fetches the manifest and returns its radar frames.
func (c *Client) LoadTimeline(ctx context.Context) (*Timeline, error) {
	var result APIResult
	code, err := c.http.GetWithTimeout(ctx, c.endpoint, &result, nil, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to load radar manifest: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("radar manifest API returned non-positive response code: %d", code)
	}

	timeline := &Timeline{
		Host:      result.Host,
		Generated: time.Unix(result.Generated, 0),
		Past:      make([]Frame, 0, len(result.Radar.Past)),
		Nowcast:   make([]Frame, 0, len(result.Radar.Nowcast)),
	}
	for _, frame := range result.Radar.Past {
		timeline.Past = append(timeline.Past, Frame{Timestamp: frame.Time, Path: frame.Path})
	}
	for _, frame := range result.Radar.Nowcast {
		timeline.Nowcast = append(timeline.Nowcast, Frame{Timestamp: frame.Time, Path: frame.Path, IsForecast: true})
	}
	return timeline, nil
}
