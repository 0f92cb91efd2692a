// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/stratoberry/go-gpsd"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/gpspoll"
	"github.com/wneessen/weather-dash/internal/logger"
)

const (
	name = "gpsd"

	DefaultHost = "localhost"
	DefaultPort = "2947"
)

// GeolocationGPSDProvider reports positions from a gpsd daemon. When started, it keeps a
// gpsd watch open and serves the latest fix. Without a fresh fix it polls gpsd once.
type GeolocationGPSDProvider struct {
	name     string
	addr     string
	logger   *logger.Logger
	period   time.Duration
	ttl      time.Duration
	locateFn func(ctx context.Context) (gpspoll.Fix, error)

	mu   sync.RWMutex
	last geolocation.Result
}

func NewGeolocationGPSDProvider(log *logger.Logger, host, port string) *GeolocationGPSDProvider {
	if host == "" {
		host = DefaultHost
	}
	if port == "" {
		port = DefaultPort
	}
	poller := gpspoll.New(host, port)
	return &GeolocationGPSDProvider{
		name:     name,
		addr:     net.JoinHostPort(host, port),
		logger:   log,
		period:   time.Second * 30,
		ttl:      time.Minute * 2,
		locateFn: poller.Poll,
	}
}

func (p *GeolocationGPSDProvider) Name() string {
	return p.name
}

// Locate returns the latest watched fix if it is younger than the TTL and polls gpsd otherwise.
func (p *GeolocationGPSDProvider) Locate(ctx context.Context) (geolocation.Result, error) {
	p.mu.RLock()
	last := p.last
	p.mu.RUnlock()
	if last.Source != "" && time.Since(last.At) <= p.ttl {
		return last, nil
	}

	fix, err := p.locateFn(ctx)
	if err != nil {
		return geolocation.Result{}, fmt.Errorf("failed to poll gpsd: %w", err)
	}
	if !fix.Has2DFix() {
		return geolocation.Result{}, fmt.Errorf("gpsd has no 2D fix (mode %d)", fix.Mode)
	}
	result := p.createResult(fix.Lat, fix.Lon, fix.Acc)
	p.store(result)
	return result, nil
}

// Start keeps a gpsd watch open in the background until ctx is canceled. Lost connections are
// re-established after the provider period.
func (p *GeolocationGPSDProvider) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			session, err := gpsd.Dial(p.addr)
			if err != nil {
				p.logger.Debug("failed to connect to gpsd", "address", p.addr, logger.Err(err))
				if !sleepOrDone(ctx, p.period) {
					return
				}
				continue
			}

			session.AddFilter("TPV", func(r interface{}) {
				tpv, ok := r.(*gpsd.TPVReport)
				if !ok {
					return
				}
				p.handleReport(tpv)
			})

			done := session.Watch()
			select {
			case <-ctx.Done():
				return
			case <-done:
			}
			if !sleepOrDone(ctx, p.period) {
				return
			}
		}
	}()
}

// handleReport stores the position of a TPV report with at least a 2D fix.
func (p *GeolocationGPSDProvider) handleReport(tpv *gpsd.TPVReport) {
	if tpv.Mode < gpsd.Mode2D {
		return
	}
	acc := gpspoll.HorizontalAccuracy(int(tpv.Mode), 0, tpv.Epx, tpv.Epy)
	p.store(p.createResult(tpv.Lat, tpv.Lon, acc))
}

func (p *GeolocationGPSDProvider) store(result geolocation.Result) {
	p.mu.Lock()
	p.last = result
	p.mu.Unlock()
}

func (p *GeolocationGPSDProvider) createResult(lat, lon, acc float64) geolocation.Result {
	return geolocation.Result{
		Coordinate: geo.Coordinate{
			Lat: geolocation.Truncate(lat, geolocation.TruncPrecision),
			Lon: geolocation.Truncate(lon, geolocation.TruncPrecision),
		},
		AccuracyMeters: geolocation.Truncate(acc, geolocation.TruncPrecision),
		Source:         p.name,
		At:             time.Now(),
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
