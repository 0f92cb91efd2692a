// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package gpspoll implements a one-shot gpsd query that returns the first position report.
package gpspoll

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"time"
)

const (
	fallbackAccuracy3DFix = 10
	fallbackAccuracy2DFix = 25
	fallbackAccuracyNoFix = 1e6
	watchTimeout          = time.Second * 2

	watchCommand = `?WATCH={"enable":true,"json":true}` + "\n"
)

// ErrNoFix is returned when gpsd closed the stream before reporting a position.
var ErrNoFix = errors.New("no TPV report received from gpsd")

// Client queries a gpsd daemon
type Client struct {
	Addr string
}

// Fix is a single position report.
type Fix struct {
	Lat  float64
	Lon  float64
	Alt  float64
	Acc  float64
	Mode int
}

// tpvReport is the subset of a gpsd TPV message that is needed for a Fix.
type tpvReport struct {
	Class string  `json:"class"`
	Mode  int     `json:"mode"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Alt   float64 `json:"alt"`
	Epx   float64 `json:"epx"`
	Epy   float64 `json:"epy"`
	Eph   float64 `json:"eph"`
}

func New(host, port string) *Client {
	return &Client{Addr: net.JoinHostPort(host, port)}
}

// Poll enables the gpsd watcher stream and returns the first TPV report. The connection is
// closed before Poll returns.
func (c *Client) Poll(ctx context.Context) (Fix, error) {
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return Fix{}, fmt.Errorf("failed to connect to gpsd at %q: %w", c.Addr, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(watchTimeout)
	}
	_ = conn.SetDeadline(deadline)

	if _, err = fmt.Fprint(conn, watchCommand); err != nil {
		return Fix{}, fmt.Errorf("failed to send WATCH command to gpsd: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return Fix{}, err
		}

		var report tpvReport
		if err = json.Unmarshal(scanner.Bytes(), &report); err != nil {
			continue
		}
		if report.Class != "TPV" {
			continue
		}
		return Fix{
			Lat:  report.Lat,
			Lon:  report.Lon,
			Alt:  report.Alt,
			Acc:  report.accuracy(),
			Mode: report.Mode,
		}, nil
	}
	if err = scanner.Err(); err != nil {
		return Fix{}, fmt.Errorf("failed to read gpsd stream: %w", err)
	}

	return Fix{}, ErrNoFix
}

// Has2DFix reports whether the fix has at least a 2D fix.
func (f Fix) Has2DFix() bool {
	return f.Mode >= 2
}

// HorizontalAccuracy returns the horizontal error estimate in meters. If gpsd reports no
// error estimate, a typical value for the fix mode is used.
func HorizontalAccuracy(mode int, eph, epx, epy float64) float64 {
	switch {
	case eph > 0:
		return eph
	case epx > 0 && epy > 0:
		return math.Hypot(epx, epy)
	case mode >= 3:
		return fallbackAccuracy3DFix
	case mode == 2:
		return fallbackAccuracy2DFix
	default:
		return fallbackAccuracyNoFix
	}
}

func (r tpvReport) accuracy() float64 {
	return HorizontalAccuracy(r.Mode, r.Eph, r.Epx, r.Epy)
}
