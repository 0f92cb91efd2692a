// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocation_file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geolocation"
)

const (
	name = "geolocation_file"

	// Accuracy is reported for positions read from the file. A file is maintained by hand, so
	// its content is considered the most accurate position available.
	Accuracy = 5
)

var ErrNoCoordinates = errors.New("no valid coordinates found in geolocation file")

// GeolocationFileProvider reads the position from a file. The first line in the form
// "lat,lon" that is not a comment is used.
type GeolocationFileProvider struct {
	name     string
	path     string
	locateFn func() (lat, lon float64, err error)
}

func NewGeolocationFileProvider(path string) *GeolocationFileProvider {
	provider := &GeolocationFileProvider{
		name: name,
		path: path,
	}
	provider.locateFn = provider.readFile
	return provider
}

func (p *GeolocationFileProvider) Name() string {
	return p.name
}

func (p *GeolocationFileProvider) Locate(ctx context.Context) (geolocation.Result, error) {
	if err := ctx.Err(); err != nil {
		return geolocation.Result{}, err
	}
	lat, lon, err := p.locateFn()
	if err != nil {
		return geolocation.Result{}, err
	}
	return geolocation.Result{
		Coordinate:     geo.Coordinate{Lat: lat, Lon: lon},
		AccuracyMeters: Accuracy,
		Source:         p.name,
		At:             time.Now(),
	}, nil
}

func (p *GeolocationFileProvider) readFile() (lat, lon float64, err error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read geolocation file %q: %w", p.path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			continue
		}
		lat, err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			continue
		}
		lon, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			continue
		}
		if !(geo.Coordinate{Lat: lat, Lon: lon}).Valid() {
			continue
		}
		return lat, lon, nil
	}
	return 0, 0, ErrNoCoordinates
}
