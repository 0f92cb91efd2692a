// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"
	"math"
	"strconv"
)

const (
	EarthRadius = 6371000.0 // meters
)

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Equal reports whether both coordinates describe exactly the same position.
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Lat == other.Lat && c.Lon == other.Lon
}

// DistanceTo returns the great-circle distance in meters using the Haversine formula.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dLat := (c.Lat - other.Lat) * math.Pi / 180
	dLon := (c.Lon - other.Lon) * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// String returns the coordinate in "lat,lon" notation.
func (c Coordinate) String() string {
	return FormatFloat(c.Lat) + "," + FormatFloat(c.Lon)
}

// FormatFloat formats a coordinate component without trailing zeros.
func FormatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// Parse parses latitude and longitude strings into a valid Coordinate.
func Parse(lat, lon string) (Coordinate, error) {
	var coord Coordinate
	var err error
	coord.Lat, err = strconv.ParseFloat(lat, 64)
	if err != nil {
		return coord, fmt.Errorf("failed to parse latitude: %w", err)
	}
	coord.Lon, err = strconv.ParseFloat(lon, 64)
	if err != nil {
		return coord, fmt.Errorf("failed to parse longitude: %w", err)
	}
	if !coord.Valid() {
		return coord, fmt.Errorf("coordinates out of range: %s", coord)
	}
	return coord, nil
}
