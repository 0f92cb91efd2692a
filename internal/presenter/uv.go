// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"

	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weather-dash/internal/vartype"
)

// UVBand is one of the UV index risk bands.
type UVBand struct {
	Name  localize.MsgID
	Short string
	Color string
}

var (
	UVLow      = UVBand{Name: "Low", Short: "Low", Color: "#3EC73E"}
	UVModerate = UVBand{Name: "Moderate", Short: "Mod", Color: "#F9D747"}
	UVHigh     = UVBand{Name: "High", Short: "High", Color: "#FF8C24"}
	UVVeryHigh = UVBand{Name: "Very High", Short: "V.High", Color: "#FF6060"}
	UVExtreme  = UVBand{Name: "Extreme", Short: "Extr", Color: "#B567F8"}
)

// UV is a rounded UV index with its band. Set is false if the value is missing or not positive.
type UV struct {
	Value int
	Band  UVBand
	Set   bool
}

// UVLevel rounds the UV index and resolves its band. A missing, zero or negative index renders
// as NoData.
func UVLevel(val vartype.VarFloat64) UV {
	if !val.IsSet() || val.Value() <= 0 {
		return UV{}
	}
	rounded := int(Round(val.Value()))
	return UV{Value: rounded, Band: uvBand(rounded), Set: true}
}

func uvBand(val int) UVBand {
	switch {
	case val < 3:
		return UVLow
	case val < 6:
		return UVModerate
	case val < 8:
		return UVHigh
	case val < 11:
		return UVVeryHigh
	default:
		return UVExtreme
	}
}

// String renders the index with the short band label, e.g. "6 (High)".
func (u UV) String() string {
	if !u.Set {
		return vartype.NoData
	}
	return fmt.Sprintf("%d (%s)", u.Value, u.Band.Short)
}

// Describe renders the index with the full band label, e.g. "7 (Very High)".
func (u UV) Describe() string {
	if !u.Set {
		return vartype.NoData
	}
	return fmt.Sprintf("%d (%s)", u.Value, u.Band.Name)
}
