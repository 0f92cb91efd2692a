// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"math/rand/v2"
	"slices"
)

const (
	starCount      = 250
	brightStarRate = 0.05
	lightRainDrops = 20
	heavyRainDrops = 70
	snowFlakes     = 50
	stormDrops     = 100
)

const (
	ClassNight = "night-background"
	ClassRain  = "rain-background"
	ClassSnow  = "snow-background"
	ClassStorm = "storm-background"
)

var lightRainCodes = []int{51, 53, 56}

// Particle is a single decorative element of the background. Left and Top are percentages,
// Size is in pixels, Duration and Delay in seconds.
type Particle struct {
	Class    string
	Left     float64
	Top      float64
	Size     float64
	Opacity  float64
	Duration float64
	Delay    float64
}

// Background describes the decorative effects behind the dashboard.
type Background struct {
	Classes   []string
	Particles []Particle
}

// NewBackground builds the effects for a weather code. Night adds stars, drizzle and rain add
// drops, snow adds flakes and thunderstorms add a denser, faster rain. A nil rnd uses the global
// source.
func NewBackground(code int, night bool, rnd *rand.Rand) Background {
	random := rand.Float64
	if rnd != nil {
		random = rnd.Float64
	}

	var bg Background
	if night {
		bg.Classes = append(bg.Classes, ClassNight)
		for range starCount {
			size := 2 + random()*3
			star := Particle{
				Class:    "star",
				Left:     random() * 100,
				Top:      random() * 100,
				Size:     size,
				Opacity:  1,
				Duration: 3 + random()*7,
				Delay:    random() * 10,
			}
			if random() < brightStarRate {
				star.Class = "star star-bright"
			}
			bg.Particles = append(bg.Particles, star)
		}
	}

	switch BucketFor(code) {
	case BucketDrizzle, BucketRain:
		bg.Classes = append(bg.Classes, ClassRain)
		density := heavyRainDrops
		if slices.Contains(lightRainCodes, code) {
			density = lightRainDrops
		}
		for range density {
			bg.Particles = append(bg.Particles, Particle{
				Class:    "rain-drop",
				Left:     random() * 100,
				Opacity:  1,
				Duration: 0.5 + random()*0.7,
				Delay:    random() * 5,
			})
		}
	case BucketSnow:
		bg.Classes = append(bg.Classes, ClassSnow)
		for range snowFlakes {
			bg.Particles = append(bg.Particles, Particle{
				Class:    "snow-flake",
				Left:     random() * 100,
				Size:     2 + random()*4,
				Duration: 5 + random()*10,
				Delay:    random() * 5,
				Opacity:  0.3 + random()*0.7,
			})
		}
	case BucketStorm:
		bg.Classes = append(bg.Classes, ClassRain, ClassStorm)
		for range stormDrops {
			bg.Particles = append(bg.Particles, Particle{
				Class:    "rain-drop",
				Left:     random() * 100,
				Opacity:  1,
				Duration: 0.3 + random()*0.5,
				Delay:    random() * 3,
			})
		}
	}
	return bg
}

// Count returns the number of particles with the given class.
func (b Background) Count(class string) int {
	count := 0
	for _, particle := range b.Particles {
		if particle.Class == class {
			count++
		}
	}
	return count
}
