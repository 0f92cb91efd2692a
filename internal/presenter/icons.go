// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

// Bucket is a group of WMO weather codes that share an icon.
type Bucket int

const (
	BucketUnknown Bucket = iota
	BucketClear
	BucketPartlyCloudy
	BucketOvercast
	BucketFog
	BucketDrizzle
	BucketRain
	BucketSnow
	BucketStorm
)

const (
	iconNightClear        = "icon-night-clear.webp"
	iconNightPartlyCloudy = "icon-night-partly-cloudy.webp"
	iconSunrise           = "icon-sunrise.webp"
	iconSunset            = "icon-sunset.webp"
)

var codeBuckets = func() map[int]Bucket {
	buckets := make(map[int]Bucket)
	for bucket, codes := range bucketCodes {
		for _, code := range codes {
			buckets[code] = bucket
		}
	}
	return buckets
}()

// BucketFor returns the icon bucket of a WMO weather code. Unknown codes return BucketUnknown.
func BucketFor(code int) Bucket {
	return codeBuckets[code]
}

// Icon returns the icon file for a weather code. Night variants exist only for clear and
// partly cloudy skies. Unknown codes use the clear sky icon.
func Icon(code int, night bool) string {
	bucket := BucketFor(code)
	if night {
		switch bucket {
		case BucketClear:
			return iconNightClear
		case BucketPartlyCloudy:
			return iconNightPartlyCloudy
		}
	}
	if icon, ok := bucketIcons[bucket]; ok {
		return icon
	}
	return bucketIcons[BucketClear]
}

// Condition returns the description of a weather code.
func Condition(code int) string {
	if desc, ok := WMOWeatherCodes[code]; ok {
		return desc
	}
	return "Unknown"
}
