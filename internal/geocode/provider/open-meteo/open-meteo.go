// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/http"
)

const (
	APIEndpoint = "https://geocoding-api.open-meteo.com/v1/search"
	APITimeout  = time.Second * 10
	name        = "open-meteo"
)

type OpenMeteo struct {
	http *http.Client
	lang language.Tag
}

type Response struct {
	Results []Result `json:"results"`
}

type Result struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
}

func New(client *http.Client, lang language.Tag) *OpenMeteo {
	return &OpenMeteo{
		http: client,
		lang: lang,
	}
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) Search(ctx context.Context, address string, count int) ([]geocode.Place, error) {
	var response Response

	base, _ := o.lang.Base()
	query := url.Values{}
	query.Set("name", address)
	query.Set("count", strconv.Itoa(count))
	query.Set("language", base.String())
	query.Set("format", "json")

	code, err := o.http.GetWithTimeout(ctx, APIEndpoint, &response, query, nil, APITimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to search places via Open-Meteo geocoding API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("received non-positive response code from Open-Meteo geocoding API: %d", code)
	}

	places := make([]geocode.Place, 0, len(response.Results))
	for _, result := range response.Results {
		places = append(places, geocode.Place{
			Name:        result.Name,
			Region:      result.Admin1,
			Country:     result.Country,
			CountryCode: result.CountryCode,
			Latitude:    result.Latitude,
			Longitude:   result.Longitude,
		})
	}
	return places, nil
}
