// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wneessen/weather-dash/internal/config"
	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/i18n"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/presenter"
	"github.com/wneessen/weather-dash/internal/radar"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/vartype"
	"github.com/wneessen/weather-dash/internal/weather"
)

var (
	testNow = time.Date(2026, 1, 18, 12, 10, 0, 0, time.UTC)
	berlin  = Location{Name: "Berlin", Country: "Germany", Coordinate: geo.Coordinate{Lat: 52.52, Lon: 13.41}}
	madrid  = Location{Name: "Madrid", Country: "Spain", Coordinate: geo.Coordinate{Lat: 40.42, Lon: -3.7}}
)

func TestNew(t *testing.T) {
	t.Run("new service succeeds", func(t *testing.T) {
		serv := testService(t)
		if serv.Presenter() == nil {
			t.Error("expected presenter to be set")
		}
		if serv.DefaultPolicy() != units.Default(units.Metric) {
			t.Errorf("expected metric default policy, got %+v", serv.DefaultPolicy())
		}
	})
	t.Run("new service without logger fails", func(t *testing.T) {
		conf := testConfig(t)
		lang, err := i18n.New(conf.Locale)
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if _, err = New(conf, nil, lang); !errors.Is(err, ErrNilLogger) {
			t.Errorf("expected ErrNilLogger, got %v", err)
		}
	})
	t.Run("initializing service with different geocode providers", func(t *testing.T) {
		tests := []struct {
			name     string
			provider string
			apikey   string
			wantName string
			wantFail bool
		}{
			{"open-meteo", config.GeocoderOpenMeteo, "", "open-meteo", false},
			{"osm-nominatim", config.GeocoderNominatim, "", "osm-nominatim", false},
			{"opencage without api-key", config.GeocoderOpenCage, "", "", true},
			{"opencage with api-key", config.GeocoderOpenCage, "abc", "opencage", false},
			{"geocode.earth without api-key", config.GeocoderGeocodeEarth, "", "", true},
			{"geocode.earth with api-key", config.GeocoderGeocodeEarth, "abc", "geocode-earth", false},
			{"unsupported provider", "invalid", "", "", true},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				serv := testService(t)
				conf := *serv.config
				conf.Geocoder.Provider = tc.provider
				conf.Geocoder.APIKey = tc.apikey
				provider, err := serv.selectGeocodeProvider(&conf, serv.t.Language())
				if tc.wantFail && err == nil {
					t.Fatal("expected geocode provider selection to fail")
				}
				if !tc.wantFail && err != nil {
					t.Fatalf("failed to select geocode provider: %s", err)
				}
				if tc.wantFail {
					return
				}
				if !strings.HasSuffix(provider.Name(), tc.wantName) {
					t.Errorf("expected provider name to end with %q, got %q", tc.wantName, provider.Name())
				}
			})
		}
	})
	t.Run("unsupported weather provider fails", func(t *testing.T) {
		serv := testService(t)
		serv.config.Weather.Provider = "invalid"
		if _, err := serv.selectWeatherProvider(); err == nil {
			t.Error("expected weather provider selection to fail")
		}
	})
	t.Run("geolocation providers follow the config", func(t *testing.T) {
		serv := testService(t)
		if got := len(serv.selectGeolocationProviders()); got != 0 {
			t.Errorf("expected no geolocation providers, got %d", got)
		}
		serv.config.GeoLocation.DisableGeoIP = false
		serv.config.GeoLocation.DisableGeolocationFile = false
		if got := len(serv.selectGeolocationProviders()); got != 2 {
			t.Errorf("expected 2 geolocation providers, got %d", got)
		}
	})
}

func TestService_Run(t *testing.T) {
	t.Run("start the service and gracefully shut it down", func(t *testing.T) {
		serv := testService(t)
		serv.config.Server.ListenAddr = "127.0.0.1:0"
		ctx, cancel := context.WithCancel(t.Context())

		done := make(chan error, 1)
		go func() {
			done <- serv.Run(ctx, stdhttp.NotFoundHandler())
		}()
		time.Sleep(time.Millisecond * 50)
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("failed to run service: %s", err)
			}
		case <-time.After(time.Second * 5):
			t.Fatal("service did not shut down")
		}
	})
	t.Run("starting service fails due to invalid listen address", func(t *testing.T) {
		serv := testService(t)
		serv.config.Server.ListenAddr = "invalid:address:1"
		err := serv.Run(t.Context(), stdhttp.NotFoundHandler())
		if err == nil {
			t.Fatal("expected service to fail")
		}
		if !strings.Contains(err.Error(), "failed to listen on invalid:address:1") {
			t.Errorf("unexpected error: %s", err)
		}
	})
}

func TestService_ShowLocation(t *testing.T) {
	t.Run("showing a location renders the dashboard and updates the state", func(t *testing.T) {
		serv := testService(t)
		view, err := serv.ShowLocation(t.Context(), berlin, ViewOptions{Policy: units.Default(units.Metric)})
		if err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		if view.Title != "Berlin, Germany" {
			t.Errorf("unexpected title: %s", view.Title)
		}
		if view.Dashboard.Current.Temperature != "12°" {
			t.Errorf("unexpected temperature: %s", view.Dashboard.Current.Temperature)
		}
		if view.Dashboard.Current.FeelsLike != "11°" {
			t.Errorf("expected feels-like of the closest hour, got %s", view.Dashboard.Current.FeelsLike)
		}
		if !view.Dashboard.Trend.Available {
			t.Error("expected weekly trend to be available")
		}
		if view.Theme != favourites.ThemeDark || view.Favourite {
			t.Errorf("unexpected theme or favourite state: %s, %t", view.Theme, view.Favourite)
		}

		state := serv.State()
		if state.View != view || state.Location != berlin {
			t.Errorf("expected state to hold the view, got %+v", state.Location)
		}
		if state.IsCurrentLocation() || state.HasPosition {
			t.Error("expected state not to be the current location")
		}
	})
	t.Run("showing the current location records the position", func(t *testing.T) {
		serv := testService(t)
		loc := Location{Coordinate: geo.Coordinate{Lat: 1, Lon: 2}, Current: true}
		view, err := serv.ShowLocation(t.Context(), loc, ViewOptions{Policy: units.Default(units.Metric)})
		if err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		if view.Title != favourites.CurrentLocation {
			t.Errorf("unexpected title: %s", view.Title)
		}
		state := serv.State()
		if !state.IsCurrentLocation() || !state.HasPosition || !state.Position.Equal(loc.Coordinate) {
			t.Errorf("unexpected state: %+v", state)
		}
	})
	t.Run("forecast failure leaves the state untouched", func(t *testing.T) {
		serv := testService(t)
		serv.weatherProv = &weatherProv{shouldFail: true}
		if _, err := serv.ShowLocation(t.Context(), berlin, ViewOptions{}); err == nil {
			t.Fatal("expected showing the location to fail")
		}
		if serv.State().View != nil {
			t.Error("expected no view in the state")
		}
	})
	t.Run("weekly trend failure renders the trend unavailable", func(t *testing.T) {
		serv := testService(t)
		buf := bytes.NewBuffer(nil)
		serv.logger = logger.NewLogger(slog.LevelWarn, buf)
		serv.historyProv = &weatherProv{shouldFail: true}
		view, err := serv.ShowLocation(t.Context(), berlin, ViewOptions{})
		if err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		if view.Dashboard.Trend.Available {
			t.Error("expected weekly trend to be unavailable")
		}
		if view.Dashboard.Trend.String() != presenter.TrendUnavailable {
			t.Errorf("unexpected trend message: %s", view.Dashboard.Trend.String())
		}
		if !strings.Contains(buf.String(), "failed to fetch weekly history") {
			t.Errorf("expected log message, got %q", buf.String())
		}
	})
	t.Run("weekly history covers the seven days before today", func(t *testing.T) {
		serv := testService(t)
		prov := serv.historyProv.(*weatherProv)
		if _, err := serv.ShowLocation(t.Context(), berlin, ViewOptions{}); err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		start, end := prov.historyRange()
		if start.Format(time.DateOnly) != "2026-01-11" || end.Format(time.DateOnly) != "2026-01-17" {
			t.Errorf("unexpected history range: %s to %s", start, end)
		}
	})
	t.Run("a slower earlier response does not overwrite a newer one", func(t *testing.T) {
		serv := testService(t)
		prov := serv.weatherProv.(*weatherProv)
		release := prov.block(berlin.Coordinate)

		var wg sync.WaitGroup
		var slow *View
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			slow, err = serv.ShowLocation(t.Context(), berlin, ViewOptions{})
			if err != nil {
				t.Errorf("failed to show location: %s", err)
			}
		}()
		prov.waitBlocked(t)

		fast, err := serv.ShowLocation(t.Context(), madrid, ViewOptions{})
		if err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		close(release)
		wg.Wait()

		if slow == nil || slow.Location != berlin {
			t.Fatal("expected the slow request to return its own view")
		}
		state := serv.State()
		if state.View != fast || state.Location != madrid {
			t.Errorf("expected the newer view to win, got %s", state.Location.Text())
		}
	})
	t.Run("refresh renders the latest location again", func(t *testing.T) {
		serv := testService(t)
		if _, err := serv.ShowLocation(t.Context(), madrid, ViewOptions{}); err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		view, err := serv.Refresh(t.Context(), ViewOptions{Policy: units.Default(units.Imperial)})
		if err != nil {
			t.Fatalf("failed to refresh: %s", err)
		}
		if view.Location != madrid || view.Dashboard.Labels.Temperature != "°F" {
			t.Errorf("unexpected refreshed view: %s, %s", view.Location.Text(), view.Dashboard.Labels.Temperature)
		}
	})
	t.Run("refresh without a view falls back to the default location", func(t *testing.T) {
		serv := testService(t)
		view, err := serv.Refresh(t.Context(), ViewOptions{})
		if err != nil {
			t.Fatalf("failed to refresh: %s", err)
		}
		if view.Title != "Tokyo, Japan" {
			t.Errorf("expected default location, got %s", view.Title)
		}
	})
}

func TestService_Search(t *testing.T) {
	t.Run("short queries yield no suggestions", func(t *testing.T) {
		serv := testService(t)
		places, err := serv.Search(t.Context(), " b ")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if len(places) != 0 {
			t.Errorf("expected no suggestions, got %d", len(places))
		}
		if serv.geocoder.(*mockGeocoder).calls != 0 {
			t.Error("expected no geocoder lookup")
		}
	})
	t.Run("matches are returned", func(t *testing.T) {
		serv := testService(t)
		places, err := serv.Search(t.Context(), "Berlin")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if len(places) != 2 || places[0].Label() != "Berlin, Germany" {
			t.Errorf("unexpected suggestions: %+v", places)
		}
	})
	t.Run("no match yields ErrNoResults", func(t *testing.T) {
		serv := testService(t)
		if _, err := serv.Search(t.Context(), "Atlantis"); !errors.Is(err, geocode.ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})
	t.Run("geocoder failure is returned", func(t *testing.T) {
		serv := testService(t)
		serv.geocoder = &mockGeocoder{shouldFail: true}
		_, err := serv.Search(t.Context(), "Berlin")
		if err == nil || errors.Is(err, geocode.ErrNoResults) {
			t.Errorf("expected geocoder error, got %v", err)
		}
	})
	t.Run("resolve returns the best match", func(t *testing.T) {
		serv := testService(t)
		loc, err := serv.Resolve(t.Context(), "berlin")
		if err != nil {
			t.Fatalf("failed to resolve: %s", err)
		}
		if loc != berlin {
			t.Errorf("unexpected location: %+v", loc)
		}
		if _, err = serv.Resolve(t.Context(), "x"); !errors.Is(err, geocode.ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})
}

func TestService_Locate(t *testing.T) {
	t.Run("located position is recorded", func(t *testing.T) {
		serv := testService(t)
		serv.locator = &mockLocator{result: geolocation.Result{Coordinate: geo.Coordinate{Lat: 48.14, Lon: 11.58}}}
		loc, err := serv.Locate(t.Context())
		if err != nil {
			t.Fatalf("failed to locate: %s", err)
		}
		if !loc.Current || loc.Text() != favourites.CurrentLocation {
			t.Errorf("expected current location, got %+v", loc)
		}
		if start := serv.StartLocation(t.Context()); !start.Current || start.Coordinate.Lat != 48.14 {
			t.Errorf("expected start location to reuse the position, got %+v", start)
		}
		if calls := serv.locator.(*mockLocator).calls; calls != 1 {
			t.Errorf("expected a single lookup, got %d", calls)
		}
	})
	t.Run("every provider error is reported as location unavailable", func(t *testing.T) {
		serv := testService(t)
		serv.locator = &mockLocator{err: errors.New("permission denied")}
		if _, err := serv.Locate(t.Context()); !errors.Is(err, geolocation.ErrLocationUnavailable) {
			t.Errorf("expected ErrLocationUnavailable, got %v", err)
		}
	})
	t.Run("start location falls back to the default location", func(t *testing.T) {
		serv := testService(t)
		loc := serv.StartLocation(t.Context())
		if loc.Current || loc.Name != "Tokyo" || loc.Coordinate.Lat != 35.68 || loc.Coordinate.Lon != 139.65 {
			t.Errorf("expected Tokyo, got %+v", loc)
		}
	})
}

func TestService_Favourites(t *testing.T) {
	t.Run("favourites are keyed by coordinates", func(t *testing.T) {
		serv := testService(t)
		a := Location{Name: "A", Coordinate: geo.Coordinate{Lat: 1, Lon: 2}}
		b := Location{Name: "B", Coordinate: geo.Coordinate{Lat: 1, Lon: 2}}

		added, err := serv.ToggleFavourite(t.Context(), a)
		if err != nil {
			t.Fatalf("failed to toggle favourite: %s", err)
		}
		if !added {
			t.Error("expected favourite to be added")
		}
		view, err := serv.ShowLocation(t.Context(), a, ViewOptions{})
		if err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		if !view.Favourite {
			t.Error("expected view to be marked as favourite")
		}

		added, err = serv.ToggleFavourite(t.Context(), b)
		if err != nil {
			t.Fatalf("failed to toggle favourite: %s", err)
		}
		if added {
			t.Error("expected favourite with the same coordinates to be removed")
		}
		favs, err := serv.Favourites(t.Context())
		if err != nil {
			t.Fatalf("failed to list favourites: %s", err)
		}
		if len(favs) != 0 {
			t.Errorf("expected no favourites, got %+v", favs)
		}
	})
	t.Run("current location favourite keeps its name", func(t *testing.T) {
		serv := testService(t)
		loc := Location{Name: "Munich", Coordinate: geo.Coordinate{Lat: 48.14, Lon: 11.58}, Current: true}
		if _, err := serv.ToggleFavourite(t.Context(), loc); err != nil {
			t.Fatalf("failed to toggle favourite: %s", err)
		}
		favs, err := serv.Favourites(t.Context())
		if err != nil {
			t.Fatalf("failed to list favourites: %s", err)
		}
		if len(favs) != 1 || !favs[0].IsCurrentLocation() {
			t.Fatalf("unexpected favourites: %+v", favs)
		}
		if got := LocationFromFavourite(favs[0]); !got.Current {
			t.Errorf("expected current location, got %+v", got)
		}
	})
	t.Run("theme toggles between dark and light", func(t *testing.T) {
		serv := testService(t)
		theme, err := serv.ToggleTheme(t.Context())
		if err != nil {
			t.Fatalf("failed to toggle theme: %s", err)
		}
		if theme != favourites.ThemeLight || serv.Theme(t.Context()) != favourites.ThemeLight {
			t.Errorf("expected light theme, got %s", theme)
		}
		theme, err = serv.ToggleTheme(t.Context())
		if err != nil {
			t.Fatalf("failed to toggle theme: %s", err)
		}
		if theme != favourites.ThemeDark {
			t.Errorf("expected dark theme, got %s", theme)
		}
	})
}

func TestService_CompareLocations(t *testing.T) {
	t.Run("comparing two locations tags both sides", func(t *testing.T) {
		serv := testService(t)
		cmp, err := serv.CompareQueries(t.Context(), "Berlin", "Madrid", units.Default(units.Metric))
		if err != nil {
			t.Fatalf("failed to compare locations: %s", err)
		}
		if cmp.A.Label != "Berlin, Germany" || cmp.B.Label != "Madrid, Spain" {
			t.Errorf("unexpected labels: %s, %s", cmp.A.Label, cmp.B.Label)
		}
		// Madrid is at 22°, inside the ideal band
		if cmp.Result.A["temperature"].String() != "metric-worse" ||
			cmp.Result.B["temperature"].String() != "metric-better" {
			t.Errorf("unexpected temperature tags: %+v / %+v", cmp.Result.A, cmp.Result.B)
		}
		if serv.State().View != nil {
			t.Error("expected comparison not to change the state")
		}
	})
	t.Run("failing side fails the comparison", func(t *testing.T) {
		serv := testService(t)
		serv.weatherProv = &weatherProv{failFor: madrid.Coordinate}
		if _, err := serv.CompareLocations(t.Context(), berlin, madrid, units.Default(units.Metric)); err == nil {
			t.Error("expected comparison to fail")
		}
	})
	t.Run("unknown place fails the comparison", func(t *testing.T) {
		serv := testService(t)
		_, err := serv.CompareQueries(t.Context(), "Berlin", "Atlantis", units.Default(units.Metric))
		if !errors.Is(err, geocode.ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})
}

func TestService_Radar(t *testing.T) {
	t.Run("radar session lifecycle", func(t *testing.T) {
		serv := testService(t)
		if _, err := serv.ShowLocation(t.Context(), berlin, ViewOptions{}); err != nil {
			t.Fatalf("failed to show location: %s", err)
		}
		id, status, err := serv.OpenRadar(t.Context())
		if err != nil {
			t.Fatalf("failed to open radar: %s", err)
		}
		if status.Index != 2 || status.Total != 5 || status.State != radar.StateLoaded {
			t.Errorf("unexpected status: %+v", status)
		}
		if !status.Map.Center.Equal(berlin.Coordinate) || status.Map.BaseLayer != radar.BaseLayerURL(true) {
			t.Errorf("unexpected map state: %+v", status.Map)
		}

		status, err = serv.SelectRadarFrame(id, 3)
		if err != nil {
			t.Fatalf("failed to select frame: %s", err)
		}
		if !status.IsForecast || status.Index != 3 {
			t.Errorf("expected first nowcast frame, got %+v", status)
		}
		status, err = serv.ToggleRadar(id)
		if err != nil {
			t.Fatalf("failed to toggle radar: %s", err)
		}
		if status.State != radar.StatePlaying {
			t.Errorf("expected radar to play, got %s", status.StateName)
		}
		status, err = serv.ToggleRadar(id)
		if err != nil {
			t.Fatalf("failed to toggle radar: %s", err)
		}
		if status.State != radar.StatePaused {
			t.Errorf("expected radar to pause, got %s", status.StateName)
		}

		if _, err = serv.ToggleTheme(t.Context()); err != nil {
			t.Fatalf("failed to toggle theme: %s", err)
		}
		status, err = serv.RadarStatus(id)
		if err != nil {
			t.Fatalf("failed to get radar status: %s", err)
		}
		if status.Map.BaseLayer != radar.BaseLayerURL(false) {
			t.Errorf("expected light base layer, got %s", status.Map.BaseLayer)
		}

		if err = serv.CloseRadar(id); err != nil {
			t.Fatalf("failed to close radar: %s", err)
		}
		if _, err = serv.RadarStatus(id); !errors.Is(err, radar.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})
	t.Run("invalid session IDs are not found", func(t *testing.T) {
		serv := testService(t)
		if _, err := serv.RadarStatus("invalid"); !errors.Is(err, radar.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
		if err := serv.CloseRadar("invalid"); !errors.Is(err, radar.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})
	t.Run("radar refresh job reloads open sessions", func(t *testing.T) {
		serv := testService(t)
		loader := &mockLoader{}
		serv.radar = radar.NewSessions(t.Context(), loader, serv.logger, 0)
		serv.refreshRadar(t.Context())
		if loader.calls != 0 {
			t.Errorf("expected no manifest fetch without sessions, got %d", loader.calls)
		}
		if _, _, err := serv.OpenRadar(t.Context()); err != nil {
			t.Fatalf("failed to open radar: %s", err)
		}
		serv.refreshRadar(t.Context())
		if loader.calls != 2 {
			t.Errorf("expected manifest to be fetched again, got %d", loader.calls)
		}
	})
	t.Run("radar expire job closes idle sessions", func(t *testing.T) {
		serv := testService(t)
		id, _, err := serv.OpenRadar(t.Context())
		if err != nil {
			t.Fatalf("failed to open radar: %s", err)
		}
		serv.config.Radar.SessionIdle = -time.Second
		serv.expireRadarSessions(t.Context())
		if _, err = serv.RadarStatus(id); !errors.Is(err, radar.ErrSessionNotFound) {
			t.Errorf("expected error to be %s, got %v", radar.ErrSessionNotFound, err)
		}
	})
}

func TestService_purgeGeocodeCache(t *testing.T) {
	serv := testService(t)
	cache := geocode.NewCachedGeocoder(&mockGeocoder{}, time.Hour, -time.Second)
	serv.geocoder, serv.cache = cache, cache
	if _, err := serv.Search(t.Context(), "Atlantis"); !errors.Is(err, geocode.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", cache.Len())
	}
	serv.purgeGeocodeCache(t.Context())
	if cache.Len() != 0 {
		t.Errorf("expected expired entry to be purged, got %d", cache.Len())
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("WEATHERDASH_LOCALE", "en")
	t.Setenv("WEATHERDASH_STORAGE_PATH", filepath.Join(t.TempDir(), "weather-dash.db"))
	t.Setenv("WEATHERDASH_GEOLOCATION_DISABLE_GEOIP", "true")
	t.Setenv("WEATHERDASH_GEOLOCATION_DISABLE_GEOLOCATION_FILE", "true")
	t.Setenv("WEATHERDASH_GEOLOCATION_DISABLE_GPSD", "true")
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to load config: %s", err)
	}
	return conf
}

// testService returns a service with mocked backends.
func testService(t *testing.T) *Service {
	t.Helper()
	conf := testConfig(t)
	lang, err := i18n.New(conf.Locale)
	if err != nil {
		t.Fatalf("failed to create i18n provider: %s", err)
	}
	log := logger.NewLogger(slog.LevelError, io.Discard)
	serv, err := New(conf, log, lang)
	if err != nil {
		t.Fatalf("failed to create service: %s", err)
	}
	t.Cleanup(func() {
		serv.radar.CloseAll()
		serv.cancel()
		_ = serv.store.Close()
	})

	prov := &weatherProv{}
	serv.weatherProv, serv.historyProv, serv.outlookProv = prov, prov, prov
	serv.geocoder = &mockGeocoder{}
	serv.locator = &mockLocator{err: errors.New("no provider")}
	serv.radar = radar.NewSessions(t.Context(), &mockLoader{}, log, 0)
	serv.now = func() time.Time { return testNow }
	return serv
}

type (
	weatherProv struct {
		shouldFail bool
		failFor    geo.Coordinate

		mu      sync.Mutex
		gates   map[geo.Coordinate]chan struct{}
		blocked chan struct{}
		start   time.Time
		end     time.Time
	}
	mockGeocoder struct {
		shouldFail bool
		calls      int
	}
	mockLocator struct {
		result geolocation.Result
		err    error
		calls  int
	}
	mockLoader struct {
		calls int
	}
)

func (w *weatherProv) Name() string {
	return "mock weather provider"
}

func (w *weatherProv) GetForecast(ctx context.Context, coords geo.Coordinate, _ units.Policy) (*weather.Payload, error) {
	if w.shouldFail || (w.failFor.Valid() && w.failFor.Equal(coords)) {
		return nil, errors.New("intentionally failing")
	}
	w.mu.Lock()
	gate, ok := w.gates[coords]
	w.mu.Unlock()
	if ok {
		close(w.blocked)
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	temp := 12.4
	if coords.Equal(madrid.Coordinate) {
		temp = 22.0
	}
	return testPayload(coords, temp), nil
}

func (w *weatherProv) GetDailySummary(_ context.Context, _ geo.Coordinate, start, end time.Time,
	_ units.Policy,
) (weather.DailySummary, error) {
	if w.shouldFail {
		return weather.DailySummary{}, errors.New("intentionally failing")
	}
	w.mu.Lock()
	w.start, w.end = start, end
	w.mu.Unlock()
	return weather.DailySummary{
		TemperatureMax:   []float64{12, 12, 12, 12, 12, 12, 12},
		TemperatureMin:   []float64{8, 8, 8, 8, 8, 8, 8},
		PrecipitationSum: []float64{2, 0, 0, 1, 0, 0, 0},
	}, nil
}

func (w *weatherProv) GetDailyOutlook(context.Context, geo.Coordinate, units.Policy) (weather.DailySummary, error) {
	if w.shouldFail {
		return weather.DailySummary{}, errors.New("intentionally failing")
	}
	return weather.DailySummary{
		TemperatureMax:   []float64{14, 14, 14, 14, 14, 14, 14, 14},
		TemperatureMin:   []float64{9, 9, 9, 9, 9, 9, 9, 9},
		PrecipitationSum: []float64{0, 0, 0, 0, 0, 0, 0, 0},
	}, nil
}

// block makes requests for coords wait until the returned channel is closed.
func (w *weatherProv) block(coords geo.Coordinate) chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gates == nil {
		w.gates = make(map[geo.Coordinate]chan struct{})
	}
	gate := make(chan struct{})
	w.gates[coords] = gate
	w.blocked = make(chan struct{})
	return gate
}

func (w *weatherProv) waitBlocked(t *testing.T) {
	t.Helper()
	select {
	case <-w.blocked:
	case <-time.After(time.Second * 5):
		t.Fatal("request was not blocked")
	}
}

func (w *weatherProv) historyRange() (time.Time, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.start, w.end
}

func (m *mockGeocoder) Name() string {
	return "mock geocoder"
}

func (m *mockGeocoder) Search(_ context.Context, query string, count int) ([]geocode.Place, error) {
	m.calls++
	if m.shouldFail {
		return nil, errors.New("intentionally failing")
	}
	var places []geocode.Place
	switch strings.ToLower(query) {
	case "berlin":
		places = []geocode.Place{
			{Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.41},
			{Name: "Berlin", Region: "New Hampshire", Country: "United States", Latitude: 44.47, Longitude: -71.19},
		}
	case "madrid":
		places = []geocode.Place{{Name: "Madrid", Country: "Spain", Latitude: 40.42, Longitude: -3.7}}
	}
	if len(places) > count {
		places = places[:count]
	}
	return places, nil
}

func (m *mockLocator) Start(context.Context) {}

func (m *mockLocator) Locate(context.Context) (geolocation.Result, error) {
	m.calls++
	if m.err != nil {
		return geolocation.Result{}, m.err
	}
	return m.result, nil
}

func (m *mockLoader) LoadTimeline(context.Context) (*radar.Timeline, error) {
	m.calls++
	return &radar.Timeline{
		Past: []radar.Frame{
			{Timestamp: 1768736400, Path: "/v2/radar/1768736400"},
			{Timestamp: 1768737000, Path: "/v2/radar/1768737000"},
			{Timestamp: 1768737600, Path: "/v2/radar/1768737600"},
		},
		Nowcast: []radar.Frame{
			{Timestamp: 1768738200, Path: "/v2/radar/nowcast_1768738200", IsForecast: true},
			{Timestamp: 1768738800, Path: "/v2/radar/nowcast_1768738800", IsForecast: true},
		},
	}, nil
}

func testPayload(coords geo.Coordinate, temp float64) *weather.Payload {
	day := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)
	payload := &weather.Payload{
		GeneratedAt: testNow,
		Coordinates: coords,
		Timezone:    "UTC",
		Location:    time.UTC,
		Current: weather.Current{
			Time:        testNow,
			Temperature: temp,
			WindSpeed:   10.5,
			WeatherCode: 2,
		},
	}
	for i := range 48 {
		payload.Hourly.Time = append(payload.Hourly.Time, day.Add(time.Duration(i)*time.Hour))
		payload.Hourly.Temperature = append(payload.Hourly.Temperature, vartype.NewVariable(temp))
		payload.Hourly.RelativeHumidity = append(payload.Hourly.RelativeHumidity, vartype.NewVariable(60.0))
		payload.Hourly.ApparentTemperature = append(payload.Hourly.ApparentTemperature,
			vartype.NewVariable(temp-1.5))
		payload.Hourly.Precipitation = append(payload.Hourly.Precipitation, vartype.NewVariable(0.0))
		payload.Hourly.WeatherCode = append(payload.Hourly.WeatherCode, vartype.NewVariable(2))
		payload.Hourly.WindSpeed = append(payload.Hourly.WindSpeed, vartype.NewVariable(10.5))
		payload.Hourly.Visibility = append(payload.Hourly.Visibility, vartype.NewVariable(20000.0))
		payload.Hourly.PressureMSL = append(payload.Hourly.PressureMSL, vartype.NewVariable(1013.0))
		payload.Hourly.UVIndex = append(payload.Hourly.UVIndex, vartype.NewVariable(1.0))
		payload.Hourly.DewPoint = append(payload.Hourly.DewPoint, vartype.NewVariable(4.0))
	}
	payload.Daily = weather.Daily{
		Time:           []time.Time{day, day.AddDate(0, 0, 1)},
		TemperatureMax: []vartype.VarFloat64{vartype.NewVariable(temp + 2), vartype.NewVariable(temp)},
		TemperatureMin: []vartype.VarFloat64{vartype.NewVariable(temp - 8), vartype.NewVariable(temp - 9)},
		WeatherCode:    []vartype.VarInt{vartype.NewVariable(2), vartype.NewVariable(61)},
		Sunrise:        []time.Time{day.Add(7 * time.Hour), day.Add(31 * time.Hour)},
		Sunset:         []time.Time{day.Add(17 * time.Hour), day.Add(41 * time.Hour)},
	}
	return payload
}
