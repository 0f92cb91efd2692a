// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/geo"
	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/radar"
	"github.com/wneessen/weather-dash/internal/service"
	"github.com/wneessen/weather-dash/internal/template"
	"github.com/wneessen/weather-dash/internal/units"
)

const (
	// MessageNoResults is shown when a search has no matches.
	MessageNoResults = "No results found"
	// MessageGeolocation is shown when the position of the host could not be determined.
	MessageGeolocation = "Your location could not be determined. Search for a place or enable a " +
		"geolocation provider in the configuration."

	contentTypeJSON = "application/json"
)

// ErrInvalidLocation is returned for malformed location parameters.
var ErrInvalidLocation = errors.New("invalid location parameters")

//go:embed static
var staticFS embed.FS

// Controller is the application logic behind the HTTP surface.
type Controller interface {
	ShowLocation(ctx context.Context, loc service.Location, opts service.ViewOptions) (*service.View, error)
	Search(ctx context.Context, query string) ([]geocode.Place, error)
	Resolve(ctx context.Context, query string) (service.Location, error)
	Locate(ctx context.Context) (service.Location, error)
	StartLocation(ctx context.Context) service.Location
	DefaultLocation() service.Location
	DefaultPolicy() units.Policy
	CompareQueries(ctx context.Context, queryA, queryB string, policy units.Policy) (*service.Comparison, error)

	Favourites(ctx context.Context) ([]favourites.Favourite, error)
	ToggleFavourite(ctx context.Context, loc service.Location) (bool, error)
	Theme(ctx context.Context) favourites.Theme
	ToggleTheme(ctx context.Context) (favourites.Theme, error)

	OpenRadar(ctx context.Context) (string, radar.Status, error)
	RadarStatus(id string) (radar.Status, error)
	SelectRadarFrame(id string, idx int) (radar.Status, error)
	ToggleRadar(id string) (radar.Status, error)
	CloseRadar(id string) error
}

// Server serves the dashboard pages and the JSON API.
type Server struct {
	ctrl   Controller
	tpls   *template.Templates
	logger *logger.Logger
}

// New returns a Server for the given controller and templates.
func New(ctrl Controller, tpls *template.Templates, log *logger.Logger) *Server {
	return &Server{ctrl: ctrl, tpls: tpls, logger: log}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embedded directory is part of the binary
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /compare", s.handleCompare)
	mux.HandleFunc("POST /favourites/toggle", s.handleToggleFavourite)
	mux.HandleFunc("POST /theme/toggle", s.handleToggleTheme)

	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/favourites", s.handleFavourites)

	mux.HandleFunc("POST /api/radar", s.handleRadarOpen)
	mux.HandleFunc("GET /api/radar/{id}", s.handleRadarStatus)
	mux.HandleFunc("POST /api/radar/{id}/frame", s.handleRadarFrame)
	mux.HandleFunc("POST /api/radar/{id}/toggle", s.handleRadarToggle)
	mux.HandleFunc("DELETE /api/radar/{id}", s.handleRadarClose)

	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request served", "method", r.Method, "path", r.URL.Path, "status", rec.status,
			"duration", time.Since(start).String())
	})
}

// policy resolves the unit policy of a request.
func (s *Server) policy(r *http.Request) units.Policy {
	return units.FromQuery(r.URL.Query(), s.ctrl.DefaultPolicy())
}

// requestLocation resolves the location a request asks for. A search query wins over
// coordinates, and coordinates win over current=1. Without any of them the start location is used.
// The returned notice is set if the location had to fall back.
func (s *Server) requestLocation(r *http.Request) (service.Location, string, error) {
	query := r.URL.Query()
	ctx := r.Context()

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		loc, err := s.ctrl.Resolve(ctx, q)
		return loc, "", err
	}
	if query.Has("lat") || query.Has("lon") {
		coords, err := geo.Parse(query.Get("lat"), query.Get("lon"))
		if err != nil {
			return service.Location{}, "", fmt.Errorf("%w: %w", ErrInvalidLocation, err)
		}
		return service.Location{
			Name:       query.Get("name"),
			Country:    query.Get("country"),
			Coordinate: coords,
			Current:    query.Get("current") == "1",
		}, "", nil
	}
	if query.Get("current") == "1" {
		loc, err := s.ctrl.Locate(ctx)
		if err != nil {
			return s.ctrl.DefaultLocation(), MessageGeolocation, nil
		}
		return loc, "", nil
	}
	return s.ctrl.StartLocation(ctx), "", nil
}

// dashboardURL returns the dashboard URL that reproduces loc, policy and day.
func dashboardURL(loc service.Location, policy units.Policy, day int) string {
	query := policy.Query()
	query.Set("lat", geo.FormatFloat(loc.Coordinate.Lat))
	query.Set("lon", geo.FormatFloat(loc.Coordinate.Lon))
	if loc.Current {
		query.Set("current", "1")
	} else {
		if loc.Name != "" {
			query.Set("name", loc.Name)
		}
		if loc.Country != "" {
			query.Set("country", loc.Country)
		}
	}
	if day > 0 {
		query.Set("day", strconv.Itoa(day))
	}
	return "/?" + query.Encode()
}

func pageURL(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// redirectTarget returns the local URL a form asks to be sent back to.
func redirectTarget(r *http.Request) string {
	target := r.FormValue("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/"
	}
	return target
}

func (s *Server) basePage(r *http.Request, policy units.Policy) template.Page {
	ctx := r.Context()
	page := template.Page{
		Theme:  s.ctrl.Theme(ctx),
		Policy: policy,
		Query:  r.URL.Query().Get("q"),
		Links:  pageLinks(r, policy),
	}

	favs, err := s.ctrl.Favourites(ctx)
	if err != nil {
		s.logger.Error("failed to list favourites", logger.Err(err))
	}
	page.Favourites = favs
	for _, fav := range favs {
		page.Links.Favourites = append(page.Links.Favourites,
			dashboardURL(service.LocationFromFavourite(fav), policy, 0))
	}
	return page
}

// pageLinks returns the links shared by every page of a request.
func pageLinks(r *http.Request, policy units.Policy) template.Links {
	self := r.URL.Query()
	toggled := r.URL.Query()
	for key, val := range policy.Toggle().Query() {
		toggled[key] = val
	}
	toggled.Del("units")

	locate := policy.Query()
	locate.Set("current", "1")

	return template.Links{
		Self:        pageURL(r.URL.Path, self),
		Retry:       pageURL(r.URL.Path, self),
		UnitsToggle: pageURL(r.URL.Path, toggled),
		Locate:      pageURL("/", locate),
		Compare:     pageURL("/compare", policy.Query()),
	}
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data template.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tpls.Render(w, page, data); err != nil {
		s.logger.Error("failed to render page", logger.Err(err), "page", page)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", logger.Err(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps an error to the HTTP status code of the response.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, geocode.ErrNoResults), errors.Is(err, radar.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, radar.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
