// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/wneessen/weather-dash/internal/compare"
	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/presenter"
	"github.com/wneessen/weather-dash/internal/service"
	"github.com/wneessen/weather-dash/internal/units"
)

const (
	PageDashboard = "dashboard"
	PageCompare   = "compare"
	PageError     = "error"

	layoutTemplate = "layout"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{PageDashboard, PageCompare, PageError}

var metricLabels = map[compare.Metric]string{
	compare.MetricTemperature: "Temperature",
	compare.MetricFeelsLike:   "Feels Like",
	compare.MetricHumidity:    "Humidity",
	compare.MetricWind:        "Wind",
	compare.MetricUV:          "UV Index",
	compare.MetricVisibility:  "Visibility",
}

var ErrUnknownPage = errors.New("unknown page template")

// Page is the data every page template is executed with.
type Page struct {
	Title  string
	Theme  favourites.Theme
	Policy units.Policy
	Query  string

	// Links holds the prepared URLs of the page controls.
	Links Links

	Favourites []favourites.Favourite
	View       *service.View
	Comparison *service.Comparison
	// CompareA and CompareB are the queries of the comparison form.
	CompareA string
	CompareB string

	// Error is set if the forecast could not be loaded. All weather sections are hidden then.
	Error string
	// Notice is a hint shown above the dashboard, e.g. if the location could not be determined.
	Notice string
}

// Links are the URLs behind the controls of a page.
type Links struct {
	Self        string
	Retry       string
	UnitsToggle string
	Locate      string
	Compare     string
	// Days holds the dashboard URL of every entry of the day selector.
	Days []string
	// Favourites holds the dashboard URL of every favourite.
	Favourites []string
}

// Templates holds one parsed template set per page. Every set shares the layout and partials.
type Templates struct {
	pages map[string]*template.Template
}

// New parses the embedded page templates with the presenter helpers.
func New(pres *presenter.Presenter) (*Templates, error) {
	if pres == nil {
		return nil, errors.New("presenter must not be nil")
	}
	funcs := template.FuncMap(pres.FuncMap())
	funcs["favText"] = func(f favourites.Favourite) string { return f.Text() }
	funcs["dark"] = func(t favourites.Theme) bool { return t.Dark() }
	funcs["join"] = strings.Join
	funcs["metrics"] = func() []compare.Metric { return compare.Metrics }
	funcs["metricLabel"] = func(m compare.Metric) string { return pres.Loc(metricLabels[m]) }
	funcs["isSeparator"] = func(k presenter.CardKind) bool { return k == presenter.CardSeparator }
	funcs["isSunEvent"] = func(k presenter.CardKind) bool {
		return k == presenter.CardSunrise || k == presenter.CardSunset
	}
	funcs["isSunrise"] = func(k presenter.CardKind) bool { return k == presenter.CardSunrise }

	base, err := template.New(layoutTemplate).Funcs(funcs).ParseFS(templateFS, "templates/layout.html",
		"templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}

	tpls := &Templates{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}
		tpl, err := clone.ParseFS(templateFS, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		tpls.pages[page] = tpl
	}

	return tpls, nil
}

// Render executes the page template. The output is buffered so that a failing template does not
// leave a half written page behind.
func (t *Templates) Render(w io.Writer, page string, data Page) error {
	tpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	buf := bytes.NewBuffer(nil)
	if err := tpl.ExecuteTemplate(buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("failed to render %s template: %w", page, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s page: %w", page, err)
	}
	return nil
}
