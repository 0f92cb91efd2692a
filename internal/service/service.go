// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service implements the controller of the dashboard. It owns the application state and
// mediates every access to the forecast, geocoding, geolocation, favourites and radar backends.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-dash/internal/config"
	"github.com/wneessen/weather-dash/internal/favourites"
	"github.com/wneessen/weather-dash/internal/geocode"
	"github.com/wneessen/weather-dash/internal/geolocation"
	"github.com/wneessen/weather-dash/internal/http"
	"github.com/wneessen/weather-dash/internal/logger"
	"github.com/wneessen/weather-dash/internal/presenter"
	"github.com/wneessen/weather-dash/internal/radar"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/weather"
)

const (
	radarRefreshJob = "radar_refresh_job"
	geocodePurgeJob = "geocode_purge_job"
	radarExpireJob  = "radar_expire_job"

	readHeaderTimeout = time.Second * 5
)

var ErrNilLogger = errors.New("logger must not be nil")

type locator interface {
	Start(ctx context.Context)
	Locate(ctx context.Context) (geolocation.Result, error)
}

type purger interface {
	Purge() int
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	http      *http.Client
	presenter *presenter.Presenter
	scheduler gocron.Scheduler
	rand      *rand.Rand
	now       func() time.Time

	// ctx bounds the lifetime of background work that outlives a single request
	ctx    context.Context
	cancel context.CancelFunc

	geocoder    geocode.Geocoder
	cache       purger
	locator     locator
	weatherProv weather.Provider
	historyProv weather.HistoryProvider
	outlookProv weather.OutlookProvider
	store       favourites.Store
	radar       *radar.Sessions

	stateLock sync.Mutex
	state     State
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, ErrNilLogger
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	pres, err := presenter.New(t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		t:         t,
		http:      http.New(log, http.WithRateLimit(conf.RateLimit.RequestsPerSecond, conf.RateLimit.Burst)),
		presenter: pres,
		scheduler: scheduler,
		now:       time.Now,
	}
	service.ctx, service.cancel = context.WithCancel(context.Background())

	geocoder, err := service.selectGeocodeProvider(conf, t.Language())
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode provider: %w", err)
	}
	service.geocoder, service.cache = geocoder, geocoder

	weatherProv, err := service.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	service.weatherProv, service.historyProv, service.outlookProv = weatherProv, weatherProv, weatherProv

	service.locator = geolocation.NewLocator(log, conf.GeoLocation.Timeout, service.selectGeolocationProviders()...)

	radarClient, err := radar.NewClient(service.http)
	if err != nil {
		return nil, fmt.Errorf("failed to create radar client: %w", err)
	}
	service.radar = radar.NewSessions(service.ctx, radarClient, log, conf.Radar.AutoplayInterval)
	service.radar.SetZoom(conf.Radar.Zoom)
	service.radar.SetLimit(conf.Radar.MaxSessions)

	store, err := favourites.NewSQLite(service.ctx, conf.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open favourites store: %w", err)
	}
	service.store = store

	return service, nil
}

// Run starts the scheduled jobs and serves handler until ctx is cancelled. On return all radar
// sessions are closed and the favourites store is released.
func (s *Service) Run(ctx context.Context, handler stdhttp.Handler) error {
	if err := s.createScheduledJob(ctx, s.config.Radar.RefreshInterval, s.refreshRadar,
		radarRefreshJob); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Geocoder.CacheMissTTL, s.purgeGeocodeCache,
		geocodePurgeJob); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Radar.SessionIdle, s.expireRadarSessions,
		radarExpireJob); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", s.config.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddr, err)
	}
	s.scheduler.Start()
	s.locator.Start(ctx)

	server := &stdhttp.Server{
		Handler:           handler,
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		if err := server.Serve(listener); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
	}()
	s.logger.Info("web server started", "address", listener.Addr().String())

	var errs []error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			errs = append(errs, fmt.Errorf("web server failed: %w", err))
		}
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err = server.Shutdown(ctxShutdown); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down web server: %w", err))
	}
	s.logger.Info("web server stopped")

	return errors.Join(append(errs, s.Close())...)
}

// Close stops all background work and closes the favourites store.
func (s *Service) Close() error {
	s.radar.CloseAll()
	s.cancel()

	var errs []error
	if err := s.scheduler.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down scheduler: %w", err))
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close favourites store: %w", err))
	}
	return errors.Join(errs...)
}

// Presenter returns the presenter used to render and localize views.
func (s *Service) Presenter() *presenter.Presenter {
	return s.presenter
}

// DefaultPolicy returns the configured unit policy.
func (s *Service) DefaultPolicy() units.Policy {
	return s.config.UnitPolicy()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// refreshRadar reloads the radar timeline of all open radar sessions.
func (s *Service) refreshRadar(ctx context.Context) {
	if err := s.radar.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh radar sessions", logger.Err(err))
	}
}

// purgeGeocodeCache drops expired geocoding results.
func (s *Service) purgeGeocodeCache(context.Context) {
	if removed := s.cache.Purge(); removed > 0 {
		s.logger.Debug("purged expired geocode cache entries", "count", removed)
	}
}

// expireRadarSessions closes radar sessions that were not accessed within the idle timeout.
func (s *Service) expireRadarSessions(context.Context) {
	if removed := s.radar.Expire(s.config.Radar.SessionIdle); removed > 0 {
		s.logger.Debug("closed idle radar sessions", "count", removed)
	}
}
