// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geolocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wneessen/weather-dash/internal/logger"
)

// Locator queries all configured providers concurrently and returns the best result.
type Locator struct {
	logger    *logger.Logger
	providers []Provider
	timeout   time.Duration
}

func NewLocator(log *logger.Logger, timeout time.Duration, providers ...Provider) *Locator {
	return &Locator{
		logger:    log,
		providers: providers,
		timeout:   timeout,
	}
}

// Start launches the background tracking of all providers that support it.
func (l *Locator) Start(ctx context.Context) {
	for _, p := range l.providers {
		if starter, ok := p.(Starter); ok {
			l.logger.Debug("starting background geolocation tracking", "provider", p.Name())
			starter.Start(ctx)
		}
	}
}

// Locate returns the most accurate position that any provider reported within the timeout.
// If no provider succeeds, the returned error wraps ErrLocationUnavailable.
func (l *Locator) Locate(ctx context.Context) (Result, error) {
	if len(l.providers) == 0 {
		return Result{}, fmt.Errorf("%w: no geolocation provider configured", ErrLocationUnavailable)
	}

	ctxLocate, cancelLocate := context.WithTimeout(ctx, l.timeout)
	defer cancelLocate()

	type lookup struct {
		result Result
		err    error
	}
	results := make(chan lookup, len(l.providers))

	var wg sync.WaitGroup
	for _, p := range l.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			result, err := l.safeLocate(ctxLocate, p)
			if err != nil {
				err = fmt.Errorf("%s: %w", p.Name(), err)
			}
			results <- lookup{result: result, err: err}
		}(p)
	}
	wg.Wait()
	close(results)

	var best Result
	var errs []error
	for res := range results {
		if res.err != nil {
			l.logger.Debug("geolocation provider failed", logger.Err(res.err))
			errs = append(errs, res.err)
			continue
		}
		if !res.result.Coordinate.Valid() {
			errs = append(errs, fmt.Errorf("%s: invalid coordinates %s", res.result.Source, res.result.Coordinate))
			continue
		}
		if res.result.BetterThan(best) {
			best = res.result
		}
	}
	if best.Source == "" {
		return Result{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, errors.Join(errs...))
	}

	l.logger.Debug("geolocation resolved", "source", best.Source, "coordinates", best.Coordinate.String(),
		"accuracy", best.AccuracyMeters)
	return best, nil
}

// safeLocate invokes Locate on the provider and converts a panic into an error.
func (l *Locator) safeLocate(ctx context.Context, p Provider) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	result, err = p.Locate(ctx)
	if err == nil && result.Source == "" {
		result.Source = p.Name()
	}
	if err == nil && result.At.IsZero() {
		result.At = time.Now()
	}
	return result, err
}
