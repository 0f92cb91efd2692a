// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/wneessen/weather-dash/internal/compare"
	"github.com/wneessen/weather-dash/internal/units"
	"github.com/wneessen/weather-dash/internal/weather"
)

// Comparison is the side-by-side view of two locations.
type Comparison struct {
	A      compare.Snapshot
	B      compare.Snapshot
	Result compare.Result
	Policy units.Policy
}

// CompareLocations fetches the forecasts of a and b concurrently and ranks their current
// conditions. The shared state is not changed.
func (s *Service) CompareLocations(ctx context.Context, a, b Location, policy units.Policy) (*Comparison, error) {
	var (
		wg           sync.WaitGroup
		dataA, dataB *weather.Payload
		errA, errB   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		dataA, errA = s.forecastFor(ctx, a, policy)
	}()
	go func() {
		defer wg.Done()
		dataB, errB = s.forecastFor(ctx, b, policy)
	}()
	wg.Wait()
	if err := errors.Join(errA, errB); err != nil {
		return nil, err
	}

	snapA := compare.NewSnapshot(a.Name, a.Country, dataA, policy)
	snapB := compare.NewSnapshot(b.Name, b.Country, dataB, policy)
	return &Comparison{
		A:      snapA,
		B:      snapB,
		Result: compare.Compare(snapA, snapB, policy),
		Policy: policy,
	}, nil
}

// CompareQueries resolves two place names and compares them.
func (s *Service) CompareQueries(ctx context.Context, queryA, queryB string, policy units.Policy) (*Comparison, error) {
	a, err := s.Resolve(ctx, queryA)
	if err != nil {
		return nil, err
	}
	b, err := s.Resolve(ctx, queryB)
	if err != nil {
		return nil, err
	}
	return s.CompareLocations(ctx, a, b, policy)
}
