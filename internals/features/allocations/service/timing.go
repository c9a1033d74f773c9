package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"diarias_backend/internals/features/allocations/maps"
	"diarias_backend/internals/helpers/dbtime"
)

// Points with no explicit route order sort after every ordered point.
const unorderedPointRank = 1 << 30

// StopPoint is a boarding point flattened for planning.
type StopPoint struct {
	ID        uuid.UUID
	RouteID   uuid.UUID
	Name      string
	Latitude  *float64
	Longitude *float64
	Order     *int
}

func (p StopPoint) rank() int {
	if p.Order != nil {
		return *p.Order
	}
	return unorderedPointRank
}

func (p StopPoint) latLng() (maps.LatLng, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return maps.LatLng{}, false
	}
	return maps.LatLng{Lat: *p.Latitude, Lng: *p.Longitude}, true
}

// TimingEstimator walks a vehicle's stops in route order and assigns each one
// an estimated passage time. The first stop is passed at the departure time
// itself; each following hop adds the provider's driving duration, or the
// fallback when the provider is absent, errors out, or a stop lacks
// coordinates. Estimates are advisory and never fail a planning run.
type TimingEstimator struct {
	provider        maps.DirectionsProvider
	fallbackMinutes float64
	dwellMinutes    float64
}

func NewTimingEstimator(provider maps.DirectionsProvider, fallbackMinutes, dwellMinutes float64) *TimingEstimator {
	return &TimingEstimator{
		provider:        provider,
		fallbackMinutes: fallbackMinutes,
		dwellMinutes:    dwellMinutes,
	}
}

// EstimateArrivals: stops must already be in visiting order.
func (e *TimingEstimator) EstimateArrivals(ctx context.Context, departure dbtime.Tod, stops []StopPoint) map[uuid.UUID]dbtime.Tod {
	etas := make(map[uuid.UUID]dbtime.Tod, len(stops))
	clock := departure
	for i, stop := range stops {
		if i > 0 {
			clock = clock.AddMinutes(e.hopMinutes(ctx, stops[i-1], stop) + e.dwellMinutes)
		}
		etas[stop.ID] = clock
	}
	return etas
}

func (e *TimingEstimator) hopMinutes(ctx context.Context, from, to StopPoint) float64 {
	if e.provider == nil {
		return e.fallbackMinutes
	}
	origin, ok := from.latLng()
	if !ok {
		return e.fallbackMinutes
	}
	dest, ok := to.latLng()
	if !ok {
		return e.fallbackMinutes
	}
	minutes, err := e.provider.TravelMinutes(ctx, origin, dest)
	if err != nil {
		log.Printf("[TIMING] ⚠️ directions lookup %s -> %s failed, using fallback: %v", from.Name, to.Name, err)
		return e.fallbackMinutes
	}
	return minutes
}
