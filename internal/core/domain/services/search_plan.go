package services

import (
	"errors"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
)

// Expanding-search tuning constants, in kilometers.
const (
	// InitialDeltaKm is the detour margin used on the first search attempt.
	InitialDeltaKm = 1.5
	// DeltaStepKm is the margin increment between consecutive attempts.
	DeltaStepKm = 0.5
	// MaxDeltaKm is the largest margin tried before a search round gives up.
	MaxDeltaKm = 10.0
)

// ErrNoEligibleCourier is returned when a full expanding search, from
// InitialDeltaKm up to and including MaxDeltaKm, finds no courier inside
// the detour ellipse.
var ErrNoEligibleCourier = errors.New("no eligible courier found")

// Attempt is one step of an expanding search: the detour margin to apply
// and the resulting ellipse threshold.
//
// DMaxKm is the straight pickup-to-delivery distance plus twice DeltaKm.
// A courier is inside the ellipse when the sum of its distances to pickup
// and delivery does not exceed DMaxKm.
type Attempt struct {
	DeltaKm float64
	DMaxKm  float64
}

// SearchPlan is a domain service that drives courier matching for a
// published announcement. It owns two decisions:
//
//   - the sequence of detour margins an expanding search walks through
//     (InitialDeltaKm, then +DeltaStepKm per attempt, capped at MaxDeltaKm)
//   - which couriers qualify at a given margin (matchable, and inside the
//     detour ellipse spanned by the announcement's pickup and delivery)
//
// The service is pure: it never talks to storage. Callers fetch candidates
// per attempt and feed them to EligibleCouriers.
type SearchPlan struct {
	pickup   kernel.GeoPoint
	delivery kernel.GeoPoint
	routeKm  float64
}

// NewSearchPlan creates a SearchPlan for the route between pickup and
// delivery. The straight route distance is computed once and reused by
// every attempt.
//
// Returns a validation error if either point is invalid.
func NewSearchPlan(pickup kernel.GeoPoint, delivery kernel.GeoPoint) (SearchPlan, error) {
	routeKm, err := pickup.DistanceTo(delivery)
	if err != nil {
		return SearchPlan{}, err
	}

	return SearchPlan{
		pickup:   pickup,
		delivery: delivery,
		routeKm:  routeKm,
	}, nil
}

// RouteKm returns the straight pickup-to-delivery distance in kilometers.
func (p SearchPlan) RouteKm() float64 {
	return p.routeKm
}

// Attempts returns the full sequence of search attempts, from the initial
// margin up to and including the maximum. The last attempt always carries
// DeltaKm == MaxDeltaKm.
func (p SearchPlan) Attempts() []Attempt {
	var attempts []Attempt
	for delta := InitialDeltaKm; delta <= MaxDeltaKm+1e-9; delta += DeltaStepKm {
		attempts = append(attempts, Attempt{
			DeltaKm: delta,
			DMaxKm:  p.routeKm + 2*delta,
		})
	}
	return attempts
}

// DMaxAt returns the ellipse threshold for a given detour margin.
func (p SearchPlan) DMaxAt(deltaKm float64) float64 {
	return p.routeKm + 2*deltaKm
}

// EligibleCouriers filters candidates down to those that qualify for the
// given attempt: the courier must be matchable (active, available, with a
// known position) and its position must lie inside the detour ellipse.
//
// Non-matchable candidates are skipped silently; geo indexes are allowed
// to return slightly stale documents. Invalid couriers fail the call.
func (p SearchPlan) EligibleCouriers(candidates []*courier.Courier, attempt Attempt) ([]*courier.Courier, error) {
	var eligible []*courier.Courier

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsMatchable() {
			continue
		}

		inside, err := kernel.WithinDetourEllipse(*c.Location(), p.pickup, p.delivery, attempt.DMaxKm)
		if err != nil {
			return nil, err
		}

		if inside {
			eligible = append(eligible, c)
		}
	}

	return eligible, nil
}
