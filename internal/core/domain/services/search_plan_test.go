package services_test

import (
	"testing"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoute(t *testing.T) (kernel.GeoPoint, kernel.GeoPoint) {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(4.05, 9.70)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(4.06, 9.75)
	require.NoError(t, err)
	return pickup, delivery
}

func newCourierAt(t *testing.T, lat, lon float64) *courier.Courier {
	t.Helper()

	pos, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	c, err := courier.RestoreCourier(kernel.NewUUID(), "Jean Mballa", &pos, true, true)
	require.NoError(t, err)
	return c
}

func TestNewSearchPlan(t *testing.T) {
	t.Run("computes route distance", func(t *testing.T) {
		pickup, delivery := newRoute(t)

		plan, err := services.NewSearchPlan(pickup, delivery)

		require.NoError(t, err)
		assert.InDelta(t, 5.66, plan.RouteKm(), 0.05)
	})

	t.Run("rejects invalid points", func(t *testing.T) {
		var zero kernel.GeoPoint
		pickup, _ := newRoute(t)

		_, err := services.NewSearchPlan(pickup, zero)
		require.Error(t, err)
	})
}

func TestSearchPlan_Attempts(t *testing.T) {
	pickup, delivery := newRoute(t)
	plan, err := services.NewSearchPlan(pickup, delivery)
	require.NoError(t, err)

	attempts := plan.Attempts()

	// 1.5 to 10.0 inclusive in 0.5 steps.
	require.Len(t, attempts, 18)
	assert.InDelta(t, services.InitialDeltaKm, attempts[0].DeltaKm, 1e-9)
	assert.InDelta(t, services.MaxDeltaKm, attempts[len(attempts)-1].DeltaKm, 1e-9)

	for i, a := range attempts {
		assert.InDelta(t, plan.RouteKm()+2*a.DeltaKm, a.DMaxKm, 1e-9)
		if i > 0 {
			assert.InDelta(t, services.DeltaStepKm, a.DeltaKm-attempts[i-1].DeltaKm, 1e-9)
		}
	}
}

func TestSearchPlan_EligibleCouriers(t *testing.T) {
	pickup, delivery := newRoute(t)
	plan, err := services.NewSearchPlan(pickup, delivery)
	require.NoError(t, err)

	first := plan.Attempts()[0]
	last := plan.Attempts()[len(plan.Attempts())-1]

	t.Run("courier near pickup qualifies at initial margin", func(t *testing.T) {
		near := newCourierAt(t, 4.051, 9.702)

		eligible, eErr := plan.EligibleCouriers([]*courier.Courier{near}, first)

		require.NoError(t, eErr)
		require.Len(t, eligible, 1)
		assert.True(t, eligible[0].IsEqual(near))
	})

	t.Run("far courier stays out even at max margin", func(t *testing.T) {
		far := newCourierAt(t, 4.05, 9.88)

		eligible, eErr := plan.EligibleCouriers([]*courier.Courier{far}, last)

		require.NoError(t, eErr)
		assert.Empty(t, eligible)
	})

	t.Run("widening the margin admits a mid-range courier", func(t *testing.T) {
		mid := newCourierAt(t, 4.05, 9.66)

		eligible, eErr := plan.EligibleCouriers([]*courier.Courier{mid}, first)
		require.NoError(t, eErr)
		assert.Empty(t, eligible)

		wide := services.Attempt{DeltaKm: 5.0, DMaxKm: plan.DMaxAt(5.0)}
		eligible, eErr = plan.EligibleCouriers([]*courier.Courier{mid}, wide)
		require.NoError(t, eErr)
		assert.Len(t, eligible, 1)
	})

	t.Run("skips non-matchable candidates", func(t *testing.T) {
		pos, pErr := kernel.NewGeoPoint(4.051, 9.702)
		require.NoError(t, pErr)

		unavailable, rErr := courier.RestoreCourier(kernel.NewUUID(), "Jean Mballa", &pos, true, false)
		require.NoError(t, rErr)
		positionless, rErr := courier.RestoreCourier(kernel.NewUUID(), "Awa Ndiaye", nil, true, true)
		require.NoError(t, rErr)

		eligible, eErr := plan.EligibleCouriers([]*courier.Courier{unavailable, positionless}, last)

		require.NoError(t, eErr)
		assert.Empty(t, eligible)
	})

	t.Run("fails on invalid courier", func(t *testing.T) {
		var bad courier.Courier

		_, eErr := plan.EligibleCouriers([]*courier.Courier{&bad}, first)
		require.Error(t, eErr)
	})
}
