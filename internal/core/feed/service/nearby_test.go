package feedapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasana/internal/core/feed"
)

func TestNearbyPlanMilesConvertToKilometers(t *testing.T) {
	svc, _ := newTestService()

	plan := svc.nearbyPlan(&feed.NearbySpec{MapLng: 51.4, MapLat: 35.7, Length: 5, Unit: "mi"})

	assert.InDelta(t, 8045, plan.RadiusMeters, 0.001)
	assert.Equal(t, 51.4, plan.Longitude)
	assert.Equal(t, 35.7, plan.Latitude)
}

func TestNearbyPlanKilometersPassThrough(t *testing.T) {
	svc, _ := newTestService()

	plan := svc.nearbyPlan(&feed.NearbySpec{MapLng: 1, MapLat: 2, Length: 3, Unit: "km"})

	assert.InDelta(t, 3000, plan.RadiusMeters, 0.001)
}

func TestNearbyPlanDefaultsFromConfig(t *testing.T) {
	svc, deps := newTestService()
	deps.snap.NearbyLengthKm = 7

	plan := svc.nearbyPlan(&feed.NearbySpec{MapLng: 1, MapLat: 2})

	assert.InDelta(t, 7000, plan.RadiusMeters, 0.001)
}

func TestNearbyPlanDefaultUnitMiles(t *testing.T) {
	svc, deps := newTestService()
	deps.snap.DefaultLengthUnit = "mi"
	deps.snap.NearbyLengthMi = 2

	plan := svc.nearbyPlan(&feed.NearbySpec{MapLng: 1, MapLat: 2})

	assert.InDelta(t, 2*1.609*1000, plan.RadiusMeters, 0.001)
}

func TestNearbyPostsSetsGeoPlan(t *testing.T) {
	svc, deps := newTestService()

	_, err := svc.NearbyPosts(context.Background(), nil, &feed.NearbySpec{MapLng: 10, MapLat: 20, Length: 1, Unit: "km"}, nil)
	require.NoError(t, err)

	plan := deps.posts.lastPlan
	require.NotNil(t, plan)
	require.NotNil(t, plan.Nearby)
	assert.InDelta(t, 1000, plan.Nearby.RadiusMeters, 0.001)
	assert.Equal(t, feed.Order{Column: feed.OrderCreatedTime, Desc: true}, plan.Order)
}
