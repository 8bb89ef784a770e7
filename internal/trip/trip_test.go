package trip

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/hos"
)

type stubRouteClient struct{}

func (stubRouteClient) Leg(ctx context.Context, origin, destination domain.Location, rng *rand.Rand) domain.LegRoute {
	return domain.LegRoute{
		Coordinates: []domain.Coord{
			{Lng: origin.Lng, Lat: origin.Lat},
			{Lng: destination.Lng, Lat: destination.Lat},
		},
		DistanceMeters:  80000,
		DurationSeconds: 3600,
	}
}

type stubNamer struct{}

func (stubNamer) Name(ctx context.Context, coord domain.Coord, rng *rand.Rand) string {
	return "Somewhere"
}

func validReq() Request {
	return Request{
		Current:          domain.Location{Lat: 34.05, Lng: -118.25},
		Pickup:           domain.Location{Lat: 34.15, Lng: -118.30},
		Dropoff:          domain.Location{Lat: 36.17, Lng: -115.14},
		CurrentCycleUsed: 0,
		StartTime:        time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	}
}

func TestPlan_HappyPath(t *testing.T) {
	o := New(stubRouteClient{}, stubNamer{}, hos.DefaultParameters(), nil, nil)
	result, err := o.Plan(context.Background(), validReq())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Stops)
	assert.NotEmpty(t, result.ELDLogs)
	assert.Greater(t, result.TotalDistance, 0.0)
}

func TestPlan_RejectsInvalidLatitude(t *testing.T) {
	o := New(stubRouteClient{}, stubNamer{}, hos.DefaultParameters(), nil, nil)
	req := validReq()
	req.Current.Lat = 200
	_, err := o.Plan(context.Background(), req)
	assert.Error(t, err)
}

func TestPlan_AcceptsZeroCoordinate(t *testing.T) {
	// A 0.0 latitude/longitude is a legitimate coordinate (Gulf of Guinea)
	// and must not be rejected as if it were a missing field.
	o := New(stubRouteClient{}, stubNamer{}, hos.DefaultParameters(), nil, nil)
	req := validReq()
	req.Current = domain.Location{Lat: 0, Lng: 0}
	_, err := o.Plan(context.Background(), req)
	assert.NoError(t, err)
}

func TestSeed_Deterministic(t *testing.T) {
	req := validReq()
	assert.Equal(t, seed(req), seed(req))

	other := validReq()
	other.StartTime = other.StartTime.Add(time.Hour)
	assert.NotEqual(t, seed(req), seed(other))
}

func TestPlan_NilProducerDoesNotPanic(t *testing.T) {
	o := New(stubRouteClient{}, stubNamer{}, hos.DefaultParameters(), nil, nil)
	assert.NotPanics(t, func() {
		_, err := o.Plan(context.Background(), validReq())
		require.NoError(t, err)
	})
}
