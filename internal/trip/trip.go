// Package trip implements the orchestrator: validates input, sequences
// the route client, combiner, stop planner, and log assembler, and returns
// the aggregate result.
package trip

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/eldlog"
	"github.com/Kiyoonewton/eld-api/internal/events"
	"github.com/Kiyoonewton/eld-api/internal/hos"
	"github.com/Kiyoonewton/eld-api/internal/logger"
	"github.com/Kiyoonewton/eld-api/internal/routecombiner"
	"github.com/Kiyoonewton/eld-api/internal/validation"
)

// RouteClient fetches one leg's route.
type RouteClient interface {
	Leg(ctx context.Context, origin, destination domain.Location, rng *rand.Rand) domain.LegRoute
}

// Request is the validated input to a single trip-planning call.
type Request struct {
	Current          domain.Location
	Pickup           domain.Location
	Dropoff          domain.Location
	CurrentCycleUsed float64
	StartTime        time.Time
}

type Orchestrator struct {
	routeClient RouteClient
	namer       hos.Namer
	params      hos.Parameters
	assembler   *eldlog.Assembler
	producer    *events.Producer
	log         *logger.Logger
}

func New(routeClient RouteClient, namer hos.Namer, params hos.Parameters, producer *events.Producer, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Default()
	}
	return &Orchestrator{
		routeClient: routeClient,
		namer:       namer,
		params:      params,
		assembler:   eldlog.New(params),
		producer:    producer,
		log:         log,
	}
}

// Plan validates req, fetches and combines the leg routes, plans the
// stops, and assembles the daily log sheets. locations is always
// [current, pickup, dropoff]: the inbound request shape carries no
// intermediate waypoints, though the planner itself supports any number
// of locations.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (*domain.TripResult, error) {
	if err := validateLocation(req.Current); err != nil {
		return nil, err
	}
	if err := validateLocation(req.Pickup); err != nil {
		return nil, err
	}
	if err := validateLocation(req.Dropoff); err != nil {
		return nil, err
	}

	locations := []domain.Location{req.Current, req.Pickup, req.Dropoff}
	rng := rand.New(rand.NewSource(seed(req)))

	legs := make([]domain.LegRoute, 0, len(locations)-1)
	for i := 0; i < len(locations)-1; i++ {
		legs = append(legs, o.routeClient.Leg(ctx, locations[i], locations[i+1], rng))
	}
	route := routecombiner.Combine(legs)

	stops := hos.Plan(ctx, route, locations, req.StartTime, req.CurrentCycleUsed, o.params, o.namer, rng)
	sheets := o.assembler.Assemble(stops, 0, rng)

	result := &domain.TripResult{
		Coordinates:   route.Coordinates,
		Stops:         stops,
		TotalDistance: route.DistanceMiles,
		TotalDuration: route.DurationSec,
		ELDLogs:       sheets,
	}

	o.log.Infow("trip planned",
		"miles", route.DistanceMiles,
		"stops", len(stops),
		"days", len(sheets),
	)

	o.publishEvents(ctx, result)
	return result, nil
}

func (o *Orchestrator) publishEvents(ctx context.Context, result *domain.TripResult) {
	if o.producer == nil {
		return
	}
	o.producer.Publish(ctx, events.TopicTripPlanned, events.NewEvent(events.TopicTripPlanned, map[string]interface{}{
		"stops": len(result.Stops),
		"miles": result.TotalDistance,
		"days":  len(result.ELDLogs),
	}))
	for _, sheet := range result.ELDLogs {
		for _, v := range sheet.Violations {
			o.producer.Publish(ctx, events.TopicTripHOSViolation, events.NewEvent(events.TopicTripHOSViolation, map[string]interface{}{
				"date":        sheet.Date,
				"type":        v.Type,
				"description": v.Description,
			}))
		}
	}
}

var coordValidator = validation.CoordinateValidator{}

func validateLocation(loc domain.Location) error {
	return coordValidator.ValidateCoordinates(loc.Lat, loc.Lng)
}

// seed derives a deterministic RNG seed from the request so repeated
// identical requests produce byte-identical bookkeeping fields and mock
// route jitter.
func seed(req Request) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%f,%f,%f,%f,%f,%f,%s",
		req.Current.Lat, req.Current.Lng,
		req.Pickup.Lat, req.Pickup.Lng,
		req.Dropoff.Lat, req.Dropoff.Lng,
		req.StartTime.Format(time.RFC3339))
	return int64(h.Sum64())
}
