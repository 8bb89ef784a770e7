package hos

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/routecombiner"
)

// Namer resolves a leg-terminal stop's coordinate to a place name. A nil
// Namer, or an empty name returned by it, degrades to the "<Type> Location"
// form; any other returned name is used as the place.
type Namer interface {
	Name(ctx context.Context, coord domain.Coord, rng *rand.Rand) string
}

type planner struct {
	params    Parameters
	route     domain.Route
	locations []domain.Location
	namer     Namer
	rng       *rand.Rand

	now             time.Time
	positionMi      float64
	milesSinceFuel  float64
	hoursSinceBreak float64
	daysOnRoad      int
	stops           []domain.Stop
}

// Plan produces the ordered stop list for a single trip. locations[0] is
// the current/origin location, locations[1] is pickup, locations[len-1] is
// dropoff; anything between is a waypoint.
func Plan(ctx context.Context, route domain.Route, locations []domain.Location, startTime time.Time, cycleUsedHours float64, params Parameters, namer Namer, rng *rand.Rand) []domain.Stop {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	p := &planner{
		params:    params,
		route:     route,
		locations: locations,
		namer:     namer,
		rng:       rng,

		now:             startTime,
		hoursSinceBreak: cycleUsedHours,
	}
	p.run(ctx)

	// Stable sort by estimatedArrival; ties preserve insertion order.
	stableSortStops(p.stops)
	return p.stops
}

func (p *planner) run(ctx context.Context) {
	originCoord := p.interpolatedAt(0)

	// 1. start anchor
	p.emit(domain.StopTypeStart, "Starting Location", originCoord, p.now, "0 hours")

	// 2. early-morning handling. Always off-duty here: this runs once,
	// before any day advance. The sleeper-berth variant of this coverage
	// belongs to later days and comes out of the drive loop's end-of-day
	// handling.
	if hourOf(p.now) < p.params.SleeperEndHour {
		end := atHour(p.now, p.params.SleeperEndHour)
		p.emit(domain.StopTypeOffDuty, "Early Morning Rest (Off-Duty)", originCoord, p.now, humanHours(end.Sub(p.now)))
		p.now = end
	}

	// 3. pre-trip inspection
	if hourOf(p.now) >= p.params.PreTripStartHour && hourOf(p.now) < p.params.DriveStartHour {
		end := atHour(p.now, p.params.DriveStartHour)
		p.emit(domain.StopTypePreTrip, "Pre-trip Inspection", originCoord, p.now, humanHours(end.Sub(p.now)))
		p.now = end
	}

	// 4. clamp to next valid driving start; a jump across a day boundary
	// (now already past the driving window) is bridged with an overnight
	// rest so a late start still produces a stop describing the idle time.
	p.clampToNextDrive(originCoord)

	// 5. per-leg loop
	n := len(p.locations)
	totalMi := p.route.DistanceMiles
	for i := 1; i < n; i++ {
		target := totalMi * float64(i) / float64(n-1)
		distanceToNext := target - p.positionMi
		driveHours := distanceToNext / p.params.AvgSpeedMph
		if driveHours < 0 {
			driveHours = 0
		}
		p.driveLeg(driveHours)

		p.positionMi = target
		loc := p.locations[i]
		coord := domain.Coord{Lng: loc.Lng, Lat: loc.Lat}

		var stopType domain.StopType
		var duration float64
		switch {
		case i == 1:
			stopType = domain.StopTypePickup
			duration = p.params.PickupDurationHours
		case i == n-1:
			stopType = domain.StopTypeDropoff
			duration = p.params.DropoffDurationHours
		default:
			stopType = domain.StopTypeWaypoint
			duration = p.params.WaypointDurationHours
		}

		name := p.legStopName(ctx, stopType, coord)
		end := addHours(p.now, duration)
		p.emit(stopType, name, coord, p.now, humanHours(end.Sub(p.now)))
		p.now = end
	}
}

// driveLeg consumes remainingDrive hours of driving toward the next leg
// terminal, inserting breaks, fuel stops, and overnight rests as needed.
func (p *planner) driveLeg(remainingDrive float64) {
	params := p.params
	for remainingDrive > 1e-9 {
		pos := p.interpolatedAt(p.positionMi / nonZero(p.route.DistanceMiles))

		// 1. end-of-day exhaustion
		if hoursUntilEndOfDay(p.now, params) <= 1e-9 {
			p.insertEndOfDay(pos)
			continue
		}

		// 2. mandatory break
		if p.hoursSinceBreak >= params.BreakTriggerHours {
			p.insertBreak(pos, "30-Minute Break (Required)")
			continue
		}

		// 3. drivable window
		drivable := min3(remainingDrive, hoursUntilEndOfDay(p.now, params), params.BreakTriggerHours-p.hoursSinceBreak)
		if drivable <= 1e-9 {
			p.insertBreak(pos, "30-Minute Break")
			continue
		}

		// 4. fuel stop preemption
		milesToFuel := params.FuelIntervalMiles - p.milesSinceFuel
		if milesToFuel > 0 && drivable*params.AvgSpeedMph >= milesToFuel {
			hoursToFuel := milesToFuel / params.AvgSpeedMph
			p.positionMi += milesToFuel
			arrival := p.driveWithClamp(p.now, hoursToFuel)
			fuelPos := p.interpolatedAt(p.positionMi / nonZero(p.route.DistanceMiles))
			end := addHours(arrival, params.FuelDurationHours)
			p.emit(domain.StopTypeFuel, "Fuel Stop", fuelPos, arrival, humanHours(end.Sub(arrival)))
			p.now = end
			p.milesSinceFuel = 0
			p.hoursSinceBreak += hoursToFuel
			remainingDrive -= hoursToFuel
			if p.hoursSinceBreak >= 7 {
				p.insertBreak(fuelPos, "30-Minute Break")
			}
			continue
		}

		// 5. break-before-exhaustion preemption
		if p.hoursSinceBreak+drivable >= params.BreakTriggerHours && params.BreakTriggerHours-p.hoursSinceBreak > 0 {
			driveH := params.BreakTriggerHours - p.hoursSinceBreak
			p.positionMi += driveH * params.AvgSpeedMph
			p.milesSinceFuel += driveH * params.AvgSpeedMph
			arrival := p.driveWithClamp(p.now, driveH)
			breakPos := p.interpolatedAt(p.positionMi / nonZero(p.route.DistanceMiles))
			breakTime := alignBreak(arrival, params)
			end := addHours(breakTime, params.BreakDurationHours)
			p.emit(domain.StopTypeRest, "30-Minute Break", breakPos, breakTime, humanHours(end.Sub(breakTime)))
			p.now = end
			remainingDrive -= driveH
			p.hoursSinceBreak = 0
			continue
		}

		// 6. drive to end of window
		p.positionMi += drivable * params.AvgSpeedMph
		p.milesSinceFuel += drivable * params.AvgSpeedMph
		p.now = p.driveWithClamp(p.now, drivable)
		remainingDrive -= drivable
		p.hoursSinceBreak += drivable
	}
}

func (p *planner) insertEndOfDay(pos domain.Coord) {
	params := p.params
	h := hourOf(p.now)
	if h >= params.DriveEndHour && h < params.SleeperStartHour {
		end := atHour(p.now, params.SleeperStartHour)
		p.emit(domain.StopTypeOffDuty, "End of Driving Day", pos, p.now, humanHours(end.Sub(p.now)))
		p.now = end
	}

	restEnd := addHours(p.now, params.RestRequiredHours)
	p.emit(domain.StopTypeOvernight, "Required 10-Hour Rest", pos, p.now, "10 hours")
	p.now = restEnd

	if hourOf(p.now) < params.SleeperEndHour {
		end := atHour(p.now, params.SleeperEndHour)
		p.emit(domain.StopTypeOvernight, "Early Morning Rest (Sleeper Berth)", pos, p.now, humanHours(end.Sub(p.now)))
		p.now = end
	}

	p.hoursSinceBreak = 0
	p.daysOnRoad++
}

func (p *planner) insertBreak(pos domain.Coord, name string) {
	breakTime := alignBreak(p.now, p.params)
	end := addHours(breakTime, p.params.BreakDurationHours)
	p.emit(domain.StopTypeRest, name, pos, breakTime, humanHours(end.Sub(breakTime)))
	p.now = end
	p.hoursSinceBreak = 0
}

func (p *planner) clampToNextDrive(pos domain.Coord) {
	params := p.params
	h := hourOf(p.now)
	switch {
	case h >= params.DriveEndHour:
		next := nextDriveStart(p.now, params)
		p.emit(domain.StopTypeOvernight, "Required 10-Hour Rest", pos, p.now, humanHours(next.Sub(p.now)))
		p.now = next
	case h < params.DriveStartHour:
		p.now = atHour(p.now, params.DriveStartHour)
	}
}

func (p *planner) interpolatedAt(fraction float64) domain.Coord {
	return routecombiner.Interpolate(p.route, fraction)
}

func (p *planner) legStopName(ctx context.Context, stopType domain.StopType, coord domain.Coord) string {
	label := stopLabel(stopType)
	if p.namer == nil {
		return fmt.Sprintf("%s Location", label)
	}
	place := p.namer.Name(ctx, coord, p.rng)
	if place == "" {
		return fmt.Sprintf("%s Location", label)
	}
	return fmt.Sprintf("%s at %s", label, place)
}

func stopLabel(t domain.StopType) string {
	switch t {
	case domain.StopTypePickup:
		return "Pickup"
	case domain.StopTypeDropoff:
		return "Dropoff"
	case domain.StopTypeWaypoint:
		return "Waypoint"
	default:
		return string(t)
	}
}

func (p *planner) emit(stopType domain.StopType, name string, coord domain.Coord, start time.Time, duration string) {
	p.stops = append(p.stops, domain.Stop{
		Type:             stopType,
		Name:             name,
		Coordinates:      coord,
		Duration:         duration,
		EstimatedArrival: start,
	})
}

// driveWithClamp advances t by hours hours of driving, rolling over to the
// next day's driving start whenever the current day's driving window is
// exhausted.
func (p *planner) driveWithClamp(t time.Time, hours float64) time.Time {
	return driveWithClamp(t, hours, p.params)
}

func driveWithClamp(t time.Time, hours float64, params Parameters) time.Time {
	t = nextDriveStart(t, params)
	for {
		rem := hoursUntilEndOfDay(t, params)
		if hours <= rem {
			return addHours(t, hours)
		}
		hours -= rem
		t = atHour(t.AddDate(0, 0, 1), params.DriveStartHour)
	}
}

func nextDriveStart(t time.Time, params Parameters) time.Time {
	h := hourOf(t)
	if h < params.DriveStartHour {
		return atHour(t, params.DriveStartHour)
	}
	if h >= params.DriveEndHour {
		return atHour(t.AddDate(0, 0, 1), params.DriveStartHour)
	}
	return t
}

func hoursUntilEndOfDay(t time.Time, params Parameters) float64 {
	rem := params.DriveEndHour - hourOf(t)
	if rem < 0 {
		return 0
	}
	return rem
}

// alignBreak shifts a break to the preferred hour when it would otherwise
// land shortly before it. This can legally produce a break earlier than
// the continuous-driving trigger demands.
func alignBreak(t time.Time, params Parameters) time.Time {
	h := hourOf(t)
	if h > params.PreferredBreakHour {
		return t
	}
	if h >= 12.0 && h < params.PreferredBreakHour &&
		params.PreferredBreakHour >= params.DriveStartHour && params.PreferredBreakHour <= params.DriveEndHour {
		return atHour(t, params.PreferredBreakHour)
	}
	return t
}

func hourOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func atHour(t time.Time, h float64) time.Time {
	whole := int(h)
	frac := h - float64(whole)
	minutes := int(frac * 60)
	seconds := int((frac*60 - float64(minutes)) * 60)
	return time.Date(t.Year(), t.Month(), t.Day(), whole, minutes, seconds, 0, t.Location())
}

func addHours(t time.Time, h float64) time.Time {
	return t.Add(time.Duration(h * float64(time.Hour)))
}

func humanHours(d time.Duration) string {
	hours := d.Hours()
	if hours == float64(int(hours)) {
		return fmt.Sprintf("%d hours", int(hours))
	}
	return fmt.Sprintf("%.1f hours", hours)
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func nonZero(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}

func stableSortStops(stops []domain.Stop) {
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].EstimatedArrival.Before(stops[j].EstimatedArrival)
	})
}
