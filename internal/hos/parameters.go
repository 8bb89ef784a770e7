// Package hos implements the Hours-of-Service-aware stop planner.
// Parameters holds every regulatory constant so they are overridable for
// testing without code changes.
package hos

// Parameters holds the regulatory constants governing the planner. Hours
// are expressed as fractional hour-of-day (e.g. 14.5 == 14:30) where that
// makes sense, otherwise as plain durations.
type Parameters struct {
	MaxDrivingHours       float64 // max driving per duty day
	MaxOnDutyHours        float64 // max on-duty per duty day
	RestRequiredHours     float64 // required rest between duty periods
	PreTripStartHour      float64 // pre-trip inspection start, local
	DriveStartHour        float64 // earliest driving hour
	DriveEndHour          float64 // latest driving hour
	SleeperStartHour      float64 // sleeper berth begins
	SleeperEndHour        float64 // sleeper berth ends
	FuelIntervalMiles     float64 // distance between fuel stops
	AvgSpeedMph           float64 // constant planning speed
	BreakDurationHours    float64
	PickupDurationHours   float64
	DropoffDurationHours  float64
	WaypointDurationHours float64
	FuelDurationHours     float64
	PreferredBreakHour    float64 // target hour for the 30-min break
	BreakTriggerHours     float64 // break required after this much continuous driving
}

// DefaultParameters returns the standard U.S. property-carrying limits and
// the daily-schedule constants the planner assumes.
func DefaultParameters() Parameters {
	return Parameters{
		MaxDrivingHours:       11,
		MaxOnDutyHours:        14,
		RestRequiredHours:     10,
		PreTripStartHour:      6.5,
		DriveStartHour:        7.0,
		DriveEndHour:          17.5,
		SleeperStartHour:      19.0,
		SleeperEndHour:        6.5,
		FuelIntervalMiles:     500,
		AvgSpeedMph:           60,
		BreakDurationHours:    0.5,
		PickupDurationHours:   0.5,
		DropoffDurationHours:  0.5,
		WaypointDurationHours: 0.5,
		FuelDurationHours:     0.5,
		PreferredBreakHour:    14.0,
		BreakTriggerHours:     8.0,
	}
}
