// Package domain holds the data model shared by every planning stage:
// locations, route geometry, stops, duty-status timelines, and the daily
// log sheets assembled from them.
package domain

import (
	"encoding/json"
	"time"
)

// Location is a WGS84 point in {lat, lng} order, the shape inbound requests
// and route-client calls use.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coord is a [lng, lat] pair, the GeoJSON convention every polyline and
// stop coordinate uses. Location is the only shape that swaps the order.
type Coord struct {
	Lng float64
	Lat float64
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lng, c.Lat})
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	c.Lng, c.Lat = pair[0], pair[1]
	return nil
}

// LegRoute is the raw result of a single origin-to-destination
// route-client call, before combination.
type LegRoute struct {
	Coordinates     []Coord
	DistanceMeters  float64
	DurationSeconds float64
}

// Route is the combined, multi-leg polyline the planner walks.
type Route struct {
	Coordinates   []Coord `json:"coordinates"`
	DistanceMiles float64 `json:"distance"`
	DurationSec   float64 `json:"duration"`
	PickupCoord   Coord   `json:"pickupCoord"`
	DropoffCoord  Coord   `json:"dropoffCoord"`
}

type StopType string

const (
	StopTypeStart     StopType = "start"
	StopTypeOffDuty   StopType = "off-duty"
	StopTypePreTrip   StopType = "pretrip"
	StopTypeFuel      StopType = "fuel"
	StopTypeRest      StopType = "rest"
	StopTypeOvernight StopType = "overnight"
	StopTypePickup    StopType = "pickup"
	StopTypeWaypoint  StopType = "waypoint"
	StopTypeDropoff   StopType = "dropoff"
)

// Stop is immutable once planned; the planner never mutates a Stop after
// appending it.
type Stop struct {
	Type             StopType  `json:"type"`
	Name             string    `json:"name"`
	Coordinates      Coord     `json:"coordinates"`
	Duration         string    `json:"duration"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
}

type DutyStatusType string

const (
	DutyStatusDriving      DutyStatusType = "driving"
	DutyStatusOnDuty       DutyStatusType = "on-duty"
	DutyStatusOffDuty      DutyStatusType = "off-duty"
	DutyStatusSleeperBerth DutyStatusType = "sleeper-berth"
)

// DutyStatus is one entry in a day's 24-hour timeline. Hour is the
// fractional hour-of-day local to that sheet's calendar date.
type DutyStatus struct {
	Hour   float64        `json:"hour"`
	Status DutyStatusType `json:"status"`
}

// Remark labels the duty status nearest it in time.
type Remark struct {
	Time     float64 `json:"time"`
	Location string  `json:"location"`
}

type GraphData struct {
	HourData []DutyStatus `json:"hourData"`
	Remarks  []Remark     `json:"remarks"`
}

type ViolationType string

const (
	ViolationDrivingLimit ViolationType = "driving-limit"
	ViolationOnDutyLimit  ViolationType = "on-duty-limit"
)

type Violation struct {
	Type        ViolationType `json:"type"`
	Description string        `json:"description"`
}

// LogEntry pairs two adjacent DutyStatus entries into a start/end interval.
type LogEntry struct {
	Date      string         `json:"date"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	Status    DutyStatusType `json:"status"`
	Location  string         `json:"location"`
	Miles     int            `json:"miles"`
}

// DailyLogSheet is the per-calendar-date aggregate emitted by the log
// assembler, one per date touched by the stop list.
type DailyLogSheet struct {
	Date                   string      `json:"date"`
	DriverName             string      `json:"driverName"`
	DriverID               string      `json:"driverID"`
	TruckNumber            string      `json:"truckNumber"`
	TrailerNumber          string      `json:"trailerNumber"`
	Carrier                string      `json:"carrier"`
	HomeTerminal           string      `json:"homeTerminal"`
	ShippingDocNumber      string      `json:"shippingDocNumber"`
	LicensePlate           string      `json:"licensePlate"`
	ShipperCommodity       string      `json:"shipperCommodity"`
	OfficeAddress          string      `json:"officeAddress"`
	HomeAddress            string      `json:"homeAddress"`
	StartTime              time.Time   `json:"startTime"`
	EndTime                time.Time   `json:"endTime"`
	StartLocation          string      `json:"startLocation"`
	EndLocation            string      `json:"endLocation"`
	StartOdometer          int         `json:"startOdometer"`
	EndOdometer            int         `json:"endOdometer"`
	TotalMiles             int         `json:"totalMiles"`
	TotalHours             float64     `json:"totalHours"`
	TotalMilesDrivingToday string      `json:"totalMilesDrivingToday"`
	TotalMileageToday      string      `json:"totalMileageToday"`
	GraphData              GraphData   `json:"graphData"`
	Logs                   []LogEntry  `json:"logs"`
	Violations             []Violation `json:"violations"`
	CertificationStatus    string      `json:"certificationStatus"`
	Remarks                string      `json:"remarks"`
}

// TripResult is the aggregate the orchestrator returns: the combined
// route plus every stop and log sheet produced from it.
//
// TotalDuration is the route client's summed driving duration only; it is
// never recomputed from the stop schedule, which may span many more wall
// clock hours once rests and breaks are accounted for.
type TripResult struct {
	Coordinates   []Coord         `json:"coordinates"`
	Stops         []Stop          `json:"stops"`
	TotalDistance float64         `json:"totalDistance"`
	TotalDuration float64         `json:"totalDuration"`
	ELDLogs       []DailyLogSheet `json:"eldLogs"`
}
