// Package eldlog folds a planned stop list into per-calendar-day duty
// status timelines, remarks, detailed log entries, mileage, and HOS
// violations.
package eldlog

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/hos"
)

const hourTolerance = 0.01
const writeTolerance = 0.001

var dutyStatusByStopType = map[domain.StopType]domain.DutyStatusType{
	domain.StopTypeOvernight: domain.DutyStatusSleeperBerth,
	domain.StopTypeOffDuty:   domain.DutyStatusOffDuty,
	domain.StopTypeRest:      domain.DutyStatusOffDuty,
	domain.StopTypeStart:     domain.DutyStatusOffDuty,
	domain.StopTypePreTrip:   domain.DutyStatusOnDuty,
	domain.StopTypePickup:    domain.DutyStatusOnDuty,
	domain.StopTypeDropoff:   domain.DutyStatusOnDuty,
	domain.StopTypeWaypoint:  domain.DutyStatusOnDuty,
	domain.StopTypeFuel:      domain.DutyStatusOnDuty,
}

var shipperNames = []string{"ABC", "XYZ", "Global", "National"}
var commodities = []string{"Electronics", "Produce", "Furniture", "Machinery"}
var plateStates = []string{"CA", "TX", "NY", "FL"}

type Assembler struct {
	params hos.Parameters
}

func New(params hos.Parameters) *Assembler {
	return &Assembler{params: params}
}

// Assemble builds one DailyLogSheet per calendar date touched by stops.
// startOdometer seeds the first day; if zero, a random value in
// [100000, 500000] is drawn from rng.
func (a *Assembler) Assemble(stops []domain.Stop, startOdometer int, rng *rand.Rand) []domain.DailyLogSheet {
	if len(stops) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if startOdometer == 0 {
		startOdometer = 100000 + rng.Intn(400001)
	}

	byDay := map[string][]domain.Stop{}
	var dates []string
	for _, s := range stops {
		day := s.EstimatedArrival.Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			dates = append(dates, day)
		}
		byDay[day] = append(byDay[day], s)
	}
	sort.Strings(dates)

	sheets := make([]domain.DailyLogSheet, 0, len(dates))
	currentOdometer := startOdometer

	driverID := fmt.Sprintf("DL%08d", 10000000+rng.Intn(90000000))
	truckNumber := fmt.Sprintf("Truck-%d", 100+rng.Intn(900))
	trailerNumber := fmt.Sprintf("Trailer-%d", 100+rng.Intn(900))
	shippingDocNumber := fmt.Sprintf("BOL-%d", 100000+rng.Intn(900000))
	licensePlate := fmt.Sprintf("ABC-%d (%s)", 1000+rng.Intn(9000), plateStates[rng.Intn(len(plateStates))])
	shipperCommodity := fmt.Sprintf("%s Shipping Co. - %s", shipperNames[rng.Intn(len(shipperNames))], commodities[rng.Intn(len(commodities))])

	for dayIdx, day := range dates {
		dayStops := byDay[day]
		isFirstDay := dayIdx == 0
		isLastDay := dayIdx == len(dates)-1

		trace := a.buildDayTrace(dayStops, isFirstDay, isLastDay)
		hourData, remarks := trace.hourData, trace.remarks
		drivingHours, onDutyHours, dayMiles := trace.drivingHours, trace.onDutyHours, trace.miles

		sort.Slice(hourData, func(i, j int) bool { return hourData[i].Hour < hourData[j].Hour })
		sort.Slice(remarks, func(i, j int) bool { return remarks[i].Time < remarks[j].Time })

		first := dayStops[0]
		last := dayStops[len(dayStops)-1]

		startOdo := currentOdometer
		endOdo := startOdo + int(math.Round(dayMiles))
		currentOdometer = endOdo

		sheet := domain.DailyLogSheet{
			Date:                day,
			DriverName:          "John Doe",
			DriverID:            driverID,
			TruckNumber:         truckNumber,
			TrailerNumber:       trailerNumber,
			Carrier:             "Sample Carrier Inc.",
			HomeTerminal:        "Dallas Terminal",
			ShippingDocNumber:   shippingDocNumber,
			LicensePlate:        licensePlate,
			ShipperCommodity:    shipperCommodity,
			OfficeAddress:       "1234 Business Rd, Suite 100, Dallas, TX 75201",
			HomeAddress:         "5678 Industrial Ave, Houston, TX 77001",
			StartTime:           first.EstimatedArrival,
			EndTime:             last.EstimatedArrival,
			StartLocation:       first.Name,
			EndLocation:         last.Name,
			StartOdometer:       startOdo,
			EndOdometer:         endOdo,
			TotalMiles:          int(math.Round(dayMiles)),
			TotalHours:          onDutyHours,
			GraphData:           domain.GraphData{HourData: hourData, Remarks: remarks},
			CertificationStatus: "Uncertified",
			Remarks:             "No issues reported",
		}
		sheet.TotalMilesDrivingToday = fmt.Sprintf("%d miles", sheet.TotalMiles)
		sheet.TotalMileageToday = fmt.Sprintf("%d miles", sheet.TotalMiles)
		sheet.Logs = a.buildLogEntries(hourData, remarks, sheet.StartTime, sheet.EndTime, day)

		if drivingHours > a.params.MaxDrivingHours {
			sheet.Violations = append(sheet.Violations, domain.Violation{
				Type:        domain.ViolationDrivingLimit,
				Description: fmt.Sprintf("Exceeded %d-hour driving limit (%.1f hours)", int(a.params.MaxDrivingHours), drivingHours),
			})
		}
		if onDutyHours > a.params.MaxOnDutyHours {
			sheet.Violations = append(sheet.Violations, domain.Violation{
				Type:        domain.ViolationOnDutyLimit,
				Description: fmt.Sprintf("Exceeded %d-hour on-duty limit (%.1f hours)", int(a.params.MaxOnDutyHours), onDutyHours),
			})
		}
		if sheet.Violations == nil {
			sheet.Violations = []domain.Violation{}
		}

		sheets = append(sheets, sheet)
	}

	return sheets
}

// dayTrace is one day's synthesized timeline plus the driving totals
// accumulated while interpolating between stops. The totals feed violation
// detection and the odometer, so they are computed here rather than
// re-derived from the sorted timeline.
type dayTrace struct {
	hourData     []domain.DutyStatus
	remarks      []domain.Remark
	drivingHours float64
	onDutyHours  float64
	miles        float64
}

func (a *Assembler) buildDayTrace(dayStops []domain.Stop, isFirstDay, isLastDay bool) dayTrace {
	p := a.params
	var hourData []domain.DutyStatus
	var remarks []domain.Remark
	var trace dayTrace

	addStatus := func(hour float64, status domain.DutyStatusType) {
		for i := range hourData {
			if math.Abs(hourData[i].Hour-hour) < writeTolerance {
				hourData[i].Status = status
				return
			}
		}
		hourData = append(hourData, domain.DutyStatus{Hour: hour, Status: status})
	}
	addRemark := func(hour float64, location string) {
		for i := range remarks {
			if math.Abs(remarks[i].Time-hour) < writeTolerance {
				remarks[i].Location = location
				return
			}
		}
		remarks = append(remarks, domain.Remark{Time: hour, Location: location})
	}
	hasNear := func(target float64) bool {
		for _, s := range hourData {
			if math.Abs(s.Hour-target) < hourTolerance {
				return true
			}
		}
		return false
	}

	last := dayStops[len(dayStops)-1]
	lastHour := hourOf(last.EstimatedArrival)
	isEarlyCompletion := isLastDay && lastHour < p.DriveEndHour && last.Type == domain.StopTypeDropoff

	// 1. seed from stops
	for _, s := range dayStops {
		h := hourOf(s.EstimatedArrival)
		status, ok := dutyStatusByStopType[s.Type]
		if !ok {
			status = domain.DutyStatusOnDuty
		}
		addStatus(h, status)
		addRemark(h, s.Name)
	}

	// 2. early-morning coverage
	hasEarlyMorning := false
	for _, s := range hourData {
		if s.Hour >= 0 && s.Hour < p.SleeperEndHour {
			hasEarlyMorning = true
			break
		}
	}
	if !hasEarlyMorning {
		if isFirstDay {
			addStatus(0.0, domain.DutyStatusOffDuty)
		} else {
			addStatus(0.0, domain.DutyStatusSleeperBerth)
		}
		addRemark(0.0, "")
	} else if !hasNear(0.0) {
		if isFirstDay {
			addStatus(0.0, domain.DutyStatusOffDuty)
		} else {
			addStatus(0.0, domain.DutyStatusSleeperBerth)
		}
		addRemark(0.0, "")
	}

	// 3. rest-end transition
	if !hasNear(p.SleeperEndHour) {
		addStatus(p.SleeperEndHour, domain.DutyStatusOnDuty)
		addRemark(p.SleeperEndHour, "End of Rest Period")
	}

	// 4. standard morning pattern
	first := dayStops[0]
	firstHour := hourOf(first.EstimatedArrival)
	if isFirstDay {
		if firstHour <= p.PreTripStartHour {
			addStatus(p.PreTripStartHour, domain.DutyStatusOnDuty)
			addRemark(p.PreTripStartHour, "Pre-trip Inspection")
			addStatus(p.DriveStartHour, domain.DutyStatusDriving)
			addRemark(p.DriveStartHour, "Start Driving")
		} else {
			addStatus(firstHour, domain.DutyStatusOnDuty)
			addRemark(firstHour, "Pre-trip Inspection")
			drivingStart := math.Min(firstHour+0.5, 23.9)
			addStatus(drivingStart, domain.DutyStatusDriving)
			addRemark(drivingStart, "Start Driving")
		}
	} else {
		addStatus(p.PreTripStartHour, domain.DutyStatusOnDuty)
		addRemark(p.PreTripStartHour, "Pre-trip Inspection")
		addStatus(p.DriveStartHour, domain.DutyStatusDriving)
		addRemark(p.DriveStartHour, "Start Driving")
	}

	// 5. between-stop driving interpolation. The gap hours are what feed
	// the day's driving/on-duty totals and mileage; stop timestamps are
	// wall-clock derived, so miles are attributed at the constant planning
	// speed rather than from the route's reported duration.
	for i := 0; i < len(dayStops)-1; i++ {
		stop := dayStops[i]
		next := dayStops[i+1]
		if stop.Type == domain.StopTypeOffDuty || stop.Type == domain.StopTypeOvernight ||
			next.Type == domain.StopTypeOffDuty || next.Type == domain.StopTypeOvernight {
			continue
		}
		drivingStart := stop.EstimatedArrival.Add(30 * time.Minute)
		gapHours := next.EstimatedArrival.Sub(drivingStart).Hours()
		if gapHours > 0.25 {
			addStatus(hourOf(drivingStart), domain.DutyStatusDriving)
			trace.miles += gapHours * p.AvgSpeedMph
			trace.drivingHours += gapHours
			trace.onDutyHours += gapHours
		}
	}

	// 6. standard end-of-day pattern
	if !isEarlyCompletion {
		if !hasNear(p.DriveEndHour) {
			addStatus(p.DriveEndHour, domain.DutyStatusOffDuty)
			addRemark(p.DriveEndHour, "End of Driving Day")
		}
		if !hasNear(p.SleeperStartHour) {
			addStatus(p.SleeperStartHour, domain.DutyStatusSleeperBerth)
			addRemark(p.SleeperStartHour, "10-Hour Rest")
		}
		if !isLastDay {
			addStatus(23.99, domain.DutyStatusSleeperBerth)
			addRemark(23.99, "")
		}
	}

	trace.hourData = hourData
	trace.remarks = remarks
	return trace
}

func (a *Assembler) buildLogEntries(hourData []domain.DutyStatus, remarks []domain.Remark, dayStart, dayEnd time.Time, date string) []domain.LogEntry {
	if len(hourData) == 0 {
		return nil
	}
	sorted := make([]domain.DutyStatus, len(hourData))
	copy(sorted, hourData)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hour < sorted[j].Hour })

	entries := make([]domain.LogEntry, 0, len(sorted))
	for i, cur := range sorted {
		curTime := atHourOn(dayStart, cur.Hour)

		var nextTime time.Time
		if i < len(sorted)-1 {
			nextTime = atHourOn(dayStart, sorted[i+1].Hour)
		} else {
			nextTime = dayEnd
		}

		location := "Unknown Location"
		closestDiff := math.Inf(1)
		for _, r := range remarks {
			diff := math.Abs(r.Time - cur.Hour)
			if diff < closestDiff {
				closestDiff = diff
				location = r.Location
			}
		}

		var miles int
		if cur.Status == domain.DutyStatusDriving {
			gapHours := nextTime.Sub(curTime).Hours()
			miles = int(math.Round(gapHours * a.params.AvgSpeedMph))
		}

		entries = append(entries, domain.LogEntry{
			Date:      date,
			StartTime: curTime,
			EndTime:   nextTime,
			Status:    cur.Status,
			Location:  location,
			Miles:     miles,
		})
	}
	return entries
}

func hourOf(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func atHourOn(day time.Time, h float64) time.Time {
	whole := int(h)
	frac := h - float64(whole)
	minutes := int(frac * 60)
	return time.Date(day.Year(), day.Month(), day.Day(), whole, minutes, 0, 0, day.Location())
}
