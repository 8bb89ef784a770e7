package eldlog

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/hos"
)

func sampleStops() []domain.Stop {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC) }
	return []domain.Stop{
		{Type: domain.StopTypeStart, Name: "Starting Location", EstimatedArrival: at(6, 0)},
		{Type: domain.StopTypeOffDuty, Name: "Early Morning Rest (Off-Duty)", EstimatedArrival: at(6, 0)},
		{Type: domain.StopTypePreTrip, Name: "Pre-trip Inspection", EstimatedArrival: at(6, 30)},
		{Type: domain.StopTypePickup, Name: "Pickup at Los Angeles, CA", EstimatedArrival: at(7, 5)},
		{Type: domain.StopTypeDropoff, Name: "Dropoff at Los Angeles, CA", EstimatedArrival: at(7, 15)},
	}
}

func TestAssemble_SingleDayGapFreeCoverage(t *testing.T) {
	a := New(hos.DefaultParameters())
	sheets := a.Assemble(sampleStops(), 100000, rand.New(rand.NewSource(1)))

	require.Len(t, sheets, 1)
	sheet := sheets[0]
	assert.Equal(t, "2024-06-01", sheet.Date)

	hourData := sheet.GraphData.HourData
	require.NotEmpty(t, hourData)
	for i := 1; i < len(hourData); i++ {
		assert.GreaterOrEqual(t, hourData[i].Hour, hourData[i-1].Hour)
	}
	assert.InDelta(t, 0.0, hourData[0].Hour, 1e-9)
}

func TestAssemble_OdometerCarriesAcrossDays(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC)
	stops := []domain.Stop{
		{Type: domain.StopTypeStart, Name: "Starting Location", EstimatedArrival: day1},
		{Type: domain.StopTypeDropoff, Name: "Dropoff Location", EstimatedArrival: day1.Add(2 * time.Hour)},
		{Type: domain.StopTypeDropoff, Name: "Dropoff Location", EstimatedArrival: day2},
	}
	a := New(hos.DefaultParameters())
	sheets := a.Assemble(stops, 200000, rand.New(rand.NewSource(1)))

	require.Len(t, sheets, 2)
	assert.Equal(t, sheets[0].EndOdometer, sheets[1].StartOdometer)
}

func TestAssemble_ViolationFlaggedWhenDrivingExceedsLimit(t *testing.T) {
	day := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	stops := []domain.Stop{
		{Type: domain.StopTypeStart, Name: "Starting Location", EstimatedArrival: day},
		{Type: domain.StopTypeDropoff, Name: "Dropoff Location", EstimatedArrival: day.Add(12 * time.Hour)},
	}
	a := New(hos.DefaultParameters())
	sheets := a.Assemble(stops, 100000, rand.New(rand.NewSource(1)))
	require.Len(t, sheets, 1)

	var sawDrivingViolation bool
	for _, v := range sheets[0].Violations {
		if v.Type == domain.ViolationDrivingLimit {
			sawDrivingViolation = true
		}
	}
	assert.True(t, sawDrivingViolation)
}

func TestAssemble_EmptyStopsReturnsNoSheets(t *testing.T) {
	a := New(hos.DefaultParameters())
	sheets := a.Assemble(nil, 0, rand.New(rand.NewSource(1)))
	assert.Empty(t, sheets)
}
