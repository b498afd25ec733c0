package services

import (
	"testing"
	"time"

	"parkops/internal/domain/models"
	"parkops/internal/store"

	"github.com/stretchr/testify/require"
)

// fixture builds a fresh store with one park, one route and a controllable
// clock. Mutating *now drives hold expiry and reveal windows.
type fixture struct {
	st      *store.Store
	now     *time.Time
	parkID  string
	routeID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.Local)
	now := &start

	st := store.New()
	st.NowFunc = func() time.Time { return *now }

	park, err := ParkService{Store: st}.Create(ParkInput{Name: "Jibowu Park", Address: "Yaba, Lagos", Phone: "08030000000"})
	require.NoError(t, err)

	route, err := RouteService{Store: st}.Create(park.ID, RouteInput{
		Destination:     "Abuja",
		BasePrice:       15000,
		VehicleCapacity: 14,
	})
	require.NoError(t, err)

	return &fixture{st: st, now: now, parkID: park.ID, routeID: route.ID}
}

func (f *fixture) advance(d time.Duration) {
	*f.now = f.now.Add(d)
}

// publishedTrip creates and publishes a single trip ready for booking.
func (f *fixture) publishedTrip(t *testing.T, date, unitTime, vehicleID string, seats int) models.Trip {
	t.Helper()
	svc := TripService{Store: f.st}
	trips, err := svc.Create(f.parkID, TripInput{
		RouteID:   f.routeID,
		Date:      date,
		UnitTime:  unitTime,
		VehicleID: vehicleID,
		SeatCount: seats,
	})
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip, err := svc.Publish(f.parkID, trips[0].ID)
	require.NoError(t, err)
	return trip
}

func (f *fixture) driver(t *testing.T, name, phone, license string) models.Driver {
	t.Helper()
	d, err := DriverService{Store: f.st}.Create(f.parkID, DriverInput{
		Name:          name,
		Phone:         phone,
		LicenseNumber: license,
		Qualification: "interstate",
		Rating:        4.5,
	})
	require.NoError(t, err)
	return d
}

func (f *fixture) hold(t *testing.T, tripID, name, phone string) models.Booking {
	t.Helper()
	b, err := BookingService{Store: f.st}.CreateWithHold(f.parkID, BookingInput{
		TripID:         tripID,
		PassengerName:  name,
		PassengerPhone: phone,
		NokName:        "NOK " + name,
		NokPhone:       "08110000000",
		NokAddress:     "12 Park Close",
		AmountPaid:     15000,
	})
	require.NoError(t, err)
	return b
}
